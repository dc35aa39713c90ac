package main

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/swegeo/swesearch/internal/search"
	"github.com/swegeo/swesearch/pkg/sweref"
)

// WsMessage is the frame sent back to the search box.
type WsMessage struct {
	Typ    string         `json:"type"`
	Result *search.Result `json:"result,omitempty"`
	Key    string         `json:"key,omitempty"`
}

// wsQueue hands outbound frames to the writer goroutine. The frame
// channel itself is never closed; close signals through done, so a
// debounced search finishing during disconnect cannot send on a closed
// channel.
type wsQueue struct {
	ch   chan *WsMessage
	done chan struct{}
}

func newWsQueue(size int) *wsQueue {
	return &wsQueue{
		ch:   make(chan *WsMessage, size),
		done: make(chan struct{}),
	}
}

func (q *wsQueue) push(msg *WsMessage) bool {
	select {
	case q.ch <- msg:
		return true
	case <-q.done:
		return false
	default:
		return false
	}
}

func (q *wsQueue) pop() *WsMessage {
	select {
	case msg := <-q.ch:
		return msg
	case <-q.done:
		return nil
	}
}

func (q *wsQueue) close() {
	close(q.done)
}

// wsSession ties one websocket connection to one sequencer and one
// debouncer: every text frame is a keystroke, every debounce tick starts
// a sequenced search.
type wsSession struct {
	log       *slog.Logger
	ws        *websocket.Conn
	searcher  *search.Searcher
	debouncer *search.Debouncer
	queue     *wsQueue
	active    int32
}

func getWsHandler(app *App) fiber.Handler {
	return websocket.New(func(ws *websocket.Conn) {
		name := uuid.NewString()

		s := &wsSession{
			log:       app.logger.With("logger", "ws", "client", name),
			ws:        ws,
			searcher:  app.NewSearcher(),
			debouncer: search.NewDebouncer(app.config.Debounce()),
			queue:     newWsQueue(10),
			active:    1,
		}

		s.log.Debug("connected")

		go s.writer()
		s.reader()

		s.log.Debug("disconnected")
	})
}

func (s *wsSession) isActive() bool {
	return atomic.LoadInt32(&s.active) == 1
}

func (s *wsSession) stop() {
	if atomic.CompareAndSwapInt32(&s.active, 1, 0) {
		s.debouncer.Stop()
		s.queue.close()
		s.ws.Close()
	}
}

func (s *wsSession) writer() {
	for {
		msg := s.queue.pop()
		if msg == nil {
			return
		}

		if err := s.ws.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (s *wsSession) reader() {
	defer s.stop()

	for {
		_, data, err := s.ws.ReadMessage()
		if err != nil {
			return
		}

		text := sweref.SanitizeQuery(string(data))
		if text == "" {
			continue
		}

		s.debouncer.Trigger(func() {
			s.search(text)
		})
	}
}

func (s *wsSession) search(text string) {
	if !s.isActive() {
		return
	}

	s.searcher.Search(context.Background(), text,
		func(r *search.Result) { s.queue.push(&WsMessage{Typ: "result", Result: r}) },
		func(key string) { s.queue.push(&WsMessage{Typ: "error", Key: key}) })
}
