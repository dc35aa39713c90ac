package main

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWsQueuePushAfterClose(t *testing.T) {
	q := newWsQueue(1)

	assert.True(t, q.push(&WsMessage{Typ: "result"}))

	q.close()

	assert.False(t, q.push(&WsMessage{Typ: "result"}))
	assert.Nil(t, q.pop())
}

func TestWsQueueCloseDuringPush(t *testing.T) {
	// a late search result racing the disconnect must never panic
	for i := 0; i < 1000; i++ {
		q := newWsQueue(1)
		wg := new(sync.WaitGroup)
		wg.Add(2)

		go func() {
			defer wg.Done()

			for j := 0; j < 10; j++ {
				q.push(&WsMessage{Typ: "error", Key: "k"})
			}
		}()

		go func() {
			defer wg.Done()
			q.close()
		}()

		wg.Wait()
	}
}

func TestWsQueueDropsWhenFull(t *testing.T) {
	q := newWsQueue(1)

	assert.True(t, q.push(&WsMessage{Typ: "result"}))
	assert.False(t, q.push(&WsMessage{Typ: "result"}))

	assert.NotNil(t, q.pop())
}
