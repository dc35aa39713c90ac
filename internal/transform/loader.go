package transform

import (
	"context"
	"errors"
	"sync"
	"time"
)

const (
	// DefaultLoadTimeout caps one module load attempt.
	DefaultLoadTimeout = 5 * time.Second

	// registerPoll covers the narrow window where a load is marked as
	// starting but its state is not registered yet.
	registerPoll    = 20 * time.Millisecond
	registerRetries = 10
)

var ErrLoadTimeout = errors.New("module load timed out")

type loadState struct {
	done chan struct{}
	err  error
}

// Loader memoizes module loads by module name. Concurrent callers share a
// single in-flight load; a failed or timed out load is evicted so the
// next call retries cleanly.
type Loader struct {
	mu       sync.Mutex
	timeout  time.Duration
	starting map[string]bool
	loads    map[string]*loadState
}

func NewLoader(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}

	return &Loader{
		timeout:  timeout,
		starting: make(map[string]bool),
		loads:    make(map[string]*loadState),
	}
}

func (l *Loader) Load(ctx context.Context, m Module) error {
	key := m.Name()

	for attempt := 0; ; attempt++ {
		l.mu.Lock()

		if st, ok := l.loads[key]; ok {
			l.mu.Unlock()

			return l.wait(ctx, key, st)
		}

		if l.starting[key] {
			l.mu.Unlock()

			if attempt >= registerRetries {
				return &LoadError{Module: key, Err: ErrLoadTimeout}
			}

			time.Sleep(registerPoll)

			continue
		}

		l.starting[key] = true
		l.mu.Unlock()

		// the load is started before its state is registered, so other
		// callers can observe starting[key] without a memo entry and
		// take the poll branch above
		st := &loadState{done: make(chan struct{})}

		go func() {
			st.err = m.Load(context.Background())
			close(st.done)
		}()

		l.mu.Lock()
		l.loads[key] = st
		l.starting[key] = false
		l.mu.Unlock()

		return l.wait(ctx, key, st)
	}
}

func (l *Loader) wait(ctx context.Context, key string, st *loadState) error {
	select {
	case <-st.done:
		if st.err != nil {
			l.evict(key, st)

			return &LoadError{Module: key, Err: st.err}
		}

		return nil

	case <-time.After(l.timeout):
		l.evict(key, st)

		return &LoadError{Module: key, Err: ErrLoadTimeout}

	case <-ctx.Done():
		return ctx.Err()
	}
}

// evict drops the memoized state so a later call starts a fresh load. The
// state is only removed if it is still the registered one.
func (l *Loader) evict(key string, st *loadState) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cur, ok := l.loads[key]; ok && cur == st {
		delete(l.loads, key)
	}
}
