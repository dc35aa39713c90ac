package transform

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModule struct {
	name  string
	delay time.Duration
	fail  atomic.Bool
	loads atomic.Int32
}

func (m *fakeModule) Name() string {
	return m.name
}

func (m *fakeModule) Load(_ context.Context) error {
	m.loads.Add(1)
	time.Sleep(m.delay)

	if m.fail.Load() {
		return errors.New("boom")
	}

	return nil
}

func (m *fakeModule) Project(p Point, targetSRID int) (Point, error) {
	p.SRID = targetSRID

	return p, nil
}

func TestLoaderSharesInFlightLoad(t *testing.T) {
	m := &fakeModule{name: "fake", delay: 50 * time.Millisecond}
	l := NewLoader(time.Second)

	wg := new(sync.WaitGroup)

	for i := 0; i < 20; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			assert.NoError(t, l.Load(context.Background(), m))
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), m.loads.Load())
}

func TestLoaderMemoizesAcrossCalls(t *testing.T) {
	m := &fakeModule{name: "fake"}
	l := NewLoader(time.Second)

	require.NoError(t, l.Load(context.Background(), m))
	require.NoError(t, l.Load(context.Background(), m))

	assert.Equal(t, int32(1), m.loads.Load())
}

func TestLoaderEvictsFailedLoad(t *testing.T) {
	m := &fakeModule{name: "fake"}
	m.fail.Store(true)

	l := NewLoader(time.Second)

	err := l.Load(context.Background(), m)
	require.Error(t, err)

	var le *LoadError
	require.ErrorAs(t, err, &le)

	// the failed attempt was evicted, so the next call retries
	m.fail.Store(false)
	require.NoError(t, l.Load(context.Background(), m))

	assert.Equal(t, int32(2), m.loads.Load())
}

func TestLoaderTimeout(t *testing.T) {
	m := &fakeModule{name: "slow", delay: 200 * time.Millisecond}
	l := NewLoader(20 * time.Millisecond)

	err := l.Load(context.Background(), m)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoadTimeout)

	// eviction makes the retry start a fresh load
	time.Sleep(250 * time.Millisecond)

	fast := &fakeModule{name: "slow"}
	require.NoError(t, l.Load(context.Background(), fast))

	assert.Equal(t, int32(1), fast.loads.Load())
}

func TestLoaderPollsUnregisteredStart(t *testing.T) {
	m := &fakeModule{name: "fake"}
	l := NewLoader(time.Second)

	// a load is marked as starting but its state is not registered yet
	l.mu.Lock()
	l.starting[m.Name()] = true
	l.mu.Unlock()

	go func() {
		time.Sleep(50 * time.Millisecond)

		st := &loadState{done: make(chan struct{})}
		close(st.done)

		l.mu.Lock()
		l.loads[m.Name()] = st
		l.starting[m.Name()] = false
		l.mu.Unlock()
	}()

	// the caller polls until the state shows up, then shares it
	require.NoError(t, l.Load(context.Background(), m))
	assert.Equal(t, int32(0), m.loads.Load())
}

func TestLoaderGivesUpOnStuckStart(t *testing.T) {
	m := &fakeModule{name: "fake"}
	l := NewLoader(time.Second)

	l.mu.Lock()
	l.starting[m.Name()] = true
	l.mu.Unlock()

	err := l.Load(context.Background(), m)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoadTimeout)
	assert.Equal(t, int32(0), m.loads.Load())
}

func TestLoaderContextCancel(t *testing.T) {
	m := &fakeModule{name: "slow", delay: 200 * time.Millisecond}
	l := NewLoader(time.Second)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := l.Load(ctx, m)
	assert.ErrorIs(t, err, context.Canceled)
}
