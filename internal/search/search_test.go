package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swegeo/swesearch/internal/transform"
	"github.com/swegeo/swesearch/pkg/sweref"
)

type testMap struct {
	lon    float64
	hasLon bool
	srid   int
}

func (m *testMap) CenterLongitude() (float64, bool) {
	return m.lon, m.hasLon
}

func (m *testMap) SRID() int {
	return m.srid
}

// gateModule delays its load until released, so tests can hold an
// invocation inside the transform stage.
type gateModule struct {
	inner   *transform.SwerefModule
	release chan struct{}
	loads   atomic.Int32
}

func newGateModule() *gateModule {
	return &gateModule{
		inner:   transform.NewSwerefModule(),
		release: make(chan struct{}),
	}
}

func (m *gateModule) Name() string {
	return "gated"
}

func (m *gateModule) Load(ctx context.Context) error {
	m.loads.Add(1)
	<-m.release

	return m.inner.Load(ctx)
}

func (m *gateModule) Project(p transform.Point, targetSRID int) (transform.Point, error) {
	return m.inner.Project(p, targetSRID)
}

type failModule struct{}

func (failModule) Name() string {
	return "broken"
}

func (failModule) Load(_ context.Context) error {
	return errors.New("no such module")
}

func (failModule) Project(p transform.Point, _ int) (transform.Point, error) {
	return p, nil
}

func newSearcher(host *testMap, module transform.Module) *Searcher {
	return New(host, transform.New(module, time.Second))
}

func TestSearchSuccess(t *testing.T) {
	host := &testMap{lon: 18.06, hasLon: true, srid: 3006}
	s := newSearcher(host, transform.NewSwerefModule())

	var res *Result

	s.Search(context.Background(), "500000,6500000", func(r *Result) { res = r }, func(key string) {
		t.Fatalf("unexpected error %s", key)
	})

	require.NotNil(t, res)
	assert.Equal(t, 3006, res.Projection.EPSG)
	assert.Equal(t, 500000.0, res.Point.X)
	assert.Equal(t, 6500000.0, res.Point.Y)
	assert.Equal(t, 3006, res.Point.SRID)
	assert.Equal(t, sweref.FormatCommaSeparated, res.Format)
}

func TestSearchTransformsToHostReference(t *testing.T) {
	host := &testMap{srid: transform.SRIDWgs84}
	s := newSearcher(host, transform.NewSwerefModule())

	var res *Result

	s.Search(context.Background(), "500000 6651411", func(r *Result) { res = r }, func(key string) {
		t.Fatalf("unexpected error %s", key)
	})

	require.NotNil(t, res)
	assert.Equal(t, transform.SRIDWgs84, res.Point.SRID)
	assert.InDelta(t, 15.0, res.Point.X, 1e-6)
	assert.InDelta(t, 60.0, res.Point.Y, 0.001)
}

func TestSearchErrors(t *testing.T) {
	host := &testMap{srid: 3006}
	s := newSearcher(host, transform.NewSwerefModule())

	data := []struct {
		in  string
		key string
	}{
		{"", sweref.ErrorEmpty},
		{"13.5,60.5", sweref.ErrorNotSweref},
		{"no coordinates here", sweref.ErrorParse},
		{"900000,6500000", sweref.ErrorOutOfRange},
		{"270000 6500000", sweref.ErrorNoProjection},
	}

	for _, d := range data {
		var key string

		s.Search(context.Background(), d.in, func(*Result) {
			t.Fatalf("unexpected success for %q", d.in)
		}, func(k string) { key = k })

		assert.Equal(t, d.key, key, "input %q", d.in)
	}
}

func TestSearchTransformFailure(t *testing.T) {
	host := &testMap{srid: transform.SRIDWebMercator}
	s := newSearcher(host, failModule{})

	var key string

	s.Search(context.Background(), "500000,6500000", func(*Result) {
		t.Fatal("unexpected success")
	}, func(k string) { key = k })

	assert.Equal(t, sweref.ErrorTransform, key)
}

func TestSearchStaleInvocationNeverDelivers(t *testing.T) {
	host := &testMap{lon: 18.06, hasLon: true, srid: transform.SRIDWebMercator}
	module := newGateModule()
	s := newSearcher(host, module)

	var aSuccess, aError, bSuccess atomic.Int32

	wg := new(sync.WaitGroup)
	wg.Add(2)

	go func() {
		defer wg.Done()
		s.Search(context.Background(), "150000 6500000",
			func(*Result) { aSuccess.Add(1) },
			func(string) { aError.Add(1) })
	}()

	// let A reach the blocked transform stage
	for module.loads.Load() == 0 {
		time.Sleep(5 * time.Millisecond)
	}

	go func() {
		defer wg.Done()
		s.Search(context.Background(), "500000,6500000",
			func(*Result) { bSuccess.Add(1) },
			func(key string) { panic("unexpected error " + key) })
	}()

	// B is issued and also waits on the shared module load; release both
	time.Sleep(20 * time.Millisecond)
	close(module.release)

	wg.Wait()

	assert.Equal(t, int32(0), aSuccess.Load())
	assert.Equal(t, int32(0), aError.Load())
	assert.Equal(t, int32(1), bSuccess.Load())
	assert.Equal(t, int32(1), module.loads.Load())
}

func TestSearchPreference(t *testing.T) {
	host := &testMap{lon: 18.06, hasLon: true, srid: 3006}
	s := newSearcher(host, transform.NewSwerefModule())

	s.SetPreference(sweref.PreferZone)
	assert.Equal(t, sweref.PreferZone, s.Preference())

	var key string

	// zone preference with a TM-only easting finds no candidate
	s.Search(context.Background(), "400000 6500000", func(r *Result) {
		key = ""
		assert.Equal(t, 3006, r.Projection.EPSG)
	}, func(k string) { key = k })

	assert.Empty(t, key)
}

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var fired atomic.Int32

	for i := 0; i < 5; i++ {
		d.Trigger(func() { fired.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())

	d.Trigger(func() { fired.Add(1) })
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}
