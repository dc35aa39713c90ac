package search

import (
	"sync"
	"time"
)

// Debouncer delays a function call until the input has been quiet for the
// configured interval. A new trigger replaces the pending one.
type Debouncer struct {
	mx    sync.Mutex
	d     time.Duration
	timer *time.Timer
}

func NewDebouncer(d time.Duration) *Debouncer {
	return &Debouncer{d: d}
}

func (d *Debouncer) Trigger(f func()) {
	d.mx.Lock()
	defer d.mx.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.d, f)
}

func (d *Debouncer) Stop() {
	d.mx.Lock()
	defer d.mx.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
