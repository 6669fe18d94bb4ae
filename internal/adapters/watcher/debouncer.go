// Package watcher turns file system changes into debounced bundle invalidations.
package watcher

import (
	"slices"
	"sync"
	"time"
	"unique"
)

// Debouncer delays each key by a fixed window measured from the first Add
// that queued it. Later Adds of a pending key do not move its deadline, and
// keys never hold each other back: every key is delivered at most one window
// after the change that queued it. Keys that come due together are delivered
// as one batch.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[unique.Handle[string]]time.Time
	timer    *time.Timer
	window   time.Duration
	callback func(keys []string)
	stopped  bool
}

// NewDebouncer creates a new debouncer with the given time window and callback.
func NewDebouncer(window time.Duration, callback func(keys []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[unique.Handle[string]]time.Time),
		window:   window,
		callback: callback,
	}
}

// Add queues keys that are not already pending, due one window from now.
func (d *Debouncer) Add(keys ...string) {
	if len(keys) == 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	deadline := time.Now().Add(d.window)
	added := false
	for _, key := range keys {
		h := unique.Make(key)
		if _, ok := d.pending[h]; ok {
			continue
		}
		d.pending[h] = deadline
		added = true
	}
	if added && d.timer == nil {
		d.arm()
	}
}

// fire delivers every key that is due and re-arms for the rest. The callback
// runs on its own goroutine with the keys in sorted order.
func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	keys := d.due(time.Now())
	d.timer = nil
	d.arm()
	d.mu.Unlock()

	if len(keys) > 0 && d.callback != nil {
		go d.callback(keys)
	}
}

// Stop discards pending keys and ignores later Adds.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	clear(d.pending)
}

// arm schedules fire for the earliest pending deadline. Deadlines only grow
// in Add order, so an armed timer is never later than a newly added key.
// d.mu must be held.
func (d *Debouncer) arm() {
	if len(d.pending) == 0 {
		return
	}
	var earliest time.Time
	for _, deadline := range d.pending {
		if earliest.IsZero() || deadline.Before(earliest) {
			earliest = deadline
		}
	}
	d.timer = time.AfterFunc(time.Until(earliest), d.fire)
}

// due removes and returns the keys whose deadline is not after now, sorted.
// d.mu must be held.
func (d *Debouncer) due(now time.Time) []string {
	var keys []string
	for handle, deadline := range d.pending {
		if deadline.After(now) {
			continue
		}
		keys = append(keys, handle.Value())
		delete(d.pending, handle)
	}
	slices.Sort(keys)
	return keys
}
