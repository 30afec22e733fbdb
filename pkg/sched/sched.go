// Package sched provides the two cancellable timer shapes the storefront
// needs: a latest-wins debouncer and a periodic task.
package sched

import (
	"sync"
	"time"
)

// A Debouncer runs only the last function handed to Do within the wait
// window. Each Do call supersedes the pending one.
type Debouncer struct {
	mu    sync.Mutex
	wait  time.Duration
	timer *time.Timer
}

func NewDebouncer(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait}
}

// Do schedules fn after the wait window, cancelling any previously
// scheduled function that has not fired yet.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, fn)
}

// Stop cancels the pending function, if any. The debouncer stays usable.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// A Periodic runs fn on every interval tick between Start and Stop.
type Periodic struct {
	interval time.Duration
	fn       func()
	stop     chan struct{}
	stopOnce sync.Once
}

func NewPeriodic(interval time.Duration, fn func()) *Periodic {
	return &Periodic{
		interval: interval,
		fn:       fn,
		stop:     make(chan struct{}),
	}
}

func (p *Periodic) Start() {
	go p.run()
}

// Stop ends the periodic task. Safe to call more than once.
func (p *Periodic) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
}

func (p *Periodic) run() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.fn()
		}
	}
}
