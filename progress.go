package intakekit

import (
	"sync"
	"time"
)

// Simulated progress defaults
const (
	DefaultProgressInterval = 100 * time.Millisecond
	DefaultProgressStep     = 10
)

// CancelFunc stops the run it was returned for. Calling it after a newer run
// has started, or more than once, has no effect.
type CancelFunc func()

// TickFunc receives each new progress percentage
type TickFunc func(percent int)

// Progress is a cosmetic upload counter. It climbs from 0 to 100 in fixed
// steps on a fixed cadence and then stops. At most one run is active: Start
// cancels any run in flight before beginning a new one.
type Progress struct {
	mu        sync.Mutex
	scheduler Scheduler
	interval  time.Duration
	step      int

	value int
	run   uint64
	task  Task
}

// NewProgress creates a Progress driven by scheduler. Non-positive interval
// or step fall back to the defaults.
func NewProgress(scheduler Scheduler, interval time.Duration, step int) *Progress {
	if scheduler == nil {
		scheduler = SystemScheduler()
	}
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	if step <= 0 {
		step = DefaultProgressStep
	}
	return &Progress{scheduler: scheduler, interval: interval, step: step}
}

// Start resets the counter to 0 and begins a new run, cancelling any
// previous one. onTick receives every new value, ending with 100.
func (p *Progress) Start(onTick TickFunc) CancelFunc {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	p.run++
	p.value = 0
	run := p.run

	p.task = p.scheduler.Every(p.interval, func() {
		p.tick(run, onTick)
	})

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.run == run {
			p.stopLocked()
		}
	}
}

// Cancel stops the active run, leaving the value where it was
func (p *Progress) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Reset stops the active run and sets the value back to 0
func (p *Progress) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.value = 0
}

// Value returns the current percentage
func (p *Progress) Value() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Running reports whether a run is in flight
func (p *Progress) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.task != nil
}

func (p *Progress) tick(run uint64, onTick TickFunc) {
	p.mu.Lock()
	if run != p.run || p.task == nil {
		p.mu.Unlock()
		return
	}

	p.value += p.step
	if p.value >= 100 {
		p.value = 100
		p.stopLocked()
	}
	value := p.value
	p.mu.Unlock()

	if onTick != nil {
		onTick(value)
	}
}

// stopLocked cancels the scheduled task and invalidates its run
func (p *Progress) stopLocked() {
	if p.task != nil {
		p.task.Cancel()
		p.task = nil
	}
	p.run++
}
