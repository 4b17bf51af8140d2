package intakekit

import (
	"sort"
	"sync"
	"time"
)

// Task is a handle to scheduled work. Cancel is idempotent and safe to call
// from inside the task's own callback.
type Task interface {
	Cancel()
}

// Scheduler runs callbacks on a timer. Implementations must not invoke a
// callback after its task has been cancelled, except for an invocation that
// had already begun.
type Scheduler interface {
	// Every runs fn repeatedly, once per interval, until cancelled
	Every(interval time.Duration, fn func()) Task

	// After runs fn once after d unless cancelled first
	After(d time.Duration, fn func()) Task
}

// ============================================================================
// Wall-clock scheduler
// ============================================================================

type systemScheduler struct{}

// SystemScheduler returns a Scheduler backed by time.Ticker and time.AfterFunc
func SystemScheduler() Scheduler {
	return systemScheduler{}
}

type tickerTask struct {
	once sync.Once
	stop chan struct{}
}

func (t *tickerTask) Cancel() {
	t.once.Do(func() { close(t.stop) })
}

func (systemScheduler) Every(interval time.Duration, fn func()) Task {
	t := &tickerTask{stop: make(chan struct{})}
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				// A tick and a cancel can be ready together; cancel wins.
				select {
				case <-t.stop:
					return
				default:
				}
				fn()
			}
		}
	}()

	return t
}

type timerTask struct {
	timer *time.Timer
}

func (t timerTask) Cancel() {
	t.timer.Stop()
}

func (systemScheduler) After(d time.Duration, fn func()) Task {
	return timerTask{timer: time.AfterFunc(d, fn)}
}

// ============================================================================
// Manual scheduler
// ============================================================================

// ManualScheduler is a Scheduler driven by a virtual clock. Nothing fires
// until Advance is called, which makes timer-driven code deterministic in
// tests and replays.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	s         *ManualScheduler
	seq       int
	interval  time.Duration
	due       time.Duration
	repeat    bool
	fn        func()
	cancelled bool
}

// NewManualScheduler creates a ManualScheduler at virtual time zero
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (t *manualTask) Cancel() {
	t.s.mu.Lock()
	t.cancelled = true
	t.s.mu.Unlock()
}

func (s *ManualScheduler) add(d time.Duration, repeat bool, fn func()) Task {
	if d <= 0 {
		d = time.Millisecond
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &manualTask{s: s, seq: s.seq, interval: d, due: s.now + d, repeat: repeat, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Every implements Scheduler
func (s *ManualScheduler) Every(interval time.Duration, fn func()) Task {
	return s.add(interval, true, fn)
}

// After implements Scheduler
func (s *ManualScheduler) After(d time.Duration, fn func()) Task {
	return s.add(d, false, fn)
}

// Advance moves the virtual clock forward by d, firing every task that
// falls due in order of due time. Callbacks run on the calling goroutine
// without the scheduler lock held.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		s.compact()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}

		s.now = next.due
		if next.repeat {
			next.due += next.interval
		} else {
			next.cancelled = true
		}
		fn := next.fn
		s.mu.Unlock()

		fn()
	}
}

// Pending returns the number of tasks that have not fired for the last time
// and have not been cancelled
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compact()
	return len(s.tasks)
}

// Now returns the elapsed virtual time
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualScheduler) nextDue(target time.Duration) *manualTask {
	candidates := make([]*manualTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.due <= target {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].due == candidates[j].due {
			return candidates[i].seq < candidates[j].seq
		}
		return candidates[i].due < candidates[j].due
	})
	return candidates[0]
}

func (s *ManualScheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}
