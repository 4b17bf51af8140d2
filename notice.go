package intakekit

import (
	"sync"
	"time"
)

// Default notice lifetimes
const (
	DefaultErrorNoticeTTL   = 5 * time.Second
	DefaultSuccessNoticeTTL = 3 * time.Second
)

// NoticeKind distinguishes error banners from success banners
type NoticeKind string

const (
	NoticeError   NoticeKind = "error"
	NoticeSuccess NoticeKind = "success"
)

// Notice is a transient banner shown to the user
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Notices holds at most one visible banner and dismisses it after its TTL.
// Showing a new banner replaces the old one and its pending dismissal.
type Notices struct {
	mu        sync.Mutex
	scheduler Scheduler
	current   *Notice
	dismiss   Task
	seq       uint64
	closed    bool
	onChange  func(n Notice, visible bool)
}

// NewNotices creates a banner holder. onChange, if set, is called whenever a
// banner appears or is dismissed.
func NewNotices(scheduler Scheduler, onChange func(n Notice, visible bool)) *Notices {
	if scheduler == nil {
		scheduler = SystemScheduler()
	}
	return &Notices{scheduler: scheduler, onChange: onChange}
}

// Show displays n for ttl. It does nothing once the holder is closed.
func (b *Notices) Show(n Notice, ttl time.Duration) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	if b.dismiss != nil {
		b.dismiss.Cancel()
	}
	b.seq++
	seq := b.seq
	b.current = &n
	b.dismiss = b.scheduler.After(ttl, func() { b.expire(seq) })
	b.mu.Unlock()

	if b.onChange != nil {
		b.onChange(n, true)
	}
}

// Current returns the visible banner, if any
func (b *Notices) Current() (Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Notice{}, false
	}
	return *b.current, true
}

// Dismiss hides the visible banner immediately
func (b *Notices) Dismiss() {
	b.mu.Lock()
	b.seq++
	b.hideLocked()
}

// Close dismisses the visible banner and ignores later calls to Show
func (b *Notices) Close() {
	b.mu.Lock()
	b.closed = true
	b.seq++
	b.hideLocked()
}

func (b *Notices) expire(seq uint64) {
	b.mu.Lock()
	if seq != b.seq {
		b.mu.Unlock()
		return
	}
	b.hideLocked()
}

// hideLocked clears the banner and releases b.mu
func (b *Notices) hideLocked() {
	if b.dismiss != nil {
		b.dismiss.Cancel()
		b.dismiss = nil
	}
	n := b.current
	b.current = nil
	b.mu.Unlock()

	if n != nil && b.onChange != nil {
		b.onChange(*n, false)
	}
}
