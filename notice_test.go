package intakekit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type noticeEvent struct {
	notice  Notice
	visible bool
}

func TestNoticesAutoDismiss(t *testing.T) {
	sched := NewManualScheduler()
	var events []noticeEvent
	n := NewNotices(sched, func(notice Notice, visible bool) {
		events = append(events, noticeEvent{notice, visible})
	})

	oops := Notice{Kind: NoticeError, Message: "Image too large"}
	n.Show(oops, 5*time.Second)

	sched.Advance(4 * time.Second)
	got, ok := n.Current()
	assert.True(t, ok)
	assert.Equal(t, oops, got)

	sched.Advance(time.Second)
	_, ok = n.Current()
	assert.False(t, ok)
	assert.Equal(t, []noticeEvent{{oops, true}, {oops, false}}, events)
}

func TestNoticesReplaceCancelsOldDismissal(t *testing.T) {
	sched := NewManualScheduler()
	n := NewNotices(sched, nil)

	n.Show(Notice{Kind: NoticeError, Message: "first"}, 5*time.Second)
	sched.Advance(4 * time.Second)
	n.Show(Notice{Kind: NoticeSuccess, Message: "second"}, 3*time.Second)

	// the first banner's dismissal would have fired here
	sched.Advance(2 * time.Second)
	got, ok := n.Current()
	assert.True(t, ok)
	assert.Equal(t, "second", got.Message)

	sched.Advance(time.Second)
	_, ok = n.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, sched.Pending())
}

func TestNoticesDismiss(t *testing.T) {
	sched := NewManualScheduler()
	hidden := 0
	n := NewNotices(sched, func(_ Notice, visible bool) {
		if !visible {
			hidden++
		}
	})

	n.Show(Notice{Kind: NoticeSuccess, Message: "done"}, time.Second)
	n.Dismiss()
	n.Dismiss()
	sched.Advance(time.Minute)

	_, ok := n.Current()
	assert.False(t, ok)
	assert.Equal(t, 1, hidden)
}

func TestManualSchedulerOrdering(t *testing.T) {
	sched := NewManualScheduler()
	var order []string

	sched.After(300*time.Millisecond, func() { order = append(order, "after-300") })
	every := sched.Every(100*time.Millisecond, func() { order = append(order, "every") })
	sched.After(100*time.Millisecond, func() { order = append(order, "after-100") })

	sched.Advance(300 * time.Millisecond)
	every.Cancel()
	sched.Advance(time.Second)

	assert.Equal(t, []string{"every", "after-100", "every", "after-300", "every"}, order)
	assert.Equal(t, 1300*time.Millisecond, sched.Now())
	assert.Equal(t, 0, sched.Pending())
}

func TestNoticesClose(t *testing.T) {
	sched := NewManualScheduler()
	shown := 0
	n := NewNotices(sched, func(_ Notice, visible bool) {
		if visible {
			shown++
		}
	})

	n.Show(Notice{Kind: NoticeError, Message: "first"}, time.Second)
	n.Close()
	n.Show(Notice{Kind: NoticeSuccess, Message: "late"}, time.Second)

	_, ok := n.Current()
	assert.False(t, ok)
	assert.Equal(t, 1, shown)
	assert.Equal(t, 0, sched.Pending())
}
