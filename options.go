package intakekit

import (
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Session
type Option func(*Options)

// Options contains all possible options for a Session
type Options struct {
	// Scheduler drives progress ticks and banner dismissal
	Scheduler Scheduler

	// Previews is the registry preview handles are acquired from
	Previews *Previews

	// Logger receives structured session events
	Logger zerolog.Logger

	// Hooks are the view-layer callbacks
	Hooks Hooks

	// ProgressInterval and ProgressStep shape the simulated progress run
	ProgressInterval time.Duration
	ProgressStep     int

	// ErrorNoticeTTL and SuccessNoticeTTL control banner lifetimes
	ErrorNoticeTTL   time.Duration
	SuccessNoticeTTL time.Duration
}

// WithScheduler sets the scheduler
func WithScheduler(s Scheduler) Option {
	return func(o *Options) {
		o.Scheduler = s
	}
}

// WithPreviews sets the preview registry
func WithPreviews(r *Previews) Option {
	return func(o *Options) {
		o.Previews = r
	}
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithHooks sets the view-layer callbacks
func WithHooks(h Hooks) Option {
	return func(o *Options) {
		o.Hooks = h
	}
}

// WithProgress sets the progress cadence and step
func WithProgress(interval time.Duration, step int) Option {
	return func(o *Options) {
		o.ProgressInterval = interval
		o.ProgressStep = step
	}
}

// WithNoticeTTL sets how long error and success banners stay visible
func WithNoticeTTL(errorTTL, successTTL time.Duration) Option {
	return func(o *Options) {
		o.ErrorNoticeTTL = errorTTL
		o.SuccessNoticeTTL = successTTL
	}
}

func processOptions(opts ...Option) *Options {
	options := &Options{
		Logger:           zerolog.Nop(),
		ProgressInterval: DefaultProgressInterval,
		ProgressStep:     DefaultProgressStep,
		ErrorNoticeTTL:   DefaultErrorNoticeTTL,
		SuccessNoticeTTL: DefaultSuccessNoticeTTL,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.Scheduler == nil {
		options.Scheduler = SystemScheduler()
	}
	if options.Previews == nil {
		options.Previews = NewPreviews(0)
	}
	return options
}
