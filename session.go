package intakekit

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Hooks are the callbacks a view registers on a Session. Every field is
// optional. Hooks run without the session lock held and may call back into
// the session.
type Hooks struct {
	// OnSelected fires after a file is accepted. preview is nil for files
	// without an image preview.
	OnSelected func(file SelectedFile, preview *PreviewHandle)

	// OnRejected fires when validation turns a file away
	OnRejected func(file SelectedFile, outcome Outcome)

	// OnProgress fires for every simulated progress value
	OnProgress func(percent int)

	// OnComplete fires once per selection when progress reaches 100
	OnComplete func(file SelectedFile)

	// OnCleared fires when the selection is dropped by Clear or Close
	OnCleared func()

	// OnNotice fires when a banner appears (visible) or goes away
	OnNotice func(n Notice, visible bool)
}

// Session is a single intake widget: at most one selected file, one
// progress run and one preview handle at a time. Selecting a new file
// cancels the old run and releases the old preview before anything new is
// created; a rejected file leaves the current state untouched.
type Session struct {
	mu       sync.Mutex
	policy   Policy
	opts     *Options
	logger   zerolog.Logger
	progress *Progress
	notices  *Notices

	current   *SelectedFile
	preview   *PreviewHandle
	selection uint64
	completed bool
	closed    bool
}

// NewSession creates an intake session enforcing policy
func NewSession(policy Policy, opts ...Option) *Session {
	options := processOptions(opts...)
	s := &Session{
		policy:   policy,
		opts:     options,
		logger:   options.Logger.With().Str("component", "intake").Logger(),
		progress: NewProgress(options.Scheduler, options.ProgressInterval, options.ProgressStep),
	}
	s.notices = NewNotices(options.Scheduler, options.Hooks.OnNotice)
	return s
}

// NewSessionFromConfig creates a session from environment-style config.
// Explicit options override the config values.
func NewSessionFromConfig(cfg *Config, opts ...Option) (*Session, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	base := []Option{
		WithProgress(cfg.ProgressInterval(), cfg.ProgressStep),
		WithNoticeTTL(cfg.ErrorNoticeTTL(), cfg.SuccessNoticeTTL()),
		WithPreviews(NewPreviews(cfg.PreviewMaxBytes)),
	}
	return NewSession(cfg.Policy(), append(base, opts...)...), nil
}

// Select offers a file to the session. The returned Outcome reports whether
// it was accepted; the error is reserved for a closed session or a
// cancelled context.
func (s *Session) Select(ctx context.Context, file SelectedFile) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Outcome{}, &IntakeError{Op: "select", Name: file.Name, Err: ErrSessionClosed}
	}

	outcome := s.policy.Validate(file)
	if !outcome.IsAccepted() {
		s.mu.Unlock()

		s.logger.Warn().
			Str("file", file.Name).
			Int64("size", file.Size).
			Str("mime", file.MIMEType).
			Stringer("reason", outcome.Reason()).
			Msg("File rejected")

		if s.opts.Hooks.OnRejected != nil {
			s.opts.Hooks.OnRejected(file, outcome)
		}
		s.notices.Show(Notice{Kind: NoticeError, Message: s.policy.Message(outcome)}, s.opts.ErrorNoticeTTL)
		return outcome, nil
	}

	s.dropLocked()
	selection := s.selection
	s.current = &file
	s.mu.Unlock()

	// The old handle is gone; reading the new one happens without the lock.
	preview, _, err := s.opts.Previews.Acquire(file)
	if err != nil {
		// The file stays selected; the view falls back to metadata.
		s.logger.Warn().Err(err).Str("file", file.Name).Msg("Preview unavailable")
	}

	s.mu.Lock()
	if selection != s.selection || s.closed {
		s.mu.Unlock()
		if preview != nil {
			preview.Release()
		}
		s.logger.Debug().Str("file", file.Name).Msg("Selection superseded")
		return outcome, nil
	}
	s.preview = preview
	s.completed = false
	s.progress.Start(func(percent int) {
		s.onProgress(selection, percent)
	})
	s.mu.Unlock()

	s.logger.Info().
		Str("file", file.Name).
		Str("size", FormatSize(file.Size)).
		Str("mime", file.MIMEType).
		Bool("preview", preview != nil).
		Msg("File selected")

	if s.opts.Hooks.OnSelected != nil {
		s.opts.Hooks.OnSelected(file, preview)
	}
	return outcome, nil
}

// Clear drops the current selection, stopping progress and releasing the preview
func (s *Session) Clear() {
	s.mu.Lock()
	had := s.current != nil
	s.dropLocked()
	s.mu.Unlock()

	if had {
		s.cleared()
	}
}

// Close clears the session and rejects any further selection. Hooks that
// call back into the session from OnCleared see it already closed.
func (s *Session) Close() error {
	s.mu.Lock()
	had := s.current != nil
	s.closed = true
	s.dropLocked()
	s.mu.Unlock()

	if had {
		s.cleared()
	}
	s.notices.Close()
	return nil
}

func (s *Session) cleared() {
	s.logger.Debug().Msg("Selection cleared")
	if s.opts.Hooks.OnCleared != nil {
		s.opts.Hooks.OnCleared()
	}
}

// Current returns the selected file, if any
func (s *Session) Current() (SelectedFile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return SelectedFile{}, false
	}
	return *s.current, true
}

// Preview returns the live preview handle, or nil
func (s *Session) Preview() *PreviewHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// Progress returns the simulated progress percentage of the current selection
func (s *Session) Progress() int {
	return s.progress.Value()
}

// Uploading reports whether a progress run is in flight
func (s *Session) Uploading() bool {
	return s.progress.Running()
}

// Notice returns the visible banner, if any
func (s *Session) Notice() (Notice, bool) {
	return s.notices.Current()
}

// Policy returns the validation policy
func (s *Session) Policy() Policy {
	return s.policy
}

// dropLocked cancels progress, releases the preview and forgets the file.
// The preview is released before the caller acquires a replacement.
func (s *Session) dropLocked() {
	s.progress.Reset()
	if s.preview != nil {
		s.logger.Debug().Str("url", s.preview.URL()).Msg("Releasing preview")
		s.preview.Release()
		s.preview = nil
	}
	s.current = nil
	s.completed = false
	s.selection++
}

func (s *Session) onProgress(selection uint64, percent int) {
	s.mu.Lock()
	if selection != s.selection || s.current == nil {
		s.mu.Unlock()
		return
	}
	finished := percent >= 100 && !s.completed
	if finished {
		s.completed = true
	}
	file := *s.current
	s.mu.Unlock()

	if s.opts.Hooks.OnProgress != nil {
		s.opts.Hooks.OnProgress(percent)
	}
	if !finished {
		return
	}

	s.logger.Info().Str("file", file.Name).Msg("Upload complete")
	if s.opts.Hooks.OnComplete != nil {
		s.opts.Hooks.OnComplete(file)
	}
	s.notices.Show(Notice{Kind: NoticeSuccess, Message: fmt.Sprintf("%s uploaded successfully", file.Name)}, s.opts.SuccessNoticeTTL)
}
