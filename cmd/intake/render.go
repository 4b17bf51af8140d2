package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	intake "github.com/gobeaver/intakekit"
)

var (
	nameStyle    = lipgloss.NewStyle().Bold(true)
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#b8c6db"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff6b6b"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#51cf66"))
	previewStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#74c0fc"))
)

// printer renders session events to a terminal. Hooks arrive from timer
// goroutines, so writes are serialized.
type printer struct {
	mu  sync.Mutex
	out io.Writer
	bar progress.Model
}

func newPrinter(out io.Writer) *printer {
	return &printer{
		out: out,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// hooks wires the printer into a session. done, if set, receives each
// completed file.
func (p *printer) hooks(done chan<- intake.SelectedFile) intake.Hooks {
	return intake.Hooks{
		OnSelected: p.selected,
		OnRejected: p.rejected,
		OnProgress: p.progress,
		OnComplete: func(f intake.SelectedFile) {
			p.mu.Lock()
			fmt.Fprintln(p.out)
			p.mu.Unlock()
			if done != nil {
				done <- f
			}
		},
		OnNotice: p.notice,
	}
}

func (p *printer) describe(f intake.SelectedFile) string {
	return fmt.Sprintf("%s %s %s",
		intake.IconFor(f.MIMEType),
		nameStyle.Render(f.Name),
		metaStyle.Render(fmt.Sprintf("(%s, %s)", intake.FormatSize(f.Size), orUnknown(f.MIMEType))),
	)
}

func (p *printer) selected(f intake.SelectedFile, preview *intake.PreviewHandle) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.out, p.describe(f))
	if preview != nil {
		fmt.Fprintln(p.out, previewStyle.Render(fmt.Sprintf("  preview %s (xxh64 %s)", preview.URL(), preview.Digest())))
	} else {
		fmt.Fprintln(p.out, metaStyle.Render("  no preview, showing file details only"))
	}
}

func (p *printer) rejected(f intake.SelectedFile, o intake.Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "%s %s\n", p.describe(f), errorStyle.Render(o.String()))
}

func (p *printer) progress(percent int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "\r  %s", p.bar.ViewAs(float64(percent)/100))
}

func (p *printer) notice(n intake.Notice, visible bool) {
	if !visible {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	style := successStyle
	if n.Kind == intake.NoticeError {
		style = errorStyle
	}
	fmt.Fprintln(p.out, "  "+style.Render(n.Message))
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown type"
	}
	return s
}
