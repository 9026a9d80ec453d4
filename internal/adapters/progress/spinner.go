package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// Stage names emitted by the use cases that end a spinner
const (
	stageComplete = "complete"
	stageFailed   = "failed"
)

// SpinnerSink renders progress events as a spinner trail on a terminal
type SpinnerSink struct {
	mu      sync.Mutex
	out     io.Writer
	spinner *spinner.Spinner
	stages  []stageInfo
}

type stageInfo struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

// NewSpinnerSink creates a spinner sink writing to stderr
func NewSpinnerSink() *SpinnerSink {
	return newSpinnerSink(os.Stderr)
}

func newSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerSink{
		out:     out,
		spinner: s,
	}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.enterStage(event.Stage)

	switch {
	case event.Spinner:
		r.spinner.Suffix = " " + r.trail() + " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	case event.Stage == stageFailed:
		r.stopSpinner()
		color.New(color.FgRed).Fprintln(r.out, "✗ "+event.Message)
	default:
		r.stopSpinner()
		if event.Message != "" {
			color.New(color.FgGreen).Fprintln(r.out, "✓ "+event.Message)
		}
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.print(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.print(color.New(color.FgRed), message)
}

func (r *SpinnerSink) print(c *color.Color, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Stop spinner temporarily
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

func (r *SpinnerSink) stopSpinner() {
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// enterStage completes the running stage and records a new one
func (r *SpinnerSink) enterStage(name string) {
	if name == "" {
		return
	}
	now := time.Now()
	if n := len(r.stages); n > 0 && r.stages[n-1].Status == "running" {
		if r.stages[n-1].Name == name {
			return
		}
		r.stages[n-1].EndTime = now
		r.stages[n-1].Status = "completed"
		if name == stageFailed {
			r.stages[n-1].Status = stageFailed
		}
	}

	status := "running"
	if name == stageComplete || name == stageFailed {
		status = name
	}
	r.stages = append(r.stages, stageInfo{Name: name, StartTime: now, EndTime: now, Status: status})
}

// trail renders the stages seen so far, e.g. "✓ Scanning (12ms) → ● Building (2s)"
func (r *SpinnerSink) trail() string {
	parts := make([]string, 0, len(r.stages))
	for _, stage := range r.stages {
		var icon string
		var stageColor *color.Color

		switch stage.Status {
		case "completed", stageComplete:
			icon = "✓"
			stageColor = color.New(color.FgGreen)
		case "running":
			icon = "●"
			stageColor = color.New(color.FgYellow)
		case stageFailed:
			icon = "✗"
			stageColor = color.New(color.FgRed)
		default:
			icon = "○"
			stageColor = color.New(color.FgWhite)
		}

		duration := ""
		if stage.Status == "running" {
			duration = fmt.Sprintf(" (%s)", time.Since(stage.StartTime).Round(time.Second))
		} else if d := stage.EndTime.Sub(stage.StartTime); d > 0 {
			duration = fmt.Sprintf(" (%s)", d.Round(time.Millisecond))
		}

		parts = append(parts, fmt.Sprintf("%s %s%s", icon, stageColor.Sprint(stageTitle(stage.Name)), duration))
	}
	return strings.Join(parts, " → ")
}

func stageTitle(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
