// Package terminal renders the bridge panel in the terminal with bubbletea.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// ErrPanelClosed is returned when posting to a panel whose program ended
var ErrPanelClosed = errors.New("terminal panel is closed")

// Panel is a rendering surface running a bubbletea program
type Panel struct {
	program *tea.Program
	log     *slog.Logger
	done    chan struct{}

	mu        sync.Mutex
	onCommand []func(domain.Command)
	onDispose []func()
	closed    bool
}

// NewPanel starts the program on in/out. The panel disposes itself when the
// program exits.
func NewPanel(ctx context.Context, in io.Reader, out io.Writer, log *slog.Logger) *Panel {
	p := &Panel{
		log:  log.With("component", "TerminalPanel"),
		done: make(chan struct{}),
	}
	model := newPanelModel(p.dispatch)
	p.program = tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)

	go func() {
		if _, err := p.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			p.log.Error("terminal panel failed", "error", err)
		}
		p.dispose()
	}()

	return p
}

// Post hands message to the program
func (p *Panel) Post(message domain.Message) error {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return fmt.Errorf("post %s: %w", message.What, ErrPanelClosed)
	}
	p.program.Send(postMsg{message: message})
	return nil
}

// Reveal is a no-op; the program owns the terminal while it runs
func (p *Panel) Reveal() {}

// OnCommand registers a handler for key-driven commands
func (p *Panel) OnCommand(handler func(command domain.Command)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onCommand = append(p.onCommand, handler)
}

// OnDispose registers a handler called once when the program exits
func (p *Panel) OnDispose(handler func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onDispose = append(p.onDispose, handler)
}

// Done is closed once the program has exited
func (p *Panel) Done() <-chan struct{} {
	return p.done
}

// Close stops the program and waits for it to exit
func (p *Panel) Close() {
	p.program.Quit()
	<-p.done
}

func (p *Panel) dispatch(command domain.Command) {
	p.mu.Lock()
	handlers := append([]func(domain.Command){}, p.onCommand...)
	p.mu.Unlock()

	for _, handler := range handlers {
		handler(command)
	}
}

func (p *Panel) dispose() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	handlers := p.onDispose
	p.mu.Unlock()

	for _, handler := range handlers {
		handler()
	}
	close(p.done)
}

// Ensure Panel implements the surface interface
var _ usecase.Surface = (*Panel)(nil)
