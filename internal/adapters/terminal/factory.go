package terminal

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/trebuchet-org/scide/internal/usecase"
)

// Factory creates terminal panels bound to the process terminal
type Factory struct {
	in  io.Reader
	out io.Writer
	log *slog.Logger

	mu     sync.Mutex
	panels []*Panel
	done   chan struct{}
	once   sync.Once
}

// NewFactory creates a factory for stdin/stdout panels
func NewFactory(log *slog.Logger) *Factory {
	return &Factory{
		in:   os.Stdin,
		out:  os.Stdout,
		log:  log,
		done: make(chan struct{}),
	}
}

// Create starts a new terminal panel
func (f *Factory) Create(ctx context.Context) (usecase.Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	panel := NewPanel(ctx, f.in, f.out, f.log)

	f.mu.Lock()
	f.panels = append(f.panels, panel)
	f.mu.Unlock()

	go func() {
		<-panel.Done()
		f.once.Do(func() { close(f.done) })
	}()

	return panel, nil
}

// Done is closed when the user quits a panel
func (f *Factory) Done() <-chan struct{} {
	return f.done
}

// Close quits every panel and waits for the terminal to be restored
func (f *Factory) Close(ctx context.Context) error {
	f.mu.Lock()
	panels := f.panels
	f.panels = nil
	f.mu.Unlock()

	for _, panel := range panels {
		panel.Close()
	}
	return nil
}

// Ensure Factory implements the factory interface
var _ usecase.SurfaceFactory = (*Factory)(nil)
