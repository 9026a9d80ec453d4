package webview

import (
	"context"
	"log/slog"
	"sync"

	"github.com/trebuchet-org/scide/internal/domain/config"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// Factory creates browser panels on the configured bridge address
type Factory struct {
	addr string
	log  *slog.Logger

	mu     sync.Mutex
	panels []*Panel
	done   chan struct{}
	once   sync.Once
}

// NewFactory creates a new panel factory
func NewFactory(cfg *config.RuntimeConfig, log *slog.Logger) *Factory {
	return &Factory{
		addr: cfg.Bridge.Addr,
		log:  log,
		done: make(chan struct{}),
	}
}

// Create starts a new panel server
func (f *Factory) Create(ctx context.Context) (usecase.Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	panel, err := NewPanel(f.addr, f.log)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.panels = append(f.panels, panel)
	f.mu.Unlock()
	return panel, nil
}

// Done is closed once the factory is closed; browser tabs closing do not end
// the panel.
func (f *Factory) Done() <-chan struct{} {
	return f.done
}

// Close disposes every panel created by this factory
func (f *Factory) Close(ctx context.Context) error {
	f.once.Do(func() { close(f.done) })

	f.mu.Lock()
	panels := f.panels
	f.panels = nil
	f.mu.Unlock()

	var firstErr error
	for _, panel := range panels {
		if err := panel.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Ensure Factory implements the factory interface
var _ usecase.SurfaceFactory = (*Factory)(nil)
