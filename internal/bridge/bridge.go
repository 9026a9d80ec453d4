// Package bridge connects a rendering surface to the contract use cases and
// relays debugger lifecycle events to it.
package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/metrics"
	"github.com/trebuchet-org/scide/internal/usecase"
)

// State of the bridge
type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// Bridge owns at most one surface at a time. Messages posted while no surface
// is open are dropped.
type Bridge struct {
	factory  usecase.SurfaceFactory
	bus      usecase.EventSubscriber
	sync     *usecase.SyncContracts
	build    *usecase.BuildContract
	deploy   *usecase.DeployContract
	run      *usecase.RunContract
	debugger *usecase.ManageDebugger
	log      *slog.Logger

	mu          sync.Mutex
	ctx         context.Context
	surface     usecase.Surface
	subscribed  bool
	unsubscribe []func()
}

// NewBridge creates a closed bridge
func NewBridge(
	factory usecase.SurfaceFactory,
	bus usecase.EventSubscriber,
	syncContracts *usecase.SyncContracts,
	buildContract *usecase.BuildContract,
	deployContract *usecase.DeployContract,
	runContract *usecase.RunContract,
	manageDebugger *usecase.ManageDebugger,
	log *slog.Logger,
) *Bridge {
	return &Bridge{
		factory:  factory,
		bus:      bus,
		sync:     syncContracts,
		build:    buildContract,
		deploy:   deployContract,
		run:      runContract,
		debugger: manageDebugger,
		log:      log.With("component", "Bridge"),
	}
}

// State reports whether a surface is open
func (b *Bridge) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.surface != nil {
		return StateOpen
	}
	return StateClosed
}

// Show opens a surface when none is open, then reveals it. Commands of the
// surface are handled with ctx.
func (b *Bridge) Show(ctx context.Context) error {
	b.mu.Lock()
	if b.surface != nil {
		surface := b.surface
		b.mu.Unlock()
		surface.Reveal()
		return nil
	}
	b.mu.Unlock()

	surface, err := b.factory.Create(ctx)
	if err != nil {
		return fmt.Errorf("failed to create surface: %w", err)
	}

	b.mu.Lock()
	if b.surface != nil {
		// Lost a race with another Show; keep the surface already open
		current := b.surface
		b.mu.Unlock()
		current.Reveal()
		return nil
	}
	b.ctx = ctx
	b.surface = surface
	subscribe := !b.subscribed
	b.subscribed = true
	b.mu.Unlock()

	if subscribe {
		b.subscribeDebugger()
	}

	surface.OnCommand(b.handleCommand)
	surface.OnDispose(func() { b.disposed(surface) })

	b.log.Debug("surface opened")
	surface.Reveal()
	return nil
}

// Close drops the surface and the bus subscriptions. A later Show starts over
// and subscribes again.
func (b *Bridge) Close() {
	b.mu.Lock()
	unsubscribe := b.unsubscribe
	b.unsubscribe = nil
	b.subscribed = false
	b.surface = nil
	b.mu.Unlock()

	for _, fn := range unsubscribe {
		fn()
	}
}

// subscribeDebugger relays every debugger topic to the surface
func (b *Bridge) subscribeDebugger() {
	unsubscribe := make([]func(), 0, len(domain.DebuggerTopics))
	for _, topic := range domain.DebuggerTopics {
		what := string(topic)
		unsubscribe = append(unsubscribe, b.bus.Subscribe(topic, func(payload any) {
			b.Post(domain.Message{What: what, Data: payload})
		}))
	}

	b.mu.Lock()
	b.unsubscribe = append(b.unsubscribe, unsubscribe...)
	b.mu.Unlock()
}

func (b *Bridge) disposed(surface usecase.Surface) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.surface == surface {
		b.surface = nil
		b.log.Debug("surface disposed")
	}
}

// Post delivers message to the open surface. Without one the message is dropped.
func (b *Bridge) Post(message domain.Message) {
	b.mu.Lock()
	surface := b.surface
	b.mu.Unlock()

	if surface == nil {
		metrics.BridgeDroppedMessages.Inc()
		return
	}

	if err := surface.Post(message); err != nil {
		b.log.Warn("failed to post message", "what", message.What, "error", err)
		return
	}
	metrics.BridgeMessages.WithLabelValues(message.What).Inc()
}

func (b *Bridge) handleCommand(command domain.Command) {
	b.mu.Lock()
	ctx := b.ctx
	b.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}
	b.HandleCommand(ctx, command)
}

// HandleCommand runs one surface command. Unknown commands are ignored.
func (b *Bridge) HandleCommand(ctx context.Context, command domain.Command) {
	switch command.Command {
	case domain.CommandStartDebugServer:
		if _, err := b.debugger.Start(ctx); err != nil {
			b.postError(err)
		}
	case domain.CommandStopDebugServer:
		if _, err := b.debugger.Stop(ctx, nil); err != nil {
			b.postError(err)
		}
	case domain.CommandRefreshSmartContracts:
		b.refresh(ctx)
	case domain.CommandBuildSmartContract:
		if _, err := b.build.Run(ctx, command.ID); err != nil {
			b.postError(err)
		}
		b.refresh(ctx)
	case domain.CommandDeploySmartContract:
		params := usecase.DeployContractParams{ID: command.ID, Sender: command.Sender}
		if _, err := b.deploy.Run(ctx, params); err != nil {
			b.postError(err)
		}
		b.refresh(ctx)
	case domain.CommandRunSmartContract:
		var options domain.RunOptions
		if command.Options != nil {
			options = *command.Options
		}
		if _, err := b.run.Run(ctx, usecase.RunContractParams{ID: command.ID, Options: options}); err != nil {
			b.postError(err)
		}
		b.refresh(ctx)
	default:
		b.log.Debug("ignoring unknown command", "command", command.Command)
		return
	}
	metrics.BridgeCommands.WithLabelValues(command.Command).Inc()
}

// refresh reconciles the registry and posts the snapshot
func (b *Bridge) refresh(ctx context.Context) {
	result, err := b.sync.Run(ctx)
	if err != nil {
		b.postError(err)
		return
	}
	b.Post(domain.Message{What: domain.MessageRefreshSmartContracts, Data: result.Contracts})
}

func (b *Bridge) postError(err error) {
	b.log.Warn("command failed", "error", err)
	b.Post(domain.Message{What: string(domain.TopicDebuggerError), Data: err.Error()})
}
