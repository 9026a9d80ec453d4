// Package webview serves the bridge panel to a browser over HTTP and relays
// its messages through websockets.
package webview

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/trebuchet-org/scide/internal/domain"
	"github.com/trebuchet-org/scide/internal/usecase"
)

//go:embed assets/mainView.html
var mainView string

const (
	baseHrefPlaceholder = "{{baseHref}}"
	writeTimeout        = 10 * time.Second
)

// ErrPanelClosed is returned when posting to a disposed panel
var ErrPanelClosed = errors.New("panel is closed")

// Panel is a rendering surface backed by an HTTP server. Every connected
// browser tab receives every posted message.
type Panel struct {
	httpServer *http.Server
	listener   net.Listener
	upgrader   websocket.Upgrader
	page       string
	log        *slog.Logger

	mu        sync.Mutex
	clients   map[*client]struct{}
	onCommand []func(domain.Command)
	onDispose []func()
	closed    bool
}

// client serializes writes to one websocket connection
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// NewPanel binds addr and starts serving the panel page, its websocket
// endpoint and the metrics endpoint.
func NewPanel(addr string, log *slog.Logger) (*Panel, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	p := &Panel{
		listener: listener,
		log:      log.With("component", "WebviewPanel"),
		clients:  make(map[*client]struct{}),
	}
	p.upgrader = websocket.Upgrader{
		// Only pages served by this panel may connect
		CheckOrigin: p.checkOrigin,
	}
	p.page = strings.ReplaceAll(mainView, baseHrefPlaceholder, p.BaseHref())

	mux := http.NewServeMux()
	mux.HandleFunc("/", p.handleIndex)
	mux.HandleFunc("/ws", p.handleWebsocket)
	mux.HandleFunc("/health", p.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	p.httpServer = &http.Server{
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		if err := p.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.log.Error("panel server error", "error", err)
		}
	}()

	p.log.Debug("panel server started", "addr", listener.Addr().String())
	return p, nil
}

// BaseHref is the URL the panel page is served from
func (p *Panel) BaseHref() string {
	return fmt.Sprintf("http://%s/", p.listener.Addr().String())
}

// Post sends message to every connected tab. Connections that fail to
// receive it are dropped.
func (p *Panel) Post(message domain.Message) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to encode %s message: %w", message.What, err)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPanelClosed
	}
	clients := make([]*client, 0, len(p.clients))
	for c := range p.clients {
		clients = append(clients, c)
	}
	p.mu.Unlock()

	for _, c := range clients {
		if err := c.write(data); err != nil {
			p.log.Debug("dropping panel connection", "error", err)
			p.removeClient(c)
		}
	}
	return nil
}

// Reveal announces where the panel can be opened
func (p *Panel) Reveal() {
	p.log.Info("smart contracts panel available", "url", p.BaseHref())
}

// OnCommand registers a handler for commands sent by the page
func (p *Panel) OnCommand(handler func(command domain.Command)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onCommand = append(p.onCommand, handler)
}

// OnDispose registers a handler called once when the panel closes
func (p *Panel) OnDispose(handler func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onDispose = append(p.onDispose, handler)
}

// Close shuts the server down, drops every connection and fires the dispose
// handlers. Closing twice does nothing.
func (p *Panel) Close(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	clients := p.clients
	p.clients = make(map[*client]struct{})
	handlers := p.onDispose
	p.mu.Unlock()

	err := p.httpServer.Shutdown(ctx)
	for c := range clients {
		_ = c.conn.Close()
	}
	for _, handler := range handlers {
		handler()
	}
	return err
}

func (p *Panel) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(p.page))
}

// Connections returns the number of connected tabs
func (p *Panel) Connections() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.clients)
}

func (p *Panel) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"connections": p.Connections(),
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(health)
}

func (p *Panel) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := p.upgrader.Upgrade(w, r, nil)
	if err != nil {
		p.log.Debug("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		_ = conn.Close()
		return
	}
	p.clients[c] = struct{}{}
	p.mu.Unlock()

	defer p.removeClient(c)
	p.readCommands(c)
}

// readCommands dispatches every command of one connection in arrival order
func (p *Panel) readCommands(c *client) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.log.Debug("panel connection closed", "error", err)
			}
			return
		}

		var command domain.Command
		if err := json.Unmarshal(data, &command); err != nil {
			p.log.Warn("ignoring malformed panel command", "error", err)
			continue
		}

		p.mu.Lock()
		handlers := append([]func(domain.Command){}, p.onCommand...)
		p.mu.Unlock()

		for _, handler := range handlers {
			handler(command)
		}
	}
}

func (p *Panel) removeClient(c *client) {
	p.mu.Lock()
	_, ok := p.clients[c]
	delete(p.clients, c)
	p.mu.Unlock()
	if ok {
		_ = c.conn.Close()
	}
}

func (p *Panel) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return strings.EqualFold(originHost(origin), r.Host)
}

func originHost(origin string) string {
	if i := strings.Index(origin, "://"); i >= 0 {
		origin = origin[i+3:]
	}
	return strings.TrimSuffix(origin, "/")
}

// Ensure Panel implements the surface interface
var _ usecase.Surface = (*Panel)(nil)
