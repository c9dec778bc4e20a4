package inspect

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SubscriberHeader carries the subscriber id in the WebSocket handshake
// response.
const SubscriberHeader = "X-Proton-Subscriber"

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type routerConfig struct {
	gatherer  prometheus.Gatherer
	statsFunc func() any
	logger    *slog.Logger
}

// RouterOption configures NewRouter.
type RouterOption func(*routerConfig)

// WithGatherer sets the Prometheus gatherer served on /metrics.
// Default: prometheus.DefaultGatherer
func WithGatherer(g prometheus.Gatherer) RouterOption {
	return func(c *routerConfig) {
		c.gatherer = g
	}
}

// WithStatsFunc replaces the payload served on /stats.
// Default: hub.Stats
func WithStatsFunc(fn func() any) RouterOption {
	return func(c *routerConfig) {
		c.statsFunc = fn
	}
}

// WithRouterLogger sets the logger for connection records.
func WithRouterLogger(logger *slog.Logger) RouterOption {
	return func(c *routerConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewRouter returns an http.Handler exposing hub.
func NewRouter(hub *Hub, opts ...RouterOption) http.Handler {
	config := routerConfig{
		gatherer:  prometheus.DefaultGatherer,
		statsFunc: func() any { return hub.Stats() },
		logger:    hub.logger,
	}
	for _, opt := range opts {
		opt(&config)
	}

	s := &streamer{
		hub:    hub,
		logger: config.logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local tooling
			},
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(config.statsFunc()); err != nil {
			config.logger.Warn("stats encode failed", "error", err)
		}
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(config.gatherer, promhttp.HandlerOpts{}))
	r.Get("/events", s.serveEvents)

	return r
}

// streamer forwards hub events to WebSocket clients.
type streamer struct {
	hub      *Hub
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func (s *streamer) serveEvents(w http.ResponseWriter, r *http.Request) {
	sub := s.hub.Subscribe()

	header := http.Header{}
	header.Set(SubscriberHeader, sub.ID)
	conn, err := s.upgrader.Upgrade(w, r, header)
	if err != nil {
		sub.Close()
		s.logger.Warn("websocket upgrade failed",
			"subscriber", sub.ID,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err)
		return
	}
	defer conn.Close()
	defer sub.Close()

	s.logger.Debug("event stream opened",
		"subscriber", sub.ID,
		"remote", r.RemoteAddr,
		"request_id", middleware.GetReqID(r.Context()))

	done := make(chan struct{})
	go s.readPump(conn, done)
	s.writePump(conn, sub, done)

	s.logger.Debug("event stream closed", "subscriber", sub.ID)
}

// readPump discards client messages and closes done when the client goes
// away.
func (s *streamer) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *streamer) writePump(conn *websocket.Conn, sub *Subscription, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return

		case ev, ok := <-sub.C():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				s.logger.Debug("event write failed", "subscriber", sub.ID, "error", err)
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
