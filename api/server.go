package api

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/status-im/coin-ticker/board"
	"github.com/status-im/coin-ticker/cache"
	"github.com/status-im/coin-ticker/events"
	"github.com/status-im/coin-ticker/quotes"
)

// BoardReader is the read side of the board served over HTTP
type BoardReader interface {
	State() board.State
	Err() error
	Snapshot() *quotes.Snapshot
	Quote(id string) (quotes.AssetQuote, bool)
	Subscribe() events.ISubscription
}

// HealthChecker reports whether an upstream dependency has worked at least once
type HealthChecker interface {
	Healthy() bool
}

type Server struct {
	port      string
	board     BoardReader
	markets   HealthChecker
	responses cache.Cache
	server    *http.Server
	upgrader  websocket.Upgrader

	// cancels websocket feeds on Stop
	ctx    context.Context
	cancel context.CancelFunc
	wsWG   sync.WaitGroup
}

// New creates the HTTP server. responses caches rendered quote lists and may be nil.
func New(port string, boardReader BoardReader, markets HealthChecker, responses cache.Cache) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		port:      port,
		board:     boardReader,
		markets:   markets,
		responses: responses,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Handler returns the router with every endpoint registered
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/api/v1/quotes", s.handleQuotes).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/quotes/{id}", s.handleQuote).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/summary", s.handleSummary).Methods(http.MethodGet)
	router.HandleFunc("/ws", s.handleWebSocket)

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	log.Printf("Server starting at http://localhost:%s", s.port)
	log.Println("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return nil
}
