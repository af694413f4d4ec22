// Package server exposes the search engine and record store over a small
// REST API: start a search, stop the in-flight searches, list persisted
// results.
package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vanityaddr/btcvanity/internal/config"
	"github.com/vanityaddr/btcvanity/internal/log"
	"github.com/vanityaddr/btcvanity/internal/store"
	"github.com/vanityaddr/btcvanity/pkg/vanity"
)

// Server wires the search engine, the record store, and the HTTP routes.
// Every generate request runs its own searcher and cancellation token;
// the server only tracks the active tokens so a stop request can reach
// all in-flight searches.
type Server struct {
	cfg *config.Config
	db  *store.Store

	mu     sync.Mutex
	active map[*vanity.Token]struct{}
}

// New creates a server on top of an opened record store.
func New(cfg *config.Config, db *store.Store) *Server {
	return &Server{
		cfg:    cfg,
		db:     db,
		active: make(map[*vanity.Token]struct{}),
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/vanity/generate", s.generateHandler).Methods("POST")
	r.HandleFunc("/vanity/stop", s.stopHandler).Methods("POST")
	r.HandleFunc("/vanity/addresses", s.listHandler).Methods("GET")
	return r
}

// ListenAndServe starts the API server and blocks.
func (s *Server) ListenAndServe() error {
	allowedOrigins := s.cfg.Server.AllowedOrigins

	corsOptions := []handlers.CORSOption{
		handlers.AllowedMethods([]string{"GET", "POST"}),
	}
	if len(allowedOrigins) != 0 {
		corsOptions = append(corsOptions,
			handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type"}),
			handlers.AllowedOrigins(allowedOrigins),
		)
	}

	log.Info("REST API service listen and serving", "port", s.cfg.Server.APIPort, "allowedOrigins", allowedOrigins)
	svr := http.Server{
		Addr:        fmt.Sprintf(":%v", s.cfg.Server.APIPort),
		ReadTimeout: 60 * time.Second,
		// No write timeout: generate requests run the search synchronously
		// and may legitimately take minutes on long patterns.
		Handler: handlers.CORS(corsOptions...)(s.Router()),
	}
	return svr.ListenAndServe()
}

// track registers an in-flight search token.
func (s *Server) track(token *vanity.Token) {
	s.mu.Lock()
	s.active[token] = struct{}{}
	s.mu.Unlock()
}

// untrack removes a finished search token.
func (s *Server) untrack(token *vanity.Token) {
	s.mu.Lock()
	delete(s.active, token)
	s.mu.Unlock()
}

// stopAll stops every in-flight search. Idempotent.
func (s *Server) stopAll() {
	s.mu.Lock()
	for token := range s.active {
		token.Stop()
	}
	s.mu.Unlock()
}
