// Package server provides the HTTP API for the pantry service.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/b4ubuy/pantry/internal/cart"
	"github.com/b4ubuy/pantry/internal/config"
	"github.com/b4ubuy/pantry/internal/insights"
	"github.com/b4ubuy/pantry/internal/products"
	"github.com/b4ubuy/pantry/internal/suggest"
)

// Server is the HTTP server for the pantry API.
type Server struct {
	suggest  *suggest.Service
	products *products.Store
	index    *products.Index
	cart     *cart.Store
	insights *insights.Client
	persona  string
	config   *config.ServerConfig
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies. The insights client
// may be nil; cart analysis then responds 501.
func NewServer(
	svc *suggest.Service,
	ps *products.Store,
	index *products.Index,
	cs *cart.Store,
	ic *insights.Client,
	persona string,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		suggest:  svc,
		products: ps,
		index:    index,
		cart:     cs,
		insights: ic,
		persona:  persona,
		config:   cfg,
		logger:   logger,
	}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/suggest", s.handleSuggest)
	r.Get("/api/v1/autocomplete", s.handleAutocomplete)
	r.Get("/api/v1/products", s.handleListProducts)
	r.Get("/api/v1/products/search", s.handleSearchProducts)
	r.Get("/api/v1/cart", s.handleCartItems)
	r.Post("/api/v1/cart/items/{id}", s.handleCartIncrement)
	r.Delete("/api/v1/cart/items/{id}", s.handleCartDecrement)
	r.Post("/api/v1/cart/ingredients", s.handleCartAddIngredients)
	r.Post("/api/v1/cart/lock", s.handleCartLock)
	r.Get("/api/v1/lists", s.handleLists)
	r.Get("/api/v1/lists/{id}", s.handleGetList)
	r.Post("/api/v1/lists/{id}/items/{productID}/check", s.handleCheckListItem)
	r.Post("/api/v1/cart/analyze", s.handleAnalyzeCart)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
