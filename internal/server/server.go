package server

import (
	"net/http"

	"fakestore/storefront/internal/cart"
	"fakestore/storefront/internal/config"
	"fakestore/storefront/internal/ledger"
	"fakestore/storefront/internal/listing"
	"fakestore/storefront/internal/store"

	"github.com/gin-gonic/gin"
)

// Server is the HTTP delivery for the storefront core. Every response is the
// discriminated payload {"res": ...} or {"error": "..."} — never both.
type Server struct {
	cfg    config.ServerConfig
	router *gin.Engine

	brands     *store.BrandStore
	categories *store.CategoryStore
	listing    *listing.Engine
	ledger     *ledger.Ledger
	cart       *cart.Store
}

func New(
	cfg config.ServerConfig,
	brands *store.BrandStore,
	categories *store.CategoryStore,
	listingEngine *listing.Engine,
	visitLedger *ledger.Ledger,
	cartStore *cart.Store,
) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		cfg:        cfg,
		router:     router,
		brands:     brands,
		categories: categories,
		listing:    listingEngine,
		ledger:     visitLedger,
		cart:       cartStore,
	}
	s.registerRoutes()

	return s
}

// Handler exposes the router for an http.Server or a test client.
func (s *Server) Handler() http.Handler {
	return s.router
}
