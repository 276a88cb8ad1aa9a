// Package api implements the optional HTTP verification service: a single
// POST /verify endpoint wrapping the same loader+verify pipeline the CLI
// drives directly. Grounded on vocdoni-davinci-node/api/api.go's chi+cors
// router construction and middleware stack.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nickboucher/electionguard-verify/config"
	"github.com/nickboucher/electionguard-verify/internal/reportstore"
	"github.com/nickboucher/electionguard-verify/internal/resultcache"
	"github.com/nickboucher/electionguard-verify/log"
)

// API is the HTTP verification service.
type API struct {
	router   *chi.Mux
	cfg      *config.Config
	cache    *resultcache.Cache
	store    *reportstore.Store
	cacheDir string
}

// New constructs an API bound to cfg.API.Host:cfg.API.Port. cache and store
// may each be nil, in which case verify requests run without caching or
// report persistence respectively.
func New(cfg *config.Config, cache *resultcache.Cache, store *reportstore.Store) *API {
	a := &API{cfg: cfg, cache: cache, store: store, cacheDir: cfg.Cache.Dir}
	a.initRouter()
	return a
}

// Router returns the chi router, for use in tests.
func (a *API) Router() *chi.Mux {
	return a.router
}

// ListenAndServe blocks serving HTTP on cfg.API.Host:cfg.API.Port.
func (a *API) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", a.cfg.API.Host, a.cfg.API.Port)
	log.Infow("starting verification HTTP service", "addr", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *API) initRouter() {
	a.router = chi.NewRouter()
	a.router.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Timeout(5 * time.Minute))

	a.router.Get(PingEndpoint, func(w http.ResponseWriter, r *http.Request) {
		httpWriteOK(w)
	})
	a.router.Post(VerifyEndpoint, a.postVerify)
}
