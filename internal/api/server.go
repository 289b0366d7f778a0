// Package api serves a running season over HTTP/JSON.
package api

import (
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	corslib "github.com/rs/cors"

	"github.com/utakatalp/season-manager/internal/game"
)

// Options configures the HTTP host.
type Options struct {
	Logger          *slog.Logger
	AllowedOrigins  []string
	RateLimit       int
	RateWindow      time.Duration
	DefaultSaveSlot string
	ForecastMaxRuns int
	ForecastDefRuns int
}

// Server exposes one Manager. Calls into the manager are serialized.
type Server struct {
	mu      sync.Mutex
	mgr     *game.Manager
	logger  *slog.Logger
	slot    string
	maxRuns int
	defRuns int
	handler http.Handler
}

// New builds the server and its routes.
func New(mgr *game.Manager, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		mgr:     mgr,
		logger:  logger,
		slot:    opts.DefaultSaveSlot,
		maxRuns: opts.ForecastMaxRuns,
		defRuns: opts.ForecastDefRuns,
	}
	if s.slot == "" {
		s.slot = game.AutosaveSlot
	}
	if s.maxRuns <= 0 {
		s.maxRuns = 10000
	}
	if s.defRuns <= 0 {
		s.defRuns = 1000
	}

	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods("GET")

	// Routes sit on the root router with full paths: a subrouter answers a
	// method mismatch with 404 instead of 405.
	const v1 = "/api/v1"
	r.HandleFunc(v1+"/season", s.getSeason).Methods("GET")
	r.HandleFunc(v1+"/standings", s.getStandings).Methods("GET")
	r.HandleFunc(v1+"/clubs/{id}", s.getClub).Methods("GET")
	r.HandleFunc(v1+"/clubs/{id}/roster", s.getRoster).Methods("GET")
	r.HandleFunc(v1+"/clubs/{id}/lineup", s.getLineup).Methods("GET")
	r.HandleFunc(v1+"/clubs/{id}/finances", s.getFinances).Methods("GET")
	r.HandleFunc(v1+"/clubs/{id}/fixtures", s.getFixtures).Methods("GET")
	r.HandleFunc(v1+"/players/{id}", s.getPlayer).Methods("GET")
	r.HandleFunc(v1+"/matchdays/{n:[0-9]+}", s.getMatchday).Methods("GET")
	r.HandleFunc(v1+"/market", s.getMarket).Methods("GET")
	r.HandleFunc(v1+"/forecast", s.getForecast).Methods("GET")
	r.HandleFunc(v1+"/training/types", s.getTrainingTypes).Methods("GET")

	r.HandleFunc(v1+"/advance", s.postAdvance).Methods("POST")
	r.HandleFunc(v1+"/formation", s.postFormation).Methods("POST")
	r.HandleFunc(v1+"/lineup/auto", s.postAutoLineup).Methods("POST")
	r.HandleFunc(v1+"/lineup/slots/{slot:[0-9]+}", s.putLineupSlot).Methods("PUT")
	r.HandleFunc(v1+"/lineup/slots/{slot:[0-9]+}", s.deleteLineupSlot).Methods("DELETE")
	r.HandleFunc(v1+"/training", s.postTraining).Methods("POST")
	r.HandleFunc(v1+"/transfers/buy", s.postBuy).Methods("POST")
	r.HandleFunc(v1+"/transfers/sell", s.postSell).Methods("POST")
	r.HandleFunc(v1+"/stadium/upgrades", s.postUpgrade).Methods("POST")
	r.HandleFunc(v1+"/stadium/ticket-price", s.postTicketPrice).Methods("POST")
	r.HandleFunc(v1+"/substitutions", s.postSubstitutions).Methods("POST")
	r.HandleFunc(v1+"/save", s.postSave).Methods("POST")

	var h http.Handler = r
	h = requestLogger(logger)(h)
	if opts.RateLimit > 0 && opts.RateWindow > 0 {
		h = rateLimit(opts.RateLimit, opts.RateWindow)(h)
	}
	c := corslib.New(corslib.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	})
	s.handler = c.Handler(h)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
