// Package server exposes the aggregated dashboard data over HTTP for
// the admin and partner front-ends. The aggregate is recomputed on a
// timer; requests only ever read the latest snapshot, so a slow or
// failing backend never blocks a dashboard load.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/caredash/impactboard/internal/utils"
	"github.com/caredash/impactboard/pkg/aggregate"
	"github.com/caredash/impactboard/pkg/client"
	"github.com/caredash/impactboard/pkg/identity"
	"github.com/caredash/impactboard/pkg/session"
)

type Config struct {
	Client       *client.Client
	Engine       *aggregate.Engine
	Session      session.Reader
	Username     string
	Password     string
	PollInterval time.Duration
}

type Server struct {
	cfg   Config
	actor string

	mu          sync.RWMutex
	latest      aggregate.Result
	refreshedAt time.Time
}

func New(cfg Config) *Server {
	s := &Server{cfg: cfg}
	// Actor identity is session-scoped, not per-request: the partner
	// dashboard serves whoever this deployment is configured as.
	s.actor = identity.ResolveActor(cfg.Session)
	return s
}

func (s *Server) Start(addr string) error {
	s.refresh(context.Background())

	if s.cfg.PollInterval > 0 {
		go s.pollLoop()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/dashboard", s.basicAuth(s.handleDashboard))
	mux.HandleFunc("GET /api/partner/dashboard", s.basicAuth(s.handlePartnerDashboard))
	mux.HandleFunc("GET /api/healthz", s.handleHealth)

	utils.Log.Infof("Starting server on %s", addr)
	return http.ListenAndServe(addr, mux)
}

// pollLoop refreshes the snapshot on a fixed interval. The loop is the
// only writer, so the newest computation always wins.
func (s *Server) pollLoop() {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()
	for range ticker.C {
		s.refresh(context.Background())
	}
}

func (s *Server) refresh(ctx context.Context) {
	programs, donations := s.cfg.Client.FetchAll(ctx)
	res := s.cfg.Engine.Aggregate(programs, donations, s.actor)

	s.mu.Lock()
	s.latest = res
	s.refreshedAt = time.Now().UTC()
	s.mu.Unlock()

	utils.Log.Debugf("Refreshed aggregate: %d programs, %d donations", res.TotalPrograms, res.TotalDonations)
}

func (s *Server) snapshot() (aggregate.Result, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.refreshedAt
}

func (s *Server) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Username == "" && s.cfg.Password == "" {
			next(w, r)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != s.cfg.Username || pass != s.cfg.Password {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}
