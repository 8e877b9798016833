// Package devserver is a local stand-in for the schedule service. It serves
// the grievance endpoints the console talks to from a GrievanceStore.
package devserver

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Veraticus/backoffice/internal/common"
	"github.com/Veraticus/backoffice/internal/grievance"
	"github.com/Veraticus/backoffice/internal/model"
	"github.com/Veraticus/backoffice/internal/schedule"
	"github.com/Veraticus/backoffice/internal/service"
)

// Server serves grievance endpoints backed by a store.
type Server struct {
	store service.GrievanceStore
	cert  *tls.Certificate
	token string
}

// Option configures a Server.
type Option func(*Server)

// WithToken requires a matching bearer token on grievance routes.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithTLS serves HTTPS with cert.
func WithTLS(cert tls.Certificate) Option {
	return func(s *Server) {
		s.cert = &cert
	}
}

// New creates a server for store.
func New(store service.GrievanceStore, opts ...Option) *Server {
	s := &Server{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the router with all endpoints mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.healthz)

	r.Route("/grievances/{userType}", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/pending", s.listPending)
		r.Post("/{id}/resolve", s.resolve)
	})
	return r
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	if s.cert != nil {
		srv.TLSConfig = s.TLSConfig()
		go func() { errCh <- srv.ListenAndServeTLS("", "") }()
	} else {
		go func() { errCh <- srv.ListenAndServe() }()
	}
	slog.Info("Development schedule service listening", "addr", addr, "tls", s.cert != nil)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("Shutting down development schedule service")
		return srv.Shutdown(shutdownCtx)
	}
}

// TLSConfig returns the server TLS configuration, or nil when serving
// plain HTTP.
func (s *Server) TLSConfig() *tls.Config {
	if s.cert == nil {
		return nil
	}
	return &tls.Config{
		Certificates: []tls.Certificate{*s.cert},
		MinVersion:   tls.VersionTLS12,
	}
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	n, err := s.store.Count(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "grievances": n})
}

func (s *Server) listPending(w http.ResponseWriter, r *http.Request) {
	userType, err := grievance.ParseUserType(chi.URLParam(r, "userType"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	pending, err := s.store.ListPending(r.Context(), userType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, EncodeAll(userType, pending))
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request) {
	userType, err := grievance.ParseUserType(chi.URLParam(r, "userType"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid grievance id %q", chi.URLParam(r, "id")))
		return
	}

	var req schedule.ResolveRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid body: %w", err))
			return
		}
	}

	err = s.store.ResolveGrievance(r.Context(), userType, id, req.Message)
	switch {
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, common.ErrAlreadyResolved):
		writeError(w, http.StatusConflict, err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
	default:
		slog.Info("Grievance resolved",
			"ref", model.Ref{UserType: userType, ID: id},
			"request_id", middleware.GetReqID(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" && r.Header.Get("Authorization") != "Bearer "+s.token {
			writeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
