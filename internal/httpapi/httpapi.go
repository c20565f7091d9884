// Package httpapi exposes the digest pipeline over HTTP.
//
// GET /digest?mode=daily|weekly runs one digest and returns the JSON
// result. GET /healthz reports liveness.
package httpapi

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"digestbot/internal/digest"
	logx "digestbot/pkg/logx"
)

// Config controls the HTTP server.
//
// Security:
//   - Prefer binding to localhost (default).
//   - If binding to a non-loopback address, set Token or enable
//     AllowInsecure.
type Config struct {
	Enabled       bool
	Addr          string
	Token         string
	AllowInsecure bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Runner is the piece of the orchestrator the API needs.
type Runner interface {
	Run(ctx context.Context, mode digest.Mode) digest.Result
}

type Service struct {
	mu  sync.Mutex
	cfg Config
	log logx.Logger

	runner Runner
	srv    *http.Server
	ln     net.Listener
}

func New(cfg Config, runner Runner, log logx.Logger) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Service{cfg: cfg, log: log, runner: runner}
}

func (s *Service) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Enabled
}

// Start binds the listener and serves in a background goroutine.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil || !s.cfg.Enabled {
		return nil
	}

	addr := strings.TrimSpace(s.cfg.Addr)
	if addr == "" {
		addr = "127.0.0.1:8080"
	}
	if !isLoopbackAddr(addr) && s.cfg.Token == "" && !s.cfg.AllowInsecure {
		return fmt.Errorf("http: refusing to bind %s without a token (set http.token or http.allow_insecure)", addr)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("http listen %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/digest", s.handleDigest)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.srv = &http.Server{
		Handler:      mux,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}
	s.ln = ln

	srv := s.srv
	go func() {
		s.log.Info("http listening", logx.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("http server stopped", logx.Err(err))
		}
	}()
	return nil
}

func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	srv := s.srv
	s.srv = nil
	s.ln = nil
	s.mu.Unlock()

	if srv == nil {
		return
	}
	if err := srv.Shutdown(ctx); err != nil {
		_ = srv.Close()
	}
	s.log.Info("http stopped")
}

// Handler returns the digest handler for tests.
func (s *Service) Handler() http.HandlerFunc { return s.handleDigest }

func (s *Service) handleDigest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
			"status": "error", "message": "method not allowed",
		})
		return
	}
	if !s.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"status": "error", "message": "unauthorized",
		})
		return
	}

	// Invalid or missing mode is a client error, not a pipeline failure.
	mode, err := digest.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"status": "error", "message": "invalid mode, use ?mode=daily or ?mode=weekly",
		})
		return
	}

	res := s.runner.Run(r.Context(), mode)
	code := http.StatusOK
	if res.Status == digest.StatusError {
		code = http.StatusInternalServerError
	}
	writeJSON(w, code, res)
}

func (s *Service) authorized(r *http.Request) bool {
	s.mu.Lock()
	token := s.cfg.Token
	s.mu.Unlock()
	if token == "" {
		return true
	}
	got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	return subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func isLoopbackAddr(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
