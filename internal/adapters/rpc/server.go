// Package rpc is the JSON-RPC 2.0 boundary of the wallet daemon. It is the
// only place untrusted data enters the process: every request field is
// validated before use and every failure leaves sanitized.
package rpc

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"wdk-wallet/go-daemon/internal/config"
	"wdk-wallet/go-daemon/internal/dispatch"
	"wdk-wallet/go-daemon/internal/metrics"
	"wdk-wallet/go-daemon/internal/session"
)

type Server struct {
	httpServer *http.Server
	sessions   *session.Manager
	dispatcher *dispatch.Dispatcher
	devMode    bool
	rpcToken   string
	limiter    *rpcRateLimiter
}

// NewServer wires the boundary around an already-constructed session
// manager and dispatcher. The session manager is the single owner of the
// engine; the server only routes.
func NewServer(cfg config.Config, sessions *session.Manager, dispatcher *dispatch.Dispatcher) *Server {
	addr := cfg.RPC.Addr
	if addr == "" {
		addr = config.DefaultRPCAddr
	}

	mux := http.NewServeMux()
	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		sessions:   sessions,
		dispatcher: dispatcher,
		devMode:    cfg.DevMode,
		rpcToken:   cfg.RPC.Token,
		limiter:    newRPCRateLimiter(cfg.RPC),
	}
	if s.rpcToken == "" && !config.IsTestEnv() {
		slog.Default().Warn("rpc token is not set; rpc auth disabled")
	}
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/rpc", s.handleRPC)
	if cfg.RPC.MetricsEnabled == nil || *cfg.RPC.MetricsEnabled {
		mux.Handle("/metrics", metrics.Handler())
	}
	return s
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		err := s.httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
			return
		}
		errCh <- err
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.sessions.Dispose(shutdownCtx)
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.sessions.Dispose(shutdownCtx)
		return err
	}
}

// Handler exposes the full mux; tests mount it on httptest servers.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok","session":"` + s.sessions.State().String() + `"}`))
}
