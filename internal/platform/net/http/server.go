package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"github.com/habibaehabb05/Factify/internal/platform/config"
	perr "github.com/habibaehabb05/Factify/internal/platform/errors"
	"github.com/habibaehabb05/Factify/internal/platform/logger"
	pnet "github.com/habibaehabb05/Factify/internal/platform/net"

	"github.com/go-chi/chi/v5"
)

// DefaultAddr is the listen address when neither ADDR nor PORT is set
const DefaultAddr = ":3002"

// Server is a thin wrapper over chi + stdlib http.Server
type Server struct {
	addr  string
	mux   *chi.Mux
	srv   *stdhttp.Server
	grace time.Duration
}

// NewServer creates the API server from a CORE_API_ scoped config
// opts receive the *chi.Mux so callers can mount routes/mw
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayAddr(DefaultAddr)
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}

	// unmatched routes answer with the same envelope as handler errors
	m.NotFound(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		RespondError(w, r, perr.NotFoundf("no route for %s %s", r.Method, r.URL.Path))
	})
	m.MethodNotAllowed(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		JSON(w, stdhttp.StatusMethodNotAllowed, Envelope{
			StatusCode: stdhttp.StatusMethodNotAllowed,
			Status:     stdhttp.StatusText(stdhttp.StatusMethodNotAllowed),
			Error:      "method " + r.Method + " not allowed on " + r.URL.Path,
			RequestID:  pnet.RequestID(r.Context()),
		})
	})

	return &Server{
		addr:  addr,
		mux:   m,
		grace: cfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second),
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: cfg.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
		},
	}
}

// Router returns a Router facade over the internal chi mux
func (s *Server) Router() Router {
	return AdaptChi(s.mux)
}

// Handler exposes the mux, mostly for httptest
func (s *Server) Handler() stdhttp.Handler { return s.mux }

// Addr returns the listening address
func (s *Server) Addr() string { return s.addr }

// Run starts the server and blocks until it fails or ctx is cancelled
// cancellation triggers a graceful shutdown bounded by the grace period
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("http listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("grace", s.grace).Msg("http shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()
	if err := s.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
