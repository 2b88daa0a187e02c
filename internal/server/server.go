package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/seasonal/internal/domain"
	"github.com/varoOP/seasonal/internal/seasonal"
)

// Pinger reports whether the record store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds the HTTP surface settings
type Config struct {
	ListenAddr   string
	ImageBaseURL string
	AdminToken   string
}

// Server exposes the render hook and the administrative API over HTTP
type Server struct {
	log     zerolog.Logger
	cfg     Config
	service seasonal.Service
	clock   domain.Clock
	store   Pinger
	handler http.Handler
}

// New builds the router and middleware chain
func New(log zerolog.Logger, cfg Config, service seasonal.Service, clock domain.Clock, store Pinger) *Server {
	s := &Server{
		log:     log.With().Str("module", "server").Logger(),
		cfg:     cfg,
		service: service,
		clock:   clock,
		store:   store,
	}

	router := httprouter.New()
	router.GET("/api/active", s.Active)
	router.GET("/api/images", s.ListImages)
	router.GET("/api/images/:id", s.GetImage)
	router.POST("/api/images", s.requireAdmin(s.AddImage))
	router.PUT("/api/images/:id", s.requireAdmin(s.UpdateImage))
	router.DELETE("/api/images/:id", s.requireAdmin(s.DeleteImage))
	router.POST("/api/images/:id/toggle", s.requireAdmin(s.ToggleImage))
	router.GET("/calendar.ics", s.Calendar)
	router.GET("/healthz", s.Health)

	var h http.Handler = router
	h = handlers.LoggingHandler(requestLogWriter{log: s.log}, h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{log: s.log}))(h)
	s.handler = h

	return s
}

// Handler returns the full middleware chain
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.ListenAddr).Msg("Listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "http server failed")
	case <-ctx.Done():
		s.log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogWriter feeds gorilla's combined access log lines into zerolog
type requestLogWriter struct {
	log zerolog.Logger
}

func (w requestLogWriter) Write(p []byte) (int, error) {
	n := len(p)
	if n > 0 && p[n-1] == '\n' {
		p = p[:n-1]
	}
	w.log.Debug().Msg(string(p))
	return n, nil
}

type recoveryLogger struct {
	log zerolog.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error().Interface("panic", v).Msg("Recovered from panic")
}
