package http

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fleshka4/amm-engine/internal/config"
	"github.com/fleshka4/amm-engine/internal/service"
)

// Server represents the HTTP transport layer.
type Server struct {
	svc     service.Service
	router  *mux.Router
	logger  *zap.Logger
	metrics *metrics

	allowedOrigins []string

	graceTimeout      time.Duration
	readHeaderTimeout time.Duration
	requestTimeout    time.Duration
}

// NewServer creates a new HTTP server with registered routes.
func NewServer(svc service.Service, cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		svc:     svc,
		router:  mux.NewRouter(),
		logger:  logger,
		metrics: newMetrics(prometheus.NewRegistry()),

		allowedOrigins: cfg.AllowedOrigins,

		graceTimeout:      cfg.GraceTimeout,
		readHeaderTimeout: cfg.ReadHeaderTimeout,
		requestTimeout:    cfg.RequestTimeout,
	}

	s.router.Use(s.metricsMiddleware)

	s.router.HandleFunc("/ping", s.handlePing).Methods(http.MethodGet)
	s.router.HandleFunc("/estimate", s.handleEstimate).Methods(http.MethodGet)
	s.router.HandleFunc("/pairs/{pair}", s.handlePairState).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	pools := s.router.PathPrefix("/pools").Subrouter()
	pools.HandleFunc("/initialize", s.handleInitialize).Methods(http.MethodPost)
	pools.HandleFunc("/swap", s.handleSwap).Methods(http.MethodPost)
	pools.HandleFunc("/deposit", s.handleDepositAll).Methods(http.MethodPost)
	pools.HandleFunc("/withdraw", s.handleWithdrawAll).Methods(http.MethodPost)
	pools.HandleFunc("/deposit-single", s.handleDepositSingle).Methods(http.MethodPost)
	pools.HandleFunc("/withdraw-single", s.handleWithdrawSingle).Methods(http.MethodPost)

	return s
}

// Handler returns the router wrapped with compression, CORS and request logging.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = gziphandler.GzipHandler(h)
	if len(s.allowedOrigins) > 0 {
		h = cors.New(cors.Options{
			AllowedOrigins: s.allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
		}).Handler(h)
	}
	return s.logMiddleware(h)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within the configured grace timeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "net.Listen")
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("http server starting", zap.Stringer("addr", ln.Addr()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "srv.Serve")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server", zap.Error(context.Cause(ctx)))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.graceTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return errors.Wrap(err, "srv.Shutdown")
		}
		s.logger.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		s.logger.Warn("ping write error", zap.Error(err))
	}
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) code() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// logMiddleware logs each HTTP request and the time taken to process it.
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.code()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
