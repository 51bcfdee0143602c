package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	apicontract "github.com/tuanvumaihuynh/product-catalog/api-contract"
	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/http/apierr"
	"github.com/tuanvumaihuynh/product-catalog/internal/http/metric"
	"github.com/tuanvumaihuynh/product-catalog/internal/http/middleware"
	"github.com/tuanvumaihuynh/product-catalog/internal/http/swagger"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
	"github.com/tuanvumaihuynh/product-catalog/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// Registry is where the service registers its metrics and what /metrics serves.
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// Service represents the HTTP service.
type Service struct {
	cfg        config.HTTP
	pagination config.Pagination
	logger     *slog.Logger
	metrics    *metric.Metrics
	registry   Registry
	validator  validator.Validator

	healthChecker db.HealthChecker
	productSvc    service.ProductService
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	pagination config.Pagination,
	log *slog.Logger,
	registry Registry,
	validator validator.Validator,
	healthChecker db.HealthChecker,
	productSvc service.ProductService,
) *Service {
	return &Service{
		cfg:           cfg,
		pagination:    pagination,
		logger:        log.With(slog.String("service", "http")),
		metrics:       metric.New(registry),
		registry:      registry,
		validator:     validator,
		healthChecker: healthChecker,
		productSvc:    productSvc,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	handler, err := s.Handler()
	if err != nil {
		return nil, err
	}

	return s.RunWithServer(ctx, handler)
}

// Handler builds the router with every middleware and route registered.
func (s *Service) Handler() (http.Handler, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	if err := s.RegisterHandlers(r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) error {
	r.Get(middleware.HealthPath, s.handleHealth)
	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))

	if !s.cfg.Gateway {
		return nil
	}

	doc, err := openapi3.NewLoader().LoadFromData(apicontract.GetSpecBytes())
	if err != nil {
		return fmt.Errorf("load openapi contract: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return fmt.Errorf("validate openapi contract: %w", err)
	}

	validateRequest, err := middleware.OpenAPIValidator(doc, s.handleResponseError)
	if err != nil {
		return err
	}

	h := newProductHandler(s.productSvc, s.validator, s.pagination, s.handleResponseError)
	r.Route("/products", func(r chi.Router) {
		r.Use(validateRequest)

		r.Get("/", h.FindAllProducts)
		r.Post("/", h.CreateProduct)
		r.Post("/validate", h.ValidateProducts)
		r.Get("/{id}", h.FindOneProduct)
		r.Patch("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.RemoveProduct)
	})

	return nil
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if ok, err := s.healthChecker.IsHealthy(r.Context()); !ok || err != nil {
		s.logger.WarnContext(r.Context(), "health check failed", slog.Any("error", err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) handleResponseError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	writeJSON(w, res.StatusCode, res)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	json.NewEncoder(w).Encode(body)
}
