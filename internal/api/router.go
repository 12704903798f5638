package api

import (
	"net/http"
	"time"

	"github.com/athebyme/vendor-product-service/internal/api/handlers"
	"github.com/athebyme/vendor-product-service/internal/api/middleware"
	"github.com/athebyme/vendor-product-service/internal/domain/services"
	"github.com/athebyme/vendor-product-service/pkg/auth"
	"github.com/athebyme/vendor-product-service/pkg/interfaces"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterOptions параметры маршрутизатора
type RouterOptions struct {
	CORSAllowedOrigins []string
	RequestTimeout     time.Duration
	MetricsPath        string
}

// SetupRouter настраивает маршрутизатор
func SetupRouter(
	productService services.ProductServiceInterface,
	storage interfaces.StoragePort,
	logger interfaces.LoggerPort,
	opts RouterOptions,
) *chi.Mux {
	r := chi.NewRouter()

	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}

	// Глобальные middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Tracing)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(opts.CORSAllowedOrigins))
	r.Use(middleware.SecurityHeaders)

	health := handlers.NewHealthHandler(storage, logger)
	r.Get("/health", health.Health)
	r.Head("/health", health.Health)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	if opts.MetricsPath != "" {
		r.Method(http.MethodGet, opts.MetricsPath, promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(opts.RequestTimeout))
		r.Use(auth.CredentialMiddleware)

		productHandler := handlers.NewProductHandler(productService, logger)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Post("/", productHandler.CreateProduct)
			r.Delete("/", productHandler.DeleteProduct)
			r.Post("/edit", productHandler.EditProduct)
			r.Post("/unpublish", productHandler.UnpublishProduct)
		})
	})

	return r
}
