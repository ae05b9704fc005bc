package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"kraal-bknd/internal/auth"
	"kraal-bknd/internal/config"
	"kraal-bknd/internal/handlers"
	"kraal-bknd/internal/location"
	"kraal-bknd/internal/logger"
	mdlwr "kraal-bknd/internal/middleware"
	"kraal-bknd/internal/services"
)

func NewRouter(db *bun.DB, rdb *redis.Client, provider location.Provider, cfg *config.Config, logr *logger.Logger) http.Handler {
	r := chi.NewRouter()

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// Prometheus HTTP metrics
	metrics := mdlwr.NewMetrics()
	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		logr.Fatal("failed to register metrics", zap.Error(err))
	}
	r.Use(metrics.HTTPMetrics)

	// CORS middleware with config
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// init JWT manager
	jwtMgr, err := auth.NewJWTManager(cfg.JWTPrivateKeyPath, cfg.JWTPublicKeyPath, "kraal")
	if err != nil {
		logr.Fatal("failed to init jwt manager", zap.Error(err))
	}

	// buyer-location store over redis, with fix reuse in front of the provider
	store := location.NewStore(
		location.NewRedisStorage(rdb),
		cfg.DefaultCountry,
		location.WithStaleAfter(cfg.LocationStaleTTL),
		location.WithAcquireTimeout(cfg.GPSTimeout),
	)
	cachedProvider := location.NewCachedProvider(provider, cfg.GPSMaxFixAge)

	authSvc := services.NewAuthService(db, jwtMgr, cfg, logr)
	deliverySvc := services.NewDeliverabilityService(db, store)

	authMW := mdlwr.NewAuthMiddleware(jwtMgr.PublicKey(), authSvc, logr.Logger)

	authHandler := handlers.NewAuthHandler(authSvc, logr, cfg)
	deliveryHandler := handlers.NewDeliverabilityHandler(deliverySvc, logr.Logger)
	locationHandler := handlers.NewLocationHandler(store, cachedProvider, logr.Logger)
	referenceHandler := handlers.NewReferenceHandler()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("ok"))
		if err != nil {
			return
		}
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			// Public routes
			r.Post("/login", authHandler.Login)

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(authMW.JWTAuth)
				r.Post("/refresh", authHandler.Refresh)
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Route("/listings", func(r chi.Router) {
			r.Use(authMW.JWTAuth)
			r.Get("/{id}/deliverability", deliveryHandler.GetListingDeliverability)
		})

		// Coverage preview is public: sellers probe a configuration before
		// the listing exists.
		r.Post("/deliverability/preview", deliveryHandler.PreviewCoverage)

		r.Route("/location", func(r chi.Router) {
			r.Use(authMW.JWTAuth)
			r.Get("/", locationHandler.GetLocation)
			r.Put("/", locationHandler.UpdateLocation)
			r.Post("/gps", locationHandler.AcquireGPS)
			r.Delete("/", locationHandler.ClearLocation)
		})

		r.Route("/reference", func(r chi.Router) {
			r.Get("/provinces", referenceHandler.GetProvinces)
			r.Get("/countries", referenceHandler.GetCountries)
		})
	})

	return r
}
