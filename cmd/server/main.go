package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pms/internal/db"
	"pms/internal/domain/audit"
	"pms/internal/domain/auth"
	"pms/internal/domain/goals"
	"pms/internal/domain/notifications"
	"pms/internal/domain/reports"
	"pms/internal/platform/config"
	"pms/internal/platform/metrics"
	"pms/internal/transport/http/api"
	audithandler "pms/internal/transport/http/handlers/audit"
	goalshandler "pms/internal/transport/http/handlers/goals"
	identityhandler "pms/internal/transport/http/handlers/identity"
	notificationshandler "pms/internal/transport/http/handlers/notifications"
	periodshandler "pms/internal/transport/http/handlers/periods"
	reportshandler "pms/internal/transport/http/handlers/reports"
	"pms/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	collector := metrics.New()
	perms := auth.Permissions{}

	engine := goals.NewEngine(goals.Policy{ScopeByDepartment: cfg.DepartmentScoping})
	goalService := goals.NewService(goals.NewStore(pool), engine)
	notifyService := notifications.New(notifications.NewStore(pool))
	auditService := audit.New(pool)
	reportService := reports.New(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		identityhandler.NewHandler(auth.NewStore(pool)).RegisterRoutes(r)
		goalshandler.NewHandler(goalService, perms, notifyService, auditService, collector).RegisterRoutes(r)
		periodshandler.NewHandler(goalService, perms, auditService).RegisterRoutes(r)
		notificationshandler.NewHandler(notifyService, perms).RegisterRoutes(r)
		audithandler.NewHandler(auditService, perms).RegisterRoutes(r)
		reportshandler.NewHandler(reportService, perms).RegisterRoutes(r)

		if cfg.MetricsEnabled {
			r.With(middleware.RequirePermission(auth.PermMetricsRead, perms)).Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
				api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
			})
		}
	})

	log.Printf("performance server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
