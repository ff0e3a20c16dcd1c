package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/garageconnect/customer/internal/api/handlers"
	mw "github.com/garageconnect/customer/internal/api/middleware"
	"github.com/garageconnect/customer/internal/auth"
	"github.com/garageconnect/customer/internal/buildconfig"
	"github.com/garageconnect/customer/internal/cache"
	"github.com/garageconnect/customer/internal/config"
	"github.com/garageconnect/customer/internal/domain"
	"github.com/garageconnect/customer/internal/screen"
	"github.com/garageconnect/customer/internal/service"
	"github.com/garageconnect/customer/internal/storage"
	"github.com/garageconnect/customer/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// Pinger is a backend checked by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services are the collaborators behind the HTTP surface.
type Services struct {
	Tenants      *service.TenantService
	Sessions     *service.SessionService
	Records      *service.RecordService
	Aggregator   *service.Aggregator
	Bootstrapper *service.Bootstrapper
	Brander      service.Brander
}

// App holds the router and the per-session screen state.
type App struct {
	Router  *chi.Mux
	Screens *screen.Registry
	Metrics *mw.Metrics
}

// NewApp wires the Postgres stores, Redis cache and blob storage into the
// services and mounts them on a router.
func NewApp(db *pgxpool.Pool, rc *cache.Client, blobs domain.BlobStore, logger *zap.Logger) *App {
	// Stores
	tenantStore := store.NewTenantStore(db)
	profileStore := store.NewProfileStore(db)
	tripStore := store.NewTripStore(db)
	maintenanceStore := store.NewMaintenanceStore(db)
	appointmentStore := store.NewAppointmentStore(db)
	restaurantStore := store.NewRestaurantStore(db)
	postStore := store.NewCommunityPostStore(db)
	accountStore := store.NewAccountStore(db)

	// Services
	brander := service.Brander{
		Base: domain.Theme{
			PrimaryColor:   config.DefaultPrimaryColor(),
			SecondaryColor: config.DefaultSecondaryColor(),
			Title:          config.AppTitleSuffix(),
			IconURL:        config.DefaultIconURL(),
		},
		TitleSuffix: config.AppTitleSuffix(),
	}
	slugs := service.SlugResolver{DemoSlug: config.DemoTenantSlug(), DemoHosts: config.DemoHosts()}
	authSvc := auth.NewService(accountStore, rc, config.JWTSecret(), config.SessionTTL())

	tenantSvc := service.NewTenantService(tenantStore, rc, slugs, config.TenantCacheTTL(), logger)
	sessionSvc := service.NewSessionService(authSvc, profileStore, logger)
	aggregator := service.NewAggregator(tripStore, maintenanceStore, appointmentStore, restaurantStore, postStore, logger)
	recordSvc := service.NewRecordService(tripStore, restaurantStore, maintenanceStore, profileStore, blobs, logger)

	svcs := Services{
		Tenants:      tenantSvc,
		Sessions:     sessionSvc,
		Records:      recordSvc,
		Aggregator:   aggregator,
		Bootstrapper: service.NewBootstrapper(tenantSvc, brander, sessionSvc, aggregator, logger),
		Brander:      brander,
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := newApp(svcs, map[string]Pinger{"postgres": db, "redis": rc}, mw.NewMetrics(reg), logger)

	if local, ok := blobs.(*storage.LocalStorage); ok {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(local.BasePath())))
		app.Router.Handle("/uploads/*", fs)
	}
	return app
}

func newApp(s Services, backends map[string]Pinger, metrics *mw.Metrics, logger *zap.Logger) *App {
	screens := screen.NewRegistry()
	s.Aggregator.SetFailureHook(metrics.AggregateFailure)

	// Handlers
	tenantHandler := handlers.NewTenantHandler(s.Brander)
	authHandler := handlers.NewAuthHandler(s.Sessions, screens)
	profileHandler := handlers.NewProfileHandler(s.Records)
	bootstrapHandler := handlers.NewBootstrapHandler(s.Bootstrapper)
	recordHandler := handlers.NewRecordHandler(s.Records, s.Aggregator, screens)
	screenHandler := handlers.NewScreenHandler(screens, s.Aggregator, s.Brander)

	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metrics.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler(backends))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		// Bootstrap resolves the tenant itself so it can report tenant_not_found.
		r.Get("/bootstrap", bootstrapHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(mw.Tenant(s.Tenants))

			r.Get("/tenant", tenantHandler.Get)
			r.Post("/auth/signup", authHandler.SignUp)
			r.Post("/auth/signin", authHandler.SignIn)

			// Authenticated routes
			r.Group(func(r chi.Router) {
				r.Use(mw.RequireSession(s.Sessions))

				r.Post("/auth/signout", authHandler.SignOut)

				r.Get("/me", profileHandler.Me)
				r.Put("/me/avatar", profileHandler.UploadAvatar)

				r.Route("/trips", func(r chi.Router) {
					r.Get("/", recordHandler.ListTrips)
					r.Post("/", recordHandler.CreateTrip)
					r.Post("/{id}/photos", recordHandler.UploadTripPhoto)
				})

				r.Get("/restaurants", recordHandler.ListRestaurants)
				r.Post("/restaurants", recordHandler.CreateRestaurant)

				r.Get("/maintenance", recordHandler.ListMaintenance)
				r.Post("/maintenance", recordHandler.CreateMaintenance)

				r.Get("/appointments", recordHandler.ListAppointments)
				r.Get("/community/posts", recordHandler.ListPosts)

				r.Route("/screen", func(r chi.Router) {
					r.Get("/", screenHandler.Get)
					r.Post("/navigate", screenHandler.Navigate)
					r.Post("/overlay", screenHandler.OpenOverlay)
					r.Delete("/overlay", screenHandler.CloseOverlay)
					r.Post("/refresh", screenHandler.Refresh)
				})
			})
		})
	})

	return &App{Router: r, Screens: screens, Metrics: metrics}
}

func healthHandler(backends map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]string, len(backends))
		status := http.StatusOK
		for name, b := range backends {
			if b == nil {
				continue
			}
			if err := b.Ping(r.Context()); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		state := "ok"
		if status != http.StatusOK {
			state = "error"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  state,
			"checks":  checks,
			"version": buildconfig.VersionInfo(),
		})
	}
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.TenantStore        = (*store.TenantStore)(nil)
	_ domain.ProfileStore       = (*store.ProfileStore)(nil)
	_ domain.TripStore          = (*store.TripStore)(nil)
	_ domain.MaintenanceStore   = (*store.MaintenanceStore)(nil)
	_ domain.AppointmentStore   = (*store.AppointmentStore)(nil)
	_ domain.RestaurantStore    = (*store.RestaurantStore)(nil)
	_ domain.CommunityPostStore = (*store.CommunityPostStore)(nil)
	_ domain.AccountStore       = (*store.AccountStore)(nil)
	_ domain.SessionRegistry    = (*cache.Client)(nil)
	_ domain.TenantCache        = (*cache.Client)(nil)
	_ domain.AuthGateway        = (*auth.Service)(nil)
	_ domain.BlobStore          = (*storage.LocalStorage)(nil)
	_ domain.BlobStore          = (*storage.S3Storage)(nil)
)
