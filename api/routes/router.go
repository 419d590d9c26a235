package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lumenarts/gallery-api/api/controllers"
	"github.com/lumenarts/gallery-api/api/middleware"
	"github.com/lumenarts/gallery-api/internal/auth"
	"github.com/lumenarts/gallery-api/internal/blogs"
	"github.com/lumenarts/gallery-api/internal/categories"
	"github.com/lumenarts/gallery-api/internal/products"
	"github.com/lumenarts/gallery-api/internal/settings"
	"github.com/lumenarts/gallery-api/internal/styles"
	"github.com/lumenarts/gallery-api/internal/variants"
	"github.com/lumenarts/gallery-api/pkg/auth/session"
	"github.com/lumenarts/gallery-api/pkg/config"
	"github.com/lumenarts/gallery-api/pkg/db"
	"github.com/lumenarts/gallery-api/pkg/enums"
	"github.com/lumenarts/gallery-api/pkg/logger"
	"github.com/lumenarts/gallery-api/pkg/metrics"
	"github.com/lumenarts/gallery-api/pkg/redis"
)

// Params carries everything the router wires into handlers. Redis,
// Revocations and Registry are optional.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Revocations session.RevocationChecker
	Registry    *prometheus.Registry

	Auth       auth.Service
	Products   products.Service
	Categories categories.Service
	Styles     styles.Service
	Variants   variants.Service
	Blogs      blogs.Service
	Settings   settings.Service
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()

	var observer *metrics.HTTPMetrics
	if p.Registry != nil {
		observer = metrics.NewHTTPMetrics(p.Registry)
	}

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(observer),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{Registry: p.Registry}))
	}

	// a nil *redis.Client must not reach the handlers as a non-nil interface
	var cache db.Pinger
	var limiter *redis.Client
	if p.Redis != nil {
		cache = p.Redis
		limiter = p.Redis
	}

	requireAdmin := func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, cfg.Cookie, p.Revocations, logg))
		r.Use(middleware.RequireRole(logg, enums.RoleAdmin))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", controllers.Health(cfg, logg, p.DB, cache))

		r.Route("/auth", func(r chi.Router) {
			if limiter != nil {
				r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", controllers.AuthLogin(p.Auth, cfg.Cookie, logg))
			} else {
				r.Post("/login", controllers.AuthLogin(p.Auth, cfg.Cookie, logg))
			}
			r.With(middleware.Identify(cfg.JWT, cfg.Cookie, p.Revocations, logg)).Post("/logout", controllers.AuthLogout(p.Auth, cfg.Cookie, logg))
			r.Group(func(r chi.Router) {
				requireAdmin(r)
				r.Get("/me", controllers.AuthMe(p.Auth, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductCatalog(p.Products, logg))
			r.Get("/related", controllers.ProductRelated(p.Products, logg))
			r.Get("/colors/in-use", controllers.ProductColorsInUse(p.Products, logg))

			r.Group(func(r chi.Router) {
				requireAdmin(r)
				r.Get("/admin", controllers.AdminProductList(p.Products, logg))
				r.Get("/admin/{id}", controllers.AdminProductGet(p.Products, logg))
				r.Post("/", controllers.AdminProductCreate(p.Products, logg))
				r.Put("/{id}", controllers.AdminProductUpdate(p.Products, logg))
				r.Delete("/{id}", controllers.AdminProductDelete(p.Products, logg))
			})

			r.Get("/{slug}", controllers.ProductBySlug(p.Products, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/in-use", controllers.CategoryListInUse(p.Categories, logg))

			r.Group(func(r chi.Router) {
				requireAdmin(r)
				r.Get("/", controllers.CategoryList(p.Categories, logg))
				r.Post("/", controllers.CategoryCreate(p.Categories, logg))
				r.Get("/{id}", controllers.CategoryGet(p.Categories, logg))
				r.Put("/{id}", controllers.CategoryUpdate(p.Categories, logg))
				r.Delete("/{id}", controllers.CategoryDelete(p.Categories, logg))
			})
		})

		r.Route("/styles", func(r chi.Router) {
			requireAdmin(r)
			r.Get("/", controllers.StyleList(p.Styles, logg))
			r.Post("/", controllers.StyleCreate(p.Styles, logg))
			r.Get("/{id}", controllers.StyleGet(p.Styles, logg))
			r.Put("/{id}", controllers.StyleUpdate(p.Styles, logg))
			r.Delete("/{id}", controllers.StyleDelete(p.Styles, logg))
		})

		r.Route("/variants", func(r chi.Router) {
			requireAdmin(r)
			r.Get("/", controllers.VariantList(p.Variants, logg))
			r.Post("/", controllers.VariantCreate(p.Variants, logg))
			r.Get("/{id}", controllers.VariantGet(p.Variants, logg))
			r.Put("/{id}", controllers.VariantUpdate(p.Variants, logg))
			r.Delete("/{id}", controllers.VariantDelete(p.Variants, logg))
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/public", controllers.BlogListPublic(p.Blogs, logg))
			r.Get("/public/{slug}", controllers.BlogPublicBySlug(p.Blogs, logg))

			r.Group(func(r chi.Router) {
				requireAdmin(r)
				r.Get("/", controllers.BlogList(p.Blogs, logg))
				r.Post("/", controllers.BlogCreate(p.Blogs, logg))
				r.Get("/{id}", controllers.BlogGet(p.Blogs, logg))
				r.Put("/{id}", controllers.BlogUpdate(p.Blogs, logg))
				r.Delete("/{id}", controllers.BlogDelete(p.Blogs, logg))
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/media/public", controllers.SettingsMediaPublic(p.Settings, logg))
			r.Get("/contact/public", controllers.SettingsContactGet(p.Settings, logg))

			r.Group(func(r chi.Router) {
				requireAdmin(r)
				r.Get("/media", controllers.SettingsMediaGet(p.Settings, logg))
				r.Put("/media", controllers.SettingsMediaUpdate(p.Settings, logg))
				r.Get("/contact", controllers.SettingsContactGet(p.Settings, logg))
				r.Put("/contact", controllers.SettingsContactUpdate(p.Settings, logg))
			})
		})
	})

	return r
}
