package routes

import (
	"fmt"

	"tapr/configs"
	"tapr/controllers"
	"tapr/entity"
	"tapr/middlewares"
	"tapr/pkg/metrics"
	"tapr/pkg/resp"
	"tapr/repository"
	"tapr/services"
	"tapr/utils"
	"tapr/ws"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App is the wired HTTP surface. The hub must be started with Hub.Run for
// the live tip feed to deliver anything.
type App struct {
	Engine  *gin.Engine
	Hub     *ws.TipHub
	Metrics *metrics.Metrics
}

func New(cfg *configs.Config, db *gorm.DB, log *logrus.Logger) *App {
	m := metrics.New()

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.WithError(err).Warn("invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		resp.ServerError(c, fmt.Errorf("panic: %v", recovered))
	}))
	r.Use(middlewares.RequestLogger(log))
	r.Use(m.Middleware())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))

	// Repositories
	users := repository.NewUserRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	visitRepo := repository.NewVisitRepository(db)

	// Services
	tokens := utils.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authSvc := services.NewAuthService(users, tokens, cfg.BcryptCost)
	venueSvc := services.NewVenueService(venueRepo, visitRepo)
	menuRepo := repository.NewMenuRepository(db)
	menuSvc := services.NewMenuService(menuRepo, venueSvc)
	categorySvc := services.NewCategoryService(repository.NewCategoryRepository(db), menuRepo, venueSvc)
	hub := ws.NewTipHub(venueSvc, cfg.CORSOrigins, log)
	tipSvc := services.NewTipService(repository.NewTipRepository(db), repository.NewStaffRepository(db), services.TipOptions{
		Currency:          cfg.TipCurrency,
		DemoStaffFallback: cfg.DemoStaffFallback,
		Notifier:          hub,
		Log:               log,
	})
	statsSvc := services.NewStatsService(repository.NewStatsRepository(db))

	cookie := utils.SessionCookie{Name: cfg.CookieName, TTL: cfg.JWTTTL, Secure: cfg.IsProduction()}

	RegisterRoutes(r, Handlers{
		Session:  middlewares.Session(authSvc, cookie),
		Limiter:  middlewares.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst),
		Metrics:  m,
		Hub:      hub,
		Auth:     controllers.NewAuthController(authSvc, cookie, m),
		Venue:    controllers.NewVenueController(venueSvc, m),
		Menu:     controllers.NewMenuController(menuSvc),
		Category: controllers.NewCategoryController(categorySvc),
		Tip:      controllers.NewTipController(tipSvc, m),
		Admin:    controllers.NewAdminController(statsSvc),
	})

	return &App{Engine: r, Hub: hub, Metrics: m}
}

type Handlers struct {
	Session gin.HandlerFunc
	Limiter *middlewares.IPRateLimiter
	Metrics *metrics.Metrics
	Hub     *ws.TipHub

	Auth     *controllers.AuthController
	Venue    *controllers.VenueController
	Menu     *controllers.MenuController
	Category *controllers.CategoryController
	Tip      *controllers.TipController
	Admin    *controllers.AdminController
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) { resp.OK(c, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	r.NoRoute(func(c *gin.Context) { resp.NotFound(c, "Not found") })

	requireUser := middlewares.RequireAuth()
	requireAdmin := middlewares.RequireAuth(entity.RoleAdmin)

	api := r.Group("/api", h.Session)

	// Auth
	a := api.Group("/auth")
	{
		a.POST("/register", h.Limiter.Middleware(), h.Auth.Register)
		a.POST("/login", h.Limiter.Middleware(), h.Auth.Login)
		a.POST("/logout", h.Auth.Logout)
		a.GET("/me", requireUser, h.Auth.Me)
	}

	// Venues & menu (public)
	api.GET("/venues", h.Venue.List)
	api.GET("/venues/:slug", h.Venue.Detail)
	api.POST("/venues/:slug/visits", requireUser, h.Venue.RecordVisit)
	api.GET("/menu", h.Menu.List)
	api.GET("/menu/categories", h.Category.Sections)

	// Tips; creating one works anonymously
	api.POST("/tips", h.Tip.Create)
	api.GET("/tips", requireUser, h.Tip.ListMine)

	// Admin
	admin := api.Group("/admin", requireAdmin)
	{
		admin.PATCH("/tips/:id/complete", h.Tip.Complete)
		admin.POST("/venues/:slug/menu", h.Menu.Create)
		admin.PUT("/menu/:id", h.Menu.Update)
		admin.DELETE("/menu/:id", h.Menu.Delete)
		admin.POST("/venues/:slug/categories", h.Category.Create)
		admin.DELETE("/categories/:id", h.Category.Delete)
		admin.GET("/stats", h.Admin.Stats)
	}

	// Live tip feed
	r.GET("/ws/venues/:slug/tips", h.Session, requireAdmin, h.Hub.HandleWebSocket)
}
