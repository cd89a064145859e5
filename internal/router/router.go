package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mirandajandir7-prog/mitaller/internal/config"
	"github.com/mirandajandir7-prog/mitaller/internal/handler"
	"github.com/mirandajandir7-prog/mitaller/internal/middleware"
	"github.com/mirandajandir7-prog/mitaller/internal/model"
	"github.com/mirandajandir7-prog/mitaller/internal/repository"
	"github.com/mirandajandir7-prog/mitaller/internal/service"
	"github.com/mirandajandir7-prog/mitaller/internal/store"
	"github.com/mirandajandir7-prog/mitaller/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← Store
func New(cfg *config.Config, db *store.Store, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	jobRepo := repository.NewJobRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	workshopSvc := service.NewWorkshopService(clientRepo, vehicleRepo, jobRepo, noteRepo)
	viewSvc := service.NewViewService(clientRepo, vehicleRepo, jobRepo, noteRepo, quoteRepo)
	quoteSvc := service.NewQuoteService(quoteRepo, jobRepo, noteRepo, clientRepo, vehicleRepo, dispatcher, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	clientsH := handler.NewClientsHandler(workshopSvc, viewSvc)
	vehiclesH := handler.NewVehiclesHandler(workshopSvc, viewSvc)
	jobsH := handler.NewJobsHandler(workshopSvc, viewSvc, cfg.PDFStoragePath)
	quotesH := handler.NewQuotesHandler(quoteSvc)
	dashboardH := handler.NewDashboardHandler(viewSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes — both roles can operate the registry, user
	// administration is admin-only.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	staff := middleware.RequireRole(model.RolAdmin, model.RolMecanico)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/dashboard", staff, dashboardH.Get)

		clients := v1.Group("/clientes", staff)
		{
			clients.POST("", clientsH.Create)
			clients.GET("", clientsH.List)
			clients.PUT("/:id", clientsH.Update)
			clients.DELETE("/:id", clientsH.Delete)
		}

		vehicles := v1.Group("/vehiculos", staff)
		{
			vehicles.POST("", vehiclesH.Create)
			vehicles.GET("", vehiclesH.List)
			vehicles.GET("/:id/info", vehiclesH.Info)
			vehicles.PUT("/:id", vehiclesH.Update)
			vehicles.DELETE("/:id", vehiclesH.Delete)
		}

		jobs := v1.Group("/ots", staff)
		{
			jobs.POST("", jobsH.Create)
			jobs.GET("", jobsH.List)
			jobs.GET("/:id", jobsH.Detail)
			jobs.PUT("/:id", jobsH.Update)
			jobs.PATCH("/:id/estado", jobsH.SetStatus)
			jobs.DELETE("/:id", jobsH.Delete)
			jobs.POST("/:id/notas", jobsH.AddNote)
			jobs.GET("/:id/boleta", jobsH.Print)
			jobs.GET("/:id/boleta/pdf", jobsH.PrintPDF)
		}

		quotes := v1.Group("/cotizaciones", staff)
		{
			quotes.POST("", quotesH.Create)
			quotes.GET("", quotesH.List)
			quotes.GET("/:id", quotesH.Print)
			quotes.POST("/:id/duplicar", quotesH.Duplicate)
			quotes.POST("/:id/convertir", quotesH.ConvertToJob)
			quotes.GET("/:id/pdf", quotesH.PDF)
			quotes.POST("/:id/email", quotesH.Email)
		}

		users := v1.Group("/usuarios", middleware.RequireRole(model.RolAdmin))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
		}
	}

	return r
}
