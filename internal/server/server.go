// Package server assembles the HTTP API from the feature packages.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"consultancy/internal/backend"
	"consultancy/internal/backend/localauth"
	"consultancy/internal/config"
	"consultancy/internal/domain/admin"
	"consultancy/internal/domain/appointment"
	"consultancy/internal/domain/blog"
	"consultancy/internal/domain/booking"
	"consultancy/internal/domain/inquiry"
	"consultancy/internal/domain/live"
	"consultancy/internal/domain/upload"
	"consultancy/internal/middleware"
	"consultancy/internal/pkg/response"
)

// Models lists every table the API migrates.
func Models() []any {
	models := localauth.Models()
	return append(models,
		&admin.Grant{},
		&appointment.Appointment{},
		&blog.Post{},
		&inquiry.Inquiry{},
	)
}

type Deps struct {
	Auth    backend.AuthService
	Tables  backend.TableStore
	Objects backend.ObjectStore
	Limiter middleware.Limiter
	Catalog *booking.Catalog
	// Now overrides the wizard clock; nil means time.Now.
	Now func() time.Time
}

type Server struct {
	Router   *gin.Engine
	Sessions *booking.Sessions
	Hub      *live.Hub
}

func New(cfg *config.Config, deps Deps, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	hub := live.NewHub(cfg.CORSAllowedOrigins, log.Named("live"))

	grants := admin.NewGrantRepository(deps.Tables)
	guard := admin.NewGuard(grants, cfg.BackendTimeout, log.Named("guard"))
	flow := admin.NewFlow(deps.Auth, guard, cfg.PasswordResetRedirect, log.Named("auth"))
	adminHandler := admin.NewHandler(flow, log.Named("auth"))

	appointments := appointment.NewService(appointment.NewRepository(deps.Tables), hub, log.Named("appointments"))
	appointmentHandler := appointment.NewHandler(appointments, log.Named("appointments"))

	sessions := booking.NewSessions(cfg.BookingSessionTTL, func() *booking.Wizard {
		return booking.NewWizard(booking.Options{
			Catalog:     deps.Catalog,
			Creator:     appointments,
			Location:    cfg.Location,
			RequireTime: cfg.BookingRequireTime,
			Timeout:     cfg.BackendTimeout,
			Now:         deps.Now,
		})
	}, log.Named("booking"))
	bookingHandler := booking.NewHandler(deps.Catalog, sessions, booking.Business{
		Name:     cfg.BusinessName,
		Location: cfg.BusinessLocation,
		Domain:   cfg.BusinessDomain,
	}, cfg.Location, log.Named("booking"))

	blogHandler := blog.NewHandler(blog.NewService(blog.NewRepository(deps.Tables), log.Named("blog")), log.Named("blog"))
	inquiryHandler := inquiry.NewHandler(inquiry.NewService(inquiry.NewRepository(deps.Tables), hub, log.Named("inquiries")), log.Named("inquiries"))
	uploadHandler := upload.NewHandler(upload.NewService(deps.Objects), log.Named("upload"))

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log.Named("http")),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.UploadsDir != "" {
		r.Static(cfg.StaticURLBase, cfg.UploadsDir)
	}

	v1 := r.Group("/api/v1")
	{
		admin.RegisterAuthRoutes(v1, adminHandler, middleware.RateLimit(deps.Limiter, "auth", log))
		booking.RegisterRoutes(v1, bookingHandler, middleware.RateLimit(deps.Limiter, "booking", log))
		blog.RegisterRoutes(v1, blogHandler)
		inquiry.RegisterPublicRoutes(v1, inquiryHandler, middleware.RateLimit(deps.Limiter, "contact", log))

		dashboard := v1.Group("/admin", admin.RequireAdmin(flow))
		{
			admin.RegisterAdminRoutes(dashboard, adminHandler)
			appointment.RegisterAdminRoutes(dashboard, appointmentHandler)
			blog.RegisterAdminRoutes(dashboard, blogHandler)
			inquiry.RegisterAdminRoutes(dashboard, inquiryHandler)
			upload.RegisterRoutes(dashboard, uploadHandler)
			live.RegisterAdminRoutes(dashboard, hub)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.Redirect(c, http.StatusNotFound, "NOT_FOUND", "Page not found", admin.HomePath)
	})

	return &Server{Router: r, Sessions: sessions, Hub: hub}
}
