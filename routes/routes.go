package routes

import (
	"cafe-menu-api/config"
	"cafe-menu-api/handlers"
	"cafe-menu-api/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with the middleware stack and every route registered.
func NewRouter(cfg *config.Config, h *handlers.Handler) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestLogger(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.CORS(),
		middleware.MaxBodySize(cfg.MaxUploadBytes),
	)
	r.NoRoute(middleware.NotFound)

	SetupRoutes(r, h)
	return r
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	r.GET("/", h.Index)
	r.GET("/health", h.Health)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/login", h.Login)
		public.GET("/menu-items", h.ListMenuItems)
		public.GET("/menu-items/:id", h.GetMenuItem)
		public.GET("/images/:filename", h.ServeImage)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(h.Auth))
	{
		auth.POST("/menu-items", h.CreateMenuItem)
		auth.PUT("/menu-items/:id", h.UpdateMenuItem)
		auth.DELETE("/menu-items/:id", h.DeleteMenuItem)
		auth.POST("/upload", h.UploadImage)
	}
}
