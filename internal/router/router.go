package router

import (
	"log/slog"
	"time"

	"github.com/fanzoftheone/taskdeck/internal/handlers"
	"github.com/fanzoftheone/taskdeck/internal/identity"
	"github.com/fanzoftheone/taskdeck/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Resolver       *identity.Resolver
	Auth           *handlers.AuthHandler
	Tasks          *handlers.TaskHandler
	Stats          *handlers.StatsHandler
	Overseer       *handlers.OverseerHandler
	Activity       *handlers.ActivityHandler
	Hub            *handlers.Hub
	AllowedOrigins []string
	Logger         *slog.Logger
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Metrics())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.Auth(deps.Resolver, deps.Logger)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", requireAuth, deps.Hub.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", deps.Auth.Register)
			auth.POST("/login", deps.Auth.Login)
			auth.GET("/me", requireAuth, deps.Auth.Me)
		}

		tasks := api.Group("/tasks", requireAuth)
		{
			tasks.GET("", deps.Tasks.List)
			tasks.POST("", deps.Tasks.Create)
			tasks.PATCH("/:task_id", deps.Tasks.Update)
			tasks.DELETE("/:task_id", deps.Tasks.Delete)
		}

		api.GET("/stats", requireAuth, deps.Stats.Get)
		api.POST("/oversee", requireAuth, deps.Overseer.Submit)
		api.GET("/logs", requireAuth, deps.Activity.List)
	}

	return r
}
