package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskvault-dev/taskvault/internal/auth"
	"github.com/taskvault-dev/taskvault/internal/handlers"
	"github.com/taskvault-dev/taskvault/internal/middleware"
	"github.com/taskvault-dev/taskvault/internal/services"
	"gorm.io/gorm"
)

type Deps struct {
	DB             *gorm.DB
	Tokens         *auth.TokenManager
	AllowedOrigins []string
}

func New(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.Identify(deps.Tokens))

	authHandler := handlers.NewAuthHandler(services.NewAuthService(deps.DB), deps.Tokens)
	projectHandler := handlers.NewProjectHandler(services.NewProjectService(deps.DB))
	todoHandler := handlers.NewTodoHandler(services.NewTodoService(deps.DB))
	subtaskHandler := handlers.NewSubtaskHandler(services.NewSubtaskService(deps.DB))

	r.GET("/", handlers.Root)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", authHandler.Me)
		}

		projects := api.Group("/projects")
		{
			projects.POST("", projectHandler.Create)
			projects.GET("", projectHandler.List)
			projects.GET("/:id", projectHandler.GetByID)
			projects.PATCH("/:id", projectHandler.Update)
			projects.DELETE("/:id", projectHandler.Delete)
			projects.GET("/:id/todos", projectHandler.ListTodos)
		}

		todos := api.Group("/todos")
		{
			todos.POST("", todoHandler.Create)
			todos.GET("", todoHandler.List)
			todos.GET("/:id", todoHandler.GetByID)
			todos.PATCH("/:id", todoHandler.Update)
			todos.PATCH("/:id/complete", todoHandler.ToggleComplete)
			todos.DELETE("/:id", todoHandler.Delete)
		}

		subtasks := api.Group("/todos/:id/subtasks")
		{
			subtasks.POST("", subtaskHandler.Create)
			subtasks.GET("", subtaskHandler.List)
		}

		api.PATCH("/subtasks/:id/complete", subtaskHandler.ToggleComplete)
		api.DELETE("/subtasks/:id", subtaskHandler.Delete)
	}

	return r
}
