package handler

import (
	"database/sql"
	"net/http"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/middleware"
	"taskboard/internal/observability"
	"taskboard/internal/task"
	"taskboard/internal/user"

	"github.com/gin-gonic/gin"
)

// SetupHandler initializes all dependencies and routes
func SetupHandler(db *sql.DB, cfg *config.Config) *gin.Engine {

	r := gin.Default()

	// Must be attached before routes are registered or gin skips it
	if observability.GlobalMetrics != nil {
		r.Use(middleware.PrometheusMiddleware(observability.GlobalMetrics))
	}

	tokens := auth.NewTokenService(cfg.JWT)

	// Initialize repositories
	userRepo := user.NewUserRepository()
	taskRepo := task.NewTaskRepository()

	// Initialize services
	userService := user.NewUserService(userRepo, db, tokens)
	taskService := task.NewTaskService(taskRepo, db)

	// Initialize controllers
	userController := user.NewUserController(userService)
	taskController := task.NewTaskController(taskService)

	setupRoutes(r, userController, taskController, tokens)

	return r
}

// setupRoutes configures all application routes
func setupRoutes(r *gin.Engine, userCtrl *user.UserController, taskCtrl *task.TaskController, tokens *auth.TokenService) {

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes - Authentication
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", userCtrl.Register)
		authGroup.POST("/login", userCtrl.Login)
	}

	// Protected routes - tasks
	api := r.Group("/api/task")
	api.Use(middleware.AuthMiddleware(tokens))
	{
		api.GET("", taskCtrl.ListTasks)
		api.GET("/:id", taskCtrl.GetTask)
		api.POST("", taskCtrl.CreateTask)
		api.PUT("/:id", taskCtrl.UpdateTask)
		api.DELETE("/:id", taskCtrl.DeleteTask)
	}
}
