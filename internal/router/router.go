package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yukikurage/project-tracker-api/internal/handlers"
	"github.com/yukikurage/project-tracker-api/internal/middleware"
	"github.com/yukikurage/project-tracker-api/internal/models"
)

// Deps holds everything the HTTP layer is built from.
type Deps struct {
	Log         zerolog.Logger
	Tokens      middleware.TokenParser
	AuthLimiter *middleware.RateLimiter
	CORSOrigins []string

	Auth        *handlers.AuthHandler
	Projects    *handlers.ProjectHandler
	Tasks       *handlers.TaskHandler
	TimeEntries *handlers.TimeEntryHandler
	Users       *handlers.UserHandler
}

// New builds the gin engine with every API route registered.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(d.Log), middleware.RequestLogger(d.Log), middleware.CORS(d.CORSOrigins))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Project Tracker API is running",
		})
	})

	requireAuth := middleware.RequireAuth(d.Tokens)
	managerOnly := middleware.RequireUserType(models.UserTypeProjectManager)
	programmerOnly := middleware.RequireUserType(models.UserTypeProgrammer)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			limited := auth.Group("")
			if d.AuthLimiter != nil {
				limited.Use(d.AuthLimiter.Middleware())
			}
			limited.POST("/register", d.Auth.Register)
			limited.POST("/login", d.Auth.Login)
			auth.GET("/me", requireAuth, d.Auth.GetCurrentUser)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.GET("", d.Projects.ListProjects)
			projects.POST("", managerOnly, d.Projects.CreateProject)
			projects.GET("/:id", d.Projects.GetProject)
			projects.PUT("/:id", managerOnly, d.Projects.UpdateProject)
			projects.DELETE("/:id", managerOnly, d.Projects.DeleteProject)
			projects.GET("/:id/programmers", d.Projects.ListProgrammers)
			projects.POST("/:id/programmers", managerOnly, d.Projects.AllocateProgrammers)
			projects.GET("/:id/tasks", d.Projects.ListProjectTasks)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("/my-tasks", d.Tasks.ListMyTasks)
			tasks.GET("/my-tasks/stats", programmerOnly, d.Tasks.GetMyTaskStats)
			tasks.POST("", managerOnly, d.Tasks.CreateTask)
			tasks.GET("/:id", d.Tasks.GetTask)
			tasks.PUT("/:id", managerOnly, d.Tasks.UpdateTask)
			tasks.PATCH("/:id/status", d.Tasks.UpdateTaskStatus)
			tasks.DELETE("/:id", managerOnly, d.Tasks.DeleteTask)
		}

		// Time tracking routes (protected)
		timeTracking := api.Group("/time-tracking")
		timeTracking.Use(requireAuth)
		{
			timeTracking.GET("/task/:taskId", d.TimeEntries.ListTaskEntries)
			timeTracking.POST("", programmerOnly, d.TimeEntries.CreateTimeEntry)
			timeTracking.GET("/summary/task/:taskId", d.TimeEntries.GetTaskSummary)
		}

		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("/programmers", managerOnly, d.Users.ListProgrammers)
		}
	}

	return r
}
