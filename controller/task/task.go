package task

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/l3hner/hauspilot/config"
	"github.com/l3hner/hauspilot/dto"
	"github.com/l3hner/hauspilot/middleware"
	"github.com/l3hner/hauspilot/session"
	"github.com/l3hner/hauspilot/syncer"
)

type Deps struct {
	Hub *syncer.Hub
	Cfg *config.Config
	Log *zap.Logger
}

func TaskController(router *gin.Engine, deps Deps) {
	routes := router.Group("/tasks", middleware.AccessTokenMiddleware([]byte(deps.Cfg.JWTSecretKey)))
	{
		routes.GET("", func(c *gin.Context) { ListTasks(c, deps) })
		routes.POST("", func(c *gin.Context) { CreateTask(c, deps) })
		routes.PATCH("/:id", func(c *gin.Context) { UpdateTask(c, deps) })
		routes.DELETE("/:id", func(c *gin.Context) { DeleteTask(c, deps) })
	}
}

func ListTasks(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))
	c.JSON(http.StatusOK, gin.H{"tasks": sy.Tasks()})
}

func CreateTask(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	current := sy.CurrentProject()
	if current == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No project selected"})
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	id, err := sy.CreateTask(c.Request.Context(), current.ID, syncer.TaskInput{
		PhaseID: req.PhaseID,
		Title:   req.Title,
		Done:    req.Done,
		DueDate: req.DueDate,
	})
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"taskId":  id,
	})
}

func UpdateTask(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	err := sy.UpdateTask(c.Request.Context(), c.Param("id"), syncer.TaskUpdate{
		PhaseID: req.PhaseID,
		Title:   req.Title,
		Done:    req.Done,
		DueDate: req.DueDate,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully"})
}

func DeleteTask(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	if err := sy.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
