package project

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

func ProjectController(router *gin.Engine, deps Deps) {
	routes := router.Group("/projects", middleware.AccessTokenMiddleware([]byte(deps.Cfg.JWTSecretKey)))
	{
		routes.GET("", func(c *gin.Context) { ListProjects(c, deps) })
		routes.POST("", func(c *gin.Context) { CreateProject(c, deps) })
		routes.PATCH("/:id", func(c *gin.Context) { UpdateProject(c, deps) })
		routes.DELETE("/:id", func(c *gin.Context) { DeleteProject(c, deps) })
		routes.PUT("/current", func(c *gin.Context) { SelectProject(c, deps) })
		routes.GET("/:id/phases", func(c *gin.Context) { ListPhases(c, deps) })
	}
}

func ListProjects(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	var currentID string
	if current := sy.CurrentProject(); current != nil {
		currentID = current.ID
	}
	c.JSON(http.StatusOK, gin.H{
		"projects":         sy.Projects(),
		"currentProjectId": currentID,
		"loading":          sy.Loading(),
	})
}

func CreateProject(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	id, err := sy.CreateProject(c.Request.Context(), syncer.ProjectInput{
		Name:      req.Name,
		Location:  req.Location,
		StartDate: req.StartDate,
		Budget:    req.Budget,
	})
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		// A failure after the project doc was written leaves a project
		// without its full phase set; surface the error, no rollback.
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Project created successfully",
		"projectId": id,
	})
}

func UpdateProject(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	err := sy.UpdateProject(c.Request.Context(), c.Param("id"), syncer.ProjectUpdate{
		Name:          req.Name,
		Location:      req.Location,
		StartDate:     req.StartDate,
		Budget:        req.Budget,
		ActivePhaseID: req.ActivePhaseID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project updated successfully"})
}

func DeleteProject(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	if err := sy.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func SelectProject(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	var req dto.SelectProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if req.ProjectID == "" {
		sy.ClearCurrentProject()
		c.JSON(http.StatusOK, gin.H{"message": "Selection cleared"})
		return
	}
	if !sy.SetCurrentProject(req.ProjectID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project selected"})
}

func ListPhases(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	phases, err := sy.Phases(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load phases"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"phases": phases})
}
