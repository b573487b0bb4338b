package event

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/l3hner/hauspilot/config"
	"github.com/l3hner/hauspilot/dto"
	"github.com/l3hner/hauspilot/middleware"
	"github.com/l3hner/hauspilot/model"
	"github.com/l3hner/hauspilot/session"
	"github.com/l3hner/hauspilot/syncer"
)

type Deps struct {
	Hub *syncer.Hub
	Cfg *config.Config
	Log *zap.Logger
}

func EventController(router *gin.Engine, deps Deps) {
	routes := router.Group("/events", middleware.AccessTokenMiddleware([]byte(deps.Cfg.JWTSecretKey)))
	{
		routes.GET("", func(c *gin.Context) { ListEvents(c, deps) })
		routes.POST("", func(c *gin.Context) { CreateEvent(c, deps) })
		routes.PATCH("/:id", func(c *gin.Context) { UpdateEvent(c, deps) })
		routes.DELETE("/:id", func(c *gin.Context) { DeleteEvent(c, deps) })
	}
}

func ListEvents(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))
	c.JSON(http.StatusOK, gin.H{
		"events":     sy.Events(),
		"categories": model.EventCategories,
	})
}

func CreateEvent(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	current := sy.CurrentProject()
	if current == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No project selected"})
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	id, err := sy.CreateEvent(c.Request.Context(), current.ID, syncer.EventInput{
		Title:           req.Title,
		DateTime:        req.DateTime,
		Category:        req.Category,
		ReminderEnabled: req.ReminderEnabled,
	})
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event created successfully",
		"eventId": id,
	})
}

func UpdateEvent(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	err := sy.UpdateEvent(c.Request.Context(), c.Param("id"), syncer.EventUpdate{
		Title:           req.Title,
		DateTime:        req.DateTime,
		Category:        req.Category,
		ReminderEnabled: req.ReminderEnabled,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully"})
}

func DeleteEvent(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	if err := sy.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
