package diary

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

func DiaryController(router *gin.Engine, deps Deps) {
	routes := router.Group("/diary", middleware.AccessTokenMiddleware([]byte(deps.Cfg.JWTSecretKey)))
	{
		routes.GET("", func(c *gin.Context) { ListEntries(c, deps) })
		routes.POST("", func(c *gin.Context) { CreateEntry(c, deps) })
		routes.PATCH("/:id", func(c *gin.Context) { UpdateEntry(c, deps) })
		routes.DELETE("/:id", func(c *gin.Context) { DeleteEntry(c, deps) })
	}
}

func ListEntries(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))
	c.JSON(http.StatusOK, gin.H{"entries": sy.DiaryEntries()})
}

func CreateEntry(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	current := sy.CurrentProject()
	if current == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No project selected"})
		return
	}

	var req dto.CreateDiaryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	id, err := sy.CreateDiaryEntry(c.Request.Context(), current.ID, syncer.DiaryEntryInput{
		Date:     req.Date,
		Text:     req.Text,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create diary entry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Diary entry created successfully",
		"entryId": id,
	})
}

func UpdateEntry(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	var req dto.UpdateDiaryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	err := sy.UpdateDiaryEntry(c.Request.Context(), c.Param("id"), syncer.DiaryEntryUpdate{
		Date:     req.Date,
		Text:     req.Text,
		PhotoURL: req.PhotoURL,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update diary entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Diary entry updated successfully"})
}

func DeleteEntry(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	if err := sy.DeleteDiaryEntry(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete diary entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Diary entry deleted successfully"})
}
