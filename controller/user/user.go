package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/l3hner/hauspilot/config"
	"github.com/l3hner/hauspilot/dto"
	"github.com/l3hner/hauspilot/middleware"
	"github.com/l3hner/hauspilot/services"
	"github.com/l3hner/hauspilot/session"
	"github.com/l3hner/hauspilot/store"
	"github.com/l3hner/hauspilot/syncer"
)

type Deps struct {
	Provider session.Provider
	Hub      *syncer.Hub
	Store    store.Store
	Cfg      *config.Config
	Log      *zap.Logger
}

func UserController(router *gin.Engine, deps Deps) {
	routes := router.Group("/user", middleware.AccessTokenMiddleware([]byte(deps.Cfg.JWTSecretKey)))
	{
		routes.POST("/search", func(c *gin.Context) { SearchUser(c, deps) })
		routes.PUT("/profile", func(c *gin.Context) { UpdateProfile(c, deps) })
		routes.DELETE("/account", func(c *gin.Context) { DeleteAccount(c, deps) })
	}
}

func SearchUser(c *gin.Context, deps Deps) {
	var req dto.SearchEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	users, err := services.SearchUsersByEmailPrefix(c.Request.Context(), deps.Store, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.UserResponse{
			UserID:    u.UserID,
			Email:     u.Email,
			Name:      u.Name,
			CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"users": responses})
}

func UpdateProfile(c *gin.Context, deps Deps) {
	userID := c.MustGet("userId").(string)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if len(fields) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Nothing to update"})
		return
	}

	if err := deps.Store.Update(c.Request.Context(), "users", userID, fields); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// DeleteAccount removes the account, profile and refresh token and signs the
// identity out. Projects and their children are left in the store; there is
// no cascade.
func DeleteAccount(c *gin.Context, deps Deps) {
	userID := c.MustGet("userId").(string)
	ctx := c.Request.Context()

	for _, col := range []string{"accounts", "users", "refreshTokens"} {
		if err := deps.Store.Delete(ctx, col, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
			return
		}
	}

	deps.Hub.Release(userID)
	if err := deps.Provider.SignOut(ctx, userID); err != nil {
		deps.Log.Warn("sign-out after account deletion failed",
			zap.String("uid", userID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
