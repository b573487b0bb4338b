package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/l3hner/hauspilot/middleware"
	"github.com/l3hner/hauspilot/services"
	"github.com/l3hner/hauspilot/store"
)

func SignOutController(router *gin.Engine, deps Deps) {
	router.POST("/auth/signout", middleware.AccessTokenMiddleware([]byte(deps.Cfg.JWTSecretKey)), func(c *gin.Context) {
		Signout(c, deps)
	})
}

func Signout(c *gin.Context, deps Deps) {
	userID := c.MustGet("userId").(string)
	ctx := c.Request.Context()

	if err := deps.Store.Delete(ctx, refreshTokensCollection, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke refresh token"})
		return
	}

	// SignOut publishes the session change; the hub watcher tears down the
	// identity's syncer.
	if err := deps.Provider.SignOut(ctx, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// RefreshTokenController rotates the access token for a valid, unrevoked
// refresh token.
func RefreshTokenController(router *gin.Engine, deps Deps) {
	router.POST("/auth/token", middleware.RefreshTokenMiddleware([]byte(deps.Cfg.JWTRefreshSecretKey)), func(c *gin.Context) {
		RefreshToken(c, deps)
	})
}

func RefreshToken(c *gin.Context, deps Deps) {
	userID := c.MustGet("userId").(string)
	presented := c.MustGet("refreshToken").(string)
	ctx := c.Request.Context()

	doc, err := deps.Store.Get(ctx, refreshTokensCollection, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load refresh token"})
		return
	}

	if revoked, _ := doc.Data["revoked"].(bool); revoked {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token is revoked"})
		return
	}

	hashed, _ := doc.Data["refreshToken"].(string)
	if err := services.CompareRefreshToken(hashed, presented); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token mismatch"})
		return
	}

	user, err := services.GetUserByID(ctx, deps.Store, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user profile"})
		return
	}

	accessToken, err := services.CreateAccessToken([]byte(deps.Cfg.JWTSecretKey), userID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}
