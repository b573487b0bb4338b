package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/l3hner/hauspilot/dto"
	"github.com/l3hner/hauspilot/services"
	"github.com/l3hner/hauspilot/session"
	"github.com/l3hner/hauspilot/store"
)

const refreshTokensCollection = "refreshTokens"

func SignInController(router *gin.Engine, deps Deps) {
	router.POST("/auth/signin", func(c *gin.Context) {
		Signin(c, deps)
	})
}

func Signin(c *gin.Context, deps Deps) {
	var request dto.SigninRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	uid, err := deps.Sessions.Login(ctx, request.Email, request.Password)
	if err != nil {
		var authErr *session.AuthError
		switch {
		case errors.As(err, &authErr):
			c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Reason})
		case errors.Is(err, session.ErrNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Identity provider is not configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		}
		return
	}

	user, err := services.GetUserByID(ctx, deps.Store, uid)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user profile"})
		return
	}

	accessToken, err := services.CreateAccessToken([]byte(deps.Cfg.JWTSecretKey), uid, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}

	refreshToken, err := services.CreateRefreshToken([]byte(deps.Cfg.JWTRefreshSecretKey), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create refresh token"})
		return
	}

	hashedRefreshToken, err := services.HashRefreshToken(refreshToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash refresh token"})
		return
	}

	now := time.Now()
	tokenData := map[string]interface{}{
		"userId":       uid,
		"refreshToken": hashedRefreshToken,
		"createdAt":    now.Unix(),
		"revoked":      false,
		"expiresIn":    int64(services.RefreshTokenTTL.Seconds()),
	}
	if err := deps.Store.Set(ctx, refreshTokensCollection, uid, tokenData); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store refresh token"})
		return
	}

	// Warm up the project mirror for this identity.
	deps.Hub.Acquire(uid)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login Successfully",
		"userId":  uid,
		"token": gin.H{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
	})
}
