package auth

import (
	"errors"
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/l3hner/hauspilot/dto"
	"github.com/l3hner/hauspilot/session"
)

func SignUpController(router *gin.Engine, deps Deps) {
	router.POST("/auth/signup", func(c *gin.Context) {
		Signup(c, deps)
	})
}

func Signup(c *gin.Context, deps Deps) {
	var request dto.SignupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := isValidEmail(request.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if deps.Cfg.RecaptchaConfigured() {
		ok, err := assessCaptcha(c.Request.Context(), deps, request.CaptchaToken, "signup", getClientIP(c), c.Request.UserAgent())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Captcha verification failed"})
			return
		}
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Captcha rejected"})
			return
		}
	}

	uid, err := deps.Sessions.Register(c.Request.Context(), request.Email, request.Password, request.Name)
	if err != nil {
		var authErr *session.AuthError
		switch {
		case errors.As(err, &authErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": authErr.Reason})
		case errors.Is(err, session.ErrNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Identity provider is not configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "User registered successfully",
		"userId":    uid,
		"isNewUser": true,
	})
}

func isValidEmail(email string) error {
	const emailRegex = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	re := regexp.MustCompile(emailRegex)
	if !re.MatchString(email) {
		return errors.New("invalid email format")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return errors.New("invalid email structure")
	}
	domain := parts[1]

	mxRecords, err := net.LookupMX(domain)
	if err != nil || len(mxRecords) == 0 {
		return errors.New("email domain does not have valid MX records")
	}

	return nil
}
