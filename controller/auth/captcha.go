package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	recaptcha "cloud.google.com/go/recaptchaenterprise/v2/apiv1"
	"cloud.google.com/go/recaptchaenterprise/v2/apiv1/recaptchaenterprisepb"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/l3hner/hauspilot/dto"
)

// Signup attempts from bots are the main abuse vector, so the signup form
// carries a reCAPTCHA token when the assessment is configured.
const captchaMinScore = 0.5

func CaptchaController(router *gin.Engine, deps Deps) {
	routes := router.Group("/auth")
	{
		routes.POST("/captcha", func(c *gin.Context) {
			VerifyCaptcha(c, deps)
		})
	}
}

func VerifyCaptcha(c *gin.Context, deps Deps) {
	var req dto.CaptchaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	if !deps.Cfg.RecaptchaConfigured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "Captcha is not configured"})
		return
	}

	result, err := createAssessment(c.Request.Context(), deps, req.Token, req.Action, getClientIP(c), c.Request.UserAgent())
	if err != nil {
		deps.Log.Warn("captcha assessment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	if result == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "reCAPTCHA verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"score":   result.Score,
		"action":  result.Action,
		"reasons": result.Reasons,
		"message": "Captcha verified successfully",
	})
}

// assessCaptcha is the signup-path variant: it reduces the assessment to a
// pass/fail decision.
func assessCaptcha(ctx context.Context, deps Deps, token, action, ip, userAgent string) (bool, error) {
	if token == "" {
		return false, nil
	}
	result, err := createAssessment(ctx, deps, token, action, ip, userAgent)
	if err != nil {
		return false, err
	}
	if result == nil {
		return false, nil
	}
	return result.Score >= captchaMinScore, nil
}

func getClientIP(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = c.Request.RemoteAddr
	}
	if idx := strings.Index(ip, ","); idx != -1 {
		ip = strings.TrimSpace(ip[:idx])
	}
	return ip
}

func createAssessment(ctx context.Context, deps Deps, token, action, ip, userAgent string) (*dto.AssessmentResult, error) {
	var opts []option.ClientOption
	if deps.Cfg.RecaptchaCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(deps.Cfg.RecaptchaCredentials))
	}
	client, err := recaptcha.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create reCAPTCHA client: %w", err)
	}
	defer client.Close()

	req := &recaptchaenterprisepb.CreateAssessmentRequest{
		Parent: fmt.Sprintf("projects/%s", deps.Cfg.RecaptchaProjectID),
		Assessment: &recaptchaenterprisepb.Assessment{
			Event: &recaptchaenterprisepb.Event{
				Token:         token,
				SiteKey:       deps.Cfg.RecaptchaSiteKey,
				UserIpAddress: ip,
				UserAgent:     userAgent,
			},
		},
	}

	response, err := client.CreateAssessment(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}

	if response.TokenProperties == nil || !response.TokenProperties.Valid {
		return nil, nil
	}
	if action != "" && response.TokenProperties.Action != action {
		deps.Log.Warn("captcha action mismatch",
			zap.String("expected", action),
			zap.String("got", response.TokenProperties.Action))
		return nil, nil
	}

	result := &dto.AssessmentResult{Action: response.TokenProperties.Action}
	if response.RiskAnalysis != nil {
		result.Score = response.RiskAnalysis.Score
		for _, reason := range response.RiskAnalysis.Reasons {
			result.Reasons = append(result.Reasons, reason.String())
		}
	}
	return result, nil
}
