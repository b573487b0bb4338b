package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/l3hner/hauspilot/config"
	"github.com/l3hner/hauspilot/middleware"
	"github.com/l3hner/hauspilot/model"
	"github.com/l3hner/hauspilot/syncer"
)

type Deps struct {
	Hub *syncer.Hub
	Cfg *config.Config
	Log *zap.Logger
}

func DashboardController(router *gin.Engine, deps Deps) {
	router.GET("/dashboard", middleware.AccessTokenMiddleware([]byte(deps.Cfg.JWTSecretKey)), func(c *gin.Context) {
		Dashboard(c, deps)
	})
}

// Dashboard returns the derived aggregates of the current project. Nothing
// here is persisted; everything is computed from the mirrored collections.
func Dashboard(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	current := sy.CurrentProject()
	if current == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No project selected"})
		return
	}

	expenses := sy.Expenses()
	tasks := sy.Tasks()

	phaseProgress := make(map[string]int, len(model.DefaultPhases))
	for _, phase := range model.DefaultPhases {
		phaseProgress[phase.PhaseID] = syncer.PhaseProgress(tasks, phase.PhaseID)
	}

	c.JSON(http.StatusOK, gin.H{
		"projectId":         current.ID,
		"budget":            current.Budget,
		"totalExpenses":     syncer.TotalExpenses(expenses),
		"remainingBudget":   syncer.RemainingBudget(current.Budget, expenses),
		"budgetUsedPercent": syncer.BudgetUsedPercent(current.Budget, expenses),
		"phaseProgress":     phaseProgress,
		"overallProgress":   syncer.OverallProgress(current.ActivePhaseID),
		"activePhaseId":     current.ActivePhaseID,
	})
}
