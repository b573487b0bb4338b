package expense

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

func ExpenseController(router *gin.Engine, deps Deps) {
	routes := router.Group("/expenses", middleware.AccessTokenMiddleware([]byte(deps.Cfg.JWTSecretKey)))
	{
		routes.GET("", func(c *gin.Context) { ListExpenses(c, deps) })
		routes.POST("", func(c *gin.Context) { CreateExpense(c, deps) })
		routes.PATCH("/:id", func(c *gin.Context) { UpdateExpense(c, deps) })
		routes.DELETE("/:id", func(c *gin.Context) { DeleteExpense(c, deps) })
	}
}

func ListExpenses(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))
	c.JSON(http.StatusOK, gin.H{
		"expenses":   sy.Expenses(),
		"categories": model.ExpenseCategories,
	})
}

func CreateExpense(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	current := sy.CurrentProject()
	if current == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No project selected"})
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	id, err := sy.CreateExpense(c.Request.Context(), current.ID, syncer.ExpenseInput{
		Type:     req.Type,
		Amount:   req.Amount,
		Date:     req.Date,
		Category: req.Category,
		Note:     req.Note,
	})
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Expense created successfully",
		"expenseId": id,
	})
}

func UpdateExpense(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	err := sy.UpdateExpense(c.Request.Context(), c.Param("id"), syncer.ExpenseUpdate{
		Type:     req.Type,
		Amount:   req.Amount,
		Date:     req.Date,
		Category: req.Category,
		Note:     req.Note,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense updated successfully"})
}

func DeleteExpense(c *gin.Context, deps Deps) {
	sy := deps.Hub.Acquire(c.MustGet("userId").(string))

	if err := sy.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
