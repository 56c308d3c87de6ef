package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"spendlog/internal/dto"
	"spendlog/internal/models"
	"spendlog/internal/service"
)

type ExpenseHandler struct {
	expenses *service.ExpenseService
	logger   *zap.Logger
}

func NewExpenseHandler(expenses *service.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenses: expenses,
		logger:   logger,
	}
}

// ListExpenses serves GET /api/v1/users/:id/expenses. With from/to query
// params it returns the date range; otherwise the most recent ones, capped by
// limit.
func (h *ExpenseHandler) ListExpenses(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var expenses []*models.Expense
	fromStr := c.Query("from")
	toStr := c.Query("to")

	if fromStr != "" || toStr != "" {
		from, err := parseTimeParam(fromStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid 'from' date",
			})
		}
		to, err := parseTimeParam(toStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid 'to' date",
			})
		}
		expenses, err = h.expenses.ExpensesBetween(c.Context(), userID, from, to)
		if err != nil {
			h.logger.Error("Failed to list expenses by range", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to list expenses",
			})
		}
	} else {
		limit := c.QueryInt("limit", 10)
		expenses, err = h.expenses.LastExpenses(c.Context(), userID, limit)
		if err != nil {
			h.logger.Error("Failed to list recent expenses", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to list expenses",
			})
		}
	}

	responses := make([]dto.ExpenseResponse, len(expenses))
	for i, exp := range expenses {
		responses[i] = dto.ExpenseResponse{
			ID:          exp.ID.String(),
			Amount:      exp.Amount.String(),
			Currency:    exp.Currency,
			Category:    exp.Category,
			Description: exp.Description,
			Place:       exp.Place,
			Date:        exp.ExpenseDate.Format(time.RFC3339),
			Source:      string(exp.Source),
			CreatedAt:   exp.CreatedAt.Format(time.RFC3339),
		}
	}

	return c.JSON(responses)
}

func parseTimeParam(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
