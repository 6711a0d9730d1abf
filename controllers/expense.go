package controllers

import (
	"net/http"
	"strings"

	"studio-backend/models"
	"studio-backend/store"
	"studio-backend/utils"

	"github.com/gin-gonic/gin"
)

type ExpenseController struct {
	*Deps
}

type CreateExpenseInput struct {
	Category    string             `json:"category" binding:"required"`
	Amount      models.NumericText `json:"amount"`
	Description string             `json:"description"`
}

func (ec *ExpenseController) GetExpenses(c *gin.Context) {
	expenses, err := ec.Store.ListExpenses(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (ec *ExpenseController) CreateExpense(c *gin.Context) {
	var input CreateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !models.IsExpenseCategory(input.Category) {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown category, expected one of: "+strings.Join(models.ExpenseCategories, ", "))
		return
	}
	amount, ok := input.Amount.Float()
	if !ok || amount <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Amount must be a positive number")
		return
	}

	expense := models.Expense{
		Category:    input.Category,
		Amount:      amount,
		Description: strings.TrimSpace(input.Description),
		Date:        ec.now(),
	}
	if err := ec.Store.Create(c.Request.Context(), &expense); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create expense")
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (ec *ExpenseController) DeleteExpense(c *gin.Context) {
	id, ok := parseID(c, "expense")
	if !ok || !requireConfirm(c) {
		return
	}
	if err := ec.Store.Delete(c.Request.Context(), store.Expenses, id); err != nil {
		respondStoreError(c, err, "expense")
		return
	}
	c.Status(http.StatusNoContent)
}
