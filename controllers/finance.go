package controllers

import (
	"log"
	"net/http"

	"studio-backend/models"
	"studio-backend/reports"
	"studio-backend/utils"

	"github.com/gin-gonic/gin"
)

type FinanceController struct {
	*Deps
}

type FinanceSummary struct {
	Label string        `json:"label"`
	Range reports.Range `json:"range"`
	reports.LedgerSummary
	ExpenseList []models.Expense `json:"expenses"`
}

// ResetInput needs both flags: the reset cannot be undone.
type ResetInput struct {
	Confirm      bool `json:"confirm"`
	ConfirmAgain bool `json:"confirmAgain"`
}

// GetSummary returns income, expenses and profit for the month at offset.
func (fc *FinanceController) GetSummary(c *gin.Context) {
	offset, ok := offsetParam(c)
	if !ok {
		return
	}
	r := reports.PeriodRange(reports.Month, offset, fc.now())
	ledger := fc.Replica.Ledger().In(fc.location())
	report := ledger.Report(r)

	expenses := make([]models.Expense, 0)
	for _, e := range ledger.Expenses {
		if r.Contains(e.Date) {
			expenses = append(expenses, e)
		}
	}
	c.JSON(http.StatusOK, FinanceSummary{
		Label:         reports.RangeLabel(reports.Month, r),
		Range:         r,
		LedgerSummary: report.Ledger,
		ExpenseList:   expenses,
	})
}

// ResetLedger deletes every transaction and expense. Deletes run one by one;
// when some fail the response reports how many went through.
func (fc *FinanceController) ResetLedger(c *gin.Context) {
	var input ResetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}
	if !input.Confirm || !input.ConfirmAgain {
		utils.RespondWithError(c, http.StatusPreconditionRequired, "Both confirm and confirmAgain are required")
		return
	}

	deleted, err := fc.Store.ResetLedger(c.Request.Context())
	if err != nil {
		log.Printf("[FINANCE] reset incomplete after %d deletes: %v", deleted, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "Reset incomplete",
			"deleted": deleted,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
