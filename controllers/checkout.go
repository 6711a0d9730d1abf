package controllers

import (
	"errors"
	"net/http"
	"strings"

	"studio-backend/models"
	"studio-backend/payments"
	"studio-backend/reports"
	"studio-backend/store"
	"studio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TransactionController struct {
	*Deps
}

type PartialInput struct {
	Method models.PaymentMethod `json:"method"`
	Amount models.NumericText   `json:"amount"`
}

// CheckoutInput charges one service. With Split set, Partials must add up
// to Price; otherwise PaymentMethod (default EFECTIVO) covers it all.
type CheckoutInput struct {
	EmployeeID    uuid.UUID            `json:"employeeId" binding:"required"`
	ServiceName   string               `json:"serviceName" binding:"required"`
	Price         models.NumericText   `json:"price"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	Split         bool                 `json:"split"`
	Partials      []PartialInput       `json:"partials"`
}

func (tc *TransactionController) GetTransactions(c *gin.Context) {
	txs, err := tc.Store.ListTransactions(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (tc *TransactionController) Checkout(c *gin.Context) {
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	ctx := c.Request.Context()

	if _, err := tc.Store.GetEmployee(ctx, input.EmployeeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Employee not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	price, _ := input.Price.Float()
	checkout, err := payments.NewCheckout(input.EmployeeID, strings.TrimSpace(input.ServiceName), price)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if input.Split {
		checkout.SetSplit(true)
		for _, p := range input.Partials {
			if err := checkout.AddPartial(p.Method, p.Amount); err != nil {
				utils.RespondWithError(c, http.StatusBadRequest, err.Error())
				return
			}
		}
	} else if input.PaymentMethod != "" {
		if err := checkout.SetMethod(input.PaymentMethod); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	txs, err := checkout.Commit(tc.now())
	var mismatch *payments.MismatchError
	if errors.As(err, &mismatch) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error":     err.Error(),
			"total":     mismatch.Total,
			"paid":      reports.Round2(mismatch.Paid),
			"shortfall": reports.Round2(mismatch.Shortfall),
		})
		return
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := tc.Store.CreateTransactions(ctx, txs); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save transactions")
		return
	}
	c.JSON(http.StatusCreated, txs)
}

func (tc *TransactionController) DeleteTransaction(c *gin.Context) {
	id, ok := parseID(c, "transaction")
	if !ok || !requireConfirm(c) {
		return
	}
	if err := tc.Store.Delete(c.Request.Context(), store.Transactions, id); err != nil {
		respondStoreError(c, err, "transaction")
		return
	}
	c.Status(http.StatusNoContent)
}
