package controllers

import (
	"net/http"
	"strings"

	"studio-backend/models"
	"studio-backend/store"
	"studio-backend/utils"

	"github.com/gin-gonic/gin"
)

type EmployeeController struct {
	*Deps
}

type CreateEmployeeInput struct {
	Name       string             `json:"name" binding:"required"`
	Role       string             `json:"role"`
	Photo      *string            `json:"photo"`
	Commission models.NumericText `json:"commission"`
}

type UpdateCommissionInput struct {
	Commission models.NumericText `json:"commission"`
}

func (ec *EmployeeController) GetEmployees(c *gin.Context) {
	employees, err := ec.Store.ListEmployees(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve employees")
		return
	}
	c.JSON(http.StatusOK, employees)
}

// AddEmployee creates a staff member. Role defaults to "Profesional" and a
// commission of 0 or one that does not parse becomes 40.
func (ec *EmployeeController) AddEmployee(c *gin.Context) {
	var input CreateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Name is required")
		return
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = models.DefaultEmployeeRole
	}
	commission := input.Commission.Number()
	if commission == 0 {
		commission = models.DefaultCommission
	}

	employee := models.Employee{
		Name:       name,
		Role:       role,
		Photo:      input.Photo,
		Commission: models.FormatNumber(commission),
	}
	if err := ec.Store.Create(c.Request.Context(), &employee); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create employee")
		return
	}
	c.JSON(http.StatusCreated, employee)
}

// UpdateCommission stores the value as typed. Reports coerce it later, so a
// non-numeric commission is kept and simply counts as 0.
func (ec *EmployeeController) UpdateCommission(c *gin.Context) {
	id, ok := parseID(c, "employee")
	if !ok {
		return
	}
	var input UpdateCommissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	err := ec.Store.Update(c.Request.Context(), store.Employees, id, map[string]interface{}{
		"commission": string(input.Commission),
	})
	if err != nil {
		respondStoreError(c, err, "employee")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "commission": input.Commission})
}

// DeleteEmployee removes the employee only. Their transactions stay in the
// ledger and keep counting toward global income.
func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	id, ok := parseID(c, "employee")
	if !ok || !requireConfirm(c) {
		return
	}
	if err := ec.Store.Delete(c.Request.Context(), store.Employees, id); err != nil {
		respondStoreError(c, err, "employee")
		return
	}
	c.Status(http.StatusNoContent)
}
