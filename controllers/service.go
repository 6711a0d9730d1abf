// controllers/service.go
package controllers

import (
	"net/http"
	"strings"

	"studio-backend/models"
	"studio-backend/store"
	"studio-backend/utils"

	"github.com/gin-gonic/gin"
)

type ServiceController struct {
	*Deps
}

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name string `json:"name" binding:"required"`
}

func (sc *ServiceController) GetServices(c *gin.Context) {
	services, err := sc.Store.ListServices(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}
	c.JSON(http.StatusOK, services)
}

// CreateService adds a catalog entry. Duplicate names are allowed.
func (sc *ServiceController) CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Name is required")
		return
	}

	service := models.Service{Name: name}
	if err := sc.Store.Create(c.Request.Context(), &service); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}
	c.JSON(http.StatusCreated, service)
}

func (sc *ServiceController) DeleteService(c *gin.Context) {
	id, ok := parseID(c, "service")
	if !ok || !requireConfirm(c) {
		return
	}
	if err := sc.Store.Delete(c.Request.Context(), store.Services, id); err != nil {
		respondStoreError(c, err, "service")
		return
	}
	c.Status(http.StatusNoContent)
}
