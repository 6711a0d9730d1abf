package controllers

import (
	"errors"
	"log"
	"net/http"

	"studio-backend/access"
	"studio-backend/utils"

	"github.com/gin-gonic/gin"
)

// SettingsController covers the studio profile, the admin PIN and the
// example data loader.
type SettingsController struct {
	*Deps
}

type UpdatePinInput struct {
	Pin string `json:"pin" binding:"required"`
}

func (sc *SettingsController) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"studioName":  sc.Studio.Name,
		"currency":    sc.Studio.Currency,
		"countryCode": sc.Studio.CountryCode,
		"timezone":    sc.location().String(),
	})
}

func (sc *SettingsController) UpdatePin(c *gin.Context) {
	var input UpdatePinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}
	err := sc.Gate.ChangePin(c.Request.Context(), input.Pin)
	if errors.Is(err, access.ErrPinTooShort) {
		utils.RespondWithError(c, http.StatusBadRequest, "El PIN debe tener al menos 4 dígitos")
		return
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update PIN")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contraseña actualizada correctamente"})
}

// Seed loads the example staff and services. It does not check for
// existing data, so running it twice duplicates them.
func (sc *SettingsController) Seed(c *gin.Context) {
	if !requireConfirm(c) {
		return
	}
	if err := sc.Store.Seed(c.Request.Context()); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load example data")
		return
	}
	log.Println("[SETTINGS] example data loaded")
	c.JSON(http.StatusCreated, gin.H{"message": "Datos de ejemplo cargados"})
}
