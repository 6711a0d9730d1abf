package controllers

import (
	"net/http"

	"studio-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogController serves the public booking form. It reads the replica
// and never exposes commissions.
type CatalogController struct {
	*Deps
}

type Professional struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Photo      *string   `json:"photo,omitempty"`
	AvatarSeed string    `json:"avatarSeed"`
}

func (cc *CatalogController) GetServices(c *gin.Context) {
	services := cc.Replica.Ledger().Services
	if services == nil {
		services = []models.Service{}
	}
	c.JSON(http.StatusOK, services)
}

func (cc *CatalogController) GetProfessionals(c *gin.Context) {
	employees := cc.Replica.Ledger().Employees
	out := make([]Professional, 0, len(employees))
	for _, e := range employees {
		out = append(out, Professional{ID: e.ID, Name: e.Name, Role: e.Role, Photo: e.Photo, AvatarSeed: e.AvatarSeed})
	}
	c.JSON(http.StatusOK, out)
}
