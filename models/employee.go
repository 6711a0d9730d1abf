package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultEmployeeRole = "Profesional"
	DefaultCommission   = 40
)

type Employee struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string      `gorm:"not null" json:"name"`
	Role       string      `json:"role"`
	Photo      *string     `gorm:"type:text" json:"photo,omitempty"`
	AvatarSeed string      `json:"avatarSeed"`
	Commission NumericText `gorm:"type:varchar(32)" json:"commission"`
	CreatedAt  time.Time   `json:"createdAt"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.AvatarSeed == "" {
		e.AvatarSeed = e.Name
	}
	return
}

// CommissionPercent is the stored commission coerced to a number; anything
// that does not parse counts as 0.
func (e Employee) CommissionPercent() float64 {
	return e.Commission.Number()
}
