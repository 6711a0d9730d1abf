package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ExpenseCategories = []string{"Pago Personal", "Luz", "Agua", "Internet", "Local", "Insumos", "Otros"}

func IsExpenseCategory(category string) bool {
	for _, c := range ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Expense struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Category    string    `gorm:"type:varchar(40);not null" json:"category"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `gorm:"column:occurred_at;index;not null" json:"date"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
