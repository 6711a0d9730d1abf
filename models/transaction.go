package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "EFECTIVO"
	PaymentYape     PaymentMethod = "YAPE"
	PaymentPlin     PaymentMethod = "PLIN"
	PaymentCard     PaymentMethod = "TARJETA"
	PaymentTransfer PaymentMethod = "TRANSFERENCIA"
)

var PaymentMethods = []PaymentMethod{PaymentCash, PaymentYape, PaymentPlin, PaymentCard, PaymentTransfer}

func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// Transaction is one ledger entry. EmployeeID is not a foreign key: deleting
// an employee leaves its transactions in place.
type Transaction struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID    uuid.UUID     `gorm:"type:uuid;index;not null" json:"employeeId"`
	ServiceName   string        `gorm:"not null" json:"serviceName"`
	Price         float64       `gorm:"type:decimal(10,2);not null" json:"price"`
	Date          time.Time     `gorm:"column:occurred_at;index;not null" json:"date"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20)" json:"paymentMethod,omitempty"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
