package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingPending   BookingStatus = "pending"
)

// Booking has no overlap constraint; double-booking a professional is allowed.
type Booking struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	ClientName     string        `gorm:"not null" json:"clientName"`
	ClientPhone    string        `json:"clientPhone"`
	Service        string        `gorm:"not null" json:"service"`
	ProfessionalID uuid.UUID     `gorm:"type:uuid;index" json:"professionalId"`
	Date           time.Time     `gorm:"column:scheduled_at;index;not null" json:"date"`
	Status         BookingStatus `gorm:"type:varchar(20);default:'confirmed'" json:"status"`
	PaymentMethod  PaymentMethod `gorm:"type:varchar(20)" json:"paymentMethod,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = BookingConfirmed
	}
	return
}
