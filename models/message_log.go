package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID    *uuid.UUID `gorm:"type:uuid;index" json:"bookingId,omitempty"`
	Kind         string     `gorm:"type:varchar(20)" json:"kind"`    // reminder, report
	Channel      string     `gorm:"type:varchar(20)" json:"channel"` // whatsapp, telegram, log
	Recipient    string     `json:"recipient"`
	Message      string     `gorm:"type:text" json:"message"`
	Status       string     `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ExternalID   string     `json:"externalId,omitempty"`
	ErrorMessage string     `gorm:"type:text" json:"errorMessage,omitempty"`
	SentAt       time.Time  `json:"sentAt"`
}

func (m *MessageLog) BeforeCreate(tx *gorm.DB) (err error) {
	m.ID = uuid.New()
	return
}
