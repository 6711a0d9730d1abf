package models

const (
	SettingsID = "config"
	DefaultPin = "1234"
)

// Settings is the singleton settings/config document.
type Settings struct {
	ID  string `gorm:"primaryKey;type:varchar(20)" json:"id"`
	Pin string `gorm:"type:varchar(100)" json:"-"`
}
