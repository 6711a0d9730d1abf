package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	PinGatePlain  = "plain"
	PinGateBcrypt = "bcrypt"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Studio    StudioConfig
	Twilio    TwilioConfig
	Telegram  TelegramConfig
	Reminders ReminderConfig
}

type AppConfig struct {
	Port           string
	AllowedOrigins []string
	SlowRequest    time.Duration
	PinGate        string
}

type DatabaseConfig struct {
	Driver string
	URL    string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// StudioConfig is what the reports print about the business.
type StudioConfig struct {
	Name        string
	Currency    string
	CountryCode string
	Location    *time.Location
}

type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	WhatsAppNumber string
	ReportTo       string
}

func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.WhatsAppNumber != ""
}

type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != 0
}

type ReminderConfig struct {
	Cron string
}

// Load reads the configuration from the environment. godotenv has already
// been applied by main.
func Load() (*Config, error) {
	cfg := &Config{}

	slowMs, err := strconv.Atoi(getEnv("SLOW_REQUEST_MS", "200"))
	if err != nil {
		return nil, fmt.Errorf("invalid SLOW_REQUEST_MS: %w", err)
	}
	cfg.App = AppConfig{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		SlowRequest:    time.Duration(slowMs) * time.Millisecond,
		PinGate:        strings.ToLower(getEnv("PIN_GATE", PinGatePlain)),
	}

	cfg.Database = DatabaseConfig{
		Driver: strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		URL:    getEnv("DB_URL", ""),
	}

	expiryHours, err := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_HOURS: %w", err)
	}
	cfg.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET", ""),
		Expiry: time.Duration(expiryHours) * time.Hour,
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "America/Lima"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Studio = StudioConfig{
		Name:        getEnv("STUDIO_NAME", "MIVIS STUDIO"),
		Currency:    getEnv("CURRENCY_SYMBOL", "S/."),
		CountryCode: getEnv("COUNTRY_CODE", "51"),
		Location:    loc,
	}

	cfg.Twilio = TwilioConfig{
		AccountSID:     getEnv("TWILIO_ACCOUNT_SID", ""),
		AuthToken:      getEnv("TWILIO_AUTH_TOKEN", ""),
		WhatsAppNumber: getEnv("TWILIO_WHATSAPP_NUMBER", ""),
		ReportTo:       getEnv("REPORT_WHATSAPP_TO", ""),
	}

	var chatID int64
	if raw := getEnv("TELEGRAM_CHAT_ID", ""); raw != "" {
		chatID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
	}
	cfg.Telegram = TelegramConfig{
		BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		ChatID:   chatID,
	}

	cfg.Reminders = ReminderConfig{Cron: getEnv("REMINDER_CRON", "0 9 * * *")}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWT.Expiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY_HOURS must be positive")
	}
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DB_URL is required for postgres")
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.App.PinGate != PinGatePlain && c.App.PinGate != PinGateBcrypt {
		return fmt.Errorf("PIN_GATE must be %q or %q", PinGatePlain, PinGateBcrypt)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
