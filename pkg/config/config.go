package config

import (
	"errors"

	"github.com/kelseyhightower/envconfig"
)

// StaffAccount is one of the three static login accounts seeded at startup.
type StaffAccount struct {
	Username string
	FullName string
	Role     string
	Password string
}

// Config holds runtime configuration for the storeroom service.
type Config struct {
	Port        string `envconfig:"PORT" default:"3000"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER" default:"storeroom"`
	DBPassword  string `envconfig:"DB_PASSWORD" default:"storeroom"`
	DBName      string `envconfig:"DB_NAME" default:"storeroom"`

	JWTSecret string `envconfig:"JWT_SECRET" default:"change-me-in-production"`

	// Static staff account passwords. Usernames and roles are fixed.
	ManagerPassword  string `envconfig:"MANAGER_PASSWORD" default:"manager123"`
	PurchasePassword string `envconfig:"PURCHASE_PASSWORD" default:"purchase123"`
	KitchenPassword  string `envconfig:"KITCHEN_PASSWORD" default:"kitchen123"`

	// Ledger rows older than this many days are purged.
	LedgerRetentionDays int `envconfig:"LEDGER_RETENTION_DAYS" default:"30"`

	// Items below this percentage of total purchased count as low stock.
	LowStockPercent float64 `envconfig:"LOW_STOCK_PERCENT" default:"10"`

	// Optional Telegram low-stock alerts; disabled when either is empty.
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `envconfig:"TELEGRAM_CHAT_ID"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.LedgerRetentionDays <= 0 {
		return nil, errors.New("ledger retention must be at least one day")
	}
	return &cfg, nil
}

// StaffAccounts returns the three fixed accounts with their configured
// passwords. This is the whole user base of the system.
func (c *Config) StaffAccounts() []StaffAccount {
	return []StaffAccount{
		{Username: "manager", FullName: "Store Manager", Role: "MANAGER", Password: c.ManagerPassword},
		{Username: "purchase_manager", FullName: "Purchase Manager", Role: "PURCHASE", Password: c.PurchasePassword},
		{Username: "kitchen_manager", FullName: "Kitchen Manager", Role: "KITCHEN", Password: c.KitchenPassword},
	}
}
