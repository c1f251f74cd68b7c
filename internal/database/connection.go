// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/letmemugyou/backend/internal/config"
	"github.com/letmemugyou/backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// Enable UUID extension
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.CartSession{},
		&models.AdminSetting{},
		&models.AuditLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category, active)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_payment_status ON orders(payment_status)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",

		// Cart session cleanup scans by age
		"CREATE INDEX IF NOT EXISTS idx_cart_sessions_updated ON cart_sessions(updated_at)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed initial data
func SeedInitialData(db *gorm.DB, cfg *config.Config) error {
	log.Println("Seeding initial data...")

	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)

	if productCount == 0 {
		products := []models.Product{
			{
				Name:        "Insulated Tumbler 20oz",
				Category:    models.CategoryMug,
				BasePrice:   24.99,
				Description: "20oz stainless steel insulated tumbler. Perfect for hot or cold drinks.",
				ImageURL:    "/static/products/tumbler-20oz.svg",
				Sizes:       []string{"20oz"},
				Active:      true,
			},
			{
				Name:        "Insulated Tumbler 30oz",
				Category:    models.CategoryMug,
				BasePrice:   29.99,
				Description: "30oz stainless steel insulated tumbler. Extra capacity for all-day hydration.",
				ImageURL:    "/static/products/tumbler-30oz.svg",
				Sizes:       []string{"30oz"},
				Active:      true,
			},
			{
				Name:        "Insulated Tumbler 40oz",
				Category:    models.CategoryMug,
				BasePrice:   34.99,
				Description: "40oz stainless steel insulated tumbler. Maximum capacity for serious hydration.",
				ImageURL:    "/static/products/tumbler-40oz.svg",
				Sizes:       []string{"40oz"},
				Active:      true,
			},
			{
				Name:        "Pint Glass",
				Category:    models.CategoryGlass,
				BasePrice:   14.99,
				Description: "Classic 16oz pint glass. Great for beer, cocktails, or everyday use.",
				ImageURL:    "/static/products/pint-glass.svg",
				Active:      true,
			},
			{
				Name:        "Wine Glass",
				Category:    models.CategoryGlass,
				BasePrice:   16.99,
				Description: "Elegant stemmed wine glass. Perfect for wine tastings and special occasions.",
				ImageURL:    "/static/products/wine-glass.svg",
				Active:      true,
			},
			{
				Name:        "Rocks Glass",
				Category:    models.CategoryGlass,
				BasePrice:   12.99,
				Description: "Classic rocks/whiskey glass. Ideal for spirits on the rocks.",
				ImageURL:    "/static/products/rocks-glass.svg",
				Active:      true,
			},
			{
				Name:        "Round Coaster",
				Category:    models.CategoryCoaster,
				BasePrice:   8.99,
				Description: "4-inch round stainless steel coaster. Protects surfaces in style.",
				ImageURL:    "/static/products/coaster-round.svg",
				Active:      true,
			},
			{
				Name:        "Square Coaster",
				Category:    models.CategoryCoaster,
				BasePrice:   8.99,
				Description: "4-inch square stainless steel coaster. Modern design for any setting.",
				ImageURL:    "/static/products/coaster-square.svg",
				Active:      true,
			},
			{
				Name:        "Keychain",
				Category:    models.CategoryKeychain,
				BasePrice:   6.99,
				Description: "Stainless steel keychain. Carry your brand everywhere.",
				ImageURL:    "/static/products/keychain.svg",
				Active:      true,
			},
		}

		for i := range products {
			if err := db.Create(&products[i]).Error; err != nil {
				return fmt.Errorf("failed to seed product %q: %w", products[i].Name, err)
			}
		}
	}

	// Default settings, only where absent
	defaultSettings := map[string]string{
		models.SettingPayPalMode: cfg.PayPal.DefaultMode,
		models.SettingTaxRate:    models.DefaultTaxRate,
	}

	for key, value := range defaultSettings {
		var count int64
		db.Model(&models.AdminSetting{}).Where("key = ?", key).Count(&count)

		if count == 0 {
			setting := models.AdminSetting{Key: key, Value: value}
			if err := db.Create(&setting).Error; err != nil {
				log.Printf("Warning: Failed to create setting %s: %v", key, err)
			}
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}
