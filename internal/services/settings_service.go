// internal/services/settings_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/letmemugyou/backend/internal/config"
	"github.com/letmemugyou/backend/internal/models"
)

type SettingsService struct {
	db     *gorm.DB
	config *config.Config
}

func NewSettingsService(db *gorm.DB, config *config.Config) *SettingsService {
	return &SettingsService{
		db:     db,
		config: config,
	}
}

// Get returns the stored value for key, or defaultValue when absent.
func (s *SettingsService) Get(ctx context.Context, key, defaultValue string) string {
	var setting models.AdminSetting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).WithField("key", key).Warn("Failed to read setting")
		}
		return defaultValue
	}
	return setting.Value
}

// Set upserts by key.
func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	var setting models.AdminSetting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.AdminSetting{Key: key, Value: value}
		if err := s.db.WithContext(ctx).Create(&setting).Error; err != nil {
			return fmt.Errorf("failed to create setting %s: %w", key, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read setting %s: %w", key, err)
	}

	setting.Value = value
	if err := s.db.WithContext(ctx).Save(&setting).Error; err != nil {
		return fmt.Errorf("failed to update setting %s: %w", key, err)
	}
	return nil
}

// TaxRate reads the configured tax rate fresh on every call. Changing it
// affects the live cart only, never already-placed orders.
func (s *SettingsService) TaxRate(ctx context.Context) float64 {
	raw := s.Get(ctx, models.SettingTaxRate, models.DefaultTaxRate)
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate < 0 {
		logrus.WithField("tax_rate", raw).Warn("Invalid tax rate setting, using default")
		rate, _ = strconv.ParseFloat(models.DefaultTaxRate, 64)
	}
	return rate
}

// PayPalMode returns "sandbox" or "live", defaulting to the configured mode.
func (s *SettingsService) PayPalMode(ctx context.Context) string {
	mode := s.Get(ctx, models.SettingPayPalMode, s.config.PayPal.DefaultMode)
	if mode != "live" {
		mode = "sandbox"
	}
	return mode
}

// AdminEmail returns the notification address, empty when unconfigured.
func (s *SettingsService) AdminEmail(ctx context.Context) string {
	return s.Get(ctx, models.SettingAdminEmail, "")
}
