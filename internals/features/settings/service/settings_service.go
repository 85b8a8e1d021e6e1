package service

import (
	"context"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"supchaissac_backend/internals/features/sessions/lifecycle"
	"supchaissac_backend/internals/features/settings/model"
)

// SettingsService reads system settings with sane fallbacks. It satisfies the
// session service's SettingsProvider port.
type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

func (s *SettingsService) get(ctx context.Context, key string) (string, bool) {
	var row model.SystemSettingModel
	if err := s.DB.WithContext(ctx).Where("setting_key = ?", key).First(&row).Error; err != nil {
		return "", false
	}
	return row.SettingValue, true
}

// EditWindowMinutes falls back to the lifecycle default when unset or garbage.
func (s *SettingsService) EditWindowMinutes(ctx context.Context) int {
	raw, ok := s.get(ctx, model.KeyEditWindowMinutes)
	if !ok {
		return lifecycle.DefaultEditWindowMinutes
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return lifecycle.DefaultEditWindowMinutes
	}
	return n
}

func (s *SettingsService) RequireAttachmentsForValidation(ctx context.Context) bool {
	raw, ok := s.get(ctx, model.KeyRequireAttachmentsForValidation)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return b
}

// Set upserts one setting.
func (s *SettingsService) Set(ctx context.Context, key, value, updatedBy string) error {
	row := model.SystemSettingModel{
		SettingKey:   key,
		SettingValue: value,
		UpdatedBy:    updatedBy,
	}
	return s.DB.WithContext(ctx).Save(&row).Error
}

// All returns every stored setting.
func (s *SettingsService) All(ctx context.Context) ([]model.SystemSettingModel, error) {
	var rows []model.SystemSettingModel
	if err := s.DB.WithContext(ctx).Order("setting_key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
