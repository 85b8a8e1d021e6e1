package model

import "time"

// SystemSettingModel is a plain key/value row. Known keys:
//
//	edit_window_minutes                  "60"
//	require_attachments_for_validation   "false"
type SystemSettingModel struct {
	SettingKey   string    `json:"setting_key" gorm:"column:setting_key;type:varchar(60);primaryKey"`
	SettingValue string    `json:"setting_value" gorm:"column:setting_value;type:text;not null"`
	UpdatedBy    string    `json:"updated_by,omitempty" gorm:"column:updated_by;type:varchar(100)"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (SystemSettingModel) TableName() string {
	return "system_settings"
}

const (
	KeyEditWindowMinutes               = "edit_window_minutes"
	KeyRequireAttachmentsForValidation = "require_attachments_for_validation"
)
