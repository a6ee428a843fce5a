package model

import "time"

// AppSetting represents a key-value pair for global application configuration.
type AppSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateSettingsRequest is the payload for bulk updating settings.
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required,min=1,dive,keys,min=1,max=64,endkeys,max=2000"`
}

// PublicSettingKeys are the settings served to unauthenticated clients.
var PublicSettingKeys = []string{
	"school_name",
	"school_logo_url",
	"app_title",
	"login_banner",
	"academic_year_label",
}

// IsPublicSetting reports whether key may be shown without authentication.
func IsPublicSetting(key string) bool {
	for _, k := range PublicSettingKeys {
		if k == key {
			return true
		}
	}
	return false
}
