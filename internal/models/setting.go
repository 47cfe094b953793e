package models

import "time"

// Sistem ayarları anahtarları
const (
	SettingMaxFileSizeMB     = "maks_dosya_boyutu_mb"
	SettingAllowedExtensions = "izin_verilen_dosya_turleri"
	SettingAutoApprove       = "otomatik_onay_etkin"
)

type Setting struct {
	ID           uint   `gorm:"primaryKey"`
	Key          string `gorm:"size:50;uniqueIndex;not null"`
	DisplayName  string `gorm:"size:100;not null"`
	Value        string `gorm:"size:255;not null"`
	DefaultValue string `gorm:"size:255;not null"`
	DataType     string `gorm:"size:20;not null"` // "int", "string", "bit"
	Description  string `gorm:"size:500"`
	Active       bool   `gorm:"default:true"`
	System       bool   `gorm:"default:false"` // sistem ayarları arayüzden silinemez
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
