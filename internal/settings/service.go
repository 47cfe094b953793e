package settings

import (
	"strconv"
	"strings"

	"certiflow-backend/internal/apperr"
	"certiflow-backend/internal/models"

	"gorm.io/gorm"
)

// Get bir ayarın değerini döndürür. Ayar yoksa veya pasifse hata döner.
func Get(db *gorm.DB, key string) (string, error) {
	var s models.Setting
	if err := db.Where("key = ? AND active = ?", key, true).First(&s).Error; err != nil {
		return "", apperr.New(apperr.ErrNotFound, "Ayar bulunamadı: "+key)
	}
	return s.Value, nil
}

// GetInt ayarı tamsayı olarak okur, okunamazsa fallback döner.
func GetInt(db *gorm.DB, key string, fallback int) int {
	v, err := Get(db, key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

// GetBool "1"/"0" biçimindeki bit ayarını okur.
func GetBool(db *gorm.DB, key string, fallback bool) bool {
	v, err := Get(db, key)
	if err != nil {
		return fallback
	}
	return strings.TrimSpace(v) == "1"
}

// Update bir ayarın değerini günceller.
func Update(db *gorm.DB, key, value string) error {
	result := db.Model(&models.Setting{}).
		Where("key = ?", key).
		Update("value", value)
	if result.Error != nil {
		return apperr.New(apperr.ErrStorage, "Ayar güncellenemedi")
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.ErrNotFound, "Ayar bulunamadı: "+key)
	}
	return nil
}

// List aktif ayarları anahtar sırasına göre döndürür.
func List(db *gorm.DB) ([]models.Setting, error) {
	var items []models.Setting
	if err := db.Where("active = ?", true).Order("key").Find(&items).Error; err != nil {
		return nil, apperr.New(apperr.ErrStorage, "Ayarlar listelenemedi")
	}
	return items, nil
}
