package documents

import (
	"fmt"
	"path/filepath"
	"strings"

	"certiflow-backend/internal/apperr"
	"certiflow-backend/internal/models"
	"certiflow-backend/internal/settings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ayarlar okunamazsa kullanılacak varsayılanlar
const (
	DefaultMaxFileSizeMB     = 10
	defaultAllowedExtensions = ".pdf,.doc,.docx,.xls,.xlsx,.jpg,.jpeg,.png"
)

// UploadRules dosya kabul kurallarını taşır; sistem ayarlarından okunur.
type UploadRules struct {
	MaxSizeBytes int64
	Extensions   map[string]bool
}

// LoadUploadRules kabul kurallarını Ayarlar tablosundan yükler.
func LoadUploadRules(db *gorm.DB) UploadRules {
	maxMB := settings.GetInt(db, models.SettingMaxFileSizeMB, DefaultMaxFileSizeMB)

	extList := defaultAllowedExtensions
	if v, err := settings.Get(db, models.SettingAllowedExtensions); err == nil && v != "" {
		extList = v
	}

	exts := make(map[string]bool)
	for _, e := range strings.Split(extList, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			exts[e] = true
		}
	}

	return UploadRules{
		MaxSizeBytes: int64(maxMB) * 1024 * 1024,
		Extensions:   exts,
	}
}

// Validate dosya adını ve boyutunu kurallara göre denetler. Herhangi bir
// diske yazma işleminden ÖNCE çağrılmalıdır. Başarılıysa küçük harfli
// uzantıyı döndürür.
func (r UploadRules) Validate(filename string, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if !r.Extensions[ext] {
		return "", apperr.New(apperr.ErrUploadRejected,
			"Geçersiz dosya formatı. İzin verilen formatlar: PDF, DOC, DOCX, XLS, XLSX, JPG, PNG")
	}

	if size > r.MaxSizeBytes {
		return "", apperr.New(apperr.ErrUploadRejected,
			fmt.Sprintf("Dosya boyutu %dMB'dan büyük olamaz", r.MaxSizeBytes/(1024*1024)))
	}

	return ext, nil
}

// StoredFileName orijinal adı atıp opak bir dosya adı üretir (uuid + uzantı).
func StoredFileName(ext string) string {
	return uuid.New().String() + ext
}
