package database

import (
	"certiflow-backend/internal/config"
	"certiflow-backend/internal/logger"
	"certiflow-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logger.Get().Fatal("Veritabanına bağlanılamadı", zap.Error(err))
	}

	if err := Migrate(DB); err != nil {
		logger.Get().Fatal("Migration hatası", zap.Error(err))
	}

	logger.Get().Info("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate tabloları bağımlılık sırasına göre oluşturur:
// Firmalar -> Kullanıcılar -> Belgeler -> BelgeLog -> Ayarlar.
// Eksik kolonlar AutoMigrate tarafından eklenir, mevcut veri korunur.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Document{},
		&models.DocumentLog{},
		&models.Setting{},
	); err != nil {
		return err
	}

	return SeedSettings(db)
}

// SeedSettings eksik sistem ayarlarını varsayılan değerleriyle ekler.
// Mevcut ayarların değerine dokunmaz.
func SeedSettings(db *gorm.DB) error {
	defaults := []models.Setting{
		{
			Key:          models.SettingMaxFileSizeMB,
			DisplayName:  "Maksimum Dosya Boyutu (MB)",
			Value:        "10",
			DefaultValue: "10",
			DataType:     "int",
			Description:  "Yüklenebilecek maksimum dosya boyutu (MB cinsinden)",
			System:       true,
		},
		{
			Key:          models.SettingAllowedExtensions,
			DisplayName:  "İzin Verilen Dosya Türleri",
			Value:        ".pdf,.doc,.docx,.xls,.xlsx,.jpg,.jpeg,.png",
			DefaultValue: ".pdf,.doc,.docx,.xls,.xlsx,.jpg,.jpeg,.png",
			DataType:     "string",
			Description:  "Yüklenebilecek dosya uzantıları (virgülle ayrılmış)",
			System:       true,
		},
		{
			Key:          models.SettingAutoApprove,
			DisplayName:  "Otomatik Onay Etkin",
			Value:        "0",
			DefaultValue: "0",
			DataType:     "bit",
			Description:  "Belirli koşullarda otomatik onay yapılması",
			System:       true,
		},
	}

	for _, s := range defaults {
		var count int64
		if err := db.Model(&models.Setting{}).Where("key = ?", s.Key).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			s.Active = true
			if err := db.Create(&s).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// TableNames migration sırasındaki tablo adları (kontrol endpoint'i için).
func TableNames(db *gorm.DB) []string {
	return []string{
		tableName(db, &models.Company{}),
		tableName(db, &models.User{}),
		tableName(db, &models.Document{}),
		tableName(db, &models.DocumentLog{}),
		tableName(db, &models.Setting{}),
	}
}

func tableName(db *gorm.DB, model any) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return ""
	}
	return stmt.Schema.Table
}
