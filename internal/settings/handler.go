package settings

import (
	"certiflow-backend/internal/apperr"
	"certiflow-backend/internal/auth"
	"certiflow-backend/internal/database"
	"certiflow-backend/internal/doclog"
	"certiflow-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SettingResponse struct {
	Key          string `json:"key"`
	DisplayName  string `json:"display_name"`
	Value        string `json:"value"`
	DefaultValue string `json:"default_value"`
	DataType     string `json:"data_type"`
	Description  string `json:"description"`
	System       bool   `json:"system"`
}

type UpdateSettingRequest struct {
	Value string `json:"value"`
}

// GET /api/settings
func ListSettingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := List(database.DB)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		resp := make([]SettingResponse, 0, len(items))
		for _, s := range items {
			resp = append(resp, SettingResponse{
				Key:          s.Key,
				DisplayName:  s.DisplayName,
				Value:        s.Value,
				DefaultValue: s.DefaultValue,
				DataType:     s.DataType,
				Description:  s.Description,
				System:       s.System,
			})
		}

		return c.JSON(fiber.Map{"success": true, "data": resp})
	}
}

// PUT /api/settings/:key
func UpdateSettingHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")

		var body UpdateSettingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Value == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ayar değeri boş olamaz")
		}

		if err := Update(database.DB, key, body.Value); err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		return c.JSON(fiber.Map{"success": true, "message": "Ayar güncellendi"})
	}
}

// POST /api/settings/verify-database
// Tabloları bağımlılık sırasına göre kontrol eder/oluşturur, eksik sistem
// ayarlarını ekler.
func VerifyDatabaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		if err := database.Migrate(database.DB); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Veritabanı kontrolü başarısız: "+err.Error())
		}

		tables := database.TableNames(database.DB)
		status := make([]fiber.Map, 0, len(tables))
		for _, t := range tables {
			status = append(status, fiber.Map{
				"table":  t,
				"exists": database.DB.Migrator().HasTable(t),
			})
		}

		_ = doclog.Write(database.DB, doclog.Entry{
			UserID:      p.UserID,
			Action:      models.ActionDatabaseVerified,
			Description: "Veritabanı şeması kontrol edildi",
			IPAddress:   c.IP(),
			Success:     true,
		})

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Veritabanı kontrolü tamamlandı",
			"tables":  status,
		})
	}
}
