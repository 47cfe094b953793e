package main

import (
	"strings"

	"certiflow-backend/internal/auth"
	"certiflow-backend/internal/config"
	"certiflow-backend/internal/database"
	"certiflow-backend/internal/doclog"
	"certiflow-backend/internal/documents"
	"certiflow-backend/internal/logger"
	"certiflow-backend/internal/metrics"
	"certiflow-backend/internal/models"
	"certiflow-backend/internal/settings"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg)
	database.Init(cfg)

	httpMetrics := metrics.NewHTTPMetrics("certiflow")

	app := fiber.New(fiber.Config{
		BodyLimit: 64 * 1024 * 1024, // asıl dosya limiti ayarlardan denetlenir
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"success": false,
					"error":   e.Message,
				})
			}
			logger.Get().Error("Beklenmeyen hata", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Beklenmeyen sunucu hatası",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Use(logger.Middleware())
	app.Use(httpMetrics.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(metrics.GetPrometheusHandler()))

	// Yüklenen belgeler statik olarak sunulur
	app.Static("/uploads", cfg.UploadPath)

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler())
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Get("/auth/session", auth.CheckSessionHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Post("/auth/logout", auth.LogoutHandler())

	// Belgeler
	protected.Post("/documents", documents.UploadDocumentHandler(cfg))
	protected.Get("/documents", documents.ListDocumentsHandler())
	protected.Post("/documents/import", documents.ImportDocumentsHandler())
	protected.Get("/documents/company-users", documents.CompanyUsersHandler())
	protected.Get("/documents/:id", documents.GetDocumentHandler())
	protected.Put("/documents/:id", documents.UpdateDocumentHandler())
	protected.Delete("/documents/:id", documents.DeleteDocumentHandler())
	protected.Get("/documents/:id/logs", doclog.ListDocumentLogsHandler())
	protected.Post("/documents/:id/submit", documents.SubmitDocumentHandler())
	protected.Post("/documents/:id/cancel", documents.CancelDocumentHandler())

	// Onay/red: sadece onay yetkisi olan roller
	deciders := []models.Role{models.RoleAdministrator, models.RoleManager, models.RoleApprover}
	protected.Post("/documents/:id/approve", auth.RequireRole(deciders...), documents.ApproveDocumentHandler())
	protected.Post("/documents/:id/reject", auth.RequireRole(deciders...), documents.RejectDocumentHandler())

	// Sistem ayarları
	protected.Get("/settings", settings.ListSettingsHandler())
	protected.Put("/settings/:key", auth.RequireRole(models.RoleAdministrator), settings.UpdateSettingHandler())
	protected.Post("/settings/verify-database", auth.RequireRole(models.RoleAdministrator), settings.VerifyDatabaseHandler())

	logger.Get().Info("Server çalışıyor", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logger.Get().Fatal("Server başlatılamadı", zap.Error(err))
	}
}
