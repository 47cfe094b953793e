package auth

import (
	"strings"

	"certiflow-backend/internal/apperr"
	"certiflow-backend/internal/config"
	"certiflow-backend/internal/database"
	"certiflow-backend/internal/doclog"
	"certiflow-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// POST /api/auth/register
func RegisterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		result, err := Register(database.DB, body)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success":      true,
			"message":      "Kayıt başarılı! Giriş sayfasına yönlendiriliyorsunuz...",
			"company_id":   result.CompanyID,
			"user_id":      result.UserID,
			"redirect_url": "/auth/login",
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		p, err := Authenticate(database.DB, body.Email, body.Password)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		token, err := GenerateToken(cfg.JWTSecret, p, body.RememberMe)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token oluşturulamadı")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Giriş başarılı",
			"token":   token,
			"user": fiber.Map{
				"id":           p.UserID,
				"full_name":    p.FullName,
				"email":        p.Email,
				"role":         p.Role,
				"role_name":    p.Role.DisplayName(),
				"company_id":   p.CompanyID,
				"company_name": p.CompanyName,
			},
			"redirect_url": "/",
		})
	}
}

// POST /api/auth/logout
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		_ = doclog.Write(database.DB, doclog.Entry{
			UserID:      p.UserID,
			Action:      models.ActionUserLogout,
			Description: "Kullanıcı çıkış yaptı",
			IPAddress:   c.IP(),
			Success:     true,
		})

		// Token istemci tarafında atılır, sunucuda durum tutulmaz
		return c.JSON(fiber.Map{
			"success":      true,
			"message":      "Çıkış yapıldı",
			"redirect_url": "/auth/login",
		})
	}
}

// GET /api/auth/session
// Public endpoint: token varsa ve geçerliyse oturum bilgisini döndürür.
func CheckSessionHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.JSON(fiber.Map{"success": true, "is_logged_in": false})
		}

		p, err := ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return c.JSON(fiber.Map{"success": true, "is_logged_in": false})
		}

		return c.JSON(fiber.Map{
			"success":      true,
			"is_logged_in": true,
			"user": fiber.Map{
				"id":           p.UserID,
				"full_name":    p.FullName,
				"email":        p.Email,
				"role":         p.Role,
				"company_id":   p.CompanyID,
				"company_name": p.CompanyName,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		var user models.User
		if err := database.DB.Preload("Company").First(&user, p.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		resp := fiber.Map{
			"id":        user.ID,
			"full_name": user.FullName,
			"email":     user.Email,
			"phone":     user.Phone,
			"role":      user.Role,
			"role_name": user.Role.DisplayName(),
			"active":    user.Active,
		}
		if user.Company != nil {
			resp["company"] = fiber.Map{
				"id":         user.Company.ID,
				"name":       user.Company.Name,
				"tax_number": user.Company.TaxNumber,
				"email":      user.Company.Email,
			}
		}
		if user.LastLoginAt != nil {
			resp["last_login_at"] = user.LastLoginAt.Format("2006-01-02 15:04:05")
		}

		return c.JSON(resp)
	}
}
