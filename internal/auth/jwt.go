package auth

import (
	"time"

	"certiflow-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Principal: oturum açmış kullanıcının kimliği. Ortam (session) yerine her
// servis çağrısına açıkça geçirilir.
type Principal struct {
	UserID      uint
	FullName    string
	Email       string
	Role        models.Role
	CompanyID   *uint
	CompanyName string
}

type JWTCustomClaims struct {
	UserID      uint        `json:"user_id"`
	FullName    string      `json:"full_name"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role"`
	CompanyID   *uint       `json:"company_id"`
	CompanyName string      `json:"company_name"`
	jwt.RegisteredClaims
}

func (c *JWTCustomClaims) Principal() *Principal {
	return &Principal{
		UserID:      c.UserID,
		FullName:    c.FullName,
		Email:       c.Email,
		Role:        c.Role,
		CompanyID:   c.CompanyID,
		CompanyName: c.CompanyName,
	}
}

// GenerateToken oturum token'ı üretir. rememberMe ile süre 24 saatten 7 güne çıkar.
func GenerateToken(secret string, p *Principal, rememberMe bool) (string, error) {
	ttl := 24 * time.Hour
	if rememberMe {
		ttl = 7 * 24 * time.Hour
	}

	claims := &JWTCustomClaims{
		UserID:      p.UserID,
		FullName:    p.FullName,
		Email:       p.Email,
		Role:        p.Role,
		CompanyID:   p.CompanyID,
		CompanyName: p.CompanyName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
