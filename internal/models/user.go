package models

import (
	"time"

	"gorm.io/gorm"
)

// Role: sayısal değer küçüldükçe yetki artar (1 = sistem yöneticisi).
type Role int

const (
	RoleAdministrator Role = 1
	RoleManager       Role = 2
	RoleApprover      Role = 3
	RoleUser          Role = 4
)

// CanDecide: belge onaylama/reddetme yetkisi olan roller.
func (r Role) CanDecide() bool {
	return r >= RoleAdministrator && r <= RoleApprover
}

func (r Role) DisplayName() string {
	switch r {
	case RoleAdministrator:
		return "Sistem Yöneticisi"
	case RoleManager:
		return "Yönetici"
	case RoleApprover:
		return "Onaylayıcı"
	case RoleUser:
		return "Kullanıcı"
	default:
		return "Bilinmeyen"
	}
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	FullName     string `gorm:"size:100;not null"`
	Email        string `gorm:"size:100;not null;index:idx_users_email,unique,where:deleted_at IS NULL"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         Role   `gorm:"not null;default:4"`
	CompanyID    *uint  `gorm:"index"`
	Company      *Company
	Phone        string `gorm:"size:20"`
	Active       bool   `gorm:"default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
