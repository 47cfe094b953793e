package models

import (
	"time"

	"gorm.io/gorm"
)

type Company struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:255;not null"`
	TaxNumber     string `gorm:"size:50;not null;index:idx_companies_tax_number,unique,where:deleted_at IS NULL"`
	Address       string `gorm:"size:500"`
	Phone         string `gorm:"size:20"`
	Email         string `gorm:"size:100;not null;index:idx_companies_email,unique,where:deleted_at IS NULL"`
	ContactPerson string `gorm:"size:100;not null"`
	ContactPhone  string `gorm:"size:20"`
	Active        bool   `gorm:"default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`

	Users     []User     `gorm:"foreignKey:CompanyID"`
	Documents []Document `gorm:"foreignKey:CompanyID"`
}
