package models

import (
	"time"

	"gorm.io/gorm"
)

// ApprovalStatus: belgenin onay yaşam döngüsündeki durumu.
type ApprovalStatus int

const (
	StatusDraft     ApprovalStatus = 0
	StatusPending   ApprovalStatus = 1
	StatusInReview  ApprovalStatus = 2
	StatusApproved  ApprovalStatus = 3
	StatusRejected  ApprovalStatus = 4
	StatusCancelled ApprovalStatus = 5
)

func (s ApprovalStatus) DisplayName() string {
	switch s {
	case StatusDraft:
		return "Taslak"
	case StatusPending:
		return "Onay Bekliyor"
	case StatusInReview:
		return "İnceleniyor"
	case StatusApproved:
		return "Onaylandı"
	case StatusRejected:
		return "Reddedildi"
	case StatusCancelled:
		return "İptal Edildi"
	default:
		return "Bilinmeyen"
	}
}

type Document struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"size:255;not null"`
	Type            string `gorm:"size:100"`
	Number          string `gorm:"size:50"`
	FilePath        string `gorm:"size:500;not null"`
	FileSize        int64
	Description     string         `gorm:"size:1000"`
	// default tag yok: GORM default'lu alanlarda sıfır değeri (Taslak=0)
	// insert'ten düşürür; durum her kayıt noktasında açıkça verilir
	ApprovalStatus  ApprovalStatus `gorm:"not null"`
	UploadedByID    uint           `gorm:"index;not null"`
	UploadedBy      User           `gorm:"foreignKey:UploadedByID"`
	AssignedToID    *uint          `gorm:"index"`
	AssignedTo      *User          `gorm:"foreignKey:AssignedToID"`
	ApprovedByID    *uint
	ApprovedBy      *User `gorm:"foreignKey:ApprovedByID"`
	ApprovalDate    *time.Time
	RejectionReason string `gorm:"size:500"`
	CompanyID       *uint  `gorm:"index"`
	Company         *Company
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
