package approval

import (
	"fmt"
	"strings"
	"time"

	"certiflow-backend/internal/apperr"
	"certiflow-backend/internal/auth"
	"certiflow-backend/internal/doclog"
	"certiflow-backend/internal/models"

	"gorm.io/gorm"
)

// Decide bir belgeyi onaylar veya reddeder.
// Kurallar:
//   - Sadece Onaylayıcı ve üzeri roller karar verebilir.
//   - Red için gerekçe zorunludur.
//   - Geçiş tablosunda tanımlı olmayan geçişler (ör. onaylanmış bir belgeyi
//     tekrar reddetmek) reddedilir, belge değişmeden kalır.
func Decide(db *gorm.DB, p *auth.Principal, documentID uint, approve bool, rejectionReason string) (*models.Document, error) {
	if !p.Role.CanDecide() {
		return nil, apperr.New(apperr.ErrForbidden, "Belge onaylama yetkiniz yok")
	}

	rejectionReason = strings.TrimSpace(rejectionReason)
	if !approve && rejectionReason == "" {
		return nil, apperr.New(apperr.ErrValidation, "Red nedeni zorunludur")
	}

	action := ActionApprove
	if !approve {
		action = ActionReject
	}

	var doc models.Document

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&doc, "id = ?", documentID).Error; err != nil {
			return apperr.New(apperr.ErrNotFound, "Belge bulunamadı")
		}

		oldStatus := doc.ApprovalStatus
		newStatus, ok := Next(oldStatus, action)
		if !ok {
			return apperr.New(apperr.ErrInvalidTransition,
				fmt.Sprintf("'%s' durumundaki belge için bu işlem yapılamaz", oldStatus.DisplayName()))
		}

		now := time.Now()
		doc.ApprovalStatus = newStatus
		doc.ApprovedByID = &p.UserID
		doc.ApprovalDate = &now
		if approve {
			doc.RejectionReason = ""
		} else {
			doc.RejectionReason = rejectionReason
		}

		if err := tx.Model(&models.Document{}).
			Where("id = ?", doc.ID).
			Updates(map[string]interface{}{
				"approval_status":  doc.ApprovalStatus,
				"approved_by_id":   doc.ApprovedByID,
				"approval_date":    doc.ApprovalDate,
				"rejection_reason": doc.RejectionReason,
			}).Error; err != nil {
			return apperr.New(apperr.ErrStorage, "Belge onay işlemi sırasında hata oluştu")
		}

		logAction := models.ActionDocumentApproved
		description := "Belge onaylandı"
		if !approve {
			logAction = models.ActionDocumentRejected
			description = "Belge reddedildi: " + rejectionReason
		}

		_ = doclog.Write(tx, doclog.Entry{
			DocumentID:  &doc.ID,
			UserID:      p.UserID,
			Action:      logAction,
			Description: description,
			OldStatus:   &oldStatus,
			NewStatus:   &doc.ApprovalStatus,
			Success:     true,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// Submit taslak belgeyi onay sürecine sokar. Belgeyi yükleyen kullanıcı
// veya karar yetkisi olan roller gönderebilir.
func Submit(db *gorm.DB, p *auth.Principal, documentID uint) (*models.Document, error) {
	return move(db, p, documentID, ActionSubmit, models.ActionDocumentSubmitted, "Belge onaya gönderildi")
}

// Cancel açık durumdaki bir belgeyi iptal eder. Uç durumdaki belgeler
// iptal edilemez.
func Cancel(db *gorm.DB, p *auth.Principal, documentID uint) (*models.Document, error) {
	return move(db, p, documentID, ActionCancel, models.ActionDocumentCancelled, "Belge iptal edildi")
}

// move geçiş tablosu üzerinden durum değiştirir; karar alanlarına
// (onaylayan, onay tarihi, red nedeni) dokunmaz.
func move(db *gorm.DB, p *auth.Principal, documentID uint, action Action, logAction models.LogAction, description string) (*models.Document, error) {
	var doc models.Document

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&doc, "id = ?", documentID).Error; err != nil {
			return apperr.New(apperr.ErrNotFound, "Belge bulunamadı")
		}

		if doc.UploadedByID != p.UserID && !p.Role.CanDecide() {
			return apperr.New(apperr.ErrForbidden, "Bu belge üzerinde işlem yetkiniz yok")
		}

		oldStatus := doc.ApprovalStatus
		newStatus, ok := Next(oldStatus, action)
		if !ok {
			return apperr.New(apperr.ErrInvalidTransition,
				fmt.Sprintf("'%s' durumundaki belge için bu işlem yapılamaz", oldStatus.DisplayName()))
		}

		doc.ApprovalStatus = newStatus
		if err := tx.Model(&models.Document{}).
			Where("id = ?", doc.ID).
			Update("approval_status", newStatus).Error; err != nil {
			return apperr.New(apperr.ErrStorage, "Belge durumu güncellenirken hata oluştu")
		}

		_ = doclog.Write(tx, doclog.Entry{
			DocumentID:  &doc.ID,
			UserID:      p.UserID,
			Action:      logAction,
			Description: description,
			OldStatus:   &oldStatus,
			NewStatus:   &doc.ApprovalStatus,
			Success:     true,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &doc, nil
}
