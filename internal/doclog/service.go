package doclog

import (
	"encoding/json"

	"certiflow-backend/internal/models"

	"gorm.io/gorm"
)

type Entry struct {
	DocumentID  *uint
	UserID      uint
	Action      models.LogAction
	Description string
	OldStatus   *models.ApprovalStatus
	NewStatus   *models.ApprovalStatus
	Before      any
	After       any
	IPAddress   string
	Success     bool
	ErrorMsg    string
}

// Write bir BelgeLog kaydı oluşturur. Log yazılamaması ana işlemi
// engellememeli, çağıran taraf hatayı en fazla loglar.
func Write(db *gorm.DB, e Entry) error {
	// PostgreSQL jsonb için boş string yerine "null" JSON kullanılır
	oldStr := "null"
	newStr := "null"

	if e.Before != nil {
		if b, err := json.Marshal(e.Before); err == nil {
			oldStr = string(b)
		}
	}
	if e.After != nil {
		if b, err := json.Marshal(e.After); err == nil {
			newStr = string(b)
		}
	}

	row := models.DocumentLog{
		DocumentID:   e.DocumentID,
		UserID:       e.UserID,
		Action:       e.Action,
		Description:  e.Description,
		OldStatus:    e.OldStatus,
		NewStatus:    e.NewStatus,
		OldValues:    oldStr,
		NewValues:    newStr,
		IPAddress:    e.IPAddress,
		Success:      e.Success,
		ErrorMessage: e.ErrorMsg,
	}

	return db.Create(&row).Error
}

// ListByDocument bir belgenin log kayıtlarını yeniden eskiye sıralı döndürür.
func ListByDocument(db *gorm.DB, documentID uint) ([]models.DocumentLog, error) {
	var logs []models.DocumentLog
	err := db.Where("document_id = ?", documentID).
		Order("created_at DESC, id DESC").
		Find(&logs).Error
	return logs, err
}
