package models

import "time"

// LogAction: BelgeLog tablosundaki işlem türleri.
type LogAction string

const (
	ActionDocumentUploaded  LogAction = "BelgeYuklendi"
	ActionDocumentImported  LogAction = "BelgeIceAktarildi"
	ActionDocumentSubmitted LogAction = "BelgeOnayaGonderildi"
	ActionDocumentUpdated   LogAction = "BelgeGuncellendi"
	ActionDocumentDeleted   LogAction = "BelgeSilindi"
	ActionDocumentApproved  LogAction = "BelgeOnaylandi"
	ActionDocumentRejected  LogAction = "BelgeReddedildi"
	ActionDocumentCancelled LogAction = "BelgeIptalEdildi"
	ActionUserLogin         LogAction = "KullaniciGirisi"
	ActionUserLogout        LogAction = "KullaniciCikisi"
	ActionUserCreated       LogAction = "KullaniciOlusturuldu"
	ActionCompanyCreated    LogAction = "FirmaOlusturuldu"
	ActionDatabaseVerified  LogAction = "VeritabaniKontrolEdildi"
)

type DocumentLog struct {
	ID          uint      `gorm:"primaryKey"`
	DocumentID  *uint     `gorm:"index"`
	UserID      uint      `gorm:"index;not null"`
	Action      LogAction `gorm:"size:100;not null;index"`
	Description string    `gorm:"size:500"`

	// Onay durumu değişimlerinde eski/yeni durum
	OldStatus *ApprovalStatus
	NewStatus *ApprovalStatus

	// Önceki ve sonraki hal (JSON)
	OldValues string `gorm:"type:jsonb"`
	NewValues string `gorm:"type:jsonb"`

	IPAddress    string `gorm:"size:45"`
	Success      bool
	ErrorMessage string `gorm:"size:1000"`
	CreatedAt    time.Time
}
