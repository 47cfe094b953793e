package doclog

import (
	"testing"

	"certiflow-backend/internal/database"
	"certiflow-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func TestWrite(t *testing.T) {
	db := setupTestDB(t)

	docID := uint(1)
	oldStatus := models.StatusPending
	newStatus := models.StatusApproved

	err := Write(db, Entry{
		DocumentID:  &docID,
		UserID:      7,
		Action:      models.ActionDocumentApproved,
		Description: "Belge onaylandı",
		OldStatus:   &oldStatus,
		NewStatus:   &newStatus,
		Before:      map[string]any{"approval_status": 1},
		After:       map[string]any{"approval_status": 3},
		IPAddress:   "10.0.0.5",
		Success:     true,
	})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var row models.DocumentLog
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("log row not found: %v", err)
	}
	if row.Action != models.ActionDocumentApproved {
		t.Errorf("action = %q", row.Action)
	}
	if row.OldValues != `{"approval_status":1}` {
		t.Errorf("old values = %q", row.OldValues)
	}
	if row.NewValues != `{"approval_status":3}` {
		t.Errorf("new values = %q", row.NewValues)
	}
	if row.OldStatus == nil || *row.OldStatus != models.StatusPending {
		t.Errorf("old status = %v", row.OldStatus)
	}
}

func TestWriteWithoutPayload(t *testing.T) {
	db := setupTestDB(t)

	err := Write(db, Entry{
		UserID:      7,
		Action:      models.ActionUserLogin,
		Description: "Kullanıcı giriş yaptı",
		Success:     true,
	})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var row models.DocumentLog
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("log row not found: %v", err)
	}
	// jsonb kolonları boş string değil "null" tutar
	if row.OldValues != "null" || row.NewValues != "null" {
		t.Errorf("payload = %q/%q, want null/null", row.OldValues, row.NewValues)
	}
	if row.DocumentID != nil {
		t.Errorf("document_id = %v, want nil for session events", row.DocumentID)
	}
}

func TestWriteFailureEntry(t *testing.T) {
	db := setupTestDB(t)

	docID := uint(1)
	err := Write(db, Entry{
		DocumentID:  &docID,
		UserID:      7,
		Action:      models.ActionDocumentApproved,
		Description: "Belge onaylanamadı",
		Success:     false,
		ErrorMsg:    "Belge onaylama yetkiniz yok",
	})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var row models.DocumentLog
	if err := db.First(&row).Error; err != nil {
		t.Fatalf("log row not found: %v", err)
	}
	if row.Success {
		t.Error("success = true, failure entries must persist as false")
	}
	if row.ErrorMessage != "Belge onaylama yetkiniz yok" {
		t.Errorf("error message = %q", row.ErrorMessage)
	}
}

func TestListByDocument(t *testing.T) {
	db := setupTestDB(t)

	docA, docB := uint(1), uint(2)
	actions := []models.LogAction{
		models.ActionDocumentUploaded,
		models.ActionDocumentUpdated,
		models.ActionDocumentApproved,
	}
	for _, a := range actions {
		if err := Write(db, Entry{DocumentID: &docA, UserID: 1, Action: a, Success: true}); err != nil {
			t.Fatalf("Write(%q) error = %v", a, err)
		}
	}
	if err := Write(db, Entry{DocumentID: &docB, UserID: 1, Action: models.ActionDocumentUploaded, Success: true}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	logs, err := ListByDocument(db, docA)
	if err != nil {
		t.Fatalf("ListByDocument() error = %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("log count = %d, want 3 (other documents excluded)", len(logs))
	}
	// Yeniden eskiye
	if logs[0].Action != models.ActionDocumentApproved || logs[2].Action != models.ActionDocumentUploaded {
		t.Errorf("order = %q..%q, want newest first", logs[0].Action, logs[2].Action)
	}
}
