package documents

import (
	"errors"
	"testing"

	"certiflow-backend/internal/apperr"
	"certiflow-backend/internal/auth"
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

// seedPrincipal creates a company and a user in it, returning the user's
// session principal.
func seedPrincipal(t *testing.T, db *gorm.DB, fullName, email string) *auth.Principal {
	t.Helper()

	company := models.Company{
		Name:      "Test Firma A.Ş.",
		TaxNumber: "111" + email,
		Email:     "firma-" + email,
		Active:    true,
	}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("failed to create company: %v", err)
	}

	user := models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleUser,
		CompanyID:    &company.ID,
		Active:       true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return &auth.Principal{
		UserID:      user.ID,
		FullName:    user.FullName,
		Email:       user.Email,
		Role:        user.Role,
		CompanyID:   &company.ID,
		CompanyName: company.Name,
	}
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)
	p := seedPrincipal(t, db, "Ali Kaya", "ali@test.com")

	doc, err := Create(db, p, CreateInput{
		Name:        "Kalite Sertifikası",
		Type:        "Sertifika",
		Number:      "KS-2026-001",
		Description: "Yıllık kalite sertifikası",
		FilePath:    "/uploads/documents/abc.pdf",
		FileSize:    2048,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if doc.ApprovalStatus != models.StatusPending {
		t.Errorf("status = %v, want StatusPending", doc.ApprovalStatus)
	}
	if doc.UploadedByID != p.UserID {
		t.Errorf("uploaded_by = %d, want %d", doc.UploadedByID, p.UserID)
	}
	if doc.CompanyID == nil || *doc.CompanyID != *p.CompanyID {
		t.Errorf("company_id = %v, want %d", doc.CompanyID, *p.CompanyID)
	}

	got, err := Get(db, doc.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Kalite Sertifikası" || got.Number != "KS-2026-001" {
		t.Errorf("Get() = %q/%q, round trip lost fields", got.Name, got.Number)
	}
	if got.UploadedBy.ID != p.UserID {
		t.Errorf("uploader not preloaded: %+v", got.UploadedBy)
	}

	// Yükleme log kaydı düşmüş olmalı
	var logCount int64
	db.Model(&models.DocumentLog{}).
		Where("document_id = ? AND action = ?", doc.ID, models.ActionDocumentUploaded).
		Count(&logCount)
	if logCount != 1 {
		t.Errorf("upload log count = %d, want 1", logCount)
	}
}

func TestCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	p := seedPrincipal(t, db, "Ali Kaya", "ali@test.com")

	tests := []struct {
		name string
		in   CreateInput
	}{
		{"missing name", CreateInput{FilePath: "/uploads/documents/a.pdf"}},
		{"blank name", CreateInput{Name: "   ", FilePath: "/uploads/documents/a.pdf"}},
		{"missing file path", CreateInput{Name: "Belge"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Create(db, p, tt.in)
			if !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestGetMissing(t *testing.T) {
	db := setupTestDB(t)

	_, err := Get(db, 999)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestListScoping(t *testing.T) {
	db := setupTestDB(t)
	alice := seedPrincipal(t, db, "Ayşe Yılmaz", "ayse@a.com")
	bob := seedPrincipal(t, db, "Burak Can", "burak@b.com") // başka firma

	mustCreate := func(p *auth.Principal, name string) *models.Document {
		doc, err := Create(db, p, CreateInput{Name: name, FilePath: "/uploads/documents/" + name + ".pdf"})
		if err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
		return doc
	}

	mustCreate(alice, "alice-1")
	mustCreate(alice, "alice-2")
	bobDoc := mustCreate(bob, "bob-1")

	// Başkasının yüklediği ama Ayşe'ye atanmış belge "my" kapsamına girer
	if err := db.Model(&models.Document{}).Where("id = ?", bobDoc.ID).
		Update("assigned_to_id", alice.UserID).Error; err != nil {
		t.Fatalf("failed to assign document: %v", err)
	}

	mine, err := List(db, alice, FilterMine)
	if err != nil {
		t.Fatalf("List(my) error = %v", err)
	}
	if len(mine) != 3 {
		t.Errorf("List(my) = %d documents, want 3 (uploaded or assigned)", len(mine))
	}

	company, err := List(db, alice, FilterCompany)
	if err != nil {
		t.Fatalf("List(company) error = %v", err)
	}
	if len(company) != 2 {
		t.Errorf("List(company) = %d documents, want 2", len(company))
	}

	// Firması olmayan kullanıcı varsayılan kapsamda her şeyi görür
	admin := &auth.Principal{UserID: 999, Role: models.RoleAdministrator}
	all, err := List(db, admin, "")
	if err != nil {
		t.Fatalf("List(all) error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List() without company = %d documents, want 3", len(all))
	}
}

func TestListExcludesDeleted(t *testing.T) {
	db := setupTestDB(t)
	p := seedPrincipal(t, db, "Ali Kaya", "ali@test.com")

	doc, err := Create(db, p, CreateInput{Name: "silinecek", FilePath: "/uploads/documents/x.pdf"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := SoftDelete(db, p, doc.ID); err != nil {
		t.Fatalf("SoftDelete() error = %v", err)
	}

	docs, err := List(db, p, FilterCompany)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("List() after delete = %d documents, want 0", len(docs))
	}

	if _, err := Get(db, doc.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	// Kayıt fiziksel olarak duruyor olmalı
	var count int64
	db.Unscoped().Model(&models.Document{}).Where("id = ?", doc.ID).Count(&count)
	if count != 1 {
		t.Errorf("physical row count = %d, want 1", count)
	}
}

func TestSoftDeleteIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	p := seedPrincipal(t, db, "Ali Kaya", "ali@test.com")

	doc, err := Create(db, p, CreateInput{Name: "belge", FilePath: "/uploads/documents/x.pdf"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := SoftDelete(db, p, doc.ID); err != nil {
		t.Fatalf("first SoftDelete() error = %v", err)
	}
	if err := SoftDelete(db, p, doc.ID); err != nil {
		t.Fatalf("second SoftDelete() error = %v", err)
	}
	if err := SoftDelete(db, p, 999); err != nil {
		t.Fatalf("SoftDelete() on missing id error = %v", err)
	}

	// Sadece ilk silme log yazar
	var logCount int64
	db.Model(&models.DocumentLog{}).
		Where("document_id = ? AND action = ?", doc.ID, models.ActionDocumentDeleted).
		Count(&logCount)
	if logCount != 1 {
		t.Errorf("delete log count = %d, want 1", logCount)
	}
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)
	p := seedPrincipal(t, db, "Ali Kaya", "ali@test.com")

	doc, err := Create(db, p, CreateInput{
		Name:     "eski ad",
		Type:     "Rapor",
		FilePath: "/uploads/documents/x.pdf",
		FileSize: 512,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err = Update(db, p, doc.ID, UpdateInput{
		Name:        "yeni ad",
		Type:        "Sertifika",
		Number:      "S-42",
		Description: "güncellendi",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := Get(db, doc.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "yeni ad" || got.Type != "Sertifika" || got.Number != "S-42" {
		t.Errorf("metadata not updated: %+v", got)
	}

	// Durum, dosya ve yükleyen değişmemeli
	if got.ApprovalStatus != models.StatusPending {
		t.Errorf("status changed to %v", got.ApprovalStatus)
	}
	if got.FilePath != "/uploads/documents/x.pdf" || got.FileSize != 512 {
		t.Errorf("file fields changed: %q/%d", got.FilePath, got.FileSize)
	}
	if got.UploadedByID != p.UserID {
		t.Errorf("uploader changed to %d", got.UploadedByID)
	}
}

func TestUpdateMissing(t *testing.T) {
	db := setupTestDB(t)
	p := seedPrincipal(t, db, "Ali Kaya", "ali@test.com")

	err := Update(db, p, 999, UpdateInput{Name: "yeni ad"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateRequiresName(t *testing.T) {
	db := setupTestDB(t)
	p := seedPrincipal(t, db, "Ali Kaya", "ali@test.com")

	doc, err := Create(db, p, CreateInput{Name: "belge", FilePath: "/uploads/documents/x.pdf"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	err = Update(db, p, doc.ID, UpdateInput{Name: "  "})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}

func TestCompanyUsers(t *testing.T) {
	db := setupTestDB(t)
	alice := seedPrincipal(t, db, "Ayşe Yılmaz", "ayse@a.com")
	seedPrincipal(t, db, "Burak Can", "burak@b.com") // başka firma

	users, err := CompanyUsers(db, alice)
	if err != nil {
		t.Fatalf("CompanyUsers() error = %v", err)
	}
	if len(users) != 1 || users[0].ID != alice.UserID {
		t.Errorf("CompanyUsers() = %d users, want only the caller's company", len(users))
	}
}
