package documents

import (
	"errors"
	"strings"
	"testing"

	"certiflow-backend/internal/apperr"
	"certiflow-backend/internal/models"
	"certiflow-backend/internal/settings"
)

func TestUploadRulesValidate(t *testing.T) {
	db := setupTestDB(t)
	rules := LoadUploadRules(db)

	const mib = 1024 * 1024

	tests := []struct {
		name     string
		filename string
		size     int64
		wantExt  string
		wantErr  bool
	}{
		{"pdf within limit", "sertifika.pdf", 1 * mib, ".pdf", false},
		{"exactly at limit", "rapor.docx", 10 * mib, ".docx", false},
		{"over limit", "buyuk.pdf", 11 * mib, "", true},
		{"executable", "virus.exe", 1024, "", true},
		{"no extension", "dosya", 1024, "", true},
		{"uppercase extension", "TARAMA.PDF", 1 * mib, ".pdf", false},
		{"image", "foto.jpeg", 2 * mib, ".jpeg", false},
		{"double extension", "belge.pdf.exe", 1024, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := rules.Validate(tt.filename, tt.size)
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrUploadRejected) {
					t.Fatalf("error = %v, want ErrUploadRejected", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if ext != tt.wantExt {
				t.Errorf("ext = %q, want %q", ext, tt.wantExt)
			}
		})
	}
}

func TestUploadRulesFollowSettings(t *testing.T) {
	db := setupTestDB(t)

	if err := settings.Update(db, models.SettingMaxFileSizeMB, "2"); err != nil {
		t.Fatalf("settings.Update() error = %v", err)
	}
	if err := settings.Update(db, models.SettingAllowedExtensions, ".txt"); err != nil {
		t.Fatalf("settings.Update() error = %v", err)
	}

	rules := LoadUploadRules(db)

	if _, err := rules.Validate("not.txt", 1024); err != nil {
		t.Errorf("Validate(.txt) error = %v, want nil after settings change", err)
	}
	if _, err := rules.Validate("belge.pdf", 1024); !errors.Is(err, apperr.ErrUploadRejected) {
		t.Errorf("Validate(.pdf) error = %v, want ErrUploadRejected after settings change", err)
	}
	if _, err := rules.Validate("not.txt", 3*1024*1024); !errors.Is(err, apperr.ErrUploadRejected) {
		t.Errorf("Validate(3MiB) error = %v, want ErrUploadRejected with 2MB limit", err)
	}
}

func TestUploadRulesDefaults(t *testing.T) {
	db := setupTestDB(t)

	// Ayar değeri bozulsa bile varsayılanlar devreye girer
	if err := settings.Update(db, models.SettingMaxFileSizeMB, "bozuk"); err != nil {
		t.Fatalf("settings.Update() error = %v", err)
	}

	rules := LoadUploadRules(db)
	if rules.MaxSizeBytes != int64(DefaultMaxFileSizeMB)*1024*1024 {
		t.Errorf("MaxSizeBytes = %d, want default %dMB", rules.MaxSizeBytes, DefaultMaxFileSizeMB)
	}
}

func TestStoredFileName(t *testing.T) {
	a := StoredFileName(".pdf")
	b := StoredFileName(".pdf")

	if !strings.HasSuffix(a, ".pdf") {
		t.Errorf("StoredFileName() = %q, want .pdf suffix", a)
	}
	if a == b {
		t.Error("StoredFileName() must be unique per call")
	}
}
