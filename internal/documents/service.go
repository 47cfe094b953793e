package documents

import (
	"strings"

	"certiflow-backend/internal/apperr"
	"certiflow-backend/internal/auth"
	"certiflow-backend/internal/doclog"
	"certiflow-backend/internal/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

type CreateInput struct {
	Name         string
	Type         string
	Number       string
	Description  string
	FilePath     string
	FileSize     int64
	AssignedToID *uint
}

func (in CreateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("Belge adı zorunludur")),
		validation.Field(&in.FilePath, validation.Required.Error("Dosya yolu zorunludur")),
	)
}

// Create yeni belge kaydı oluşturur. Durum her zaman "Onay Bekliyor" ile
// başlar; çağıranın gönderdiği herhangi bir durum değeri dikkate alınmaz.
// Firma, yükleyen kullanıcının firmasından alınır.
func Create(db *gorm.DB, p *auth.Principal, in CreateInput) (*models.Document, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	in.Number = strings.TrimSpace(in.Number)
	in.Description = strings.TrimSpace(in.Description)

	if err := in.Validate(); err != nil {
		return nil, apperr.New(apperr.ErrValidation, err.Error())
	}

	doc := models.Document{
		Name:           in.Name,
		Type:           in.Type,
		Number:         in.Number,
		Description:    in.Description,
		FilePath:       in.FilePath,
		FileSize:       in.FileSize,
		ApprovalStatus: models.StatusPending,
		UploadedByID:   p.UserID,
		AssignedToID:   in.AssignedToID,
		CompanyID:      p.CompanyID,
	}

	if err := db.Create(&doc).Error; err != nil {
		return nil, apperr.New(apperr.ErrStorage, "Belge kaydı sırasında hata oluştu")
	}

	_ = doclog.Write(db, doclog.Entry{
		DocumentID:  &doc.ID,
		UserID:      p.UserID,
		Action:      models.ActionDocumentUploaded,
		Description: "Belge yüklendi: " + doc.Name,
		NewStatus:   &doc.ApprovalStatus,
		After:       doc,
		Success:     true,
	})

	return &doc, nil
}

// Get belgeyi yükleyen/atanan/onaylayan kullanıcı ve firma bilgileriyle
// birlikte döndürür. Silinmiş belgeler bulunamaz sayılır.
func Get(db *gorm.DB, id uint) (*models.Document, error) {
	var doc models.Document
	if err := db.Preload("UploadedBy").
		Preload("AssignedTo").
		Preload("ApprovedBy").
		Preload("Company").
		First(&doc, "id = ?", id).Error; err != nil {
		return nil, apperr.New(apperr.ErrNotFound, "Belge bulunamadı")
	}
	return &doc, nil
}

// Listeleme filtreleri
const (
	FilterMine    = "my"
	FilterCompany = "company"
	FilterAll     = "all"
)

// List belgeleri kapsama göre yeniden eskiye sıralı döndürür:
//   - my: yükleyen VEYA atanan kullanıcı eşleşir
//   - company: kullanıcının firmasındaki belgeler
//   - varsayılan: firması olan kullanıcı için firma, olmayan için tümü
func List(db *gorm.DB, p *auth.Principal, filter string) ([]models.Document, error) {
	q := db.Preload("UploadedBy").
		Preload("AssignedTo").
		Preload("ApprovedBy").
		Preload("Company")

	switch {
	case filter == FilterMine:
		q = q.Where("uploaded_by_id = ? OR assigned_to_id = ?", p.UserID, p.UserID)
	case filter == FilterCompany && p.CompanyID != nil:
		q = q.Where("company_id = ?", *p.CompanyID)
	case p.CompanyID != nil:
		q = q.Where("company_id = ?", *p.CompanyID)
	default:
		// Firması olmayan kullanıcı tüm belgeleri görür
	}

	var docs []models.Document
	if err := q.Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, apperr.New(apperr.ErrStorage, "Belge listesi alınırken hata oluştu")
	}
	return docs, nil
}

type UpdateInput struct {
	Name         string
	Type         string
	Number       string
	Description  string
	AssignedToID *uint
}

// Update sadece meta verileri değiştirir; onay durumuna, dosyaya ve yükleyen
// bilgisine dokunmaz. Kayıt yoksa veya silinmişse NotFound döner.
func Update(db *gorm.DB, p *auth.Principal, id uint, in UpdateInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperr.New(apperr.ErrValidation, "Belge adı zorunludur")
	}

	var before models.Document
	if err := db.First(&before, "id = ?", id).Error; err != nil {
		return apperr.New(apperr.ErrNotFound, "Belge bulunamadı")
	}

	result := db.Model(&models.Document{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":           in.Name,
			"type":           strings.TrimSpace(in.Type),
			"number":         strings.TrimSpace(in.Number),
			"description":    strings.TrimSpace(in.Description),
			"assigned_to_id": in.AssignedToID,
		})
	if result.Error != nil {
		return apperr.New(apperr.ErrStorage, "Belge güncellenirken hata oluştu")
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.ErrNotFound, "Belge bulunamadı")
	}

	_ = doclog.Write(db, doclog.Entry{
		DocumentID:  &id,
		UserID:      p.UserID,
		Action:      models.ActionDocumentUpdated,
		Description: "Belge bilgileri güncellendi",
		Before:      before,
		After:       in,
		Success:     true,
	})

	return nil
}

// SoftDelete belgeyi silindi olarak işaretler. Kayıt fiziksel olarak
// silinmez; aynı belgeyi iki kez silmek hata değildir.
func SoftDelete(db *gorm.DB, p *auth.Principal, id uint) error {
	result := db.Delete(&models.Document{}, "id = ?", id)
	if result.Error != nil {
		return apperr.New(apperr.ErrStorage, "Belge silinirken hata oluştu")
	}

	if result.RowsAffected > 0 {
		_ = doclog.Write(db, doclog.Entry{
			DocumentID:  &id,
			UserID:      p.UserID,
			Action:      models.ActionDocumentDeleted,
			Description: "Belge silindi",
			Success:     true,
		})
	}

	return nil
}

// CompanyUsers atama listeleri için kullanıcıları döndürür: firması olan
// kullanıcı kendi firmasındakileri, olmayan tüm kullanıcıları görür.
func CompanyUsers(db *gorm.DB, p *auth.Principal) ([]models.User, error) {
	q := db.Model(&models.User{}).Where("active = ?", true)
	if p.CompanyID != nil {
		q = q.Where("company_id = ?", *p.CompanyID)
	}

	var users []models.User
	if err := q.Order("full_name").Find(&users).Error; err != nil {
		return nil, apperr.New(apperr.ErrStorage, "Kullanıcı listesi alınırken hata oluştu")
	}
	return users, nil
}
