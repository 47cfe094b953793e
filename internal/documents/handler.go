package documents

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"certiflow-backend/internal/apperr"
	"certiflow-backend/internal/approval"
	"certiflow-backend/internal/auth"
	"certiflow-backend/internal/config"
	"certiflow-backend/internal/database"
	"certiflow-backend/internal/logger"
	"certiflow-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DocumentResponse struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	Type               string `json:"type"`
	Number             string `json:"number"`
	FilePath           string `json:"file_path"`
	FileSize           int64  `json:"file_size"`
	Description        string `json:"description"`
	ApprovalStatus     int    `json:"approval_status"`
	ApprovalStatusName string `json:"approval_status_name"`
	UploadedByID       uint   `json:"uploaded_by_id"`
	UploadedByName     string `json:"uploaded_by_name"`
	AssignedToID       *uint  `json:"assigned_to_id"`
	AssignedToName     string `json:"assigned_to_name"`
	ApprovedByID       *uint  `json:"approved_by_id"`
	ApprovedByName     string `json:"approved_by_name"`
	ApprovalDate       string `json:"approval_date"`
	RejectionReason    string `json:"rejection_reason"`
	CompanyID          *uint  `json:"company_id"`
	CompanyName        string `json:"company_name"`
	CreatedAt          string `json:"created_at"`
}

func toResponse(d *models.Document) DocumentResponse {
	resp := DocumentResponse{
		ID:                 d.ID,
		Name:               d.Name,
		Type:               d.Type,
		Number:             d.Number,
		FilePath:           d.FilePath,
		FileSize:           d.FileSize,
		Description:        d.Description,
		ApprovalStatus:     int(d.ApprovalStatus),
		ApprovalStatusName: d.ApprovalStatus.DisplayName(),
		UploadedByID:       d.UploadedByID,
		AssignedToID:       d.AssignedToID,
		ApprovedByID:       d.ApprovedByID,
		RejectionReason:    d.RejectionReason,
		CompanyID:          d.CompanyID,
		CreatedAt:          d.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	resp.UploadedByName = d.UploadedBy.FullName
	if d.AssignedTo != nil {
		resp.AssignedToName = d.AssignedTo.FullName
	}
	if d.ApprovedBy != nil {
		resp.ApprovedByName = d.ApprovedBy.FullName
	}
	if d.Company != nil {
		resp.CompanyName = d.Company.Name
	}
	if d.ApprovalDate != nil {
		resp.ApprovalDate = d.ApprovalDate.Format("2006-01-02 15:04:05")
	}
	return resp
}

func parseID(c *fiber.Ctx) (uint, error) {
	var id uint
	if _, err := fmt.Sscan(c.Params("id"), &id); err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz belge ID")
	}
	return id, nil
}

// POST /api/documents  (multipart/form-data)
func UploadDocumentHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		file, err := c.FormFile("file")
		if err != nil || file == nil || file.Size == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Lütfen bir dosya seçin")
		}

		name := strings.TrimSpace(c.FormValue("document_name"))
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Belge adı zorunludur")
		}

		// Diske yazmadan önce uzantı ve boyut kontrolü
		rules := LoadUploadRules(database.DB)
		ext, err := rules.Validate(file.Filename, file.Size)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		uploadsDir := filepath.Join(cfg.UploadPath, "documents")
		if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Yükleme klasörü oluşturulamadı")
		}

		storedName := StoredFileName(ext)
		storedPath := filepath.Join(uploadsDir, storedName)

		if err := c.SaveFile(file, storedPath); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya kaydedilemedi")
		}

		in := CreateInput{
			Name:        name,
			Type:        c.FormValue("document_type"),
			Number:      c.FormValue("document_number"),
			Description: c.FormValue("description"),
			FilePath:    "/uploads/documents/" + storedName,
			FileSize:    file.Size,
		}

		var assignedID uint
		if v := strings.TrimSpace(c.FormValue("assigned_to_user_id")); v != "" {
			if _, err := fmt.Sscan(v, &assignedID); err == nil && assignedID > 0 {
				in.AssignedToID = &assignedID
			}
		}

		doc, err := Create(database.DB, p, in)
		if err != nil {
			// Kayıt başarısızsa yazılmış dosyayı geri al
			if rmErr := os.Remove(storedPath); rmErr != nil {
				logger.Get().Warn("Yüklenen dosya temizlenemedi",
					zap.String("path", storedPath), zap.Error(rmErr))
			}
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success":     true,
			"message":     "Belge başarıyla yüklendi",
			"document_id": doc.ID,
		})
	}
}

// POST /api/documents/import  (multipart/form-data, .xlsx)
func ImportDocumentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil || fileHeader == nil || fileHeader.Size == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Lütfen bir dosya seçin")
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece .xlsx dosyaları içe aktarılabilir")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı")
		}
		defer file.Close()

		result, err := ImportFromExcel(database.DB, p, file)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": fmt.Sprintf("%d belge içe aktarıldı", result.Created),
			"data":    result,
		})
	}
}

// GET /api/documents?filter=my|company|all
func ListDocumentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		docs, err := List(database.DB, p, c.Query("filter"))
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		resp := make([]DocumentResponse, 0, len(docs))
		for i := range docs {
			resp = append(resp, toResponse(&docs[i]))
		}

		return c.JSON(fiber.Map{"success": true, "data": resp})
	}
}

// GET /api/documents/:id
func GetDocumentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		doc, err := Get(database.DB, id)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		return c.JSON(fiber.Map{"success": true, "data": toResponse(doc)})
	}
}

type UpdateDocumentRequest struct {
	Name             string `json:"document_name"`
	Type             string `json:"document_type"`
	Number           string `json:"document_number"`
	Description      string `json:"description"`
	AssignedToUserID *uint  `json:"assigned_to_user_id"`
}

// PUT /api/documents/:id
func UpdateDocumentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		id, err := parseID(c)
		if err != nil {
			return err
		}

		var body UpdateDocumentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		in := UpdateInput{
			Name:         body.Name,
			Type:         body.Type,
			Number:       body.Number,
			Description:  body.Description,
			AssignedToID: body.AssignedToUserID,
		}

		if err := Update(database.DB, p, id, in); err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		return c.JSON(fiber.Map{"success": true, "message": "Belge bilgileri güncellendi"})
	}
}

// DELETE /api/documents/:id
func DeleteDocumentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		id, err := parseID(c)
		if err != nil {
			return err
		}

		if err := SoftDelete(database.DB, p, id); err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		return c.JSON(fiber.Map{"success": true, "message": "Belge silindi"})
	}
}

// POST /api/documents/:id/approve
func ApproveDocumentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		id, err := parseID(c)
		if err != nil {
			return err
		}

		if _, err := approval.Decide(database.DB, p, id, true, ""); err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		return c.JSON(fiber.Map{"success": true, "message": "Belge onaylandı"})
	}
}

type RejectDocumentRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

// POST /api/documents/:id/reject
func RejectDocumentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		id, err := parseID(c)
		if err != nil {
			return err
		}

		var body RejectDocumentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if _, err := approval.Decide(database.DB, p, id, false, body.RejectionReason); err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		return c.JSON(fiber.Map{"success": true, "message": "Belge reddedildi"})
	}
}

// POST /api/documents/:id/submit
func SubmitDocumentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		id, err := parseID(c)
		if err != nil {
			return err
		}

		if _, err := approval.Submit(database.DB, p, id); err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		return c.JSON(fiber.Map{"success": true, "message": "Belge onaya gönderildi"})
	}
}

// POST /api/documents/:id/cancel
func CancelDocumentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		id, err := parseID(c)
		if err != nil {
			return err
		}

		if _, err := approval.Cancel(database.DB, p, id); err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		return c.JSON(fiber.Map{"success": true, "message": "Belge iptal edildi"})
	}
}

// GET /api/documents/company-users
func CompanyUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := auth.PrincipalFromCtx(c)
		if err != nil {
			return err
		}

		users, err := CompanyUsers(database.DB, p)
		if err != nil {
			return fiber.NewError(apperr.HTTPStatus(err), err.Error())
		}

		resp := make([]fiber.Map, 0, len(users))
		for _, u := range users {
			resp = append(resp, fiber.Map{
				"id":        u.ID,
				"full_name": u.FullName,
				"email":     u.Email,
			})
		}

		return c.JSON(fiber.Map{"success": true, "data": resp})
	}
}
