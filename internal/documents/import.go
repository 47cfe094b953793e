package documents

import (
	"fmt"
	"io"
	"strings"

	"certiflow-backend/internal/apperr"
	"certiflow-backend/internal/auth"
	"certiflow-backend/internal/doclog"
	"certiflow-backend/internal/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Excel kolonları: Belge Adı | Belge Türü | Belge No | Açıklama
const (
	importColName = iota
	importColType
	importColNumber
	importColDescription
)

type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Created     int          `json:"created"`
	DocumentIDs []uint       `json:"document_ids"`
	Skipped     []SkippedRow `json:"skipped"`
}

// ImportFromExcel bir .xlsx dosyasındaki satırları taslak belge kayıtlarına
// çevirir. Her satır bir belge; dosyası olmadığı için belgeler Taslak
// durumunda açılır ve onaya gönderilerek normal akışa girer. Adı boş
// satırlar atlanır ve satır numarasıyla raporlanır.
func ImportFromExcel(db *gorm.DB, p *auth.Principal, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.New(apperr.ErrUploadRejected, "Excel dosyası okunamadı")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.New(apperr.ErrUploadRejected, "Excel dosyasında sayfa bulunamadı")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperr.New(apperr.ErrUploadRejected, "Excel sayfası okunamadı")
	}
	if len(rows) == 0 {
		return nil, apperr.New(apperr.ErrUploadRejected, "Excel dosyası boş")
	}

	start := 0
	if isHeaderRow(rows[0]) {
		start = 1
	}

	result := &ImportResult{}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		name := cell(row, importColName)
		if name == "" {
			if len(row) > 0 {
				result.Skipped = append(result.Skipped, SkippedRow{
					Row:    i + 1,
					Reason: "Belge adı boş",
				})
			}
			continue
		}

		doc := models.Document{
			Name:           name,
			Type:           cell(row, importColType),
			Number:         cell(row, importColNumber),
			Description:    cell(row, importColDescription),
			ApprovalStatus: models.StatusDraft,
			UploadedByID:   p.UserID,
			CompanyID:      p.CompanyID,
		}
		if err := db.Create(&doc).Error; err != nil {
			result.Skipped = append(result.Skipped, SkippedRow{
				Row:    i + 1,
				Reason: "Kayıt oluşturulamadı",
			})
			continue
		}

		_ = doclog.Write(db, doclog.Entry{
			DocumentID:  &doc.ID,
			UserID:      p.UserID,
			Action:      models.ActionDocumentImported,
			Description: fmt.Sprintf("Belge içe aktarıldı: %s (satır %d)", doc.Name, i+1),
			NewStatus:   &doc.ApprovalStatus,
			After:       doc,
			Success:     true,
		})

		result.Created++
		result.DocumentIDs = append(result.DocumentIDs, doc.ID)
	}

	return result, nil
}

// isHeaderRow ilk satırın başlık satırı olup olmadığına bakar. Sadece tam
// başlık etiketleri eşleşir; "Belge Listesi" gibi gerçek bir belge adı
// veri satırı sayılır.
func isHeaderRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToUpper(strings.TrimSpace(row[0]))
	switch first {
	case "BELGE ADI", "BELGE ADİ", "AD", "DOCUMENT NAME", "NAME":
		return true
	}
	return false
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
