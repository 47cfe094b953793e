package doclog

import (
	"fmt"

	"certiflow-backend/internal/database"
	"certiflow-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LogResponse struct {
	ID          uint             `json:"id"`
	DocumentID  *uint            `json:"document_id"`
	UserID      uint             `json:"user_id"`
	Action      models.LogAction `json:"action"`
	Description string           `json:"description"`
	OldStatus   *string          `json:"old_status"`
	NewStatus   *string          `json:"new_status"`
	IPAddress   string           `json:"ip_address"`
	Success     bool             `json:"success"`
	CreatedAt   string           `json:"created_at"`
}

// GET /api/documents/:id/logs
func ListDocumentLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := c.Params("id")
		var documentID uint
		if _, err := fmt.Sscan(idStr, &documentID); err != nil || documentID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz belge ID")
		}

		logs, err := ListByDocument(database.DB, documentID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Loglar listelenemedi")
		}

		resp := make([]LogResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, LogResponse{
				ID:          l.ID,
				DocumentID:  l.DocumentID,
				UserID:      l.UserID,
				Action:      l.Action,
				Description: l.Description,
				OldStatus:   statusName(l.OldStatus),
				NewStatus:   statusName(l.NewStatus),
				IPAddress:   l.IPAddress,
				Success:     l.Success,
				CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(fiber.Map{"success": true, "data": resp})
	}
}

func statusName(s *models.ApprovalStatus) *string {
	if s == nil {
		return nil
	}
	name := s.DisplayName()
	return &name
}
