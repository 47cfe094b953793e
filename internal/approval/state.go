package approval

import "certiflow-backend/internal/models"

// Action: onay iş akışındaki eylemler.
type Action string

const (
	ActionSubmit      Action = "submit"
	ActionStartReview Action = "start_review"
	ActionApprove     Action = "approve"
	ActionReject      Action = "reject"
	ActionCancel      Action = "cancel"
)

// transitions: {mevcut durum, eylem} -> yeni durum. Tabloda olmayan her geçiş
// reddedilir; Onaylandı/Reddedildi/İptal Edildi uç durumlardır ve tekrar
// karar verilemez.
var transitions = map[models.ApprovalStatus]map[Action]models.ApprovalStatus{
	models.StatusDraft: {
		ActionSubmit: models.StatusPending,
		ActionCancel: models.StatusCancelled,
	},
	models.StatusPending: {
		ActionStartReview: models.StatusInReview,
		ActionApprove:     models.StatusApproved,
		ActionReject:      models.StatusRejected,
		ActionCancel:      models.StatusCancelled,
	},
	models.StatusInReview: {
		ActionApprove: models.StatusApproved,
		ActionReject:  models.StatusRejected,
		ActionCancel:  models.StatusCancelled,
	},
}

// Next mevcut durumdan eylemle ulaşılacak durumu döndürür.
func Next(current models.ApprovalStatus, action Action) (models.ApprovalStatus, bool) {
	actions, ok := transitions[current]
	if !ok {
		return current, false
	}
	next, ok := actions[action]
	return next, ok
}

// CanTransition geçişin tabloda tanımlı olup olmadığını söyler.
func CanTransition(current models.ApprovalStatus, action Action) bool {
	_, ok := Next(current, action)
	return ok
}
