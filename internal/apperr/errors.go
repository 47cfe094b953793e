package apperr

import (
	"errors"
	"net/http"
)

// Hata türleri: servis katmanı bu sentinel'lerden birini sarmalayarak döner,
// handler katmanı HTTPStatus ile durum koduna çevirir.
var (
	ErrValidation         = errors.New("doğrulama hatası")
	ErrDuplicateTenant    = errors.New("firma zaten kayıtlı")
	ErrDuplicateIdentity  = errors.New("kullanıcı zaten kayıtlı")
	ErrInvalidCredentials = errors.New("email veya şifre hatalı")
	ErrNotFound           = errors.New("kayıt bulunamadı")
	ErrInvalidTransition  = errors.New("geçersiz durum geçişi")
	ErrForbidden          = errors.New("bu işlem için yetkiniz yok")
	ErrUploadRejected     = errors.New("dosya kabul edilmedi")
	ErrStorage            = errors.New("veritabanı hatası")
)

// Error: bir hata türünü kullanıcıya gösterilecek mesajla birlikte taşır.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// New bir hata türünü özel mesajla sarmalar. errors.Is(err, kind) çalışmaya
// devam eder.
func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// HTTPStatus hata türünü HTTP durum koduna çevirir.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUploadRejected):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateTenant), errors.Is(err, ErrDuplicateIdentity), errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
