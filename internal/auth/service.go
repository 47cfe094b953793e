package auth

import (
	"strings"
	"time"

	"certiflow-backend/internal/apperr"
	"certiflow-backend/internal/doclog"
	"certiflow-backend/internal/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput: firma + ilk kullanıcı kaydı (tek adımda).
type RegisterInput struct {
	CompanyName     string `json:"company_name"`
	TaxNumber       string `json:"tax_number"`
	Address         string `json:"address"`
	CompanyPhone    string `json:"company_phone"`
	CompanyEmail    string `json:"company_email"`
	ContactPerson   string `json:"contact_person"`
	ContactPhone    string `json:"contact_phone"`
	FullName        string `json:"full_name"`
	UserEmail       string `json:"user_email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	UserPhone       string `json:"user_phone"`
}

func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.CompanyName, validation.Required.Error("Firma adı zorunludur")),
		validation.Field(&in.TaxNumber, validation.Required.Error("Vergi numarası zorunludur")),
		validation.Field(&in.CompanyEmail,
			validation.Required.Error("Firma email adresi zorunludur"),
			// is.Email MX kaydı sorgular; format kontrolü yeterli
			is.EmailFormat.Error("Geçerli bir firma email adresi girin")),
		validation.Field(&in.ContactPerson, validation.Required.Error("Yetkili kişi zorunludur")),
		validation.Field(&in.FullName, validation.Required.Error("Ad Soyad zorunludur")),
		validation.Field(&in.UserEmail,
			validation.Required.Error("Email adresi zorunludur"),
			is.EmailFormat.Error("Geçerli bir email adresi girin")),
		validation.Field(&in.Password,
			validation.Required.Error("Şifre zorunludur"),
			validation.Length(6, 0).Error("Şifre en az 6 karakter olmalıdır")),
	)
}

type RegisterResult struct {
	CompanyID uint
	UserID    uint
}

// Register firma ve ilk kullanıcıyı TEK transaction içinde oluşturur:
// kullanıcı kaydı başarısız olursa firma kaydı da geri alınır.
// Yeni kullanıcı her zaman en düşük yetkili rolle (Kullanıcı) açılır.
func Register(db *gorm.DB, in RegisterInput) (*RegisterResult, error) {
	in.CompanyEmail = strings.TrimSpace(strings.ToLower(in.CompanyEmail))
	in.UserEmail = strings.TrimSpace(strings.ToLower(in.UserEmail))
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.TaxNumber = strings.TrimSpace(in.TaxNumber)
	in.FullName = strings.TrimSpace(in.FullName)

	if err := in.Validate(); err != nil {
		return nil, apperr.New(apperr.ErrValidation, err.Error())
	}
	if in.Password != in.PasswordConfirm {
		return nil, apperr.New(apperr.ErrValidation, "Şifreler eşleşmiyor")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.New(apperr.ErrStorage, "Şifre hashlenemedi")
	}

	var result RegisterResult

	err = db.Transaction(func(tx *gorm.DB) error {
		// Aktif firmalar arasında vergi no / email kontrolü. Tekil indeks
		// yarış durumuna karşı son güvence, bu kontrol kullanıcıya anlamlı
		// mesaj vermek için.
		var count int64
		if err := tx.Model(&models.Company{}).
			Where("tax_number = ? OR email = ?", in.TaxNumber, in.CompanyEmail).
			Count(&count).Error; err != nil {
			return apperr.New(apperr.ErrStorage, "Firma kontrolü sırasında hata oluştu")
		}
		if count > 0 {
			return apperr.New(apperr.ErrDuplicateTenant, "Bu vergi numarası veya email ile kayıtlı bir firma zaten mevcut")
		}

		company := models.Company{
			Name:          in.CompanyName,
			TaxNumber:     in.TaxNumber,
			Address:       in.Address,
			Phone:         in.CompanyPhone,
			Email:         in.CompanyEmail,
			ContactPerson: in.ContactPerson,
			ContactPhone:  in.ContactPhone,
			Active:        true,
		}
		if err := tx.Create(&company).Error; err != nil {
			return apperr.New(apperr.ErrStorage, "Firma kaydı sırasında hata oluştu")
		}

		if err := tx.Model(&models.User{}).
			Where("email = ?", in.UserEmail).
			Count(&count).Error; err != nil {
			return apperr.New(apperr.ErrStorage, "Kullanıcı kontrolü sırasında hata oluştu")
		}
		if count > 0 {
			return apperr.New(apperr.ErrDuplicateIdentity, "Bu email adresi ile kayıtlı bir kullanıcı zaten mevcut")
		}

		user := models.User{
			FullName:     in.FullName,
			Email:        in.UserEmail,
			PasswordHash: string(hash),
			Role:         models.RoleUser,
			CompanyID:    &company.ID,
			Phone:        in.UserPhone,
			Active:       true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return apperr.New(apperr.ErrStorage, "Kullanıcı kaydı sırasında hata oluştu")
		}

		_ = doclog.Write(tx, doclog.Entry{
			UserID:      user.ID,
			Action:      models.ActionCompanyCreated,
			Description: "Firma kaydedildi: " + company.Name,
			After:       company,
			Success:     true,
		})
		_ = doclog.Write(tx, doclog.Entry{
			UserID:      user.ID,
			Action:      models.ActionUserCreated,
			Description: "Kullanıcı kaydedildi: " + user.Email,
			Success:     true,
		})

		result = RegisterResult{CompanyID: company.ID, UserID: user.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Authenticate email + şifre doğrular ve session principal döndürür.
// Bilinmeyen email ile yanlış şifre aynı genel hatayı üretir (enumeration'a
// karşı ayrım yapılmaz).
func Authenticate(db *gorm.DB, email, password string) (*Principal, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, apperr.New(apperr.ErrValidation, "Email ve şifre alanları zorunludur")
	}

	var user models.User
	if err := db.Preload("Company").
		Where("email = ? AND active = ?", email, true).
		First(&user).Error; err != nil {
		return nil, apperr.New(apperr.ErrInvalidCredentials, "Email veya şifre hatalı")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.New(apperr.ErrInvalidCredentials, "Email veya şifre hatalı")
	}

	now := time.Now()
	if err := db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("last_login_at", now).Error; err != nil {
		return nil, apperr.New(apperr.ErrStorage, "Son giriş tarihi güncellenemedi")
	}

	p := &Principal{
		UserID:    user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		CompanyID: user.CompanyID,
	}
	if user.Company != nil {
		p.CompanyName = user.Company.Name
	}

	_ = doclog.Write(db, doclog.Entry{
		UserID:      user.ID,
		Action:      models.ActionUserLogin,
		Description: "Kullanıcı giriş yaptı",
		Success:     true,
	})

	return p, nil
}
