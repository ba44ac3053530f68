package postgres

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/campushub/records-portal/internal/auth"
	accountDatamodel "github.com/campushub/records-portal/internal/core/datamodel/account"
	otpDatamodel "github.com/campushub/records-portal/internal/core/datamodel/otp"
	personDatamodel "github.com/campushub/records-portal/internal/core/datamodel/person"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) auth.AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByUsername(username string) (*accountDatamodel.Account, error) {
	var account accountDatamodel.Account
	err := r.db.Where("username = ?", username).First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) GetByEmail(email string) (*accountDatamodel.Account, error) {
	var account accountDatamodel.Account
	err := r.db.Where("email = ?", email).First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) GetProfile(accountID int64) (*accountDatamodel.Profile, error) {
	var profile accountDatamodel.Profile
	err := r.db.Where("account_id = ?", accountID).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *AccountRepository) CreateProfile(profile *accountDatamodel.Profile) error {
	return r.db.Create(profile).Error
}

func (r *AccountRepository) UpdatePassword(accountID int64, passwordHash string) error {
	return r.db.Model(&accountDatamodel.Account{}).
		Where("id = ?", accountID).
		Update("password_hash", passwordHash).Error
}

func (r *AccountRepository) MarkPasswordChanged(accountID int64) error {
	return r.db.Model(&accountDatamodel.Profile{}).
		Where("account_id = ?", accountID).
		Updates(map[string]interface{}{
			"first_login":         false,
			"is_default_password": false,
		}).Error
}

func (r *AccountRepository) StampLastLogin(accountID int64, at time.Time) error {
	return r.db.Model(&accountDatamodel.Account{}).
		Where("id = ?", accountID).
		Update("last_login_at", at).Error
}

func (r *AccountRepository) HasStudentRecord(accountID int64) (bool, error) {
	var count int64
	err := r.db.Model(&personDatamodel.Student{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count > 0, err
}

func (r *AccountRepository) HasEmployeeRecord(accountID int64) (bool, error) {
	var count int64
	err := r.db.Model(&personDatamodel.Employee{}).
		Where("account_id = ?", accountID).
		Count(&count).Error
	return count > 0, err
}

type OtpRepository struct {
	db *gorm.DB
}

func NewOtpRepository(db *gorm.DB) auth.OtpRepository {
	return &OtpRepository{db: db}
}

// Upsert replaces any earlier code for the email; only the latest issued code
// can ever verify.
func (r *OtpRepository) Upsert(email, code string, issuedAt time.Time) error {
	record := otpDatamodel.OneTimeCode{
		Email:    email,
		Code:     code,
		IssuedAt: issuedAt,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "issued_at"}),
	}).Create(&record).Error
}

func (r *OtpRepository) GetByEmail(email string) (*otpDatamodel.OneTimeCode, error) {
	var record otpDatamodel.OneTimeCode
	err := r.db.Where("email = ?", email).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
