package postgres

import (
	stderrors "errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	apperrors "github.com/campushub/records-portal/internal"
	accountDatamodel "github.com/campushub/records-portal/internal/core/datamodel/account"
	personDatamodel "github.com/campushub/records-portal/internal/core/datamodel/person"
	"github.com/campushub/records-portal/internal/registration"
)

type RegistrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) registration.RepositoryAPI {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) CreateStudent(acc *accountDatamodel.Account, prof *accountDatamodel.Profile, st *personDatamodel.Student) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(acc).Error; err != nil {
			return err
		}
		prof.AccountID = acc.ID
		if err := tx.Create(prof).Error; err != nil {
			return err
		}
		st.AccountID = acc.ID
		return tx.Create(st).Error
	})
	return mapUniqueness(err)
}

func (r *RegistrationRepository) CreateEmployee(acc *accountDatamodel.Account, prof *accountDatamodel.Profile, emp *personDatamodel.Employee) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(acc).Error; err != nil {
			return err
		}
		prof.AccountID = acc.ID
		if err := tx.Create(prof).Error; err != nil {
			return err
		}
		emp.AccountID = acc.ID
		return tx.Create(emp).Error
	})
	return mapUniqueness(err)
}

func (r *RegistrationRepository) CreateUser(acc *accountDatamodel.Account, prof *accountDatamodel.Profile) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(acc).Error; err != nil {
			return err
		}
		prof.AccountID = acc.ID
		return tx.Create(prof).Error
	})
	return mapUniqueness(err)
}

// mapUniqueness hides which column collided; the caller logs the raw error,
// the client only ever sees the generic conflict.
func mapUniqueness(err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return duplicateIdentity(err)
	}
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return duplicateIdentity(err)
	}
	return err
}

func duplicateIdentity(cause error) error {
	return apperrors.NewConflictError("could not create the record, please try again", apperrors.ErrCodeDuplicateIdentity).WithCause(cause)
}
