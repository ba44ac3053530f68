package postgres

import (
	"github.com/campushub/records-portal/internal/identifier"
	"gorm.io/gorm"
)

// IdentifierRepository scans one identifier column of one table. Student and
// employee buckets get separate instances over their own tables.
type IdentifierRepository struct {
	db     *gorm.DB
	table  string
	column string
}

func NewStudentIdentifierRepository(db *gorm.DB) identifier.RepositoryAPI {
	return &IdentifierRepository{db: db, table: "students", column: "student_id"}
}

func NewEmployeeIdentifierRepository(db *gorm.DB) identifier.RepositoryAPI {
	return &IdentifierRepository{db: db, table: "employees", column: "employee_id"}
}

func (r *IdentifierRepository) LastWithPrefix(prefix string) (string, error) {
	var last string
	err := r.db.Table(r.table).
		Select(r.column).
		Where(r.column+" LIKE ?", prefix+"%").
		Order(r.column + " DESC").
		Limit(1).
		Scan(&last).Error
	if err != nil {
		return "", err
	}
	return last, nil
}
