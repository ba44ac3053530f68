package postgres

import (
	"gorm.io/gorm"

	personDatamodel "github.com/campushub/records-portal/internal/core/datamodel/person"
	"github.com/campushub/records-portal/internal/person"
)

type PersonRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) person.RepositoryAPI {
	return &PersonRepository{db: db}
}

// CreateStudentWithRecords stores the student and all attached sub-records;
// gorm cascades the association creates inside one transaction.
func (r *PersonRepository) CreateStudentWithRecords(st *personDatamodel.Student) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(st).Error
	})
}

func (r *PersonRepository) CreateEmployeeWithRecords(emp *personDatamodel.Employee) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(emp).Error
	})
}

func (r *PersonRepository) ListStudents() ([]*personDatamodel.Student, error) {
	var students []*personDatamodel.Student
	err := r.db.Order("student_id ASC").Find(&students).Error
	return students, err
}

func (r *PersonRepository) ListEmployees() ([]*personDatamodel.Employee, error) {
	var employees []*personDatamodel.Employee
	err := r.db.Order("employee_id ASC").Find(&employees).Error
	return employees, err
}

func (r *PersonRepository) GetStudent(id int64) (*personDatamodel.Student, error) {
	var st personDatamodel.Student
	err := r.db.
		Preload("Contacts").
		Preload("Academics").
		Preload("Banks").
		Preload("Parents").
		Where("id = ?", id).First(&st).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

func (r *PersonRepository) GetEmployee(id int64) (*personDatamodel.Employee, error) {
	var emp personDatamodel.Employee
	err := r.db.
		Preload("Contacts").
		Preload("Academics").
		Preload("Banks").
		Preload("Departments").
		Where("id = ?", id).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *PersonRepository) GetStudentByAccount(accountID int64) (*personDatamodel.Student, error) {
	var st personDatamodel.Student
	err := r.db.
		Preload("Contacts").
		Preload("Academics").
		Preload("Banks").
		Preload("Parents").
		Where("account_id = ?", accountID).First(&st).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

func (r *PersonRepository) GetEmployeeByAccount(accountID int64) (*personDatamodel.Employee, error) {
	var emp personDatamodel.Employee
	err := r.db.
		Preload("Contacts").
		Preload("Academics").
		Preload("Banks").
		Preload("Departments").
		Where("account_id = ?", accountID).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}
