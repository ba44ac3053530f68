package person

import (
	personDatamodel "github.com/campushub/records-portal/internal/core/datamodel/person"
)

// RepositoryAPI persists person records. The Create methods store the person
// and every attached sub-record in one transaction.
type RepositoryAPI interface {
	CreateStudentWithRecords(st *personDatamodel.Student) error
	CreateEmployeeWithRecords(emp *personDatamodel.Employee) error

	ListStudents() ([]*personDatamodel.Student, error)
	ListEmployees() ([]*personDatamodel.Employee, error)

	GetStudent(id int64) (*personDatamodel.Student, error)
	GetEmployee(id int64) (*personDatamodel.Employee, error)
	GetStudentByAccount(accountID int64) (*personDatamodel.Student, error)
	GetEmployeeByAccount(accountID int64) (*personDatamodel.Employee, error)
}
