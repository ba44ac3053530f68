package person

import (
	"log/slog"

	internal "github.com/campushub/records-portal/internal"
	personDatamodel "github.com/campushub/records-portal/internal/core/datamodel/person"
	"github.com/campushub/records-portal/internal/hierarchy"
	"github.com/campushub/records-portal/internal/identifier"
	"github.com/campushub/records-portal/internal/registration"
)

type HierarchyAPI interface {
	ValidatePlacement(placement hierarchy.Placement) error
	ValidatePartialPlacement(universityID, instituteID int64, programID, branchID *int64) error
	ProgramCode(id int64) (string, error)
}

type IdentifierAPI interface {
	Next(prefix string) (string, error)
}

// Service completes gated profiles and serves the people listings. A profile
// completion persists the person and all sub-records together; the account
// itself already exists, so nothing account-side is touched.
type Service struct {
	repo        RepositoryAPI
	hierarchy   HierarchyAPI
	studentIDs  IdentifierAPI
	employeeIDs IdentifierAPI
	logger      *slog.Logger
}

func NewService(
	repo RepositoryAPI,
	hierarchySvc HierarchyAPI,
	studentIDs IdentifierAPI,
	employeeIDs IdentifierAPI,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:        repo,
		hierarchy:   hierarchySvc,
		studentIDs:  studentIDs,
		employeeIDs: employeeIDs,
		logger:      logger,
	}
}

func (s *Service) CompleteStudentProfile(actor internal.Actor, dto StudentProfileDTO) (*StudentDetail, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetStudentByAccount(actor.AccountID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError("profile already completed", internal.ErrCodeDuplicateIdentity)
	}

	placement := hierarchy.Placement{
		UniversityID: dto.UniversityID,
		InstituteID:  dto.InstituteID,
		ProgramID:    dto.ProgramID,
		BranchID:     dto.BranchID,
	}
	if err := s.hierarchy.ValidatePlacement(placement); err != nil {
		return nil, err
	}

	courseCode, err := s.hierarchy.ProgramCode(dto.ProgramID)
	if err != nil {
		return nil, err
	}
	yearOfStudy := (dto.Semester + 1) / 2
	studentID, err := s.studentIDs.Next(identifier.StudentPrefix(courseCode, dto.AdmissionYear, yearOfStudy))
	if err != nil {
		return nil, err
	}

	student := &personDatamodel.Student{
		AccountID:     actor.AccountID,
		StudentID:     studentID,
		Name:          dto.Name,
		Gender:        dto.Gender,
		DateOfBirth:   dto.DateOfBirth,
		AdmissionDate: dto.AdmissionDate,
		UniversityID:  dto.UniversityID,
		InstituteID:   dto.InstituteID,
		ProgramID:     dto.ProgramID,
		BranchID:      dto.BranchID,
		AdmissionYear: dto.AdmissionYear,
		Semester:      dto.Semester,
		EntryPerson:   actor.Username,
	}
	attachStudentRecords(student, dto)

	if err := s.repo.CreateStudentWithRecords(student); err != nil {
		s.logger.Error("student profile completion failed", "account_id", actor.AccountID, "error", err)
		return nil, err
	}

	return NewStudentDetail(student), nil
}

func (s *Service) CompleteEmployeeProfile(actor internal.Actor, dto EmployeeProfileDTO) (*EmployeeDetail, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetEmployeeByAccount(actor.AccountID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError("profile already completed", internal.ErrCodeDuplicateIdentity)
	}

	fields := registration.NormalizeForType(registration.EmployeeType(dto.EmployeeType), registration.EmployeeFields{
		ProgramID:       dto.ProgramID,
		BranchID:        dto.BranchID,
		Position:        dto.Position,
		TeachingSubject: dto.TeachingSubject,
	})

	if err := s.hierarchy.ValidatePartialPlacement(dto.UniversityID, dto.InstituteID, fields.ProgramID, fields.BranchID); err != nil {
		return nil, err
	}

	employeeID, err := s.employeeIDs.Next(identifier.EmployeePrefix(dto.HireDate.Year(), dto.EmployeeType))
	if err != nil {
		return nil, err
	}

	hireDate := dto.HireDate
	employee := &personDatamodel.Employee{
		AccountID:       actor.AccountID,
		EmployeeID:      employeeID,
		Name:            dto.Name,
		Gender:          dto.Gender,
		DateOfBirth:     dto.DateOfBirth,
		HireDate:        &hireDate,
		EmployeeType:    dto.EmployeeType,
		UniversityID:    dto.UniversityID,
		InstituteID:     dto.InstituteID,
		ProgramID:       fields.ProgramID,
		BranchID:        fields.BranchID,
		Position:        fields.Position,
		TeachingSubject: fields.TeachingSubject,
		EntryPerson:     actor.Username,
	}
	attachEmployeeRecords(employee, dto)

	if err := s.repo.CreateEmployeeWithRecords(employee); err != nil {
		s.logger.Error("employee profile completion failed", "account_id", actor.AccountID, "error", err)
		return nil, err
	}

	return NewEmployeeDetail(employee), nil
}

func (s *Service) ListStudents() ([]StudentSummary, error) {
	students, err := s.repo.ListStudents()
	if err != nil {
		s.logger.Error("failed to list students", "error", err)
		return nil, err
	}
	summaries := make([]StudentSummary, 0, len(students))
	for _, st := range students {
		summaries = append(summaries, NewStudentSummary(st))
	}
	return summaries, nil
}

func (s *Service) ListEmployees() ([]EmployeeSummary, error) {
	employees, err := s.repo.ListEmployees()
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}
	summaries := make([]EmployeeSummary, 0, len(employees))
	for _, emp := range employees {
		summaries = append(summaries, NewEmployeeSummary(emp))
	}
	return summaries, nil
}

func (s *Service) GetStudent(id int64) (*StudentDetail, error) {
	student, err := s.repo.GetStudent(id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, internal.ErrPersonNotFound
	}
	return NewStudentDetail(student), nil
}

func (s *Service) GetEmployee(id int64) (*EmployeeDetail, error) {
	employee, err := s.repo.GetEmployee(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, internal.ErrPersonNotFound
	}
	return NewEmployeeDetail(employee), nil
}

// Me returns whichever person record the account's role implies.
func (s *Service) Me(actor internal.Actor) (*MeResponse, error) {
	if actor.IsStaff {
		employee, err := s.repo.GetEmployeeByAccount(actor.AccountID)
		if err != nil {
			return nil, err
		}
		if employee == nil {
			return nil, internal.ErrPersonNotFound
		}
		return &MeResponse{Role: actor.Role, Employee: NewEmployeeDetail(employee)}, nil
	}

	student, err := s.repo.GetStudentByAccount(actor.AccountID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, internal.ErrPersonNotFound
	}
	return &MeResponse{Role: actor.Role, Student: NewStudentDetail(student)}, nil
}

func attachStudentRecords(st *personDatamodel.Student, dto StudentProfileDTO) {
	if dto.Contact != nil {
		st.Contacts = []personDatamodel.StudentContact{{
			PhoneNumber: dto.Contact.PhoneNumber,
			Email:       dto.Contact.Email,
			Address:     dto.Contact.Address,
		}}
	}
	if dto.Academic != nil {
		st.Academics = []personDatamodel.StudentAcademic{{
			Class10Score:    dto.Academic.Class10Score,
			Class12Score:    dto.Academic.Class12Score,
			GraduationScore: dto.Academic.GraduationScore,
		}}
	}
	if dto.Bank != nil {
		st.Banks = []personDatamodel.StudentBank{{
			BankAccount: dto.Bank.BankAccount,
			IFSCCode:    dto.Bank.IFSCCode,
			BankName:    dto.Bank.BankName,
		}}
	}
	for _, p := range dto.Parents {
		st.Parents = append(st.Parents, personDatamodel.StudentParent{
			ParentName:    p.ParentName,
			Relationship:  p.Relationship,
			ContactNumber: p.ContactNumber,
		})
	}
}

func attachEmployeeRecords(emp *personDatamodel.Employee, dto EmployeeProfileDTO) {
	if dto.Contact != nil {
		emp.Contacts = []personDatamodel.EmployeeContact{{
			PhoneNumber: dto.Contact.PhoneNumber,
			Email:       dto.Contact.Email,
			Address:     dto.Contact.Address,
		}}
	}
	if dto.Academic != nil {
		emp.Academics = []personDatamodel.EmployeeAcademic{{
			HighestDegree: dto.Academic.HighestDegree,
			Institution:   dto.Academic.Institution,
			YearOfPassing: dto.Academic.YearOfPassing,
		}}
	}
	if dto.Bank != nil {
		emp.Banks = []personDatamodel.EmployeeBank{{
			BankAccount: dto.Bank.BankAccount,
			IFSCCode:    dto.Bank.IFSCCode,
			BankName:    dto.Bank.BankName,
		}}
	}
	for _, d := range dto.Departments {
		emp.Departments = append(emp.Departments, personDatamodel.EmployeeDepartment{
			BranchID: d.BranchID,
			Subject:  d.Subject,
		})
	}
}
