package registration

import (
	"context"
	"log/slog"

	internal "github.com/campushub/records-portal/internal"
	accountDatamodel "github.com/campushub/records-portal/internal/core/datamodel/account"
	personDatamodel "github.com/campushub/records-portal/internal/core/datamodel/person"
	"github.com/campushub/records-portal/internal/core/events"
	"github.com/campushub/records-portal/internal/hierarchy"
	"github.com/campushub/records-portal/internal/identifier"
	"golang.org/x/crypto/bcrypt"
)

type HierarchyAPI interface {
	ValidatePlacement(placement hierarchy.Placement) error
	ValidatePartialPlacement(universityID, instituteID int64, programID, branchID *int64) error
	ProgramCode(id int64) (string, error)
}

type IdentifierAPI interface {
	Next(prefix string) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service orchestrates admin-side registration: identifier, account, profile
// and person record are created together or not at all. The credentials email
// goes out after commit and its failure never undoes the registration.
type Service struct {
	repo        RepositoryAPI
	hierarchy   HierarchyAPI
	studentIDs  IdentifierAPI
	employeeIDs IdentifierAPI
	bus         EventPublisher
	bcryptCost  int
	logger      *slog.Logger
}

func NewService(
	repo RepositoryAPI,
	hierarchySvc HierarchyAPI,
	studentIDs IdentifierAPI,
	employeeIDs IdentifierAPI,
	bus EventPublisher,
	bcryptCost int,
	logger *slog.Logger,
) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:        repo,
		hierarchy:   hierarchySvc,
		studentIDs:  studentIDs,
		employeeIDs: employeeIDs,
		bus:         bus,
		bcryptCost:  bcryptCost,
		logger:      logger,
	}
}

func (s *Service) RegisterStudent(ctx context.Context, actor internal.Actor, dto RegisterStudentDTO) (*RegistrationResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
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
	prefix := identifier.StudentPrefix(courseCode, dto.AdmissionYear, yearOfStudy)
	studentID, err := s.studentIDs.Next(prefix)
	if err != nil {
		return nil, err
	}

	account, profile, tempPassword, err := s.buildAccount(studentID, dto.Email, "student", false, dto.MobileNumber, dto.AadharNumber)
	if err != nil {
		return nil, err
	}

	student := &personDatamodel.Student{
		StudentID:     studentID,
		Name:          dto.Name,
		DateOfBirth:   dto.DateOfBirth,
		Gender:        dto.Gender,
		UniversityID:  dto.UniversityID,
		InstituteID:   dto.InstituteID,
		ProgramID:     dto.ProgramID,
		BranchID:      dto.BranchID,
		AdmissionYear: dto.AdmissionYear,
		Semester:      dto.Semester,
		EntryPerson:   actor.Username,
	}

	if err := s.repo.CreateStudent(account, profile, student); err != nil {
		s.logger.Error("student registration failed", "email", dto.Email, "error", err)
		return nil, err
	}

	s.publishCredentials(ctx, account, tempPassword)

	return &RegistrationResponse{
		AccountID:  account.ID,
		Username:   account.Username,
		Email:      account.Email,
		Identifier: studentID,
	}, nil
}

func (s *Service) RegisterEmployee(ctx context.Context, actor internal.Actor, dto RegisterEmployeeDTO) (*RegistrationResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	// variant normalization happens before any placement check or persistence
	fields := NormalizeForType(EmployeeType(dto.EmployeeType), EmployeeFields{
		ProgramID:       dto.ProgramID,
		BranchID:        dto.BranchID,
		Position:        dto.Position,
		TeachingSubject: dto.TeachingSubject,
	})

	if err := s.hierarchy.ValidatePartialPlacement(dto.UniversityID, dto.InstituteID, fields.ProgramID, fields.BranchID); err != nil {
		return nil, err
	}

	prefix := identifier.EmployeePrefix(dto.HireDate.Year(), dto.EmployeeType)
	employeeID, err := s.employeeIDs.Next(prefix)
	if err != nil {
		return nil, err
	}

	account, profile, tempPassword, err := s.buildAccount(employeeID, dto.Email, "employee", true, dto.MobileNumber, dto.AadharNumber)
	if err != nil {
		return nil, err
	}

	hireDate := dto.HireDate
	employee := &personDatamodel.Employee{
		EmployeeID:      employeeID,
		Name:            dto.Name,
		DateOfBirth:     dto.DateOfBirth,
		Gender:          dto.Gender,
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

	if err := s.repo.CreateEmployee(account, profile, employee); err != nil {
		s.logger.Error("employee registration failed", "email", dto.Email, "error", err)
		return nil, err
	}

	s.publishCredentials(ctx, account, tempPassword)

	return &RegistrationResponse{
		AccountID:  account.ID,
		Username:   account.Username,
		Email:      account.Email,
		Identifier: employeeID,
	}, nil
}

// RegisterUser provisions a bare account and profile with no person record.
func (s *Service) RegisterUser(ctx context.Context, actor internal.Actor, dto RegisterUserDTO) (*RegistrationResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	account, profile, tempPassword, err := s.buildAccount("", dto.Email, dto.Role, dto.IsStaff, dto.MobileNumber, dto.AadharNumber)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateUser(account, profile); err != nil {
		s.logger.Error("user registration failed", "email", dto.Email, "error", err)
		return nil, err
	}

	s.publishCredentials(ctx, account, tempPassword)

	return &RegistrationResponse{
		AccountID: account.ID,
		Username:  account.Username,
		Email:     account.Email,
	}, nil
}

func (s *Service) buildAccount(identifier, email, role string, isStaff bool, mobile, aadhar string) (*accountDatamodel.Account, *accountDatamodel.Profile, string, error) {
	username, err := DeriveUsername(identifier, email)
	if err != nil {
		return nil, nil, "", err
	}

	tempPassword, err := GenerateTempPassword()
	if err != nil {
		return nil, nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), s.bcryptCost)
	if err != nil {
		return nil, nil, "", err
	}

	account := &accountDatamodel.Account{
		Username:     username,
		Email:        email,
		Role:         role,
		IsActive:     true,
		IsStaff:      isStaff,
		PasswordHash: string(hash),
	}
	profile := &accountDatamodel.Profile{
		FirstLogin:        true,
		IsDefaultPassword: true,
		MobileNumber:      mobile,
		AadharNumber:      aadhar,
	}
	return account, profile, tempPassword, nil
}

func (s *Service) publishCredentials(ctx context.Context, account *accountDatamodel.Account, tempPassword string) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, events.NewAccountProvisionedEvent(account.ID, account.Username, account.Email, tempPassword)); err != nil {
		s.logger.Error("failed to publish credentials event", "account_id", account.ID, "error", err)
	}
}

