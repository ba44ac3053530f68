package registration

import (
	"regexp"
	"time"

	"github.com/campushub/records-portal/internal/core/common/validation"
)

var (
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
	aadharPattern = regexp.MustCompile(`^[0-9]{12}$`)
)

type RegisterStudentDTO struct {
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Gender        string     `json:"gender"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	MobileNumber  string     `json:"mobile_number"`
	AadharNumber  string     `json:"aadhar_number"`
	UniversityID  int64      `json:"university_id"`
	InstituteID   int64      `json:"institute_id"`
	ProgramID     int64      `json:"program_id"`
	BranchID      int64      `json:"branch_id"`
	AdmissionYear int        `json:"admission_year"`
	Semester      int        `json:"semester"`
}

func (d RegisterStudentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("gender", d.Gender).OneOf("M", "F", "O")
	v.Field("mobile_number", d.MobileNumber).Required().Matches(mobilePattern, "a 10-digit number")
	v.Field("aadhar_number", d.AadharNumber).Required().Matches(aadharPattern, "a 12-digit number")
	v.Field("university_id", d.UniversityID).Required()
	v.Field("institute_id", d.InstituteID).Required()
	v.Field("program_id", d.ProgramID).Required()
	v.Field("branch_id", d.BranchID).Required()
	v.Field("admission_year", d.AdmissionYear).IntRange(2000, time.Now().Year())
	v.Field("semester", d.Semester).IntRange(1, 8)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type RegisterEmployeeDTO struct {
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	Gender          string     `json:"gender"`
	DateOfBirth     *time.Time `json:"date_of_birth,omitempty"`
	MobileNumber    string     `json:"mobile_number"`
	AadharNumber    string     `json:"aadhar_number"`
	HireDate        time.Time  `json:"hire_date"`
	EmployeeType    string     `json:"employee_type"`
	UniversityID    int64      `json:"university_id"`
	InstituteID     int64      `json:"institute_id"`
	ProgramID       *int64     `json:"program_id,omitempty"`
	BranchID        *int64     `json:"branch_id,omitempty"`
	Position        string     `json:"position,omitempty"`
	TeachingSubject string     `json:"teaching_subject,omitempty"`
}

func (d RegisterEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("gender", d.Gender).OneOf("M", "F", "O")
	v.Field("mobile_number", d.MobileNumber).Required().Matches(mobilePattern, "a 10-digit number")
	v.Field("aadhar_number", d.AadharNumber).Required().Matches(aadharPattern, "a 12-digit number")
	v.Field("hire_date", d.HireDate).Required().NotFuture()
	v.Field("employee_type", d.EmployeeType).Required().OneOf(
		string(EmployeeTypeTeacher),
		string(EmployeeTypeHod),
		string(EmployeeTypeScholarshipOfficer),
		string(EmployeeTypeFeeCollector),
		string(EmployeeTypeAdmin),
		string(EmployeeTypeOther),
	)
	v.Field("university_id", d.UniversityID).Required()
	v.Field("institute_id", d.InstituteID).Required()
	v.Field("position", d.Position).MaxLength(100)
	v.Field("teaching_subject", d.TeachingSubject).MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type RegisterUserDTO struct {
	Email        string `json:"email"`
	Role         string `json:"role"`
	IsStaff      bool   `json:"is_staff"`
	MobileNumber string `json:"mobile_number,omitempty"`
	AadharNumber string `json:"aadhar_number,omitempty"`
}

func (d RegisterUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	v.Field("role", d.Role).Required().OneOf("student", "employee", "admin")
	v.Field("mobile_number", d.MobileNumber).Matches(mobilePattern, "a 10-digit number")
	v.Field("aadhar_number", d.AadharNumber).Matches(aadharPattern, "a 12-digit number")
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// RegistrationResponse reports the created account. The temporary password is
// emailed, never returned over the API.
type RegistrationResponse struct {
	AccountID  int64  `json:"account_id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Identifier string `json:"identifier,omitempty"`
}
