package person

import (
	"time"

	"github.com/campushub/records-portal/internal/core/common/validation"
	personDatamodel "github.com/campushub/records-portal/internal/core/datamodel/person"
)

type ContactDTO struct {
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

type BankDTO struct {
	BankAccount string `json:"bank_account"`
	IFSCCode    string `json:"ifsc_code"`
	BankName    string `json:"bank_name"`
}

type StudentAcademicDTO struct {
	Class10Score    *float64 `json:"class_10_score,omitempty"`
	Class12Score    *float64 `json:"class_12_score,omitempty"`
	GraduationScore *float64 `json:"graduation_score,omitempty"`
}

type ParentDTO struct {
	ParentName    string `json:"parent_name"`
	Relationship  string `json:"relationship"`
	ContactNumber string `json:"contact_number"`
}

type EmployeeAcademicDTO struct {
	HighestDegree string `json:"highest_degree"`
	Institution   string `json:"institution"`
	YearOfPassing int    `json:"year_of_passing"`
}

type DepartmentDTO struct {
	BranchID int64  `json:"branch_id"`
	Subject  string `json:"subject"`
}

// StudentProfileDTO completes the person record for a gated student account.
type StudentProfileDTO struct {
	Name          string              `json:"name"`
	Gender        string              `json:"gender"`
	DateOfBirth   *time.Time          `json:"date_of_birth,omitempty"`
	AdmissionDate *time.Time          `json:"admission_date,omitempty"`
	UniversityID  int64               `json:"university_id"`
	InstituteID   int64               `json:"institute_id"`
	ProgramID     int64               `json:"program_id"`
	BranchID      int64               `json:"branch_id"`
	AdmissionYear int                 `json:"admission_year"`
	Semester      int                 `json:"semester"`
	Contact       *ContactDTO         `json:"contact,omitempty"`
	Academic      *StudentAcademicDTO `json:"academic,omitempty"`
	Bank          *BankDTO            `json:"bank,omitempty"`
	Parents       []ParentDTO         `json:"parents,omitempty"`
}

func (d StudentProfileDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("gender", d.Gender).OneOf("M", "F", "O")
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

// EmployeeProfileDTO completes the person record for a gated staff account.
type EmployeeProfileDTO struct {
	Name            string               `json:"name"`
	Gender          string               `json:"gender"`
	DateOfBirth     *time.Time           `json:"date_of_birth,omitempty"`
	HireDate        time.Time            `json:"hire_date"`
	EmployeeType    string               `json:"employee_type"`
	UniversityID    int64                `json:"university_id"`
	InstituteID     int64                `json:"institute_id"`
	ProgramID       *int64               `json:"program_id,omitempty"`
	BranchID        *int64               `json:"branch_id,omitempty"`
	Position        string               `json:"position,omitempty"`
	TeachingSubject string               `json:"teaching_subject,omitempty"`
	Contact         *ContactDTO          `json:"contact,omitempty"`
	Academic        *EmployeeAcademicDTO `json:"academic,omitempty"`
	Bank            *BankDTO             `json:"bank,omitempty"`
	Departments     []DepartmentDTO      `json:"departments,omitempty"`
}

func (d EmployeeProfileDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("gender", d.Gender).OneOf("M", "F", "O")
	v.Field("hire_date", d.HireDate).Required().NotFuture()
	v.Field("employee_type", d.EmployeeType).Required().OneOf(
		"teacher", "hod", "scholarship_officer", "fee_collector", "admin", "other")
	v.Field("university_id", d.UniversityID).Required()
	v.Field("institute_id", d.InstituteID).Required()
	v.Field("position", d.Position).MaxLength(100)
	v.Field("teaching_subject", d.TeachingSubject).MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type StudentSummary struct {
	ID            int64  `json:"id"`
	StudentID     string `json:"student_id"`
	Name          string `json:"name"`
	UniversityID  int64  `json:"university_id"`
	InstituteID   int64  `json:"institute_id"`
	ProgramID     int64  `json:"program_id"`
	BranchID      int64  `json:"branch_id"`
	AdmissionYear int    `json:"admission_year"`
	Semester      int    `json:"semester"`
}

type EmployeeSummary struct {
	ID           int64  `json:"id"`
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name"`
	EmployeeType string `json:"employee_type"`
	UniversityID int64  `json:"university_id"`
	InstituteID  int64  `json:"institute_id"`
}

type StudentListResponse struct {
	Students []StudentSummary `json:"students"`
}

type EmployeeListResponse struct {
	Employees []EmployeeSummary `json:"employees"`
}

type StudentDetail struct {
	StudentSummary
	Gender        string              `json:"gender"`
	DateOfBirth   *time.Time          `json:"date_of_birth,omitempty"`
	AdmissionDate *time.Time          `json:"admission_date,omitempty"`
	Contact       *ContactDTO         `json:"contact,omitempty"`
	Academic      *StudentAcademicDTO `json:"academic,omitempty"`
	Bank          *BankDTO            `json:"bank,omitempty"`
	Parents       []ParentDTO         `json:"parents,omitempty"`
}

type EmployeeDetail struct {
	EmployeeSummary
	Gender          string               `json:"gender"`
	DateOfBirth     *time.Time           `json:"date_of_birth,omitempty"`
	HireDate        *time.Time           `json:"hire_date,omitempty"`
	ProgramID       *int64               `json:"program_id,omitempty"`
	BranchID        *int64               `json:"branch_id,omitempty"`
	Position        string               `json:"position,omitempty"`
	TeachingSubject string               `json:"teaching_subject,omitempty"`
	Contact         *ContactDTO          `json:"contact,omitempty"`
	Academic        *EmployeeAcademicDTO `json:"academic,omitempty"`
	Bank            *BankDTO             `json:"bank,omitempty"`
	Departments     []DepartmentDTO      `json:"departments,omitempty"`
}

// MeResponse is the role-shaped profile of the authenticated account.
type MeResponse struct {
	Role     string          `json:"role"`
	Student  *StudentDetail  `json:"student,omitempty"`
	Employee *EmployeeDetail `json:"employee,omitempty"`
}

func NewStudentDetail(st *personDatamodel.Student) *StudentDetail {
	detail := &StudentDetail{
		StudentSummary: NewStudentSummary(st),
		Gender:         st.Gender,
		DateOfBirth:    st.DateOfBirth,
		AdmissionDate:  st.AdmissionDate,
	}
	if len(st.Contacts) > 0 {
		c := st.Contacts[0]
		detail.Contact = &ContactDTO{PhoneNumber: c.PhoneNumber, Email: c.Email, Address: c.Address}
	}
	if len(st.Academics) > 0 {
		a := st.Academics[0]
		detail.Academic = &StudentAcademicDTO{Class10Score: a.Class10Score, Class12Score: a.Class12Score, GraduationScore: a.GraduationScore}
	}
	if len(st.Banks) > 0 {
		b := st.Banks[0]
		detail.Bank = &BankDTO{BankAccount: b.BankAccount, IFSCCode: b.IFSCCode, BankName: b.BankName}
	}
	for _, p := range st.Parents {
		detail.Parents = append(detail.Parents, ParentDTO{ParentName: p.ParentName, Relationship: p.Relationship, ContactNumber: p.ContactNumber})
	}
	return detail
}

func NewEmployeeDetail(emp *personDatamodel.Employee) *EmployeeDetail {
	detail := &EmployeeDetail{
		EmployeeSummary: NewEmployeeSummary(emp),
		Gender:          emp.Gender,
		DateOfBirth:     emp.DateOfBirth,
		HireDate:        emp.HireDate,
		ProgramID:       emp.ProgramID,
		BranchID:        emp.BranchID,
		Position:        emp.Position,
		TeachingSubject: emp.TeachingSubject,
	}
	if len(emp.Contacts) > 0 {
		c := emp.Contacts[0]
		detail.Contact = &ContactDTO{PhoneNumber: c.PhoneNumber, Email: c.Email, Address: c.Address}
	}
	if len(emp.Academics) > 0 {
		a := emp.Academics[0]
		detail.Academic = &EmployeeAcademicDTO{HighestDegree: a.HighestDegree, Institution: a.Institution, YearOfPassing: a.YearOfPassing}
	}
	if len(emp.Banks) > 0 {
		b := emp.Banks[0]
		detail.Bank = &BankDTO{BankAccount: b.BankAccount, IFSCCode: b.IFSCCode, BankName: b.BankName}
	}
	for _, d := range emp.Departments {
		detail.Departments = append(detail.Departments, DepartmentDTO{BranchID: d.BranchID, Subject: d.Subject})
	}
	return detail
}

func NewStudentSummary(st *personDatamodel.Student) StudentSummary {
	return StudentSummary{
		ID:            st.ID,
		StudentID:     st.StudentID,
		Name:          st.Name,
		UniversityID:  st.UniversityID,
		InstituteID:   st.InstituteID,
		ProgramID:     st.ProgramID,
		BranchID:      st.BranchID,
		AdmissionYear: st.AdmissionYear,
		Semester:      st.Semester,
	}
}

func NewEmployeeSummary(emp *personDatamodel.Employee) EmployeeSummary {
	return EmployeeSummary{
		ID:           emp.ID,
		EmployeeID:   emp.EmployeeID,
		Name:         emp.Name,
		EmployeeType: emp.EmployeeType,
		UniversityID: emp.UniversityID,
		InstituteID:  emp.InstituteID,
	}
}
