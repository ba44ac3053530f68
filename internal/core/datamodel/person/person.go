package person

import "time"

type Student struct {
	ID            int64      `gorm:"primaryKey"`
	AccountID     int64      `gorm:"column:account_id;uniqueIndex;not null"`
	StudentID     string     `gorm:"column:student_id;uniqueIndex;not null"`
	Name          string     `gorm:"column:name"`
	DateOfBirth   *time.Time `gorm:"column:date_of_birth"`
	Gender        string     `gorm:"column:gender"`
	AdmissionDate *time.Time `gorm:"column:admission_date"`
	UniversityID  int64      `gorm:"column:university_id;not null"`
	InstituteID   int64      `gorm:"column:institute_id;not null"`
	ProgramID     int64      `gorm:"column:program_id;not null"`
	BranchID      int64      `gorm:"column:branch_id;not null"`
	AdmissionYear int        `gorm:"column:admission_year;not null"`
	Semester      int        `gorm:"column:semester;default:1"`
	EntryPerson   string     `gorm:"column:entry_person"`
	EditPerson    string     `gorm:"column:edit_person"`
	CreatedAt     time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;default:now()"`

	Contacts  []StudentContact  `gorm:"foreignKey:StudentID;references:ID;constraint:OnDelete:CASCADE"`
	Academics []StudentAcademic `gorm:"foreignKey:StudentID;references:ID;constraint:OnDelete:CASCADE"`
	Banks     []StudentBank     `gorm:"foreignKey:StudentID;references:ID;constraint:OnDelete:CASCADE"`
	Parents   []StudentParent   `gorm:"foreignKey:StudentID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Student) TableName() string {
	return "students"
}

type StudentContact struct {
	ID          int64  `gorm:"primaryKey"`
	StudentID   int64  `gorm:"column:student_id;not null"`
	PhoneNumber string `gorm:"column:phone_number"`
	Email       string `gorm:"column:email"`
	Address     string `gorm:"column:address"`
}

func (StudentContact) TableName() string {
	return "student_contacts"
}

type StudentAcademic struct {
	ID              int64    `gorm:"primaryKey"`
	StudentID       int64    `gorm:"column:student_id;not null"`
	Class10Score    *float64 `gorm:"column:class_10_score"`
	Class12Score    *float64 `gorm:"column:class_12_score"`
	GraduationScore *float64 `gorm:"column:graduation_score"`
}

func (StudentAcademic) TableName() string {
	return "student_academics"
}

type StudentBank struct {
	ID          int64  `gorm:"primaryKey"`
	StudentID   int64  `gorm:"column:student_id;not null"`
	BankAccount string `gorm:"column:bank_account"`
	IFSCCode    string `gorm:"column:ifsc_code"`
	BankName    string `gorm:"column:bank_name"`
}

func (StudentBank) TableName() string {
	return "student_banks"
}

type StudentParent struct {
	ID            int64  `gorm:"primaryKey"`
	StudentID     int64  `gorm:"column:student_id;not null"`
	ParentName    string `gorm:"column:parent_name;not null"`
	Relationship  string `gorm:"column:relationship"`
	ContactNumber string `gorm:"column:contact_number"`
}

func (StudentParent) TableName() string {
	return "student_parents"
}

type Employee struct {
	ID              int64      `gorm:"primaryKey"`
	AccountID       int64      `gorm:"column:account_id;uniqueIndex;not null"`
	EmployeeID      string     `gorm:"column:employee_id;uniqueIndex;not null"`
	Name            string     `gorm:"column:name"`
	DateOfBirth     *time.Time `gorm:"column:date_of_birth"`
	Gender          string     `gorm:"column:gender"`
	HireDate        *time.Time `gorm:"column:hire_date"`
	EmployeeType    string     `gorm:"column:employee_type;not null"`
	UniversityID    int64      `gorm:"column:university_id;not null"`
	InstituteID     int64      `gorm:"column:institute_id;not null"`
	ProgramID       *int64     `gorm:"column:program_id"`
	BranchID        *int64     `gorm:"column:branch_id"`
	Position        string     `gorm:"column:position"`
	TeachingSubject string     `gorm:"column:teaching_subject"`
	EntryPerson     string     `gorm:"column:entry_person"`
	EditPerson      string     `gorm:"column:edit_person"`
	CreatedAt       time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;default:now()"`

	Contacts    []EmployeeContact    `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE"`
	Academics   []EmployeeAcademic   `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE"`
	Banks       []EmployeeBank       `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE"`
	Departments []EmployeeDepartment `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Employee) TableName() string {
	return "employees"
}

type EmployeeContact struct {
	ID          int64  `gorm:"primaryKey"`
	EmployeeID  int64  `gorm:"column:employee_id;not null"`
	PhoneNumber string `gorm:"column:phone_number"`
	Email       string `gorm:"column:email"`
	Address     string `gorm:"column:address"`
}

func (EmployeeContact) TableName() string {
	return "employee_contacts"
}

type EmployeeAcademic struct {
	ID            int64  `gorm:"primaryKey"`
	EmployeeID    int64  `gorm:"column:employee_id;not null"`
	HighestDegree string `gorm:"column:highest_degree"`
	Institution   string `gorm:"column:institution"`
	YearOfPassing int    `gorm:"column:year_of_passing"`
}

func (EmployeeAcademic) TableName() string {
	return "employee_academics"
}

type EmployeeBank struct {
	ID          int64  `gorm:"primaryKey"`
	EmployeeID  int64  `gorm:"column:employee_id;not null"`
	BankAccount string `gorm:"column:bank_account"`
	IFSCCode    string `gorm:"column:ifsc_code"`
	BankName    string `gorm:"column:bank_name"`
}

func (EmployeeBank) TableName() string {
	return "employee_banks"
}

type EmployeeDepartment struct {
	ID         int64  `gorm:"primaryKey"`
	EmployeeID int64  `gorm:"column:employee_id;not null"`
	BranchID   int64  `gorm:"column:branch_id;not null"`
	Subject    string `gorm:"column:subject"`
}

func (EmployeeDepartment) TableName() string {
	return "employee_departments"
}
