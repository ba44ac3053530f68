package postgres

import (
	"testing"
	"time"

	apperrors "github.com/campushub/records-portal/internal"
	accountDatamodel "github.com/campushub/records-portal/internal/core/datamodel/account"
	personDatamodel "github.com/campushub/records-portal/internal/core/datamodel/person"
	"github.com/campushub/records-portal/internal/registration"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRegistrationRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RegistrationRepository Suite")
}

type SQLiteAccount struct {
	ID           int64      `gorm:"primaryKey"`
	Username     string     `gorm:"column:username;uniqueIndex;not null"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	Role         string     `gorm:"column:role;not null"`
	IsActive     bool       `gorm:"column:is_active"`
	IsStaff      bool       `gorm:"column:is_staff"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (SQLiteAccount) TableName() string {
	return "accounts"
}

type SQLiteProfile struct {
	ID                int64     `gorm:"primaryKey"`
	AccountID         int64     `gorm:"column:account_id;uniqueIndex;not null"`
	FirstLogin        bool      `gorm:"column:first_login"`
	IsDefaultPassword bool      `gorm:"column:is_default_password"`
	MobileNumber      string    `gorm:"column:mobile_number"`
	AadharNumber      string    `gorm:"column:aadhar_number"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (SQLiteProfile) TableName() string {
	return "profiles"
}

type SQLiteStudent struct {
	ID            int64      `gorm:"primaryKey"`
	AccountID     int64      `gorm:"column:account_id;uniqueIndex;not null"`
	StudentID     string     `gorm:"column:student_id;uniqueIndex;not null"`
	Name          string     `gorm:"column:name"`
	DateOfBirth   *time.Time `gorm:"column:date_of_birth"`
	Gender        string     `gorm:"column:gender"`
	AdmissionDate *time.Time `gorm:"column:admission_date"`
	UniversityID  int64      `gorm:"column:university_id"`
	InstituteID   int64      `gorm:"column:institute_id"`
	ProgramID     int64      `gorm:"column:program_id"`
	BranchID      int64      `gorm:"column:branch_id"`
	AdmissionYear int        `gorm:"column:admission_year"`
	Semester      int        `gorm:"column:semester"`
	EntryPerson   string     `gorm:"column:entry_person"`
	EditPerson    string     `gorm:"column:edit_person"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (SQLiteStudent) TableName() string {
	return "students"
}

type SQLiteEmployee struct {
	ID              int64      `gorm:"primaryKey"`
	AccountID       int64      `gorm:"column:account_id;uniqueIndex;not null"`
	EmployeeID      string     `gorm:"column:employee_id;uniqueIndex;not null"`
	Name            string     `gorm:"column:name"`
	DateOfBirth     *time.Time `gorm:"column:date_of_birth"`
	Gender          string     `gorm:"column:gender"`
	HireDate        *time.Time `gorm:"column:hire_date"`
	EmployeeType    string     `gorm:"column:employee_type"`
	UniversityID    int64      `gorm:"column:university_id"`
	InstituteID     int64      `gorm:"column:institute_id"`
	ProgramID       *int64     `gorm:"column:program_id"`
	BranchID        *int64     `gorm:"column:branch_id"`
	Position        string     `gorm:"column:position"`
	TeachingSubject string     `gorm:"column:teaching_subject"`
	EntryPerson     string     `gorm:"column:entry_person"`
	EditPerson      string     `gorm:"column:edit_person"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (SQLiteEmployee) TableName() string {
	return "employees"
}

var _ = Describe("RegistrationRepository", func() {
	var (
		db   *gorm.DB
		repo registration.RepositoryAPI
	)

	account := func(username, email string) *accountDatamodel.Account {
		return &accountDatamodel.Account{
			Username:     username,
			Email:        email,
			Role:         "student",
			IsActive:     true,
			PasswordHash: "hashed",
		}
	}

	profile := func() *accountDatamodel.Profile {
		return &accountDatamodel.Profile{FirstLogin: true, IsDefaultPassword: true}
	}

	student := func(studentID string) *personDatamodel.Student {
		return &personDatamodel.Student{
			StudentID:     studentID,
			Name:          "Asha Verma",
			Gender:        "F",
			UniversityID:  1,
			InstituteID:   10,
			ProgramID:     100,
			BranchID:      1000,
			AdmissionYear: 2026,
			Semester:      1,
			EntryPerson:   "admin",
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteAccount{}, &SQLiteProfile{}, &SQLiteStudent{}, &SQLiteEmployee{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewRegistrationRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("CreateStudent", func() {
		It("should persist account, profile and student together", func() {
			acc := account("CS2026F001", "asha@example.edu")

			err := repo.CreateStudent(acc, profile(), student("CS2026F001"))
			Expect(err).NotTo(HaveOccurred())
			Expect(acc.ID).NotTo(BeZero())

			var prof SQLiteProfile
			Expect(db.Where("account_id = ?", acc.ID).First(&prof).Error).To(Succeed())
			Expect(prof.FirstLogin).To(BeTrue())

			var st SQLiteStudent
			Expect(db.Where("account_id = ?", acc.ID).First(&st).Error).To(Succeed())
			Expect(st.StudentID).To(Equal("CS2026F001"))
		})

		It("should map a duplicate username to the generic conflict", func() {
			err := repo.CreateStudent(account("CS2026F001", "asha@example.edu"), profile(), student("CS2026F001"))
			Expect(err).NotTo(HaveOccurred())

			err = repo.CreateStudent(account("CS2026F001", "other@example.edu"), profile(), student("CS2026F002"))
			Expect(err).To(HaveOccurred())

			appErr, ok := err.(*apperrors.AppError)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeDuplicateIdentity))
			Expect(appErr.Message).To(Equal("could not create the record, please try again"))
			Expect(appErr.Cause).NotTo(BeNil())
		})

		It("should roll back the account when the student row collides", func() {
			err := repo.CreateStudent(account("CS2026F001", "asha@example.edu"), profile(), student("CS2026F001"))
			Expect(err).NotTo(HaveOccurred())

			err = repo.CreateStudent(account("CS2026F002", "ravi@example.edu"), profile(), student("CS2026F001"))
			Expect(err).To(HaveOccurred())

			var count int64
			Expect(db.Model(&SQLiteAccount{}).Where("username = ?", "CS2026F002").Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})
	})

	Describe("CreateEmployee", func() {
		It("should persist the variant fields as given", func() {
			programID := int64(100)
			hireDate := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
			acc := account("EM2026T001", "ravi@example.edu")
			acc.Role = "employee"
			acc.IsStaff = true

			err := repo.CreateEmployee(acc, profile(), &personDatamodel.Employee{
				EmployeeID:   "EM2026T001",
				Name:         "Ravi Kumar",
				Gender:       "M",
				HireDate:     &hireDate,
				EmployeeType: "teacher",
				UniversityID: 1,
				InstituteID:  10,
				ProgramID:    &programID,
				EntryPerson:  "admin",
			})
			Expect(err).NotTo(HaveOccurred())

			var emp SQLiteEmployee
			Expect(db.Where("employee_id = ?", "EM2026T001").First(&emp).Error).To(Succeed())
			Expect(emp.EmployeeType).To(Equal("teacher"))
			Expect(emp.ProgramID).NotTo(BeNil())
			Expect(emp.BranchID).To(BeNil())
		})
	})

	Describe("CreateUser", func() {
		It("should persist an account with no person record", func() {
			acc := account("registrar_ab12", "registrar@example.edu")
			acc.Role = "admin"

			err := repo.CreateUser(acc, profile())
			Expect(err).NotTo(HaveOccurred())

			var prof SQLiteProfile
			Expect(db.Where("account_id = ?", acc.ID).First(&prof).Error).To(Succeed())
		})

		It("should map a duplicate email to the generic conflict", func() {
			Expect(repo.CreateUser(account("first_ab12", "same@example.edu"), profile())).To(Succeed())

			err := repo.CreateUser(account("second_cd34", "same@example.edu"), profile())
			Expect(err).To(HaveOccurred())

			appErr, ok := err.(*apperrors.AppError)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeDuplicateIdentity))
		})
	})
})
