package person_test

import (
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	internal "github.com/campushub/records-portal/internal"
	personDatamodel "github.com/campushub/records-portal/internal/core/datamodel/person"
	"github.com/campushub/records-portal/internal/hierarchy"
	"github.com/campushub/records-portal/internal/person"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPersonService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Person Service Suite")
}

type MockRepository struct {
	students   map[int64]*personDatamodel.Student
	employees  map[int64]*personDatamodel.Employee
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		students:  make(map[int64]*personDatamodel.Student),
		employees: make(map[int64]*personDatamodel.Employee),
		nextID:    1,
	}
}

func (m *MockRepository) CreateStudentWithRecords(st *personDatamodel.Student) error {
	if m.shouldFail {
		return m.failError
	}
	st.ID = m.nextID
	m.nextID++
	m.students[st.ID] = st
	return nil
}

func (m *MockRepository) CreateEmployeeWithRecords(emp *personDatamodel.Employee) error {
	if m.shouldFail {
		return m.failError
	}
	emp.ID = m.nextID
	m.nextID++
	m.employees[emp.ID] = emp
	return nil
}

func (m *MockRepository) ListStudents() ([]*personDatamodel.Student, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	out := make([]*personDatamodel.Student, 0, len(m.students))
	for _, st := range m.students {
		out = append(out, st)
	}
	return out, nil
}

func (m *MockRepository) ListEmployees() ([]*personDatamodel.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	out := make([]*personDatamodel.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (m *MockRepository) GetStudent(id int64) (*personDatamodel.Student, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.students[id], nil
}

func (m *MockRepository) GetEmployee(id int64) (*personDatamodel.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.employees[id], nil
}

func (m *MockRepository) GetStudentByAccount(accountID int64) (*personDatamodel.Student, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, st := range m.students {
		if st.AccountID == accountID {
			return st, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetEmployeeByAccount(accountID int64) (*personDatamodel.Employee, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, emp := range m.employees {
		if emp.AccountID == accountID {
			return emp, nil
		}
	}
	return nil, nil
}

type MockHierarchy struct {
	placementErr error
	partialErr   error
}

func (m *MockHierarchy) ValidatePlacement(placement hierarchy.Placement) error {
	return m.placementErr
}

func (m *MockHierarchy) ValidatePartialPlacement(universityID, instituteID int64, programID, branchID *int64) error {
	return m.partialErr
}

func (m *MockHierarchy) ProgramCode(id int64) (string, error) {
	return "CS", nil
}

type MockIdentifiers struct {
	seq int
}

func (m *MockIdentifiers) Next(prefix string) (string, error) {
	m.seq++
	return fmt.Sprintf("%s%03d", prefix, m.seq), nil
}

var _ = Describe("Person Service", func() {
	var (
		mockRepo      *MockRepository
		mockHierarchy *MockHierarchy
		service       *person.Service
		logger        *slog.Logger
		actor         internal.Actor
	)

	ptr := func(v int64) *int64 { return &v }

	studentProfile := func() person.StudentProfileDTO {
		return person.StudentProfileDTO{
			Name:          "Asha Verma",
			Gender:        "F",
			UniversityID:  1,
			InstituteID:   10,
			ProgramID:     100,
			BranchID:      1000,
			AdmissionYear: 2026,
			Semester:      1,
			Contact: &person.ContactDTO{
				PhoneNumber: "9876543210",
				Email:       "asha@example.edu",
				Address:     "12 College Road",
			},
			Parents: []person.ParentDTO{
				{ParentName: "Rekha Verma", Relationship: "mother", ContactNumber: "9876500000"},
			},
		}
	}

	employeeProfile := func(employeeType string) person.EmployeeProfileDTO {
		return person.EmployeeProfileDTO{
			Name:            "Ravi Kumar",
			Gender:          "M",
			HireDate:        time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			EmployeeType:    employeeType,
			UniversityID:    1,
			InstituteID:     10,
			ProgramID:       ptr(100),
			BranchID:        ptr(1000),
			Position:        "Registrar",
			TeachingSubject: "Databases",
			Departments: []person.DepartmentDTO{
				{BranchID: 1000, Subject: "Algorithms"},
			},
		}
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockHierarchy = &MockHierarchy{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = person.NewService(mockRepo, mockHierarchy, &MockIdentifiers{}, &MockIdentifiers{}, logger)
		actor = internal.Actor{AccountID: 7, Username: "CS2026F001", Role: "student", Scope: "profile_setup"}
	})

	Describe("CompleteStudentProfile", func() {
		It("should persist the person with its sub-records", func() {
			detail, err := service.CompleteStudentProfile(actor, studentProfile())
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.StudentID).To(Equal("CS2026F001"))
			Expect(detail.Contact).NotTo(BeNil())
			Expect(detail.Parents).To(HaveLen(1))

			st := mockRepo.students[detail.ID]
			Expect(st.AccountID).To(Equal(int64(7)))
			Expect(st.EntryPerson).To(Equal("CS2026F001"))
			Expect(st.Contacts).To(HaveLen(1))
			Expect(st.Parents).To(HaveLen(1))
		})

		It("should refuse a second completion for the same account", func() {
			_, err := service.CompleteStudentProfile(actor, studentProfile())
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CompleteStudentProfile(actor, studentProfile())
			Expect(err).To(HaveOccurred())

			appErr, ok := err.(*internal.AppError)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateIdentity))
		})

		It("should reject an inconsistent placement", func() {
			mockHierarchy.placementErr = internal.ErrReferentialMismatch

			_, err := service.CompleteStudentProfile(actor, studentProfile())
			Expect(err).To(Equal(internal.ErrReferentialMismatch))
			Expect(mockRepo.students).To(BeEmpty())
		})

		It("should reject an invalid payload", func() {
			dto := studentProfile()
			dto.Gender = "X"

			_, err := service.CompleteStudentProfile(actor, dto)
			Expect(err).To(HaveOccurred())
			Expect(mockRepo.students).To(BeEmpty())
		})
	})

	Describe("CompleteEmployeeProfile", func() {
		BeforeEach(func() {
			actor = internal.Actor{AccountID: 8, Username: "EM2026T001", Role: "employee", IsStaff: true}
		})

		It("should normalize variant fields before persisting", func() {
			detail, err := service.CompleteEmployeeProfile(actor, employeeProfile("teacher"))
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.EmployeeID).To(Equal("EM2026T001"))

			emp := mockRepo.employees[detail.ID]
			Expect(emp.ProgramID).To(Equal(ptr(100)))
			Expect(emp.Position).To(BeEmpty())
			Expect(emp.TeachingSubject).To(BeEmpty())
			Expect(emp.Departments).To(HaveLen(1))
		})

		It("should strip placement entirely for administrative roles", func() {
			detail, err := service.CompleteEmployeeProfile(actor, employeeProfile("admin"))
			Expect(err).NotTo(HaveOccurred())

			emp := mockRepo.employees[detail.ID]
			Expect(emp.ProgramID).To(BeNil())
			Expect(emp.BranchID).To(BeNil())
		})

		It("should refuse a second completion for the same account", func() {
			_, err := service.CompleteEmployeeProfile(actor, employeeProfile("teacher"))
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CompleteEmployeeProfile(actor, employeeProfile("teacher"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetStudent", func() {
		It("should return the full detail", func() {
			_, err := service.CompleteStudentProfile(actor, studentProfile())
			Expect(err).NotTo(HaveOccurred())

			detail, err := service.GetStudent(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Name).To(Equal("Asha Verma"))
			Expect(detail.Contact.Email).To(Equal("asha@example.edu"))
		})

		It("should fail for an unknown id", func() {
			_, err := service.GetStudent(42)
			Expect(err).To(Equal(internal.ErrPersonNotFound))
		})
	})

	Describe("Me", func() {
		It("should return the student record for a non-staff account", func() {
			_, err := service.CompleteStudentProfile(actor, studentProfile())
			Expect(err).NotTo(HaveOccurred())

			me, err := service.Me(actor)
			Expect(err).NotTo(HaveOccurred())
			Expect(me.Role).To(Equal("student"))
			Expect(me.Student).NotTo(BeNil())
			Expect(me.Employee).To(BeNil())
		})

		It("should return the employee record for a staff account", func() {
			staff := internal.Actor{AccountID: 8, Username: "EM2026T001", Role: "employee", IsStaff: true}
			_, err := service.CompleteEmployeeProfile(staff, employeeProfile("teacher"))
			Expect(err).NotTo(HaveOccurred())

			me, err := service.Me(staff)
			Expect(err).NotTo(HaveOccurred())
			Expect(me.Employee).NotTo(BeNil())
			Expect(me.Student).To(BeNil())
		})

		It("should fail while the profile is still incomplete", func() {
			_, err := service.Me(actor)
			Expect(err).To(Equal(internal.ErrPersonNotFound))
		})
	})

	Describe("ListStudents", func() {
		It("should return summaries without sub-records", func() {
			_, err := service.CompleteStudentProfile(actor, studentProfile())
			Expect(err).NotTo(HaveOccurred())

			summaries, err := service.ListStudents()
			Expect(err).NotTo(HaveOccurred())
			Expect(summaries).To(HaveLen(1))
			Expect(summaries[0].StudentID).To(Equal("CS2026F001"))
		})
	})
})
