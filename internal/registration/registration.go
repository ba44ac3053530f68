package registration

import (
	"crypto/rand"
	"math/big"
	"strings"

	accountDatamodel "github.com/campushub/records-portal/internal/core/datamodel/account"
	personDatamodel "github.com/campushub/records-portal/internal/core/datamodel/person"
)

// EmployeeType is a closed set of staff roles. Which placement and post
// fields an employee record may carry depends entirely on the variant.
type EmployeeType string

const (
	EmployeeTypeTeacher            EmployeeType = "teacher"
	EmployeeTypeHod                EmployeeType = "hod"
	EmployeeTypeScholarshipOfficer EmployeeType = "scholarship_officer"
	EmployeeTypeFeeCollector       EmployeeType = "fee_collector"
	EmployeeTypeAdmin              EmployeeType = "admin"
	EmployeeTypeOther              EmployeeType = "other"
)

var employeeTypes = map[EmployeeType]struct{}{
	EmployeeTypeTeacher:            {},
	EmployeeTypeHod:                {},
	EmployeeTypeScholarshipOfficer: {},
	EmployeeTypeFeeCollector:       {},
	EmployeeTypeAdmin:              {},
	EmployeeTypeOther:              {},
}

func (t EmployeeType) Valid() bool {
	_, ok := employeeTypes[t]
	return ok
}

// EmployeeFields are the variant-dependent columns of an employee record.
type EmployeeFields struct {
	ProgramID       *int64
	BranchID        *int64
	Position        string
	TeachingSubject string
}

// NormalizeForType zeroes the fields a variant must not carry, regardless of
// what was submitted. Teaching roles keep their program/branch placement but
// no free-form post fields; administrative roles keep neither.
func NormalizeForType(t EmployeeType, f EmployeeFields) EmployeeFields {
	switch t {
	case EmployeeTypeTeacher, EmployeeTypeHod:
		f.Position = ""
		f.TeachingSubject = ""
	case EmployeeTypeScholarshipOfficer, EmployeeTypeFeeCollector, EmployeeTypeAdmin:
		f.ProgramID = nil
		f.BranchID = nil
		f.Position = ""
		f.TeachingSubject = ""
	}
	return f
}

// DeriveUsername prefers the generated identifier; accounts without one get
// the email local-part plus a short random suffix to dodge collisions.
func DeriveUsername(identifier, email string) (string, error) {
	if identifier != "" {
		return identifier, nil
	}
	return UsernameFromEmail(email)
}

func UsernameFromEmail(email string) (string, error) {
	local := email
	if at := strings.Index(email, "@"); at >= 0 {
		local = email[:at]
	}
	suffix, err := randomAlphanumeric(4)
	if err != nil {
		return "", err
	}
	return local + "_" + suffix, nil
}

// GenerateTempPassword creates the 8-char initial password that is emailed to
// the new account and must be changed on first login.
func GenerateTempPassword() (string, error) {
	return randomAlphanumeric(8)
}

const alphanumerics = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomAlphanumeric(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphanumerics)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphanumerics[idx.Int64()]
	}
	return string(out), nil
}

// RepositoryAPI persists a registration as a single transaction; a uniqueness
// violation on any row aborts the whole thing.
type RepositoryAPI interface {
	CreateStudent(acc *accountDatamodel.Account, prof *accountDatamodel.Profile, st *personDatamodel.Student) error
	CreateEmployee(acc *accountDatamodel.Account, prof *accountDatamodel.Profile, emp *personDatamodel.Employee) error
	CreateUser(acc *accountDatamodel.Account, prof *accountDatamodel.Profile) error
}
