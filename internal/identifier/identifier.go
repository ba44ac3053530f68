package identifier

import (
	"fmt"
	"log/slog"
	"strconv"
)

// RepositoryAPI exposes the single scan the generator needs: the
// lexicographically last identifier sharing a bucket prefix.
type RepositoryAPI interface {
	LastWithPrefix(prefix string) (string, error)
}

// Generator produces prefix-scoped, fixed-width sequential identifiers by
// scanning the last persisted identifier in the bucket and incrementing its
// 3-digit suffix.
//
// The read-then-increment is NOT serialized against concurrent callers:
// two registrations hitting the same bucket at once can both compute the
// same next value and one of them will fail on the unique index. Closing
// the gap needs a transactional sequence per bucket; until then the unique
// constraint is the only backstop.
type Generator struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewGenerator(repo RepositoryAPI, logger *slog.Logger) *Generator {
	return &Generator{
		repo:   repo,
		logger: logger,
	}
}

// Next returns prefix + the next zero-padded 3-digit sequence for the
// bucket, starting at 001 for an empty bucket.
func (g *Generator) Next(prefix string) (string, error) {
	last, err := g.repo.LastWithPrefix(prefix)
	if err != nil {
		g.logger.Error("failed to scan identifier bucket", "prefix", prefix, "error", err)
		return "", err
	}

	seq := 1
	if len(last) >= 3 {
		if n, perr := strconv.Atoi(last[len(last)-3:]); perr == nil {
			seq = n + 1
		} else {
			g.logger.Warn("identifier with unparsable suffix in bucket", "prefix", prefix, "last", last)
		}
	}

	return fmt.Sprintf("%s%03d", prefix, seq), nil
}

// StudentPrefix is courseCode + admissionYear + 'F' for first-years, 'S'
// otherwise.
func StudentPrefix(courseCode string, admissionYear, yearOfStudy int) string {
	yearType := "S"
	if yearOfStudy == 1 {
		yearType = "F"
	}
	return fmt.Sprintf("%s%d%s", courseCode, admissionYear, yearType)
}

// EmployeePrefix is "EM" + hireYear + the role's type code.
func EmployeePrefix(hireYear int, employeeType string) string {
	return fmt.Sprintf("EM%d%s", hireYear, EmployeeTypeCode(employeeType))
}

var employeeTypeCodes = map[string]string{
	"teacher":             "T",
	"hod":                 "H",
	"scholarship_officer": "S",
	"fee_collector":       "F",
	"admin":               "A",
	"other":               "O",
}

func EmployeeTypeCode(employeeType string) string {
	if code, ok := employeeTypeCodes[employeeType]; ok {
		return code
	}
	return "O"
}
