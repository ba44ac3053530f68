package hierarchy

import (
	hierarchyDatamodel "github.com/campushub/records-portal/internal/core/datamodel/hierarchy"
)

// Level identifies a selectable tier below the university root.
type Level string

const (
	LevelInstitute Level = "institute"
	LevelProgram   Level = "program"
	LevelBranch    Level = "branch"
)

// Option is one selectable child, shaped for both form population and the
// live refresh endpoints.
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Placement is a Person's full ancestor chain. All four levels must be
// mutually consistent before it may be persisted.
type Placement struct {
	UniversityID int64
	InstituteID  int64
	ProgramID    int64
	BranchID     int64
}

// Scope carries the pre-filtered option sets for every level below a stored
// placement, so that editing an existing Person never offers children of the
// wrong parent.
type Scope struct {
	Institutes []Option
	Programs   []Option
	Branches   []Option
}

type RepositoryAPI interface {
	Universities() ([]*hierarchyDatamodel.University, error)
	InstitutesByUniversity(universityID int64) ([]*hierarchyDatamodel.Institute, error)
	ProgramsByInstitute(instituteID int64) ([]*hierarchyDatamodel.Program, error)
	BranchesByProgram(programID int64) ([]*hierarchyDatamodel.Branch, error)
	GetUniversity(id int64) (*hierarchyDatamodel.University, error)
	GetInstitute(id int64) (*hierarchyDatamodel.Institute, error)
	GetProgram(id int64) (*hierarchyDatamodel.Program, error)
	GetBranch(id int64) (*hierarchyDatamodel.Branch, error)
}
