package hierarchy

import (
	"log/slog"

	errors "github.com/campushub/records-portal/internal"
)

// Service resolves parent-scoped children of the hierarchy catalog. It backs
// both server-side placement validation and the live refresh endpoints, so
// the two can never disagree on which children a parent has.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Universities() ([]Option, error) {
	universities, err := s.repo.Universities()
	if err != nil {
		s.logger.Error("failed to load universities", "error", err)
		return nil, err
	}

	options := make([]Option, 0, len(universities))
	for _, u := range universities {
		options = append(options, Option{ID: u.ID, Name: u.Name})
	}
	return options, nil
}

// ChildrenOf returns the ordered valid children of parentID at the given
// level. A nil or unknown parent yields an empty set, never an error: a
// half-filled form re-validates with empty selectors instead of failing.
func (s *Service) ChildrenOf(level Level, parentID *int64) ([]Option, error) {
	if parentID == nil || *parentID <= 0 {
		return []Option{}, nil
	}

	switch level {
	case LevelInstitute:
		institutes, err := s.repo.InstitutesByUniversity(*parentID)
		if err != nil {
			s.logger.Error("failed to load institutes", "university_id", *parentID, "error", err)
			return nil, err
		}
		options := make([]Option, 0, len(institutes))
		for _, i := range institutes {
			options = append(options, Option{ID: i.ID, Name: i.Name})
		}
		return options, nil

	case LevelProgram:
		programs, err := s.repo.ProgramsByInstitute(*parentID)
		if err != nil {
			s.logger.Error("failed to load programs", "institute_id", *parentID, "error", err)
			return nil, err
		}
		options := make([]Option, 0, len(programs))
		for _, p := range programs {
			options = append(options, Option{ID: p.ID, Name: p.Name})
		}
		return options, nil

	case LevelBranch:
		branches, err := s.repo.BranchesByProgram(*parentID)
		if err != nil {
			s.logger.Error("failed to load branches", "program_id", *parentID, "error", err)
			return nil, err
		}
		options := make([]Option, 0, len(branches))
		for _, b := range branches {
			options = append(options, Option{ID: b.ID, Name: b.Name})
		}
		return options, nil
	}

	return []Option{}, nil
}

// ScopeFor pre-filters every selector level using the stored ancestor chain
// of an existing placement, not just the level being edited.
func (s *Service) ScopeFor(placement Placement) (*Scope, error) {
	institutes, err := s.ChildrenOf(LevelInstitute, &placement.UniversityID)
	if err != nil {
		return nil, err
	}
	programs, err := s.ChildrenOf(LevelProgram, &placement.InstituteID)
	if err != nil {
		return nil, err
	}
	branches, err := s.ChildrenOf(LevelBranch, &placement.ProgramID)
	if err != nil {
		return nil, err
	}

	return &Scope{
		Institutes: institutes,
		Programs:   programs,
		Branches:   branches,
	}, nil
}

// ValidatePlacement rejects any submitted child that does not belong to its
// submitted parent. A mismatch is an error, never a silent reparent.
func (s *Service) ValidatePlacement(placement Placement) error {
	university, err := s.repo.GetUniversity(placement.UniversityID)
	if err != nil {
		return err
	}
	if university == nil {
		return errors.NewValidationError("university does not exist", errors.ErrCodeInvalidHierarchyNode)
	}

	institute, err := s.repo.GetInstitute(placement.InstituteID)
	if err != nil {
		return err
	}
	if institute == nil {
		return errors.NewValidationError("institute does not exist", errors.ErrCodeInvalidHierarchyNode)
	}
	if institute.UniversityID != placement.UniversityID {
		return errors.ErrReferentialMismatch
	}

	program, err := s.repo.GetProgram(placement.ProgramID)
	if err != nil {
		return err
	}
	if program == nil {
		return errors.NewValidationError("program does not exist", errors.ErrCodeInvalidHierarchyNode)
	}
	if program.InstituteID != placement.InstituteID {
		return errors.ErrReferentialMismatch
	}

	branch, err := s.repo.GetBranch(placement.BranchID)
	if err != nil {
		return err
	}
	if branch == nil {
		return errors.NewValidationError("branch does not exist", errors.ErrCodeInvalidHierarchyNode)
	}
	if branch.ProgramID != placement.ProgramID {
		return errors.ErrReferentialMismatch
	}

	return nil
}

// ProgramCode returns a program's short code, the course part of student
// identifiers.
func (s *Service) ProgramCode(id int64) (string, error) {
	program, err := s.repo.GetProgram(id)
	if err != nil {
		return "", err
	}
	if program == nil {
		return "", errors.NewValidationError("program does not exist", errors.ErrCodeInvalidHierarchyNode)
	}
	return program.Code, nil
}

// ValidatePartialPlacement checks the university/institute pair plus whichever
// of program and branch are present. Employee placements for non-teaching
// roles stop at the institute level.
func (s *Service) ValidatePartialPlacement(universityID, instituteID int64, programID, branchID *int64) error {
	institute, err := s.repo.GetInstitute(instituteID)
	if err != nil {
		return err
	}
	if institute == nil {
		return errors.NewValidationError("institute does not exist", errors.ErrCodeInvalidHierarchyNode)
	}
	if institute.UniversityID != universityID {
		return errors.ErrReferentialMismatch
	}

	if programID != nil {
		program, err := s.repo.GetProgram(*programID)
		if err != nil {
			return err
		}
		if program == nil {
			return errors.NewValidationError("program does not exist", errors.ErrCodeInvalidHierarchyNode)
		}
		if program.InstituteID != instituteID {
			return errors.ErrReferentialMismatch
		}

		if branchID != nil {
			branch, err := s.repo.GetBranch(*branchID)
			if err != nil {
				return err
			}
			if branch == nil {
				return errors.NewValidationError("branch does not exist", errors.ErrCodeInvalidHierarchyNode)
			}
			if branch.ProgramID != *programID {
				return errors.ErrReferentialMismatch
			}
		}
	} else if branchID != nil {
		// a branch without its program has no derivable parent
		return errors.ErrReferentialMismatch
	}

	return nil
}
