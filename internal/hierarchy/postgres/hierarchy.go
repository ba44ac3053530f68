package postgres

import (
	hierarchyDatamodel "github.com/campushub/records-portal/internal/core/datamodel/hierarchy"
	"github.com/campushub/records-portal/internal/hierarchy"
	"gorm.io/gorm"
)

type HierarchyRepository struct {
	db *gorm.DB
}

func NewHierarchyRepository(db *gorm.DB) hierarchy.RepositoryAPI {
	return &HierarchyRepository{db: db}
}

func (r *HierarchyRepository) Universities() ([]*hierarchyDatamodel.University, error) {
	var universities []*hierarchyDatamodel.University
	err := r.db.Order("name ASC").Find(&universities).Error
	return universities, err
}

func (r *HierarchyRepository) InstitutesByUniversity(universityID int64) ([]*hierarchyDatamodel.Institute, error) {
	var institutes []*hierarchyDatamodel.Institute
	err := r.db.Where("university_id = ?", universityID).Order("name ASC").Find(&institutes).Error
	return institutes, err
}

func (r *HierarchyRepository) ProgramsByInstitute(instituteID int64) ([]*hierarchyDatamodel.Program, error) {
	var programs []*hierarchyDatamodel.Program
	err := r.db.Where("institute_id = ?", instituteID).Order("name ASC").Find(&programs).Error
	return programs, err
}

func (r *HierarchyRepository) BranchesByProgram(programID int64) ([]*hierarchyDatamodel.Branch, error) {
	var branches []*hierarchyDatamodel.Branch
	err := r.db.Where("program_id = ?", programID).Order("name ASC").Find(&branches).Error
	return branches, err
}

func (r *HierarchyRepository) GetUniversity(id int64) (*hierarchyDatamodel.University, error) {
	var university hierarchyDatamodel.University
	err := r.db.Where("id = ?", id).First(&university).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &university, nil
}

func (r *HierarchyRepository) GetInstitute(id int64) (*hierarchyDatamodel.Institute, error) {
	var institute hierarchyDatamodel.Institute
	err := r.db.Where("id = ?", id).First(&institute).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &institute, nil
}

func (r *HierarchyRepository) GetProgram(id int64) (*hierarchyDatamodel.Program, error) {
	var program hierarchyDatamodel.Program
	err := r.db.Where("id = ?", id).First(&program).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &program, nil
}

func (r *HierarchyRepository) GetBranch(id int64) (*hierarchyDatamodel.Branch, error) {
	var branch hierarchyDatamodel.Branch
	err := r.db.Where("id = ?", id).First(&branch).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &branch, nil
}
