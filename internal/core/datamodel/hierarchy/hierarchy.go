package hierarchy

type University struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"column:name;not null"`
	Code string `gorm:"column:code;uniqueIndex;not null"`
}

func (University) TableName() string {
	return "universities"
}

type Institute struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"column:name;not null"`
	Code         string `gorm:"column:code;uniqueIndex;not null"`
	UniversityID int64  `gorm:"column:university_id;not null"`
}

func (Institute) TableName() string {
	return "institutes"
}

type Program struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"column:name;not null"`
	Code        string `gorm:"column:code;uniqueIndex;not null"`
	InstituteID int64  `gorm:"column:institute_id;not null"`
}

func (Program) TableName() string {
	return "programs"
}

type Branch struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"column:name;not null"`
	Code      string `gorm:"column:code;uniqueIndex;not null"`
	ProgramID int64  `gorm:"column:program_id;not null"`
}

func (Branch) TableName() string {
	return "branches"
}
