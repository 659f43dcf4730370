package entities

// Program is a named workout plan. Days are loaded in insertion order;
// the order carries no semantic meaning.
type Program struct {
	ID          string       `gorm:"primaryKey;size:64" json:"id"`
	Name        string       `gorm:"size:256;not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Days        []ProgramDay `gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE" json:"days"`
}

func (Program) TableName() string { return "programs" }

// ProgramDay is a single training session template within a program.
type ProgramDay struct {
	ID        string            `gorm:"primaryKey;size:64" json:"id"`
	ProgramID string            `gorm:"index;size:64;not null" json:"program_id"`
	Name      string            `gorm:"size:256;not null" json:"name"`
	Exercises []ProgramExercise `gorm:"foreignKey:DayID;constraint:OnDelete:CASCADE" json:"exercises"`
}

func (ProgramDay) TableName() string { return "days" }

// ProgramExercise is a named movement assigned to a program day. It is
// distinct from LibraryExercise, which mirrors the remote catalog.
type ProgramExercise struct {
	ID    string `gorm:"primaryKey;size:64" json:"id"`
	DayID string `gorm:"index;size:64;not null" json:"day_id"`
	Name  string `gorm:"size:256;not null" json:"name"`
}

func (ProgramExercise) TableName() string { return "exercises" }
