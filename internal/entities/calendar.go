package entities

// DateLayout is the calendar date format used as the calendar_entries
// primary key.
const DateLayout = "2006-01-02"

// CalendarEntry binds a calendar date to a program day, plus completion
// state and free-form notes. At most one entry exists per date.
type CalendarEntry struct {
	Date      string `gorm:"primaryKey;size:10" json:"date"`
	ProgramID string `gorm:"index;size:64;not null" json:"program_id"`
	DayID     string `gorm:"index;size:64;not null" json:"day_id"`
	Done      bool   `gorm:"default:false" json:"done"`
	Notes     string `gorm:"type:text" json:"notes"`

	Program Program    `gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE" json:"-"`
	Day     ProgramDay `gorm:"foreignKey:DayID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CalendarEntry) TableName() string { return "calendar_entries" }

// Assignment is the view of a calendar entry used by the date-keyed map.
type Assignment struct {
	ProgramID string `json:"program_id"`
	DayID     string `json:"day_id"`
	Done      bool   `json:"done"`
	Notes     string `json:"notes"`
}
