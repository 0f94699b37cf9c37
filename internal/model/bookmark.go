package model

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark records a job saved by a student for later.
// A job can be bookmarked at most once per student.
type Bookmark struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	StudentEmail string  `gorm:"type:text;not null;index;uniqueIndex:idx_bookmarks_student_job" json:"student_email"`
	Student      Student `gorm:"foreignKey:StudentEmail;references:Email" json:"-"`

	JobID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_student_job" json:"job_id"`
	Job   Job       `gorm:"foreignKey:JobID;references:ID;constraint:OnDelete:CASCADE" json:"job"`

	SavedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"saved_at"`
}
