package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	// JobTypes are the accepted values for the job type field
	JobTypes = []string{"Full-Time", "Part-Time", "Internship", "Remote", "Other"}
	// JobCategories are the accepted values for the job category field
	JobCategories = []string{
		"Technology", "Finance", "Marketing", "Design", "Operations",
		"Human Resources", "Sales", "Engineering", "Healthcare", "Education", "Other",
	}
	// ExperienceLevels are the accepted values for the experience level field
	ExperienceLevels = []string{
		"Entry Level", "Mid Level", "Senior Level", "Internship / No Experience",
	}
)

// EditableJobInfo is the part of a job listing that can be edited
type EditableJobInfo struct {
	Title            string         `gorm:"type:text" json:"title"`
	Description      string         `gorm:"type:text" json:"description"`
	Category         string         `gorm:"type:text;index" json:"category"`
	JobType          string         `gorm:"type:text" json:"job_type"`
	ExperienceLevel  string         `gorm:"type:text" json:"experience_level"`
	Location         string         `gorm:"type:text" json:"location"`
	IsRemote         *bool          `gorm:"type:boolean;default:false" json:"is_remote"`
	Responsibilities pq.StringArray `gorm:"type:text[]" json:"responsibilities"`
	Requirements     pq.StringArray `gorm:"type:text[]" json:"requirements"`
	NiceToHave       pq.StringArray `gorm:"type:text[]" json:"nice_to_have"`
	Tags             pq.StringArray `gorm:"type:text[]" json:"tags"`
	SalaryMin        *int64         `json:"salary_min"`
	SalaryMax        *int64         `json:"salary_max"`
	SalaryCurrency   string         `gorm:"type:text;default:'INR'" json:"salary_currency"`
	Openings         *int           `gorm:"default:1" json:"openings"`
	Deadline         *time.Time     `gorm:"type:timestamp" json:"application_deadline,omitempty"`
	IsActive         *bool          `gorm:"type:boolean;default:true;index" json:"is_active"`
}

// Job is gorm model for storing job listings in DB
type Job struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;<-:create" json:"company_id"`
	Company   Company   `gorm:"foreignKey:CompanyID;references:ID" json:"company"`
	EditableJobInfo
	Views             int64     `gorm:"default:0;->" json:"views"`
	ApplicationsCount int64     `gorm:"default:0;->" json:"applications_count"`
	CreatedAt         time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt         time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

// Active reports whether the listing is visible to students.
func (j *Job) Active() bool {
	return j.IsActive == nil || *j.IsActive
}
