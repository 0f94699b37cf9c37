package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// ApplicationStatusPending indicates that the application has not been reviewed yet
	ApplicationStatusPending = "Pending"
	// ApplicationStatusReviewing indicates that the application is being reviewed
	ApplicationStatusReviewing = "Reviewing"
	// ApplicationStatusShortlisted indicates that the applicant has been shortlisted
	ApplicationStatusShortlisted = "Shortlisted"
	// ApplicationStatusRejected indicates that the application has been rejected
	ApplicationStatusRejected = "Rejected"
	// ApplicationStatusHired indicates that the applicant has been hired
	ApplicationStatusHired = "Hired"

	// ApplicationStatuses are the accepted values for the application status field.
	// Admins may move an application to any of them from any prior state.
	ApplicationStatuses = []string{
		ApplicationStatusPending,
		ApplicationStatusReviewing,
		ApplicationStatusShortlisted,
		ApplicationStatusRejected,
		ApplicationStatusHired,
	}
)

// Application represents a job application record.
// A student may apply to a given job only once, enforced by a unique
// composite index on (job_id, student_email).
type Application struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`

	JobID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_applications_job_student;<-:create" json:"job_id"`
	Job   Job       `gorm:"foreignKey:JobID;references:ID" json:"-"`

	StudentEmail string  `gorm:"type:text;not null;index;uniqueIndex:idx_applications_job_student;<-:create" json:"student_email"`
	Student      Student `gorm:"foreignKey:StudentEmail;references:Email" json:"-"`

	Status      string `gorm:"type:text" json:"status"`
	CoverLetter string `gorm:"type:text" json:"cover_letter"`
	ResumeURL   string `gorm:"type:text" json:"resume_url"`
	Notes       string `gorm:"type:text" json:"notes"`

	AppliedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"applied_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ApplicationResponse is an application annotated with the current job
// title and company name for display.
type ApplicationResponse struct {
	Application
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
}

// ToApplicationResponse annotates the application with its preloaded job
// and company. Job and Job.Company must be loaded by the caller.
func (a *Application) ToApplicationResponse() ApplicationResponse {
	return ApplicationResponse{
		Application: *a,
		JobTitle:    a.Job.Title,
		CompanyName: a.Job.Company.Name,
	}
}
