package model

import (
	"time"

	"github.com/google/uuid"
)

// EditableCompanyInfo is the part of a company profile that can be edited
type EditableCompanyInfo struct {
	Industry    string `gorm:"type:text" json:"industry"`
	Website     string `gorm:"type:text" json:"website"`
	Description string `gorm:"type:text" json:"description"`
	LogoURL     string `gorm:"type:text" json:"logo_url"`
	Location    string `gorm:"type:text" json:"location"`
}

// Company is gorm model for storing company profiles in DB.
// Name is unique case-insensitively, enforced by a functional index
// created during migration.
type Company struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name string    `gorm:"type:text;not null" json:"name"`
	EditableCompanyInfo
	TotalJobsPosted int64     `gorm:"default:0" json:"total_jobs_posted"`
	CreatedAt       time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`

	Jobs []Job `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
}
