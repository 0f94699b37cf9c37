package model

import "time"

// EditableStudentInfo is the part of a student profile that can be edited
type EditableStudentInfo struct {
	FullName       string `gorm:"type:text" json:"full_name"`
	Phone          string `gorm:"type:text" json:"phone"`
	ResumeURL      string `gorm:"type:text" json:"resume_url"`
	LinkedinURL    string `gorm:"type:text" json:"linkedin_url"`
	PortfolioURL   string `gorm:"type:text" json:"portfolio_url"`
	Institution    string `gorm:"type:text" json:"institution"`
	GraduationYear *int   `json:"graduation_year"`
}

// Student is gorm model for storing student profiles in DB.
// The verified sign-in email acts as primary key, there is no separate
// signup step. Rows are find-or-created on first login or first application.
type Student struct {
	Email string `gorm:"type:text;primaryKey" json:"email"`
	EditableStudentInfo
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`

	Applications []Application `gorm:"foreignKey:StudentEmail;references:Email" json:"-"`
	Bookmarks    []Bookmark    `gorm:"foreignKey:StudentEmail;references:Email" json:"-"`
}
