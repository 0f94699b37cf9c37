// Command-line tool to seed the database with demo companies and job listings.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"careernest-backend/internal/config"
	"careernest-backend/internal/database"
	"careernest-backend/internal/model"
)

func boolPtr(b bool) *bool    { return &b }
func int64Ptr(n int64) *int64 { return &n }
func intPtr(n int) *int       { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func main() {
	dbCfg := config.LoadDatabase()
	db, err := database.NewDBInstance(&dbCfg)
	if err != nil {
		log.Fatalf("Database failed to initialize: %s", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	ctx := context.Background()

	var existing int64
	if err := db.Do(ctx, func(tx *gorm.DB) error {
		return tx.Model(&model.Company{}).Count(&existing).Error
	}); err != nil {
		log.Fatalf("Failed to inspect database: %s", err)
	}
	if existing > 0 {
		fmt.Println("Database already seeded, skipping.")
		return
	}

	companies := []model.Company{
		{
			Name: "TechNova Solutions",
			EditableCompanyInfo: model.EditableCompanyInfo{
				Industry:    "Software Development",
				Website:     "https://technova.io",
				LogoURL:     "https://placehold.co/100x100?text=TN",
				Description: "Building next-gen cloud platforms for enterprises.",
				Location:    "Bangalore, India",
			},
		},
		{
			Name: "FinEdge Capital",
			EditableCompanyInfo: model.EditableCompanyInfo{
				Industry:    "Finance & Fintech",
				Website:     "https://finedge.in",
				LogoURL:     "https://placehold.co/100x100?text=FE",
				Description: "Democratizing investment for retail investors.",
				Location:    "Mumbai, India",
			},
		},
		{
			Name: "DesignPulse Agency",
			EditableCompanyInfo: model.EditableCompanyInfo{
				Industry:    "Design & Creative",
				Website:     "https://designpulse.co",
				LogoURL:     "https://placehold.co/100x100?text=DP",
				Description: "Award-winning UI/UX agency.",
				Location:    "Hyderabad, India",
			},
		},
	}

	if err := db.Do(ctx, func(tx *gorm.DB) error {
		return tx.Create(&companies).Error
	}); err != nil {
		log.Fatalf("Failed to seed companies: %s", err)
	}

	jobs := []model.Job{
		{
			CompanyID: companies[0].ID,
			EditableJobInfo: model.EditableJobInfo{
				Title:            "Backend Engineering Intern",
				Description:      "Join our core backend team and build production-grade REST APIs.",
				Category:         "Technology",
				JobType:          "Internship",
				ExperienceLevel:  "Internship / No Experience",
				Location:         "Bangalore, India",
				IsRemote:         boolPtr(true),
				Responsibilities: pq.StringArray{"Develop REST APIs", "Write unit tests", "Participate in standups"},
				Requirements:     pq.StringArray{"Pursuing B.Tech/BE in CS", "Understands HTTP/REST"},
				NiceToHave:       pq.StringArray{"Docker experience", "Open-source contributions"},
				SalaryMin:        int64Ptr(15000),
				SalaryMax:        int64Ptr(25000),
				SalaryCurrency:   "INR",
				Openings:         intPtr(3),
				Deadline:         timePtr(time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)),
				Tags:             pq.StringArray{"backend", "intern"},
			},
		},
		{
			CompanyID: companies[0].ID,
			EditableJobInfo: model.EditableJobInfo{
				Title:            "Full Stack Developer",
				Description:      "We're looking for a Full Stack Developer to join our product team.",
				Category:         "Technology",
				JobType:          "Full-Time",
				ExperienceLevel:  "Mid Level",
				Location:         "Bangalore, India",
				IsRemote:         boolPtr(false),
				Responsibilities: pq.StringArray{"Ship product features", "Collaborate with designers", "Mentor junior engineers"},
				Requirements:     pq.StringArray{"2+ years experience", "React + Node.js or Go", "PostgreSQL experience"},
				NiceToHave:       pq.StringArray{"AWS/GCP experience", "TypeScript"},
				SalaryMin:        int64Ptr(800000),
				SalaryMax:        int64Ptr(1400000),
				SalaryCurrency:   "INR",
				Openings:         intPtr(2),
				Deadline:         timePtr(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)),
				Tags:             pq.StringArray{"react", "fullstack", "postgres"},
			},
		},
		{
			CompanyID: companies[1].ID,
			EditableJobInfo: model.EditableJobInfo{
				Title:            "Finance & Investment Intern",
				Description:      "Get real-world exposure to equity research and financial modelling.",
				Category:         "Finance",
				JobType:          "Internship",
				ExperienceLevel:  "Internship / No Experience",
				Location:         "Mumbai, India",
				IsRemote:         boolPtr(false),
				Responsibilities: pq.StringArray{"Equity research", "Build financial models", "Prepare investment memos"},
				Requirements:     pq.StringArray{"MBA (Finance) or B.Com final year", "Strong Excel skills"},
				NiceToHave:       pq.StringArray{"CFA Level 1", "Bloomberg Terminal"},
				SalaryMin:        int64Ptr(20000),
				SalaryMax:        int64Ptr(30000),
				SalaryCurrency:   "INR",
				Openings:         intPtr(2),
				Deadline:         timePtr(time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)),
				Tags:             pq.StringArray{"finance", "equity", "intern"},
			},
		},
		{
			CompanyID: companies[2].ID,
			EditableJobInfo: model.EditableJobInfo{
				Title:            "UI/UX Design Intern",
				Description:      "Work alongside senior designers on real client projects.",
				Category:         "Design",
				JobType:          "Internship",
				ExperienceLevel:  "Internship / No Experience",
				Location:         "Hyderabad, India",
				IsRemote:         boolPtr(true),
				Responsibilities: pq.StringArray{"Create wireframes and prototypes", "User research", "Dev handoff"},
				Requirements:     pq.StringArray{"Degree in Design/HCI", "Proficient in Figma", "Portfolio required"},
				NiceToHave:       pq.StringArray{"Motion design", "Design systems experience"},
				SalaryMin:        int64Ptr(12000),
				SalaryMax:        int64Ptr(18000),
				SalaryCurrency:   "INR",
				Openings:         intPtr(1),
				Deadline:         timePtr(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)),
				Tags:             pq.StringArray{"figma", "ux", "design", "intern"},
			},
		},
	}

	if err := db.Do(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&jobs).Error; err != nil {
			return err
		}
		// Keep the posting counters consistent with the seeded listings.
		return tx.Exec(`
			UPDATE companies SET total_jobs_posted =
				(SELECT COUNT(*) FROM jobs WHERE jobs.company_id = companies.id)
		`).Error
	}); err != nil {
		log.Fatalf("Failed to seed jobs: %s", err)
	}

	fmt.Printf("Seeded %d companies and %d jobs.\n", len(companies), len(jobs))
}
