package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"careernest-backend/internal/config"
	m "careernest-backend/internal/model"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seed fixtures shared by controller tests.
var (
	TestCompany1 m.Company
	TestCompany2 m.Company

	TestStudent1 m.Student
	TestStudent2 m.Student

	// TestJob1 and TestJob2 are active, TestJobInactive is not.
	TestJob1        m.Job
	TestJob2        m.Job
	TestJobInactive m.Job

	// TestApplication1 is TestStudent1's pending application to TestJob1.
	TestApplication1 m.Application

	// TestAdminEmail is allow-listed in the config handed to test routers,
	// TestStudent emails are not.
	TestAdminEmail = "admin@careernest.io"
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	cfg := &config.DatabaseConfig{
		UseConnStr: true,
		ConnStr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(cfg)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// GetUnreachableTestDB returns a gateway wired to an address where no
// database listens, for exercising the store-unavailable path. Automatic
// pinging is disabled so construction succeeds without a connection.
func GetUnreachableTestDB() (*DBinstanceStruct, error) {
	cfg := &config.DatabaseConfig{
		UseConnStr: true,
		ConnStr:    "host=127.0.0.1 port=1 user=nobody password=nothing dbname=nowhere sslmode=disable connect_timeout=1",
	}

	gdb, err := gorm.Open(pgdriver.Open(cfg.ConnStr), &gorm.Config{DisableAutomaticPing: true})
	if err != nil {
		return nil, err
	}

	return &DBinstanceStruct{
		DB:     gdb,
		Config: cfg,
	}, nil
}

// seedTestData inserts sample companies, students, jobs and one application
// if the database is empty.
func seedTestData(db *DBinstanceStruct) error {
	var companyCount int64
	if err := db.Model(&m.Company{}).Count(&companyCount).Error; err != nil {
		return err
	}
	if companyCount > 0 {
		return loadTestData(db)
	}

	TestCompany1 = m.Company{
		Name: "TechNova Solutions",
		EditableCompanyInfo: m.EditableCompanyInfo{
			Industry: "Software Development",
			Website:  "https://technova.io",
			Location: "Bangalore, India",
		},
	}
	TestCompany2 = m.Company{
		Name: "FinEdge Capital",
		EditableCompanyInfo: m.EditableCompanyInfo{
			Industry: "Finance & Fintech",
			Website:  "https://finedge.in",
			Location: "Mumbai, India",
		},
	}
	if err := db.Create(&TestCompany1).Error; err != nil {
		return err
	}
	if err := db.Create(&TestCompany2).Error; err != nil {
		return err
	}

	TestStudent1 = m.Student{
		Email: "student1@example.com",
		EditableStudentInfo: m.EditableStudentInfo{
			FullName:  "Student One",
			ResumeURL: "https://example.com/resume1.pdf",
		},
	}
	TestStudent2 = m.Student{
		Email: "student2@example.com",
		EditableStudentInfo: m.EditableStudentInfo{
			FullName: "Student Two",
		},
	}
	if err := db.Create(&TestStudent1).Error; err != nil {
		return err
	}
	if err := db.Create(&TestStudent2).Error; err != nil {
		return err
	}

	active := true
	inactive := false
	remote := true
	salaryMin := int64(15000)
	salaryMax := int64(25000)

	TestJob1 = m.Job{
		CompanyID: TestCompany1.ID,
		EditableJobInfo: m.EditableJobInfo{
			Title:       "Backend Engineering Intern",
			Description: "Build production-grade REST APIs on the core backend team.",
			Category:    "Technology",
			JobType:     "Internship",
			Location:    "Bangalore, India",
			IsRemote:    &remote,
			Tags:        []string{"go", "backend", "intern"},
			SalaryMin:   &salaryMin,
			SalaryMax:   &salaryMax,
			IsActive:    &active,
		},
	}
	TestJob2 = m.Job{
		CompanyID: TestCompany2.ID,
		EditableJobInfo: m.EditableJobInfo{
			Title:       "Finance & Investment Intern",
			Description: "Equity research and financial modelling exposure.",
			Category:    "Finance",
			JobType:     "Internship",
			Location:    "Mumbai, India",
			IsActive:    &active,
		},
	}
	TestJobInactive = m.Job{
		CompanyID: TestCompany1.ID,
		EditableJobInfo: m.EditableJobInfo{
			Title:       "Closed Role",
			Description: "This listing has been deactivated.",
			Category:    "Technology",
			JobType:     "Full-Time",
			Location:    "Bangalore, India",
			IsActive:    &inactive,
		},
	}
	for _, job := range []*m.Job{&TestJob1, &TestJob2, &TestJobInactive} {
		if err := db.Create(job).Error; err != nil {
			return err
		}
	}

	TestApplication1 = m.Application{
		JobID:        TestJob1.ID,
		StudentEmail: TestStudent1.Email,
		Status:       m.ApplicationStatusPending,
		CoverLetter:  "I would love to join.",
		ResumeURL:    TestStudent1.ResumeURL,
	}
	if err := db.Create(&TestApplication1).Error; err != nil {
		return err
	}
	return db.Exec(
		`UPDATE jobs SET applications_count = applications_count + 1 WHERE id = ?`,
		TestJob1.ID,
	).Error
}

// loadTestData refreshes the exported fixtures from an already seeded database.
func loadTestData(db *DBinstanceStruct) error {
	if err := db.Where("name = ?", "TechNova Solutions").First(&TestCompany1).Error; err != nil {
		return err
	}
	if err := db.Where("name = ?", "FinEdge Capital").First(&TestCompany2).Error; err != nil {
		return err
	}
	if err := db.Where("email = ?", "student1@example.com").First(&TestStudent1).Error; err != nil {
		return err
	}
	if err := db.Where("email = ?", "student2@example.com").First(&TestStudent2).Error; err != nil {
		return err
	}
	if err := db.Where("title = ?", "Backend Engineering Intern").First(&TestJob1).Error; err != nil {
		return err
	}
	if err := db.Where("title = ?", "Finance & Investment Intern").First(&TestJob2).Error; err != nil {
		return err
	}
	if err := db.Where("title = ?", "Closed Role").First(&TestJobInactive).Error; err != nil {
		return err
	}
	return db.Where("job_id = ? AND student_email = ?", TestJob1.ID, TestStudent1.Email).
		First(&TestApplication1).Error
}
