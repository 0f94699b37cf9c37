package database

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"gorm.io/gorm"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"careernest-backend/internal/model"
)

var testDB *DBinstanceStruct

func TestMain(m *testing.M) {
	var err error
	var teardownFn func(context.Context, ...testcontainers.TerminateOption) error
	teardownFn, testDB, err = GetTestDB()
	if err != nil {
		log.Printf("could not start postgres container: %v", err)
		os.Exit(1)
	}

	code := m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardownFn != nil {
		_ = teardownFn(ctx)
	}
	os.Exit(code)
}

func TestHealth(t *testing.T) {
	stats := testDB.Health()

	assert.Equal(t, "up", stats["status"])
	assert.NotContains(t, stats, "error")
}

func TestDoPassesThroughNotFound(t *testing.T) {
	err := testDB.Do(context.Background(), func(tx *gorm.DB) error {
		var job model.Job
		return tx.Where("title = ?", "no such listing").First(&job).Error
	})

	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.False(t, errors.Is(err, ErrStoreUnavailable))
}

func TestDoSurfacesStoreUnavailable(t *testing.T) {
	dead, err := GetUnreachableTestDB()
	assert.NoError(t, err)

	attempts := 0
	err = dead.Do(context.Background(), func(tx *gorm.DB) error {
		attempts++
		var job model.Job
		return tx.First(&job).Error
	})

	assert.True(t, errors.Is(err, ErrStoreUnavailable))
	// The reconnect ping fails against a dead endpoint, so the closure
	// must not run a second time.
	assert.Equal(t, 1, attempts)
}

func TestHealthReportsDownStore(t *testing.T) {
	dead, err := GetUnreachableTestDB()
	assert.NoError(t, err)

	stats := dead.Health()
	assert.Equal(t, "down", stats["status"])
	assert.Contains(t, stats, "error")
}

func TestFindOrCreateCompany(t *testing.T) {
	ctx := context.Background()

	first, created, err := testDB.FindOrCreateCompany(ctx, "Acme Robotics")
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Acme Robotics", first.Name)

	// Lookup is case-insensitive and must not create a second profile.
	second, created, err := testDB.FindOrCreateCompany(ctx, "acme ROBOTICS")
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestFindOrCreateStudent(t *testing.T) {
	ctx := context.Background()

	first, created, err := testDB.FindOrCreateStudent(ctx, "New.Student@Example.com", model.EditableStudentInfo{
		FullName: "New Student",
	})
	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "new.student@example.com", first.Email)

	second, created, err := testDB.FindOrCreateStudent(ctx, "new.student@example.com", model.EditableStudentInfo{})
	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "New Student", second.FullName)
}

func TestSeededFixtures(t *testing.T) {
	assert.NotEqual(t, TestCompany1.ID, TestCompany2.ID)
	assert.True(t, TestJob1.Active())
	assert.False(t, TestJobInactive.Active())
	assert.Equal(t, TestJob1.ID, TestApplication1.JobID)
}
