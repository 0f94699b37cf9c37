package company

import (
	"context"
	"log"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"careernest-backend/internal/auth"
	"careernest-backend/internal/config"
	"careernest-backend/internal/database"
	"careernest-backend/internal/middleware"
	"careernest-backend/internal/testutil"
)

const testSecret = "company-test-secret"

var testDB *database.DBinstanceStruct
var testAdmin config.AdminConfig

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	var teardown func(context.Context, ...testcontainers.TerminateOption) error
	teardown, testDB, err = database.GetTestDB()
	if err != nil {
		log.Printf("could not start postgres container: %v", err)
		os.Exit(1)
	}
	testAdmin = config.NewAdminConfig([]string{database.TestAdminEmail})

	code := m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
	os.Exit(code)
}

func setupRouter() *gin.Engine {
	cc := NewCompanyController(testDB)
	r := gin.Default()
	r.GET("/companies", cc.GetCompanies)
	r.GET("/companies/:id", cc.GetCompanyByID)
	r.POST("/companies", middleware.RequireAuth(testSecret), middleware.RequireAdmin(testAdmin), cc.CreateCompanyHandler)
	return r
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateStandardToken(database.TestAdminEmail, testSecret)
	assert.NoError(t, err)
	return token
}

func TestCreateCompany(t *testing.T) {
	r := setupRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"name":     "DesignPulse Agency",
		"industry": "Design & Creative",
		"location": "Hyderabad, India",
	}, adminToken(t), r, "/companies", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "DesignPulse Agency", resp["name"])
	assert.NotEmpty(t, resp["id"])
	assert.Equal(t, float64(0), resp["total_jobs_posted"])
}

func TestCreateCompanyDuplicateName(t *testing.T) {
	r := setupRouter()

	// Name collisions are case-insensitive.
	rec, _ := testutil.MakeJSONRequest(gin.H{
		"name": "TECHNOVA solutions",
	}, adminToken(t), r, "/companies", http.MethodPost)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateCompanyRequiresName(t *testing.T) {
	r := setupRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"industry": "Mystery",
	}, adminToken(t), r, "/companies", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCompanyRequiresAdmin(t *testing.T) {
	r := setupRouter()

	studentToken, err := auth.GenerateStandardToken(database.TestStudent1.Email, testSecret)
	assert.NoError(t, err)

	rec, _ := testutil.MakeJSONRequest(gin.H{"name": "Rogue Inc"}, studentToken, r, "/companies", http.MethodPost)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetCompanies(t *testing.T) {
	r := setupRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/companies", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	companies, ok := resp["companies"].([]interface{})
	assert.True(t, ok)
	assert.GreaterOrEqual(t, len(companies), 2)
	assert.Equal(t, float64(len(companies)), resp["total"])
}

func TestGetCompanyByIDShowsOnlyActiveJobs(t *testing.T) {
	r := setupRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r,
		"/companies/"+database.TestCompany1.ID.String(), http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	company, ok := resp["company"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, database.TestCompany1.Name, company["name"])

	activeJobs, ok := resp["active_jobs"].([]interface{})
	assert.True(t, ok)
	for _, j := range activeJobs {
		job := j.(map[string]interface{})
		assert.NotEqual(t, database.TestJobInactive.Title, job["title"])
	}
	assert.Equal(t, float64(len(activeJobs)), resp["active_jobs_count"])
}

func TestGetCompanyByIDNotFound(t *testing.T) {
	r := setupRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/companies/"+uuid.NewString(), http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
