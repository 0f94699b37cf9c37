package job

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
	"careernest-backend/internal/model"
	"careernest-backend/internal/testutil"
)

const testSecret = "job-test-secret"

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
	jc := NewJobController(testDB)
	r := gin.Default()
	r.GET("/jobs", jc.GetJobs)
	r.GET("/jobs/:id", jc.GetJobByID)
	r.POST("/jobs", middleware.RequireAuth(testSecret), middleware.RequireAdmin(testAdmin), jc.CreateJobHandler)
	r.PATCH("/jobs/:id", middleware.RequireAuth(testSecret), middleware.RequireAdmin(testAdmin), jc.EditJobHandler)
	r.DELETE("/jobs/:id", middleware.RequireAuth(testSecret), middleware.RequireAdmin(testAdmin), jc.DeleteJobHandler)
	return r
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateStandardToken(database.TestAdminEmail, testSecret)
	assert.NoError(t, err)
	return token
}

func studentToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateStandardToken(database.TestStudent1.Email, testSecret)
	assert.NoError(t, err)
	return token
}

func listedJobs(t *testing.T, resp map[string]interface{}) []map[string]interface{} {
	t.Helper()
	raw, ok := resp["jobs"].([]interface{})
	assert.True(t, ok, "response has no jobs array")
	jobs := make([]map[string]interface{}, 0, len(raw))
	for _, j := range raw {
		job, ok := j.(map[string]interface{})
		assert.True(t, ok)
		jobs = append(jobs, job)
	}
	return jobs
}

func TestGetJobsExcludesInactive(t *testing.T) {
	r := setupRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/jobs?page_size=50", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	jobs := listedJobs(t, resp)
	assert.NotEmpty(t, jobs)
	for _, job := range jobs {
		assert.NotEqual(t, database.TestJobInactive.Title, job["title"])
		assert.Equal(t, true, job["is_active"])
	}
}

func TestGetJobsFiltersAreConjunctive(t *testing.T) {
	r := setupRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r,
		"/jobs?category=Technology&location=Bangalore", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	for _, job := range listedJobs(t, resp) {
		assert.Equal(t, "Technology", job["category"])
	}

	// Both filters must match, the finance listing is in Mumbai.
	rec, resp = testutil.MakeJSONRequest(nil, "", r,
		"/jobs?category=Finance&location=Bangalore", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, listedJobs(t, resp))
}

func TestGetJobsSearchMatchesDescription(t *testing.T) {
	r := setupRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/jobs?search=equity", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	jobs := listedJobs(t, resp)
	assert.NotEmpty(t, jobs)
	for _, job := range jobs {
		assert.Equal(t, database.TestJob2.Title, job["title"])
	}
}

func TestGetJobsSalaryOverlap(t *testing.T) {
	r := setupRouter()

	// TestJob1 pays 15000-25000; a floor above its ceiling filters it out.
	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/jobs?salary_min=30000", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	for _, job := range listedJobs(t, resp) {
		assert.NotEqual(t, database.TestJob1.Title, job["title"])
	}

	rec, resp = testutil.MakeJSONRequest(nil, "", r, "/jobs?salary_min=20000&salary_max=24000", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	found := false
	for _, job := range listedJobs(t, resp) {
		if job["title"] == database.TestJob1.Title {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGetJobsRejectsUnknownEnums(t *testing.T) {
	r := setupRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/jobs?category=Gardening", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/jobs?job_type=Gig", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/jobs?sort=alphabetical", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/jobs?is_remote=maybe", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetJobsPagination(t *testing.T) {
	r := setupRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/jobs?page_size=1", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	jobs := listedJobs(t, resp)
	assert.Len(t, jobs, 1)

	envelope, ok := resp["pagination"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, float64(1), envelope["page"])
	assert.Equal(t, float64(1), envelope["page_size"])
	assert.GreaterOrEqual(t, envelope["total"], float64(2))
}

func TestGetJobByIDBumpsViews(t *testing.T) {
	r := setupRouter()
	url := "/jobs/" + database.TestJob2.ID.String()

	rec, first := testutil.MakeJSONRequest(nil, "", r, url, http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, second := testutil.MakeJSONRequest(nil, "", r, url, http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, first["views"].(float64)+1, second["views"])

	company, ok := second["company"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, database.TestCompany2.Name, company["name"])
}

func TestGetJobsStoreUnavailable(t *testing.T) {
	dead, err := database.GetUnreachableTestDB()
	assert.NoError(t, err)

	jc := NewJobController(dead)
	r := gin.Default()
	r.GET("/jobs", jc.GetJobs)
	r.GET("/jobs/:id", jc.GetJobByID)

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/jobs", http.MethodGet)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/jobs/"+database.TestJob1.ID.String(), http.MethodGet)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetJobByIDNotFound(t *testing.T) {
	r := setupRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/jobs/"+uuid.NewString(), http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateJobRequiresAdmin(t *testing.T) {
	r := setupRouter()

	body := gin.H{"title": "Ghost Role", "description": "should never exist", "company_name": "Nobody Inc"}

	rec, _ := testutil.MakeJSONRequest(body, "", r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(body, studentToken(t), r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var count int64
	assert.NoError(t, testDB.Model(&model.Job{}).Where("title = ?", "Ghost Role").Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateJobByCompanyName(t *testing.T) {
	r := setupRouter()

	body := gin.H{
		"title":        "Platform Engineer",
		"description":  "Own the deployment pipeline.",
		"category":     "Engineering",
		"job_type":     "Full-Time",
		"company_name": "technova solutions",
	}
	rec, resp := testutil.MakeJSONRequest(body, adminToken(t), r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// The existing profile is matched case-insensitively, not duplicated.
	assert.Equal(t, database.TestCompany1.ID.String(), resp["company_id"])

	var company model.Company
	assert.NoError(t, testDB.Where("id = ?", database.TestCompany1.ID).First(&company).Error)
	assert.GreaterOrEqual(t, company.TotalJobsPosted, int64(1))
}

func TestCreateJobUnknownCompanyID(t *testing.T) {
	r := setupRouter()

	body := gin.H{
		"title":       "Orphan Role",
		"description": "no such company",
		"company_id":  uuid.NewString(),
	}
	rec, _ := testutil.MakeJSONRequest(body, adminToken(t), r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateJobValidation(t *testing.T) {
	r := setupRouter()
	token := adminToken(t)

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"description": "missing title", "company_name": "TechNova Solutions",
	}, token, r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{
		"title": "Bad Enum", "description": "x", "job_type": "Gig", "company_name": "TechNova Solutions",
	}, token, r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{
		"title": "Bad Salary", "description": "x", "salary_min": 100, "salary_max": 50,
		"company_name": "TechNova Solutions",
	}, token, r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = testutil.MakeJSONRequest(gin.H{
		"title": "No Company", "description": "x",
	}, token, r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditJobTogglesActive(t *testing.T) {
	r := setupRouter()
	token := adminToken(t)

	rec, created := testutil.MakeJSONRequest(gin.H{
		"title":        "Toggle Role",
		"description":  "starts active",
		"company_name": "TechNova Solutions",
	}, token, r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	id := created["id"].(string)

	rec, updated := testutil.MakeJSONRequest(gin.H{"is_active": false}, token, r, "/jobs/"+id, http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, updated["is_active"])

	// Hidden from listings but still directly addressable.
	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/jobs?page_size=50", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	for _, job := range listedJobs(t, resp) {
		assert.NotEqual(t, id, job["id"])
	}

	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/jobs/"+id, http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEditJobNotFound(t *testing.T) {
	r := setupRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{"title": "New Title"}, adminToken(t), r,
		"/jobs/"+uuid.NewString(), http.MethodPatch)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteJob(t *testing.T) {
	r := setupRouter()
	token := adminToken(t)

	rec, created := testutil.MakeJSONRequest(gin.H{
		"title":        "Short Lived Role",
		"description":  "about to be removed",
		"company_name": "TechNova Solutions",
	}, token, r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	id := created["id"].(string)

	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/jobs/"+id, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/jobs/"+id, http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/jobs/"+id, http.MethodDelete)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
