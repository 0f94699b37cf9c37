package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"careernest-backend/internal/auth"
	"careernest-backend/internal/config"
	"careernest-backend/internal/database"
	"careernest-backend/internal/middleware"
	"careernest-backend/internal/model"
)

const testSecret = "file-test-secret"

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

// memoryStorage keeps uploaded objects in a map instead of a bucket.
type memoryStorage struct {
	objects map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}}
}

func (m *memoryStorage) UploadFile(objectName string, fileData io.Reader) error {
	data, err := io.ReadAll(fileData)
	if err != nil {
		return err
	}
	m.objects[objectName] = data
	return nil
}

func (m *memoryStorage) ObjectURL(objectName string) string {
	return "https://storage.test/" + objectName
}

func setupRouter(storage StorageClient) *gin.Engine {
	fc := NewFileController(testDB, storage)
	r := gin.Default()
	r.POST("/companies/:id/logo",
		middleware.RequireAuth(testSecret),
		middleware.RequireAdmin(testAdmin),
		middleware.SizeLimit(1<<20),
		fc.UploadLogo)
	return r
}

func uploadLogo(t *testing.T, r *gin.Engine, companyID string, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("logo", filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	token, err := auth.GenerateStandardToken(database.TestAdminEmail, testSecret)
	assert.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, "/companies/"+companyID+"/logo", &body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUploadLogo(t *testing.T) {
	storage := newMemoryStorage()
	r := setupRouter(storage)

	rec := uploadLogo(t, r, database.TestCompany1.ID.String(), "logo.png", []byte("png-bytes"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, storage.objects, 1)

	var company model.Company
	assert.NoError(t, testDB.Where("id = ?", database.TestCompany1.ID).First(&company).Error)
	assert.Contains(t, company.LogoURL, "https://storage.test/logos/")
}

func TestUploadLogoRejectsExtension(t *testing.T) {
	storage := newMemoryStorage()
	r := setupRouter(storage)

	rec := uploadLogo(t, r, database.TestCompany1.ID.String(), "logo.svg", []byte("<svg/>"))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Empty(t, storage.objects)
}

func TestUploadLogoUnknownCompany(t *testing.T) {
	r := setupRouter(newMemoryStorage())

	rec := uploadLogo(t, r, "00000000-0000-0000-0000-000000000000", "logo.png", []byte("png-bytes"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadLogoTooLarge(t *testing.T) {
	storage := newMemoryStorage()
	r := setupRouter(storage)

	rec := uploadLogo(t, r, database.TestCompany2.ID.String(), "logo.png", bytes.Repeat([]byte("a"), 2<<20))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Empty(t, storage.objects)
}

func TestUploadLogoWithoutStorage(t *testing.T) {
	r := setupRouter(nil)

	rec := uploadLogo(t, r, database.TestCompany1.ID.String(), "logo.png", []byte("png-bytes"))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestObjectURLFormat(t *testing.T) {
	c := &CloudStorageClient{BucketName: "careernest-logos"}
	url := c.ObjectURL("logos/abc.png")
	assert.Equal(t, fmt.Sprintf("https://storage.googleapis.com/%s/%s", "careernest-logos", "logos/abc.png"), url)
}
