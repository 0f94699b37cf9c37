package auth

import (
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"careernest-backend/internal/database"
	"careernest-backend/internal/model"
	"careernest-backend/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	var teardown func(context.Context, ...testcontainers.TerminateOption) error
	teardown, testDB, err = database.GetTestDB()
	if err != nil {
		log.Printf("could not start postgres container: %v", err)
		os.Exit(1)
	}

	code := m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
	os.Exit(code)
}

// fakeTokenInfo serves a canned Google tokeninfo response.
func fakeTokenInfo(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("access_token"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newLoginRouter(tokenInfoURL string) *gin.Engine {
	h := &GoogleLoginHandler{
		DB:                testDB,
		TokenInfoEndpoint: tokenInfoURL,
		JWTSecret:         testSecret,
	}
	r := gin.Default()
	r.POST("/auth/google", h.LoginHandler)
	return r
}

func TestLoginCreatesStudentOnFirstSignIn(t *testing.T) {
	srv := fakeTokenInfo(t, http.StatusOK,
		`{"email": "fresh.login@example.com", "email_verified": "true"}`)
	r := newLoginRouter(srv.URL)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"access_token": "google-opaque-token",
		"full_name":    "Fresh Login",
	}, "", r, "/auth/google", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, resp["access_token"])

	student, ok := resp["student"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "fresh.login@example.com", student["email"])
	assert.Equal(t, "Fresh Login", student["full_name"])

	// Returning sign-in reuses the profile.
	rec, _ = testutil.MakeJSONRequest(gin.H{
		"access_token": "google-opaque-token",
	}, "", r, "/auth/google", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginIssuesUsableToken(t *testing.T) {
	srv := fakeTokenInfo(t, http.StatusOK,
		`{"email": "student1@example.com", "email_verified": "true"}`)
	r := newLoginRouter(srv.URL)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"access_token": "google-opaque-token",
	}, "", r, "/auth/google", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)

	accessToken, _ := resp["access_token"].(string)
	token, err := ValidatedToken(accessToken, testSecret)
	assert.NoError(t, err)
	assert.True(t, token.Valid)
}

func TestLoginRejectsUnverifiedEmail(t *testing.T) {
	srv := fakeTokenInfo(t, http.StatusOK,
		`{"email": "unverified@example.com", "email_verified": "false"}`)
	r := newLoginRouter(srv.URL)

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"access_token": "google-opaque-token",
	}, "", r, "/auth/google", http.MethodPost)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsBadGoogleToken(t *testing.T) {
	srv := fakeTokenInfo(t, http.StatusBadRequest, `{"error": "invalid_token"}`)
	r := newLoginRouter(srv.URL)

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"access_token": "google-opaque-token",
	}, "", r, "/auth/google", http.MethodPost)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginWithoutCredential(t *testing.T) {
	r := newLoginRouter("http://localhost:0")

	rec, _ := testutil.MakeJSONRequest(gin.H{}, "", r, "/auth/google", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginDoesNotOverwriteProfile(t *testing.T) {
	srv := fakeTokenInfo(t, http.StatusOK,
		`{"email": "`+database.TestStudent1.Email+`", "email_verified": "true"}`)
	r := newLoginRouter(srv.URL)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"access_token": "google-opaque-token",
		"full_name":    "Someone Else",
	}, "", r, "/auth/google", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	student, ok := resp["student"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, database.TestStudent1.FullName, student["full_name"])

	var stored model.Student
	assert.NoError(t, testDB.Where("email = ?", database.TestStudent1.Email).First(&stored).Error)
	assert.Equal(t, database.TestStudent1.FullName, stored.FullName)
}
