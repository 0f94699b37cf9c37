package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"careernest-backend/internal/auth"
	"careernest-backend/internal/config"
	"careernest-backend/internal/testutil"
	"careernest-backend/internal/utilities"
)

const testSecret = "middleware-test-secret"

var testAdmin = config.NewAdminConfig([]string{"admin@careernest.io"})

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter() *gin.Engine {
	r := gin.Default()
	r.GET("/whoami", RequireAuth(testSecret), func(c *gin.Context) {
		identity, err := utilities.ExtractIdentity(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"identity": identity})
	})
	r.GET("/admin-only", RequireAuth(testSecret), RequireAdmin(testAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, utilities.MessageResponse{Message: "welcome"})
	})
	return r
}

func TestRequireAuthMissingHeader(t *testing.T) {
	r := protectedRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/whoami", http.MethodGet)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireAuthGarbageToken(t *testing.T) {
	r := protectedRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "not-a-jwt", r, "/whoami", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthForeignSecret(t *testing.T) {
	r := protectedRouter()

	token, err := auth.GenerateStandardToken("student1@example.com", "other-secret")
	assert.NoError(t, err)

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/whoami", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthSetsIdentity(t *testing.T) {
	r := protectedRouter()

	token, err := auth.GenerateStandardToken("student1@example.com", testSecret)
	assert.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/whoami", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "student1@example.com", resp["identity"])
}

func TestRequireAdminRejectsStudent(t *testing.T) {
	r := protectedRouter()

	token, err := auth.GenerateStandardToken("student1@example.com", testSecret)
	assert.NoError(t, err)

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/admin-only", http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminAllowsListedEmail(t *testing.T) {
	r := protectedRouter()

	// Allow-list matching ignores case.
	token, err := auth.GenerateStandardToken("Admin@CareerNest.io", testSecret)
	assert.NoError(t, err)

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/admin-only", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
}
