// Package auth contains handlers that turn a Google sign-in into a verified
// identity and a first-party access token.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"careernest-backend/internal/config"
	"careernest-backend/internal/database"
	"careernest-backend/internal/model"
	"careernest-backend/internal/utilities"
)

// GoogleLoginHandler exchanges Google credentials for a CareerNest access
// token. Token verification happens here, server-side; the browser-supplied
// email is never trusted on its own.
type GoogleLoginHandler struct {
	DB                *database.DBinstanceStruct
	OauthConfig       *oauth2.Config
	UserInfoEndpoint  string
	TokenInfoEndpoint string
	JWTSecret         string

	// HTTPClient is swappable for tests; nil means http.DefaultClient.
	HTTPClient *http.Client
}

// NewGoogleLoginHandler creates a login handler from the loaded configuration.
func NewGoogleLoginHandler(db *database.DBinstanceStruct, google *config.GoogleConfig, oauthConfig *oauth2.Config) *GoogleLoginHandler {
	return &GoogleLoginHandler{
		DB:                db,
		OauthConfig:       oauthConfig,
		UserInfoEndpoint:  google.UserInfoEndpoint,
		TokenInfoEndpoint: google.TokenInfoEndpoint,
		JWTSecret:         google.JWTSecret,
	}
}

type loginRequest struct {
	Code        string `json:"code"`
	AccessToken string `json:"access_token"`
	FullName    string `json:"full_name"`
}

// tokenInfo is the relevant subset of Google's tokeninfo response.
type tokenInfo struct {
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
}

func (h *GoogleLoginHandler) client() *http.Client {
	if h.HTTPClient != nil {
		return h.HTTPClient
	}
	return http.DefaultClient
}

// LoginHandler signs a student in with either an oauth2 authorization code or
// a Google access token, find-or-creates the student row, and returns a
// first-party JWT.
// @Summary Sign in with Google
// @Description Accepts {"code": ...} from the oauth redirect flow or {"access_token": ...} from the browser SDK
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Google credential"
// @Success 200 {object} model.LoginResponse "Signed in"
// @Success 201 {object} model.LoginResponse "Signed in, profile created"
// @Failure 400 {object} utilities.ErrorResponse "No usable credential in body"
// @Failure 401 {object} utilities.ErrorResponse "Credential rejected by Google"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /auth/google [post]
func (h *GoogleLoginHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	var (
		email string
		name  string
		err   error
	)

	switch {
	case req.Code != "":
		email, name, err = h.emailFromCode(c.Request.Context(), req.Code)
	case req.AccessToken != "":
		email, err = h.emailFromAccessToken(c.Request.Context(), req.AccessToken)
		name = req.FullName
	default:
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Either code or access_token is required",
		})
		return
	}

	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to verify Google credential: %s", err.Error()),
		})
		return
	}

	student, created, err := h.DB.FindOrCreateStudent(c.Request.Context(), email, model.EditableStudentInfo{FullName: name})
	if err != nil {
		if errors.Is(err, database.ErrStoreUnavailable) {
			c.JSON(http.StatusServiceUnavailable, utilities.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to load student profile: %s", err.Error()),
		})
		return
	}

	accessToken, err := GenerateStandardToken(student.Email, h.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, model.LoginResponse{Student: student, AccessToken: accessToken})
}

// emailFromCode runs the oauth2 code exchange and reads the userinfo endpoint.
func (h *GoogleLoginHandler) emailFromCode(ctx context.Context, code string) (string, string, error) {
	token, err := h.OauthConfig.Exchange(ctx, code)
	if err != nil {
		return "", "", fmt.Errorf("code exchange failed: %w", err)
	}

	client := h.OauthConfig.Client(ctx, token)
	resp, err := client.Get(h.UserInfoEndpoint)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch user information: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("failed to close userinfo response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", "", fmt.Errorf("userinfo endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var uInfo model.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&uInfo); err != nil {
		return "", "", fmt.Errorf("failed to decode user info: %w", err)
	}
	if uInfo.Email == "" {
		return "", "", errors.New("userinfo response has no email")
	}
	return uInfo.Email, uInfo.Name, nil
}

// emailFromAccessToken verifies a browser-obtained access token against
// Google's tokeninfo endpoint and returns the verified email.
func (h *GoogleLoginHandler) emailFromAccessToken(ctx context.Context, accessToken string) (string, error) {
	endpoint := h.TokenInfoEndpoint + "?access_token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := h.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("failed to close tokeninfo response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tokeninfo rejected the token with status %d", resp.StatusCode)
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}
	if info.Email == "" {
		return "", errors.New("tokeninfo response has no email")
	}
	if strings.EqualFold(info.EmailVerified, "false") {
		return "", errors.New("google account email is not verified")
	}
	return info.Email, nil
}
