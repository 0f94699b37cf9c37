// Package company provides HTTP handlers for company profile operations.
package company

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"careernest-backend/internal/database"
	"careernest-backend/internal/model"
	"careernest-backend/internal/utilities"
)

// CompanyController handles company profile related endpoints
type CompanyController struct {
	DB *database.DBinstanceStruct
}

// NewCompanyController creates a new instance of CompanyController
func NewCompanyController(db *database.DBinstanceStruct) *CompanyController {
	return &CompanyController{
		DB: db,
	}
}

type createCompanyRequest struct {
	Name string `json:"name"`
	model.EditableCompanyInfo
}

// CreateCompanyHandler registers a company profile.
// @Summary Create company profile
// @Description Only allow-listed admins have access to this endpoint
// @Description Names are unique case-insensitively; a duplicate is rejected
// @Tags Companies
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param company body createCompanyRequest true "Company profile"
// @Success 201 {object} model.Company "Successfully created company"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller is not on the admin allow-list"
// @Failure 409 {object} utilities.ErrorResponse "A company with this name already exists"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /companies [post]
func (cc *CompanyController) CreateCompanyHandler(c *gin.Context) {
	var req createCompanyRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "name is required"})
		return
	}

	company := model.Company{
		Name:                strings.TrimSpace(req.Name),
		EditableCompanyInfo: req.EditableCompanyInfo,
	}

	err := cc.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.Create(&company).Error
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: "A company with this name already exists",
			})
			return
		}
		respondDBError(c, err, "Failed to create company")
		return
	}

	c.JSON(http.StatusCreated, company)
}

// GetCompanies lists every company profile.
// @Summary List company profiles
// @Tags Companies
// @Produce json
// @Success 200 {object} map[string]interface{} "Companies and total count"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /companies [get]
func (cc *CompanyController) GetCompanies(c *gin.Context) {
	var companies []model.Company
	err := cc.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.Order("name ASC").Find(&companies).Error
	})
	if err != nil {
		respondDBError(c, err, "Failed to fetch companies")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"companies": companies,
		"total":     len(companies),
	})
}

// GetCompanyByID retrieves a company together with its active listings.
// @Summary Retrieve company profile by ID
// @Tags Companies
// @Produce json
// @Param id path string true "ID of company"
// @Success 200 {object} map[string]interface{} "Company profile and its active listings"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /companies/{id} [get]
func (cc *CompanyController) GetCompanyByID(c *gin.Context) {
	id := c.Param("id")

	var company model.Company
	var activeJobs []model.Job

	err := cc.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&company).Error; err != nil {
			return err
		}
		return tx.Where("company_id = ? AND is_active = ?", company.ID, true).
			Order("created_at DESC").Order("id ASC").
			Find(&activeJobs).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
			return
		}
		respondDBError(c, err, "Failed to retrieve company")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"company":           company,
		"active_jobs":       activeJobs,
		"active_jobs_count": len(activeJobs),
	})
}

func respondDBError(c *gin.Context, err error, msg string) {
	if errors.Is(err, database.ErrStoreUnavailable) {
		c.JSON(http.StatusServiceUnavailable, utilities.ErrorResponse{
			Error: fmt.Sprintf("%s: %s", msg, err.Error()),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
		Error: fmt.Sprintf("%s: %s", msg, err.Error()),
	})
}
