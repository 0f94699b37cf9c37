// Package job provides HTTP handlers for job listing operations.
package job

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"careernest-backend/internal/database"
	"careernest-backend/internal/model"
	"careernest-backend/internal/utilities"
)

// JobController handles job listing related endpoints
type JobController struct {
	DB *database.DBinstanceStruct
}

// NewJobController creates a new instance of JobController
func NewJobController(db *database.DBinstanceStruct) *JobController {
	return &JobController{
		DB: db,
	}
}

// createJobRequest is the body accepted by CreateJobHandler. The posting
// admin names the company either by id or by name; an unknown name
// find-or-creates the profile.
type createJobRequest struct {
	model.EditableJobInfo
	CompanyID   *uuid.UUID `json:"company_id"`
	CompanyName string     `json:"company_name"`
}

// pagination is the envelope returned alongside listing results.
type pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
}

func validateJobFields(info *model.EditableJobInfo, requireCore bool) error {
	if requireCore {
		if strings.TrimSpace(info.Title) == "" {
			return errors.New("title is required")
		}
		if strings.TrimSpace(info.Description) == "" {
			return errors.New("description is required")
		}
	}
	if info.Category != "" && !utilities.Contains(model.JobCategories, info.Category) {
		return fmt.Errorf("unknown category %q", info.Category)
	}
	if info.JobType != "" && !utilities.Contains(model.JobTypes, info.JobType) {
		return fmt.Errorf("unknown job_type %q", info.JobType)
	}
	if info.ExperienceLevel != "" && !utilities.Contains(model.ExperienceLevels, info.ExperienceLevel) {
		return fmt.Errorf("unknown experience_level %q", info.ExperienceLevel)
	}
	if info.SalaryMin != nil && info.SalaryMax != nil && *info.SalaryMin > *info.SalaryMax {
		return errors.New("salary_min must not exceed salary_max")
	}
	return nil
}

// GetJobs fetches active job listings that match the query filters.
// All filters combine with AND; ordering always ends with the listing id
// so pages are stable for a fixed filter set.
// @Summary List active job listings
// @Description Inactive listings are never returned, regardless of filters
// @Tags Jobs
// @Produce json
// @Param search query string false "Case-insensitive substring match against title and description"
// @Param category query string false "Job category, exact value from the category enum"
// @Param job_type query string false "Job type, exact value from the type enum"
// @Param experience_level query string false "Experience level with substring matching, case insensitive"
// @Param location query string false "Location with substring matching, case insensitive"
// @Param is_remote query boolean false "Remote listings only when true, on-site only when false"
// @Param salary_min query integer false "Keep listings whose salary_max is at least this"
// @Param salary_max query integer false "Keep listings whose salary_min is at most this"
// @Param sort query string false "newest (default), oldest, salary_high, salary_low, or most_applied"
// @Param page query integer false "Page number, starting at 1"
// @Param page_size query integer false "Page size, 1-50, default 10"
// @Success 200 {object} map[string]interface{} "Matching listings with a pagination envelope"
// @Failure 400 {object} utilities.ErrorResponse "Unknown enum value or malformed number"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /jobs [get]
func (jc *JobController) GetJobs(c *gin.Context) {
	rawSearch := strings.TrimSpace(c.Query("search"))
	rawCategory := strings.TrimSpace(c.Query("category"))
	rawJobType := strings.TrimSpace(c.Query("job_type"))
	rawExperience := strings.TrimSpace(c.Query("experience_level"))
	rawLocation := strings.TrimSpace(c.Query("location"))
	rawIsRemote := c.Query("is_remote")
	rawSalaryMin := c.Query("salary_min")
	rawSalaryMax := c.Query("salary_max")
	sort := c.DefaultQuery("sort", "newest")

	if rawCategory != "" && !utilities.Contains(model.JobCategories, rawCategory) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unknown category %q", rawCategory),
		})
		return
	}
	if rawJobType != "" && !utilities.Contains(model.JobTypes, rawJobType) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unknown job_type %q", rawJobType),
		})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 50 {
		pageSize = 50
	}

	var jobs []model.Job
	var total int64

	err = jc.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		// Listings are always restricted to active jobs.
		q := tx.Model(&model.Job{}).Where("is_active = ?", true)

		if rawSearch != "" {
			pattern := "%" + rawSearch + "%"
			q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
		}
		if rawCategory != "" {
			q = q.Where("category = ?", rawCategory)
		}
		if rawJobType != "" {
			q = q.Where("job_type = ?", rawJobType)
		}
		if rawExperience != "" {
			q = q.Where("experience_level ILIKE ?", "%"+rawExperience+"%")
		}
		if rawLocation != "" {
			q = q.Where("location ILIKE ?", "%"+rawLocation+"%")
		}
		if rawIsRemote != "" {
			isRemote, err := strconv.ParseBool(rawIsRemote)
			if err != nil {
				return errBadFilter{fmt.Sprintf("is_remote must be a boolean, got %q", rawIsRemote)}
			}
			q = q.Where("is_remote = ?", isRemote)
		}
		if rawSalaryMin != "" {
			min, err := strconv.ParseInt(rawSalaryMin, 10, 64)
			if err != nil {
				return errBadFilter{fmt.Sprintf("salary_min must be a number, got %q", rawSalaryMin)}
			}
			q = q.Where("salary_max >= ?", min)
		}
		if rawSalaryMax != "" {
			max, err := strconv.ParseInt(rawSalaryMax, 10, 64)
			if err != nil {
				return errBadFilter{fmt.Sprintf("salary_max must be a number, got %q", rawSalaryMax)}
			}
			q = q.Where("salary_min <= ?", max)
		}

		if err := q.Count(&total).Error; err != nil {
			return err
		}

		switch sort {
		case "oldest":
			q = q.Order("created_at ASC")
		case "salary_high":
			q = q.Order("salary_max DESC NULLS LAST")
		case "salary_low":
			q = q.Order("salary_min ASC NULLS LAST")
		case "most_applied":
			q = q.Order("applications_count DESC")
		case "newest":
			q = q.Order("created_at DESC")
		default:
			return errBadFilter{fmt.Sprintf("unknown sort %q", sort)}
		}

		// Deterministic tie-break keeps pagination stable.
		return q.Order("id ASC").
			Preload("Company").
			Offset((page - 1) * pageSize).
			Limit(pageSize).
			Find(&jobs).Error
	})

	if err != nil {
		var bad errBadFilter
		if errors.As(err, &bad) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: bad.msg})
			return
		}
		respondDBError(c, err, "Failed to fetch job listings")
		return
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs": jobs,
		"pagination": pagination{
			Total:      total,
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
		},
	})
}

// errBadFilter marks a listing filter the caller got wrong, so it maps to
// 400 instead of 500.
type errBadFilter struct{ msg string }

func (e errBadFilter) Error() string { return e.msg }

// GetJobByID fetches one listing and bumps its view counter.
// @Summary Get job listing by ID
// @Tags Jobs
// @Produce json
// @Param id path string true "ID of desired job listing"
// @Success 200 {object} model.Job "The listing, with its company profile"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJobByID(c *gin.Context) {
	id := c.Param("id")

	var job model.Job
	err := jc.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		if err := tx.Preload("Company").Where("id = ?", id).First(&job).Error; err != nil {
			return err
		}
		if err := tx.Exec(`UPDATE jobs SET views = views + 1 WHERE id = ?`, job.ID).Error; err != nil {
			return err
		}
		job.Views++
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		respondDBError(c, err, "Failed to retrieve job listing")
		return
	}

	c.JSON(http.StatusOK, job)
}

// CreateJobHandler handles the creation of a new job listing by an admin.
// @Summary Create job listing based on given json structure
// @Description Only allow-listed admins have access to this endpoint
// @Description The company is referenced by company_id or named by company_name; an unknown name creates the profile
// @Tags Jobs
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param job body createJobRequest true "Input job information"
// @Success 201 {object} model.Job "Successfully created job listing"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job struct or enum value"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller is not on the admin allow-list"
// @Failure 404 {object} utilities.ErrorResponse "company_id does not exist"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /jobs [post]
func (jc *JobController) CreateJobHandler(c *gin.Context) {
	var req createJobRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if err := validateJobFields(&req.EditableJobInfo, true); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var company model.Company
	switch {
	case req.CompanyID != nil:
		err := jc.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
			return tx.Where("id = ?", *req.CompanyID).First(&company).Error
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: "Company not found. Create the company first.",
			})
			return
		}
		if err != nil {
			respondDBError(c, err, "Failed to retrieve company")
			return
		}
	case strings.TrimSpace(req.CompanyName) != "":
		var err error
		company, _, err = jc.DB.FindOrCreateCompany(c.Request.Context(), req.CompanyName)
		if err != nil {
			respondDBError(c, err, "Failed to resolve company")
			return
		}
	default:
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Either company_id or company_name is required",
		})
		return
	}

	job := model.Job{
		CompanyID:       company.ID,
		EditableJobInfo: req.EditableJobInfo,
	}

	err := jc.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		if err := tx.Create(&job).Error; err != nil {
			return err
		}
		return tx.Exec(
			`UPDATE companies SET total_jobs_posted = total_jobs_posted + 1 WHERE id = ?`,
			company.ID,
		).Error
	})
	if err != nil {
		respondDBError(c, err, "Failed to create job listing")
		return
	}

	job.Company = company
	c.JSON(http.StatusCreated, job)
}

// EditJobHandler allows an admin to update a job listing, including
// toggling its active flag.
// @Summary Edit job listing based on given json structure
// @Description Only allow-listed admins have access to this endpoint
// @Tags Jobs
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of desired job listing"
// @Param job body model.EditableJobInfo true "Fields to update"
// @Success 200 {object} model.Job "Successfully updated job listing"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body or enum value"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller is not on the admin allow-list"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /jobs/{id} [patch]
func (jc *JobController) EditJobHandler(c *gin.Context) {
	id := c.Param("id")

	var updated model.EditableJobInfo
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&updated); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	if err := validateJobFields(&updated, false); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var job model.Job
	err := jc.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&job).Error; err != nil {
			return err
		}
		if err := tx.Model(&job).Updates(updated).Error; err != nil {
			return err
		}
		// Reload to return the latest data.
		return tx.Preload("Company").Where("id = ?", job.ID).First(&job).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		respondDBError(c, err, "Failed to update job listing")
		return
	}

	c.JSON(http.StatusOK, job)
}

// DeleteJobHandler allows an admin to delete a job listing.
// @Summary Delete given job listing ID
// @Description Only allow-listed admins have access to this endpoint
// @Tags Jobs
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of desired job listing"
// @Success 200 {object} utilities.MessageResponse "Successfully deleted job listing"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller is not on the admin allow-list"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /jobs/{id} [delete]
func (jc *JobController) DeleteJobHandler(c *gin.Context) {
	id := c.Param("id")

	var job model.Job
	err := jc.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&job).Error; err != nil {
			return err
		}
		return tx.Delete(&job).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		respondDBError(c, err, "Failed to delete job listing")
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job listing deleted"})
}

// respondDBError maps persistence failures to 503 when the store was
// unreachable and 500 otherwise.
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
