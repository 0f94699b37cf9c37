// Package application provides HTTP handlers for job application operations.
package application

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"careernest-backend/internal/config"
	"careernest-backend/internal/database"
	"careernest-backend/internal/model"
	"careernest-backend/internal/utilities"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB    *database.DBinstanceStruct
	Admin config.AdminConfig
}

// NewApplicationController creates a new instance of ApplicationController
func NewApplicationController(db *database.DBinstanceStruct, admin config.AdminConfig) *ApplicationController {
	return &ApplicationController{
		DB:    db,
		Admin: admin,
	}
}

// submitRequest is the body accepted by SubmitHandler. The applicant email
// is never taken from the body; it comes from the verified identity.
type submitRequest struct {
	JobID       uuid.UUID `json:"job_id"`
	CoverLetter string    `json:"cover_letter"`
	ResumeURL   string    `json:"resume_url"`
	model.EditableStudentInfo
}

// SubmitHandler handles the creation of a new job application by a student.
// @Summary Apply for a job
// @Description The applicant identity is the signed-in student's verified email
// @Description A student can apply to a given job at most once
// @Tags Applications
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param application body submitRequest true "Application information"
// @Success 201 {object} model.ApplicationResponse "Successfully applied"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body, missing resume, or inactive job"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 409 {object} utilities.ErrorResponse "Already applied to this job"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /applications [post]
func (ac *ApplicationController) SubmitHandler(c *gin.Context) {
	identity, err := utilities.ExtractIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req submitRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if req.JobID == uuid.Nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "job_id is required"})
		return
	}
	if strings.TrimSpace(req.ResumeURL) == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "resume_url is required"})
		return
	}

	// Validate the listing before anything is written.
	var job model.Job
	err = ac.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.Preload("Company").Where("id = ?", req.JobID).First(&job).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		respondDBError(c, err, "Failed to retrieve job listing")
		return
	}
	if !job.Active() {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "This job listing is no longer active",
		})
		return
	}

	student, created, err := ac.DB.FindOrCreateStudent(c.Request.Context(), identity, req.EditableStudentInfo)
	if err != nil {
		respondDBError(c, err, "Failed to load student profile")
		return
	}

	// Returning applicants can refresh profile details alongside the
	// application; fields left empty keep their stored values.
	if !created {
		utilities.MergeNonEmpty(&student.EditableStudentInfo, &req.EditableStudentInfo)
		err = ac.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
			return tx.Save(&student).Error
		})
		if err != nil {
			respondDBError(c, err, "Failed to update student profile")
			return
		}
	}

	app := model.Application{
		JobID:        job.ID,
		StudentEmail: student.Email,
		Status:       model.ApplicationStatusPending,
		CoverLetter:  req.CoverLetter,
		ResumeURL:    req.ResumeURL,
	}

	err = ac.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		if err := tx.Create(&app).Error; err != nil {
			return err
		}
		return tx.Exec(
			`UPDATE jobs SET applications_count = applications_count + 1 WHERE id = ?`,
			job.ID,
		).Error
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// The composite unique index also catches concurrent double-submits.
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: "You have already applied for this job",
			})
			return
		}
		respondDBError(c, err, "Failed to create application")
		return
	}

	app.Job = job
	c.JSON(http.StatusCreated, app.ToApplicationResponse())
}

// GetApplication retrieves one application. Students can only read their
// own; admins can read any.
// @Summary Get application by ID
// @Tags Applications
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of application"
// @Success 200 {object} model.ApplicationResponse
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the applicant and not an admin"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /applications/{id} [get]
func (ac *ApplicationController) GetApplication(c *gin.Context) {
	identity, err := utilities.ExtractIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id := c.Param("id")

	var app model.Application
	err = ac.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.Preload("Job").Preload("Job.Company").Where("id = ?", id).First(&app).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		respondDBError(c, err, "Failed to retrieve application")
		return
	}

	if !strings.EqualFold(app.StudentEmail, identity) && !ac.Admin.IsAdmin(identity) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to view this application",
		})
		return
	}

	c.JSON(http.StatusOK, app.ToApplicationResponse())
}

type statusUpdateRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// UpdateStatusHandler moves an application to a new review stage.
// Any transition among the known statuses is permitted.
// @Summary Update application status
// @Description Only allow-listed admins have access to this endpoint
// @Tags Applications
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of application"
// @Param status body statusUpdateRequest true "New status and optional notes"
// @Success 200 {object} model.ApplicationResponse "Application after the transition"
// @Failure 400 {object} utilities.ErrorResponse "Unknown status value"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller is not on the admin allow-list"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /applications/{id}/status [patch]
func (ac *ApplicationController) UpdateStatusHandler(c *gin.Context) {
	id := c.Param("id")

	var req statusUpdateRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if !utilities.Contains(model.ApplicationStatuses, req.Status) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unknown status %q", req.Status),
		})
		return
	}

	var app model.Application
	err := ac.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&app).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{"status": req.Status}
		if req.Notes != "" {
			updates["notes"] = req.Notes
		}
		if err := tx.Model(&app).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Preload("Job").Preload("Job.Company").Where("id = ?", app.ID).First(&app).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		respondDBError(c, err, "Failed to update application status")
		return
	}

	c.JSON(http.StatusOK, app.ToApplicationResponse())
}

// GetJobApplications lists every application for one listing, optionally
// filtered by status.
// @Summary List applications for a job
// @Description Only allow-listed admins have access to this endpoint
// @Tags Applications
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of job listing"
// @Param status query string false "Only applications with this status"
// @Success 200 {object} map[string]interface{} "Applications and total count"
// @Failure 400 {object} utilities.ErrorResponse "Unknown status value"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller is not on the admin allow-list"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /jobs/{id}/applications [get]
func (ac *ApplicationController) GetJobApplications(c *gin.Context) {
	id := c.Param("id")
	status := c.Query("status")

	if status != "" && !utilities.Contains(model.ApplicationStatuses, status) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unknown status %q", status),
		})
		return
	}

	var apps []model.Application
	err := ac.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		var job model.Job
		if err := tx.Where("id = ?", id).First(&job).Error; err != nil {
			return err
		}

		q := tx.Preload("Job").Preload("Job.Company").Where("job_id = ?", job.ID)
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q.Order("applied_at DESC").Order("id ASC").Find(&apps).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		respondDBError(c, err, "Failed to fetch applications")
		return
	}

	resp := make([]model.ApplicationResponse, 0, len(apps))
	for i := range apps {
		resp = append(resp, apps[i].ToApplicationResponse())
	}
	c.JSON(http.StatusOK, gin.H{"applications": resp, "total": len(resp)})
}

// GetStudentApplications lists a student's applications newest-first, each
// annotated with the current job title and company for display.
// @Summary List applications for a student
// @Description Students can only list their own; admins can list anyone's
// @Tags Applications
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param email path string true "Student email"
// @Success 200 {object} map[string]interface{} "Applications and total count"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner and not an admin"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /students/{email}/applications [get]
func (ac *ApplicationController) GetStudentApplications(c *gin.Context) {
	identity, err := utilities.ExtractIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	email := c.Param("email")

	if !strings.EqualFold(email, identity) && !ac.Admin.IsAdmin(identity) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to view these applications",
		})
		return
	}

	var apps []model.Application
	err = ac.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.Preload("Job").Preload("Job.Company").
			Where("student_email = ?", strings.ToLower(email)).
			Order("applied_at DESC").Order("id ASC").
			Find(&apps).Error
	})
	if err != nil {
		respondDBError(c, err, "Failed to fetch applications")
		return
	}

	resp := make([]model.ApplicationResponse, 0, len(apps))
	for i := range apps {
		resp = append(resp, apps[i].ToApplicationResponse())
	}
	c.JSON(http.StatusOK, gin.H{"applications": resp, "total": len(resp)})
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
