// Package bookmark provides HTTP handlers for saved job listings.
package bookmark

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

// BookmarkController handles saved-job endpoints
type BookmarkController struct {
	DB    *database.DBinstanceStruct
	Admin config.AdminConfig
}

// NewBookmarkController creates a new instance of BookmarkController
func NewBookmarkController(db *database.DBinstanceStruct, admin config.AdminConfig) *BookmarkController {
	return &BookmarkController{
		DB:    db,
		Admin: admin,
	}
}

type createBookmarkRequest struct {
	JobID uuid.UUID `json:"job_id"`
}

// CreateHandler saves a job for the signed-in student.
// @Summary Bookmark a job
// @Description A student can bookmark a given job at most once
// @Tags Bookmarks
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param bookmark body createBookmarkRequest true "Job to save"
// @Success 201 {object} model.Bookmark
// @Failure 400 {object} utilities.ErrorResponse "Invalid body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 409 {object} utilities.ErrorResponse "Job already bookmarked"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /bookmarks [post]
func (bc *BookmarkController) CreateHandler(c *gin.Context) {
	identity, err := utilities.ExtractIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req createBookmarkRequest
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

	student, _, err := bc.DB.FindOrCreateStudent(c.Request.Context(), identity, model.EditableStudentInfo{})
	if err != nil {
		respondDBError(c, err, "Failed to load student profile")
		return
	}

	var bookmark model.Bookmark
	err = bc.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		var job model.Job
		if err := tx.Where("id = ?", req.JobID).First(&job).Error; err != nil {
			return err
		}

		bookmark = model.Bookmark{
			StudentEmail: student.Email,
			JobID:        job.ID,
		}
		if err := tx.Create(&bookmark).Error; err != nil {
			return err
		}
		return tx.Preload("Job").Preload("Job.Company").
			Where("id = ?", bookmark.ID).First(&bookmark).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: "You have already bookmarked this job",
			})
			return
		}
		respondDBError(c, err, "Failed to create bookmark")
		return
	}

	c.JSON(http.StatusCreated, bookmark)
}

// DeleteHandler removes one of the signed-in student's bookmarks.
// @Summary Remove a bookmark
// @Tags Bookmarks
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "ID of bookmark"
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Bookmark belongs to another student"
// @Failure 404 {object} utilities.ErrorResponse "Bookmark not found"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /bookmarks/{id} [delete]
func (bc *BookmarkController) DeleteHandler(c *gin.Context) {
	identity, err := utilities.ExtractIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id := c.Param("id")

	var bookmark model.Bookmark
	err = bc.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(&bookmark).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Bookmark not found"})
			return
		}
		respondDBError(c, err, "Failed to retrieve bookmark")
		return
	}

	if !strings.EqualFold(bookmark.StudentEmail, identity) && !bc.Admin.IsAdmin(identity) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to remove this bookmark",
		})
		return
	}

	err = bc.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.Delete(&bookmark).Error
	})
	if err != nil {
		respondDBError(c, err, "Failed to remove bookmark")
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Bookmark removed"})
}

// GetStudentBookmarks lists a student's saved jobs newest-first with the
// listing and company attached.
// @Summary List bookmarks for a student
// @Description Students can only list their own; admins can list anyone's
// @Tags Bookmarks
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param email path string true "Student email"
// @Success 200 {object} map[string]interface{} "Bookmarks and total count"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner and not an admin"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /students/{email}/bookmarks [get]
func (bc *BookmarkController) GetStudentBookmarks(c *gin.Context) {
	identity, err := utilities.ExtractIdentity(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	email := c.Param("email")

	if !strings.EqualFold(email, identity) && !bc.Admin.IsAdmin(identity) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to view these bookmarks",
		})
		return
	}

	var bookmarks []model.Bookmark
	err = bc.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.Preload("Job").Preload("Job.Company").
			Where("student_email = ?", strings.ToLower(email)).
			Order("saved_at DESC").Order("id ASC").
			Find(&bookmarks).Error
	})
	if err != nil {
		respondDBError(c, err, "Failed to fetch bookmarks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarks": bookmarks, "total": len(bookmarks)})
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
