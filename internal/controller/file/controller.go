// Package file provides HTTP handlers for file upload operations.
package file

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"careernest-backend/internal/database"
	"careernest-backend/internal/model"
	"careernest-backend/internal/utilities"
)

const logoObjectPrefix = "logos"

// FileController handles file related endpoints
type FileController struct {
	DB      *database.DBinstanceStruct
	Storage StorageClient
}

// NewFileController creates a new instance of FileController
func NewFileController(db *database.DBinstanceStruct, storage StorageClient) *FileController {
	return &FileController{
		DB:      db,
		Storage: storage,
	}
}

// UploadLogo stores a company logo in object storage and records its URL
// on the company profile.
// @Summary Upload logo file for a company
// @Description Only allow-listed admins have access to this endpoint
// @Description Only files smaller than 10 MB with .jpg, .jpeg, or .png extension are permitted
// @Tags Companies
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of company"
// @Param logo formData file true "Logo image"
// @Success 200 {object} model.Company "Company with updated logo URL"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Caller is not on the admin allow-list"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 10 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /companies/{id}/logo [post]
func (fc *FileController) UploadLogo(c *gin.Context) {
	id := c.Param("id")

	if fc.Storage == nil {
		c.JSON(http.StatusServiceUnavailable, utilities.ErrorResponse{
			Error: "File storage is not configured",
		})
		return
	}

	var company model.Company
	err := fc.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).First(&company).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve company: %s", err.Error()),
		})
		return
	}

	rawFile, err := c.FormFile("logo")
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		})
		return
	}

	allowedExtensions := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
	}
	extension := strings.ToLower(filepath.Ext(rawFile.Filename))
	if !allowedExtensions[extension] {
		c.JSON(http.StatusUnsupportedMediaType, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unsupported file extension: %s", extension),
		})
		return
	}

	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot open file"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("failed to close uploaded file: %v", err)
		}
	}()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot read file"})
		return
	}

	objectName := fmt.Sprintf("%s/%s%s", logoObjectPrefix, uuid.NewString(), extension)
	if err := fc.Storage.UploadFile(objectName, bytes.NewReader(fileBytes)); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store logo: %s", err.Error()),
		})
		return
	}

	logoURL := fc.Storage.ObjectURL(objectName)
	err = fc.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		return tx.Model(&company).Update("logo_url", logoURL).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update company: %s", err.Error()),
		})
		return
	}

	company.LogoURL = logoURL
	c.JSON(http.StatusOK, company)
}
