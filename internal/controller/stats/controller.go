// Package stats provides the platform statistics endpoint.
package stats

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"careernest-backend/internal/database"
	"careernest-backend/internal/model"
	"careernest-backend/internal/utilities"
)

// StatsController handles the aggregate statistics endpoint
type StatsController struct {
	DB *database.DBinstanceStruct
}

// NewStatsController creates a new instance of StatsController
func NewStatsController(db *database.DBinstanceStruct) *StatsController {
	return &StatsController{
		DB: db,
	}
}

type bucketCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type jobHighlight struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	CompanyName       string `json:"company_name"`
	Views             int64  `json:"views"`
	ApplicationsCount int64  `json:"applications_count"`
}

type statsResponse struct {
	TotalCompanies       int64            `json:"total_companies"`
	TotalJobs            int64            `json:"total_jobs"`
	ActiveJobs           int64            `json:"active_jobs"`
	TotalApplications    int64            `json:"total_applications"`
	TotalBookmarks       int64            `json:"total_bookmarks"`
	TotalStudents        int64            `json:"total_students"`
	JobsByCategory       map[string]int64 `json:"jobs_by_category"`
	JobsByType           map[string]int64 `json:"jobs_by_type"`
	ApplicationsByStatus map[string]int64 `json:"applications_by_status"`
	MostViewed           []jobHighlight   `json:"most_viewed"`
	MostApplied          []jobHighlight   `json:"most_applied"`
}

// GetStats computes platform-wide statistics from the live data on every
// request. Nothing here is cached.
// @Summary Platform statistics
// @Description Totals, per-bucket breakdowns, and the top five most viewed and most applied-to active listings
// @Tags Stats
// @Produce json
// @Success 200 {object} statsResponse
// @Failure 503 {object} utilities.ErrorResponse "Database unavailable"
// @Router /stats [get]
func (sc *StatsController) GetStats(c *gin.Context) {
	var resp statsResponse

	err := sc.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		if err := tx.Model(&model.Company{}).Count(&resp.TotalCompanies).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Job{}).Count(&resp.TotalJobs).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Job{}).Where("is_active = ?", true).Count(&resp.ActiveJobs).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Application{}).Count(&resp.TotalApplications).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Bookmark{}).Count(&resp.TotalBookmarks).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Student{}).Count(&resp.TotalStudents).Error; err != nil {
			return err
		}

		var err error
		resp.JobsByCategory, err = groupCounts(tx.Model(&model.Job{}).Where("is_active = ?", true), "category")
		if err != nil {
			return err
		}
		resp.JobsByType, err = groupCounts(tx.Model(&model.Job{}).Where("is_active = ?", true), "job_type")
		if err != nil {
			return err
		}
		resp.ApplicationsByStatus, err = groupCounts(tx.Model(&model.Application{}), "status")
		if err != nil {
			return err
		}

		resp.MostViewed, err = topJobs(tx, "views")
		if err != nil {
			return err
		}
		resp.MostApplied, err = topJobs(tx, "applications_count")
		return err
	})

	if err != nil {
		if errors.Is(err, database.ErrStoreUnavailable) {
			c.JSON(http.StatusServiceUnavailable, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to compute statistics: %s", err.Error()),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to compute statistics: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func groupCounts(q *gorm.DB, column string) (map[string]int64, error) {
	var rows []bucketCount
	err := q.Select(fmt.Sprintf("%s AS key, COUNT(*) AS count", column)).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}

// topJobs returns the five active listings with the highest value in the
// given counter column, ties broken by id for a stable order.
func topJobs(tx *gorm.DB, column string) ([]jobHighlight, error) {
	var jobs []model.Job
	err := tx.Preload("Company").
		Where("is_active = ?", true).
		Order(fmt.Sprintf("%s DESC", column)).
		Order("id ASC").
		Limit(5).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}

	highlights := make([]jobHighlight, 0, len(jobs))
	for i := range jobs {
		highlights = append(highlights, jobHighlight{
			ID:                jobs[i].ID.String(),
			Title:             jobs[i].Title,
			CompanyName:       jobs[i].Company.Name,
			Views:             jobs[i].Views,
			ApplicationsCount: jobs[i].ApplicationsCount,
		})
	}
	return highlights, nil
}
