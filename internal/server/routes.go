// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	// Init swagger doc
	_ "careernest-backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"careernest-backend/internal/auth"
	"careernest-backend/internal/controller/application"
	"careernest-backend/internal/controller/bookmark"
	"careernest-backend/internal/controller/company"
	"careernest-backend/internal/controller/file"
	"careernest-backend/internal/controller/job"
	"careernest-backend/internal/controller/stats"
	"careernest-backend/internal/middleware"
	"careernest-backend/internal/model"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	googleOauth := &oauth2.Config{
		ClientID:     s.Cfg.Google.ClientID,
		ClientSecret: s.Cfg.Google.ClientSecret,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint:    google.Endpoint,
		RedirectURL: s.Cfg.Google.RedirectURL,
	}

	gAuth := auth.NewGoogleLoginHandler(s.DB, &s.Cfg.Google, googleOauth)
	jobCtrl := job.NewJobController(s.DB)
	companyCtrl := company.NewCompanyController(s.DB)
	applicationCtrl := application.NewApplicationController(s.DB, s.Cfg.Admin)
	bookmarkCtrl := bookmark.NewBookmarkController(s.DB, s.Cfg.Admin)
	statsCtrl := stats.NewStatsController(s.DB)
	fileCtrl := file.NewFileController(s.DB, s.Storage)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.Cfg.AllowOrigin,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RateLimiterMiddleware(s.Cfg.RateLimitPerSec))

	r.GET("/", s.RootHandler)
	r.GET("/health", s.healthHandler)

	requireAuth := middleware.RequireAuth(s.Cfg.Google.JWTSecret)
	requireAdmin := middleware.RequireAdmin(s.Cfg.Admin)

	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("google", gAuth.LoginHandler)
		}

		jobRoute := v1.Group("/jobs")
		{
			jobRoute.GET("", jobCtrl.GetJobs)
			jobRoute.GET(":id", jobCtrl.GetJobByID)
			jobRoute.POST("", requireAuth, requireAdmin, jobCtrl.CreateJobHandler)
			jobRoute.PATCH(":id", requireAuth, requireAdmin, jobCtrl.EditJobHandler)
			jobRoute.DELETE(":id", requireAuth, requireAdmin, jobCtrl.DeleteJobHandler)
			jobRoute.GET(":id/applications", requireAuth, requireAdmin, applicationCtrl.GetJobApplications)
		}

		companyRoute := v1.Group("/companies")
		{
			companyRoute.GET("", companyCtrl.GetCompanies)
			companyRoute.GET(":id", companyCtrl.GetCompanyByID)
			companyRoute.POST("", requireAuth, requireAdmin, companyCtrl.CreateCompanyHandler)
			companyRoute.POST(":id/logo", requireAuth, requireAdmin, middleware.SizeLimit(10<<20), fileCtrl.UploadLogo)
		}

		applicationRoute := v1.Group("/applications")
		{
			applicationRoute.Use(requireAuth)
			applicationRoute.POST("", applicationCtrl.SubmitHandler)
			applicationRoute.GET(":id", applicationCtrl.GetApplication)
			applicationRoute.PATCH(":id/status", requireAdmin, applicationCtrl.UpdateStatusHandler)
		}

		bookmarkRoute := v1.Group("/bookmarks")
		{
			bookmarkRoute.Use(requireAuth)
			bookmarkRoute.POST("", bookmarkCtrl.CreateHandler)
			bookmarkRoute.DELETE(":id", bookmarkCtrl.DeleteHandler)
		}

		studentRoute := v1.Group("/students")
		{
			studentRoute.Use(requireAuth)
			studentRoute.GET(":email/applications", applicationCtrl.GetStudentApplications)
			studentRoute.GET(":email/bookmarks", bookmarkCtrl.GetStudentBookmarks)
		}

		v1.GET("/stats", statsCtrl.GetStats)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RootHandler returns a short welcome payload with live listing counts.
func (s *MyServer) RootHandler(c *gin.Context) {
	var activeJobs, companies int64
	err := s.DB.Do(c.Request.Context(), func(tx *gorm.DB) error {
		if err := tx.Model(&model.Job{}).Where("is_active = ?", true).Count(&activeJobs).Error; err != nil {
			return err
		}
		return tx.Model(&model.Company{}).Count(&companies).Error
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "CareerNest API", "status": "degraded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "CareerNest API",
		"active_jobs": activeJobs,
		"companies":   companies,
	})
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
