package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careernest-backend/internal/config"
	"careernest-backend/internal/utilities"
)

// RequireAdmin protects mutating endpoints from callers that are not on the
// configured allow-list. It must run after RequireAuth and before any
// handler that writes, so a forbidden caller never reaches persistence.
func RequireAdmin(admin config.AdminConfig) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity, err := utilities.ExtractIdentity(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		if !admin.IsAdmin(identity) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "User doesn't have permission to access",
			})
		}
	}
}
