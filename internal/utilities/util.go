// Package utilities contain utility code that use across the package
package utilities

import (
	"errors"
	"reflect"

	"github.com/gin-gonic/gin"
)

// ErrorResponse type for swagger docs
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse type for swagger docs
type MessageResponse struct {
	Message string `json:"message"`
}

// IdentityKey is the gin context key carrying the verified caller email.
const IdentityKey = "identity"

// ExtractIdentity extracts the verified caller email from gin context.
// It returns an error when the request was not authenticated.
func ExtractIdentity(c *gin.Context) (string, error) {
	v, _ := c.Get(IdentityKey)
	if v == nil {
		return "", errors.New("caller identity not provided")
	}

	email, ok := v.(string)
	if !ok || email == "" {
		return "", errors.New("caller identity is malformed")
	}
	return email, nil
}

// Contains checks if a string is present in a slice of strings.
func Contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

// MergeNonEmpty help merge struct with non-empty field
func MergeNonEmpty(dst, src interface{}) {
	dv := reflect.ValueOf(dst).Elem()
	sv := reflect.ValueOf(src).Elem()

	for i := 0; i < sv.NumField(); i++ {
		sf := sv.Field(i)
		if !sf.IsZero() {
			df := dv.FieldByName(sv.Type().Field(i).Name)
			if df.IsValid() && df.CanSet() {
				df.Set(sf)
			}
		}
	}
}
