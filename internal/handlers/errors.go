package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/alimgiray/inbox/internal/models"
	"github.com/alimgiray/inbox/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

func init() {
	// Report binding errors with JSON field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindingErrors converts a request decode or binding failure into field-level validation errors
func bindingErrors(err error) models.ValidationErrors {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		result := make(models.ValidationErrors, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			result = append(result, &models.ValidationError{
				Field:   fieldPath(fe.Namespace()),
				Message: fieldMessage(fe),
			})
		}
		return result
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return models.ValidationErrors{{Field: typeErr.Field, Message: "invalid type, expected " + typeErr.Type.String()}}
	}

	return models.ValidationErrors{{Field: "body", Message: err.Error()}}
}

// fieldPath drops the struct name from a validator namespace
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// respondError maps service errors onto HTTP responses
func respondError(c *gin.Context, err error) {
	var verrs models.ValidationErrors
	var verr *models.ValidationError

	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": verrs})
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": models.ValidationErrors{verr}})
	case errors.Is(err, models.ErrEmailNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Email not found"})
	default:
		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).WithError(err).Error("Request failed")

		var storageErr *models.StorageError
		if errors.As(err, &storageErr) {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Database error: " + err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error: " + err.Error()})
	}
}
