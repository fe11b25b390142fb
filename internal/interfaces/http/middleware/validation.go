package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// SetupValidator installs the storefront's custom tags and JSON field naming
// on gin's binding validator.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		shared.RegisterValidations(v)
	}
}

// FormatValidationErrors formats binding or domain validation errors into a
// standard response
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range shared.FromValidatorErrors(verrs).Fields {
			details = append(details, toDetail(fe))
		}
	} else if ve, ok := shared.AsValidationError(err); ok {
		for _, fe := range ve.Fields {
			details = append(details, toDetail(fe))
		}
	}

	return dto.NewValidationErrorResponse(
		"Request validation failed",
		requestID,
		details,
	)
}

// HandleValidationError returns a validation error response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

func toDetail(fe shared.FieldError) dto.ValidationDetail {
	return dto.ValidationDetail{Field: fe.Field, Tag: fe.Tag, Message: fe.Message}
}
