package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	"github.com/mikiasgoitom/CampusGuide/internal/handler/http/dto"
	"github.com/mikiasgoitom/CampusGuide/internal/handler/http/middleware"
)

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.MessageResponse{Message: message})
}

// BindAndValidate binds JSON request and validates it
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: entity.ErrValidationFailed.Error(), Details: bindingDetails(err)})
		return err
	}
	return nil
}

// BindQuery binds and validates query parameters.
func BindQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: entity.ErrValidationFailed.Error(), Details: bindingDetails(err)})
		return err
	}
	return nil
}

// bindingDetails turns a binding error into per-field messages.
func bindingDetails(err error) map[string]string {
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = fieldMessage(fe)
		}
		return out
	}
	return map[string]string{"payload": err.Error()}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "url":
		return "must be a valid URL"
	case "lng":
		return "must be a longitude between -180 and 180"
	case "lat":
		return "must be a latitude between -90 and 90"
	case "containsuppercase":
		return "must contain an uppercase letter"
	case "containslowercase":
		return "must contain a lowercase letter"
	case "containsdigit":
		return "must contain a digit"
	case "containssymbol":
		return "must contain a special character"
	}
	return "failed on the '" + fe.Tag() + "' rule"
}

// callerOrAbort returns the authenticated caller or writes 401.
func callerOrAbort(c *gin.Context) (entity.Caller, bool) {
	caller := middleware.CallerFrom(c)
	if caller.UserID == "" {
		ErrorHandler(c, http.StatusUnauthorized, "User not authenticated")
		return caller, false
	}
	return caller, true
}
