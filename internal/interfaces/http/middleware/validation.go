package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/Charan2012-gif/Shopping-App/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RequestIDKey is the gin context key holding the request ID
const RequestIDKey = "request_id"

// RequestIDHeader carries the request ID on requests and responses
const RequestIDHeader = "X-Request-ID"

// indianMobile matches a ten digit mobile number without country code
var indianMobile = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// SetupValidator names fields after their json (or form) tag in errors and
// registers the shop's own tags:
//
//	mobile  ten digit Indian mobile number
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			name, _, _ = strings.Cut(fld.Tag.Get("form"), ",")
		}
		return name
	})
	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return indianMobile.MatchString(fl.Field().String())
	})
}

// FormatValidationErrors converts binding failures into the error envelope.
// Errors that are not field validations (malformed JSON, bad query values)
// become a plain BAD_REQUEST.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return dto.NewErrorResponse(dto.ErrCodeBadRequest, "Malformed request: "+err.Error(), requestID)
	}

	details := make([]dto.ValidationDetail, len(fieldErrs))
	for i, fe := range fieldErrs {
		details[i] = dto.ValidationDetail{Field: fieldPath(fe), Message: getValidationMessage(fe)}
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

// GetRequestID returns the request ID assigned by RequestID, or the inbound header
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDHeader)
}

// fieldPath drops the top-level struct name so nested fields read as
// items[0].quantity
func fieldPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

var fixedMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"uuid":     "Invalid UUID format",
	"url":      "Invalid URL format",
	"numeric":  "Must be numeric",
	"mobile":   "Must be a 10 digit mobile number",
}

var boundMessages = map[string]string{
	"len":   "Must be exactly %s characters",
	"oneof": "Must be one of: %s",
	"gte":   "Must be greater than or equal to %s",
	"lte":   "Must be less than or equal to %s",
	"gt":    "Must be greater than %s",
	"lt":    "Must be less than %s",
}

func getValidationMessage(fe validator.FieldError) string {
	tag := fe.Tag()
	if msg, ok := fixedMessages[tag]; ok {
		return msg
	}
	if format, ok := boundMessages[tag]; ok {
		return fmt.Sprintf(format, fe.Param())
	}
	if tag != "min" && tag != "max" {
		return "Invalid value"
	}

	bound := "at least"
	if tag == "max" {
		bound = "at most"
	}
	switch fe.Type().Kind() {
	case reflect.String:
		return fmt.Sprintf("Must be %s %s characters", bound, fe.Param())
	case reflect.Slice, reflect.Map, reflect.Array:
		return fmt.Sprintf("Must contain %s %s items", bound, fe.Param())
	default:
		return fmt.Sprintf("Must be %s %s", bound, fe.Param())
	}
}
