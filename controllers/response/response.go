// Package response renders the JSON envelope every endpoint answers with and
// maps service errors onto HTTP status codes.
package response

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/saqibam92/BlashBerry-nextjs/models"
)

type Envelope struct {
	Success    bool                `json:"success"`
	Data       interface{}         `json:"data,omitempty"`
	Pagination *models.Pagination  `json:"pagination,omitempty"`
	Message    string              `json:"message,omitempty"`
	Errors     []models.FieldError `json:"errors,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func Paginated(c *gin.Context, data interface{}, p models.Pagination) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Pagination: &p})
}

func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: msg})
}

// Fail writes a failure envelope and aborts the handler chain.
func Fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: msg})
}

// Error maps err onto the error taxonomy. Unexpected errors are logged and,
// in release mode, their text is withheld from the client.
func Error(c *gin.Context, err error) {
	var (
		verr *models.ValidationError
		perr *models.ProductError
		ves  validator.ValidationErrors
	)
	switch {
	case errors.As(err, &ves):
		verr = FromValidator(ves)
		c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{Message: verr.Message, Errors: verr.Fields})
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{Message: verr.Message, Errors: verr.Fields})
	case errors.As(err, &perr):
		c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{Message: perr.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, Envelope{Message: messageOr(err, models.ErrNotFound, "Resource not found")})
	case errors.Is(err, models.ErrConflict):
		c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{Message: messageOr(err, models.ErrConflict, "Resource already exists")})
	case errors.Is(err, models.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, Envelope{Message: messageOr(err, models.ErrForbidden, "Access denied")})
	case errors.Is(err, models.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{Message: messageOr(err, models.ErrUnauthorized, "Not authorized")})
	default:
		log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).Msg("request failed")
		msg := "Server Error"
		if gin.Mode() != gin.ReleaseMode {
			msg = err.Error()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{Message: msg})
	}
}

// messageOr prefers the error's own text unless it is just the bare sentinel.
func messageOr(err, sentinel error, fallback string) string {
	if err == sentinel {
		return fallback
	}
	return err.Error()
}

// FromValidator turns binding failures into field-level validation errors.
func FromValidator(ves validator.ValidationErrors) *models.ValidationError {
	fields := make([]models.FieldError, 0, len(ves))
	for _, fe := range ves {
		fields = append(fields, models.FieldError{Field: fieldPath(fe), Message: describe(fe)})
	}
	return models.NewValidationError("Validation failed", fields...)
}

// fieldPath drops the top-level struct name from the namespace, so
// "placeOrderRequest.shippingAddress.city" becomes "shippingAddress.city".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "uuid":
		return "must be a valid id"
	default:
		return "is invalid"
	}
}

// BindError normalises a ShouldBind failure. Malformed JSON becomes a plain
// validation error rather than a server error.
func BindError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		return FromValidator(ves)
	}
	return models.NewValidationError("Invalid request payload", models.FieldError{Field: "body", Message: err.Error()})
}

// IDParam parses the named path parameter as a uuid, answering 400 when it
// is malformed.
func IDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		Error(c, models.NewValidationError("Invalid id", models.FieldError{Field: name, Message: "must be a valid id"}))
		return uuid.Nil, false
	}
	return id, true
}
