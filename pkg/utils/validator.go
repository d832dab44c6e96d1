package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Custom validations
	v.RegisterValidation("supported_image", validateImageType)
	v.RegisterValidation("username", validateUsername)
	v.RegisterValidation("event_date", validateEventDate)

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// Fields flattens validator errors into a field -> message map for the
// validation error response. Returns nil if err is not a validation error.
func Fields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = messageFor(fe)
	}
	return fields
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "username":
		return "may only contain letters, digits, dots, dashes and underscores"
	case "event_date":
		return "must be an ISO-8601 date"
	case "supported_image":
		return "must be a supported image type (jpeg, png, gif, webp)"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func validateImageType(fl validator.FieldLevel) bool {
	supportedTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	return supportedTypes[fl.Field().String()]
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernameRe.MatchString(fl.Field().String())
}

func validateEventDate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

// ParseDate accepts RFC 3339 timestamps and plain calendar dates.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
