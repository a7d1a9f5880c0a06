package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"employee-records/models"

	"github.com/go-playground/validator/v10"
)

var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	emailPattern = regexp.MustCompile(`^[A-Z0-9a-z._+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,64}$`)
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// New creates a new validator instance
func New() *Validator {
	v := validator.New()

	// Register custom tag name function to use JSON tags
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validators
	v.RegisterValidation("dateformat", validateDateFormat)
	v.RegisterValidation("basicemail", validateBasicEmail)
	v.RegisterValidation("gender", validateGender)
	v.RegisterValidation("department", validateDepartment)

	return &Validator{validate: v}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	// Convert validation errors to our custom format
	var validationErrs ValidationErrors
	for _, err := range err.(validator.ValidationErrors) {
		validationErrs = append(validationErrs, ValidationError{
			Field:   err.Field(),
			Message: msgForTag(err),
			Tag:     err.Tag(),
			Value:   fmt.Sprintf("%v", err.Value()),
		})
	}

	return validationErrs
}

// msgForTag returns a human-readable error message for a validation tag
func msgForTag(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "basicemail":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "dateformat":
		return fmt.Sprintf("%s must be a valid date in YYYY-MM-DD format", field)
	case "gender":
		return fmt.Sprintf("%s must be one of: %s", field, joinLabels(models.Genders))
	case "department":
		return fmt.Sprintf("%s must be one of: %s", field, joinLabels(models.Departments))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func joinLabels[T ~string](labels []T) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}

// Custom validators

// validateDateFormat validates YYYY-MM-DD format and that the date exists
func validateDateFormat(fl validator.FieldLevel) bool {
	date := fl.Field().String()
	if !datePattern.MatchString(date) {
		return false
	}
	_, err := time.Parse(time.DateOnly, date)
	return err == nil
}

// validateBasicEmail checks the local@domain.tld shape only
func validateBasicEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

func validateGender(fl validator.FieldLevel) bool {
	return models.Gender(fl.Field().String()).Valid()
}

func validateDepartment(fl validator.FieldLevel) bool {
	return models.Department(fl.Field().String()).Valid()
}
