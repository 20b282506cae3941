package dto

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var dateKeyRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("date_key", validateDateKey)
	validate.RegisterValidation("not_blank", validateNotBlank)
}

func GetValidator() *validator.Validate {
	return validate
}

// validateDateKey accepts YYYY-MM-DD dates that exist on the calendar.
func validateDateKey(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !dateKeyRegex.MatchString(value) {
		return false
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required":
				message = fieldError.Field() + " is required"
			case "not_blank":
				message = fieldError.Field() + " must not be blank"
			case "min":
				message = fieldError.Field() + " must be at least " + fieldError.Param()
			case "max":
				message = fieldError.Field() + " must be at most " + fieldError.Param()
			case "gte":
				message = fieldError.Field() + " must be greater than or equal to " + fieldError.Param()
			case "lte":
				message = fieldError.Field() + " must be less than or equal to " + fieldError.Param()
			case "oneof":
				message = fieldError.Field() + " must be one of: " + fieldError.Param()
			case "date_key":
				message = fieldError.Field() + " must be a date in YYYY-MM-DD format"
			case "url":
				message = fieldError.Field() + " must be a valid URL"
			default:
				message = fieldError.Field() + " is invalid"
			}

			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errors
}
