package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"clubhouse/internal/models"
)

// ValidationErrors wraps the validator's ValidationErrors
type ValidationErrors []playgroundvalidator.FieldError

// CustomValidator wraps go-playground/validator
type CustomValidator struct {
	validator *playgroundvalidator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() echo.Validator {
	v := playgroundvalidator.New()

	// Report field names as their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("club_role", validateClubRole); err != nil {
		return nil
	}
	if err := v.RegisterValidation("page_section", validatePageSection); err != nil {
		return nil
	}
	if err := v.RegisterValidation("move_direction", validateMoveDirection); err != nil {
		return nil
	}

	return &CustomValidator{validator: v}
}

// validateClubRole accepts the assignable roles. The reserved "test"
// role is not assignable through the API.
func validateClubRole(fl playgroundvalidator.FieldLevel) bool {
	role := fl.Field().String()
	return role == "user" || role == "editor" || role == "admin"
}

func validatePageSection(fl playgroundvalidator.FieldLevel) bool {
	page := fl.Field().String()
	return page == models.PageAboutUs || page == models.PageMembership
}

func validateMoveDirection(fl playgroundvalidator.FieldLevel) bool {
	dir := fl.Field().String()
	return dir == "up" || dir == "down"
}

// Validate implements echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var validationErrors playgroundvalidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return ValidationErrors(validationErrors)
		}
		return err
	}
	return nil
}

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	var fields []string
	for _, err := range ve {
		fields = append(fields, err.Field())
	}
	return fmt.Sprintf("validation failed on fields: %s", strings.Join(fields, ", "))
}

// Format renders per-field human-readable messages. Raw validator tags
// never reach the client unexplained.
func (ve ValidationErrors) Format() map[string]string {
	errMap := make(map[string]string)
	for _, err := range ve {
		field := err.Field()
		tag := err.Tag()
		param := err.Param()

		switch tag {
		case "required":
			errMap[field] = fmt.Sprintf("%s is required", field)
		case "email":
			errMap[field] = fmt.Sprintf("%s must be a valid email", field)
		case "min":
			errMap[field] = fmt.Sprintf("%s must be at least %s", field, param)
		case "max":
			errMap[field] = fmt.Sprintf("%s must be at most %s", field, param)
		case "url":
			errMap[field] = fmt.Sprintf("%s must be a valid URL", field)
		case "uuid":
			errMap[field] = fmt.Sprintf("%s must be a valid UUID", field)
		case "oneof":
			errMap[field] = fmt.Sprintf("%s must be one of [%s]", field, param)
		case "club_role":
			errMap[field] = fmt.Sprintf("%s must be one of 'user', 'editor' or 'admin'", field)
		case "page_section":
			errMap[field] = fmt.Sprintf("%s must be 'aboutus' or 'membership'", field)
		case "move_direction":
			errMap[field] = fmt.Sprintf("%s must be 'up' or 'down'", field)
		default:
			errMap[field] = fmt.Sprintf("%s failed validation: %s", field, tag)
		}
	}
	return errMap
}
