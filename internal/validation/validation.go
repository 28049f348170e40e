package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/julianstephens/habitrackr/internal/errors"
	"github.com/julianstephens/habitrackr/internal/utils"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// instance returns the shared validator with the custom tags registered
func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their JSON names so messages match the stored layout
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = validate.RegisterValidation("day", validateDay)
		_ = validate.RegisterValidation("hhmm", validateHHMM)
	})
	return validate
}

// validateDay accepts YYYY-MM-DD, or an RFC3339 timestamp for start dates
// written by older clients.
func validateDay(fl validator.FieldLevel) bool {
	_, err := utils.ParseDayOrTimestamp(fl.Field().String(), time.UTC)
	return err == nil
}

func validateHHMM(fl validator.FieldLevel) bool {
	return utils.ValidateTimeFormat(fl.Field().String())
}

// Struct validates v against its `validate` tags. The first failing field is
// returned as an *errors.ValidationError carrying a user-facing message.
func Struct(v interface{}) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	fe := verrs[0]
	return &apperrors.ValidationError{Field: fe.Field(), Message: message(fe)}
}

// Var validates a single value against a tag expression such as "required,email".
func Var(field string, value interface{}, tag string) error {
	err := instance().Var(value, tag)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return &apperrors.ValidationError{Field: field, Message: messageFor(field, verrs[0].Tag(), verrs[0].Param(), verrs[0].Value())}
}

func message(fe validator.FieldError) string {
	return messageFor(fe.Field(), fe.Tag(), fe.Param(), fe.Value())
}

func messageFor(field, tag, param string, value interface{}) string {
	switch {
	case field == "goalDays" && (tag == "min" || tag == "max"):
		return "goal days must be between 1 and 365"
	case field == "password" && tag == "min":
		return fmt.Sprintf("Password must be at least %s characters", param)
	case tag == "required":
		return fmt.Sprintf("%s is required", field)
	case tag == "email":
		return fmt.Sprintf("invalid email address %q", value)
	case tag == "day":
		return fmt.Sprintf("invalid %s %q (expected YYYY-MM-DD)", field, value)
	case tag == "hhmm":
		return fmt.Sprintf("invalid %s %q (expected HH:MM)", field, value)
	case tag == "max":
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	case tag == "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
