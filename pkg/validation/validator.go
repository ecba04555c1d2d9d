package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// Letters (any script), apostrophes and hyphens; two characters minimum.
	nameRe = regexp.MustCompile(`^[\p{L}'’-]{2,}$`)
	// Ukrainian mobile format matching the registration form mask.
	phoneRe = regexp.MustCompile(`^\+380 \d{2} \d{3} \d{2} \d{2}$`)
)

// earliest accepted birth date
var birthDateFloor = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseBirthDate accepts a date-only or RFC 3339 value.
func ParseBirthDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func validBirthDate(fl validator.FieldLevel) bool {
	t, err := ParseBirthDate(fl.Field().String())
	if err != nil {
		return false
	}
	return t.After(birthDateFloor) && !t.After(time.Now())
}

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers the custom tags the registration payload relies on.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
			return nameRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("uaphone", func(fl validator.FieldLevel) bool {
			return phoneRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("birthdate", validBirthDate)
		// password length bounds; bcrypt rejects input beyond 72 bytes
		v.RegisterAlias("pwd", "min=6,max=72")
	}
}

// ToDetails converts validation/binding errors into a map[field]message
// suitable for the API's per-field "errors" body.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	// Validation errors from validator.v10
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if param != "" {
			return "must be at least " + param + " characters long"
		}
		return "too small"
	case "max":
		if param != "" {
			return "must be at most " + param + " characters long"
		}
		return "too large"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "datetime":
		if param != "" {
			return "must match datetime format: " + param
		}
		return "must be a valid datetime"

	// custom tags
	case "pwd":
		return "must be between 6 and 72 characters long"
	case "personname":
		return "must be at least 2 letters (apostrophes and hyphens allowed)"
	case "uaphone":
		return "must match the format +380 XX XXX XX XX"
	case "birthdate":
		return "must be a valid date after 1900-01-01 and not in the future"

	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}
