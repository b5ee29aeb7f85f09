package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var currencyRe = regexp.MustCompile(`^\$\d+$`)

var (
	instance *validator.Validate
	once     sync.Once
)

// Get returns the shared validator with the custom rules registered.
func Get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		_ = instance.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return currencyRe.MatchString(fl.Field().String())
		})
	})
	return instance
}

func Struct(s interface{}) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return fmt.Errorf("validation failed: %s", describe(ve))
	}
	return err
}

func describe(ve validator.ValidationErrors) string {
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		switch fe.Tag() {
		case "currency":
			parts = append(parts, fmt.Sprintf("%s must be a valid currency string (e.g., '$80')", fe.Namespace()))
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Namespace()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
