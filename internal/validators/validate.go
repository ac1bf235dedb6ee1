package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	nonstandard "github.com/go-playground/validator/v10/non-standard/validators"
)

// TagName is shared with gin so request structs carry one set of rules.
const TagName = "binding"

var (
	once     sync.Once
	validate *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.SetTagName(TagName)
		if err := Register(v); err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

// Register installs json field naming and the notblank, date and clock
// tags on v. The sandbox calls it on gin's binding engine.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonName)
	if err := v.RegisterValidation("notblank", nonstandard.NotBlank); err != nil {
		return err
	}
	if err := v.RegisterValidation("date", isDate); err != nil {
		return err
	}
	return v.RegisterValidation("clock", isClock)
}

// Struct checks the binding tags on a request value.
func Struct(v any) error {
	return FromError(engine().Struct(v))
}

// Var checks a single value against tag and reports failures under name.
func Var(name string, value any, tag string) error {
	err := FromError(engine().Var(value, tag))
	var fe *FieldError
	if errors.As(err, &fe) {
		fe.Field = name
	}
	return err
}

// FromError turns the first validator failure into a FieldError. Other
// errors pass through unchanged.
func FromError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return &FieldError{Field: fe.Field(), Reason: reason(fe)}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "is not a valid e-mail address"
	case "date":
		return "must be a YYYY-MM-DD date"
	case "clock":
		return "must be an HH:MM time"
	case "oneof":
		return "must be one of " + fe.Param()
	case "gt":
		if fe.Param() == "0" {
			return "must be positive"
		}
		return "must be greater than " + fe.Param()
	case "gte":
		if fe.Param() == "0" {
			return "must not be negative"
		}
		return "must be at least " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must have at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must have at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	}
	return "is invalid"
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

func isDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func isClock(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for _, layout := range []string{"15:04", "15:04:05"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
