// Package schema enforces the declarative entity constraints written as
// `validate` tags on the models and the request DTOs.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/models"
)

var (
	looseEmailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRx      = regexp.MustCompile(`^[\d\s()+\-]{7,20}$`)
	webURLRx     = regexp.MustCompile(`(?i)^https?://[^\s/$.?#].[^\s]*$`)
	mobileRx     = regexp.MustCompile(`^\+?\d{7,15}$`)
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the custom tags registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
			return looseEmailRx.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phoneRx.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
			return IsMobilePhone(fl.Field().String())
		})
		_ = v.RegisterValidation("weburl", func(fl validator.FieldLevel) bool {
			return webURLRx.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slug.IsSlug(fl.Field().String())
		})
		_ = v.RegisterValidation("supporttype", func(fl validator.FieldLevel) bool {
			return models.SupportType(fl.Field().String()).Valid()
		})
		validate = v
	})
	return validate
}

// IsMobilePhone accepts international numbers with optional separators.
func IsMobilePhone(s string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "").Replace(strings.TrimSpace(s))
	return mobileRx.MatchString(cleaned)
}

// Validate checks v against its tags and returns a *apperr.ValidationError
// keyed by JSON field name, or nil.
func Validate(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &apperr.ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		field := fieldPath(fe)
		msg := customMessage(v, fe.StructField())
		if msg == "" {
			msg = message(field, fe)
		}
		out.Add(field, msg)
	}
	return out
}

// fieldPath turns "skills[0]" into the document path "skills.0".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.ReplaceAll(ns, "[", ".")
	return strings.ReplaceAll(ns, "]", "")
}

func customMessage(v any, structField string) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return ""
	}
	if i := strings.Index(structField, "["); i >= 0 {
		structField = structField[:i]
	}
	f, ok := t.FieldByName(structField)
	if !ok {
		return ""
	}
	return f.Tag.Get("msg")
}

// Message renders a default human readable message for a failed tag.
func Message(fe validator.FieldError) string {
	return message(fieldPath(fe), fe)
}

func message(field string, fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s items", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(strings.Fields(fe.Param()), ", "))
	case "eq":
		return fmt.Sprintf("%s must be %s", field, fe.Param())
	case "email", "looseemail":
		return fmt.Sprintf("%s is not a valid email address", field)
	case "phone", "mobile":
		return fmt.Sprintf("%s is not a valid phone number", field)
	case "weburl", "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "supporttype":
		return fmt.Sprintf("%s is not a valid support type", field)
	case "slug":
		return fmt.Sprintf("%s must be a valid slug", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
