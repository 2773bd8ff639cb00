package helper

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"

	"nojom_backend/internals/constants"
	"nojom_backend/internals/helpers/apperr"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
	translator   ut.Translator

	hhmmRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// Validator returns the shared validator with English messages and custom tags.
func Validator() *validator.Validate {
	validateOnce.Do(initValidator)
	return validate
}

func initValidator() {
	validate = validator.New()
	english := en.New()
	translator, _ = ut.New(english, english).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// json tag names in error details
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	_ = validate.RegisterValidation("grade", func(fl validator.FieldLevel) bool {
		return constants.IsGrade(fl.Field().String())
	})
	registerTranslation("grade", "{0} must be one of 7, 8, 9, 10, 11, 12")

	_ = validate.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return constants.IsWeekDay(fl.Field().String())
	})
	registerTranslation("weekday", "{0} must be a day of the week")

	_ = validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmRegex.MatchString(fl.Field().String())
	})
	registerTranslation("hhmm", "{0} must be a time in HH:MM format")

	_ = validate.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		for _, m := range constants.PaymentMethods {
			if m == v {
				return true
			}
		}
		return false
	})
	registerTranslation("payment_method", "{0} must be one of cash, bank_transfer, check, mobile_payment")
}

func registerTranslation(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// ValidateStruct runs the validator and converts failures to VALIDATION_ERROR.
func ValidateStruct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperr.Field("body", err.Error())
	}
	return apperr.Validation(FieldErrors(ve))
}

// FieldErrors groups translated messages by field name.
func FieldErrors(ve validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		key := fieldPath(fe)
		out[key] = append(out[key], fe.Translate(translator))
	}
	return out
}

// schedule_days[1] style keys for nested fields, plain names otherwise.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// Normalizer is implemented by request bodies that trim or fold their fields.
type Normalizer interface {
	Normalize()
}

// ParseBody decodes the request body into dst, normalizes it and validates it.
// Rules see the trimmed values, so "   " fails required and min=1.
func ParseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperr.New(fiber.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
	}
	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}
	return ValidateStruct(dst)
}

// ParseQuery decodes query parameters into dst and validates it.
func ParseQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return apperr.New(fiber.StatusBadRequest, "BAD_REQUEST", "Invalid query parameters")
	}
	return ValidateStruct(dst)
}

// FieldErrorBag collects per-field messages from manual checks.
type FieldErrorBag map[string][]string

func (b FieldErrorBag) Add(field, message string) {
	b[field] = append(b[field], message)
}

// Err returns nil when nothing was collected.
func (b FieldErrorBag) Err() error {
	if len(b) == 0 {
		return nil
	}
	return apperr.Validation(b)
}

// Merge folds a VALIDATION_ERROR's details into the bag; other errors are returned.
func (b FieldErrorBag) Merge(err error) error {
	if err == nil {
		return nil
	}
	ae, ok := apperr.As(err)
	if !ok || ae.Code != apperr.CodeValidation {
		return err
	}
	if fields, ok := ae.Details.(map[string][]string); ok {
		for k, msgs := range fields {
			b[k] = append(b[k], msgs...)
		}
	}
	return nil
}
