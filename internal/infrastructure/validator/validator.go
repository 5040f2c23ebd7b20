package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/mikiasgoitom/Edulearn/internal/domain/apperror"
	usecasecontract "github.com/mikiasgoitom/Edulearn/internal/usecase/contract"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

// AppValidator implements the usecase.Validator interface.
type AppValidator struct {
	validate *validator.Validate
}

var _ usecasecontract.IValidator = (*AppValidator)(nil)

// NewValidator creates a validator that reports fields by their JSON names.
func NewValidator() usecasecontract.IValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return len(PasswordProblems(fl.Field().String())) == 0
	})
	return &AppValidator{validate: v}
}

// Struct validates s and returns every violation in field declaration order.
func (av *AppValidator) Struct(s any) []apperror.FieldError {
	err := av.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperror.FieldError{{Field: "body", Message: "Invalid request body"}}
	}

	out := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "password" {
			s, _ := fe.Value().(string)
			for _, msg := range PasswordProblems(s) {
				out = append(out, apperror.FieldError{Field: fe.Field(), Message: msg})
			}
			continue
		}
		out = append(out, apperror.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// PasswordProblems lists every rule s breaks: length 8 to 128 and at least
// one lowercase letter, uppercase letter, digit and symbol.
func PasswordProblems(s string) []string {
	var problems []string
	n := len([]rune(s))
	if n < minPasswordLength {
		problems = append(problems, fmt.Sprintf("Password must be at least %d characters long", minPasswordLength))
	}
	if n > maxPasswordLength {
		problems = append(problems, fmt.Sprintf("Password must be at most %d characters long", maxPasswordLength))
	}
	if !containsAny(s, unicode.IsLower) {
		problems = append(problems, "Password must contain at least one lowercase letter")
	}
	if !containsAny(s, unicode.IsUpper) {
		problems = append(problems, "Password must contain at least one uppercase letter")
	}
	if !containsAny(s, unicode.IsDigit) {
		problems = append(problems, "Password must contain at least one number")
	}
	if !containsAny(s, isSymbol) {
		problems = append(problems, "Password must contain at least one special character")
	}
	return problems
}

func isSymbol(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func containsAny(s string, pred func(rune) bool) bool {
	for _, r := range s {
		if pred(r) {
			return true
		}
	}
	return false
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Please provide a valid email address"
	case "eqfield":
		return "Passwords do not match"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid id", field)
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}
