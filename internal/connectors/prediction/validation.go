package prediction

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/biter777/countries"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("alpha3_country", func(fl validator.FieldLevel) bool {
		return IsAlpha3Country(fl.Field().String())
	})
	return v
}

var (
	alpha3Once  sync.Once
	alpha3Index map[string]countries.CountryCode
)

// CountryByAlpha3 looks up an ISO 3166-1 alpha-3 code, case-insensitively.
func CountryByAlpha3(code string) (countries.CountryCode, bool) {
	alpha3Once.Do(func() {
		all := countries.All()
		alpha3Index = make(map[string]countries.CountryCode, len(all))
		for _, c := range all {
			if c == countries.Unknown {
				continue
			}
			alpha3Index[c.Alpha3()] = c
		}
	})
	c, ok := alpha3Index[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// IsAlpha3Country reports whether code is a known ISO 3166-1 alpha-3 code.
func IsAlpha3Country(code string) bool {
	_, ok := CountryByAlpha3(code)
	return ok
}

// ValidateRequest checks a form payload the way the dashboard forms do:
// required fields, enumerations and the quantity bounds.
func ValidateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		return errors.Mark(err, ErrInvalidRequest)
	}
	return nil
}

func validateResponse(endpoint string, resp any) error {
	if err := validate.Struct(resp); err != nil {
		return errors.Mark(errors.Wrapf(err, "%s response", endpoint), ErrInvalidResponse)
	}
	return nil
}

// FieldErrors flattens validation failures into field -> message pairs.
func FieldErrors(err error) map[string]string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return nil
	}
	out := make(map[string]string, len(ves))
	for _, fe := range ves {
		out[fe.Field()] = describeFieldError(fe)
	}
	return out
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.Join(strings.Fields(fe.Param()), ", "))
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "max":
		return fmt.Sprintf("must have at most %s items", fe.Param())
	case "alpha3_country":
		return "must be an ISO 3166 alpha-3 country code"
	}
	return "is invalid"
}
