package webserver

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// integerRegex matches a signed decimal integer without leading zeros
var integerRegex = regexp.MustCompile(`^[-+]?(0|[1-9][0-9]*)$`)

// CustomValidator adapts go-playground/validator to echo
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator with the "integer" rule registered
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		return integerRegex.MatchString(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Var validates a single value against a tag expression
func (cv *CustomValidator) Var(field interface{}, tag string) error {
	return cv.validator.Var(field, tag)
}

// ValidateVar runs a single-field validation with the server's validator
func ValidateVar(c echo.Context, field interface{}, tag string) error {
	cv, ok := c.Echo().Validator.(*CustomValidator)
	if !ok {
		cv = NewValidator()
	}
	return cv.Var(field, tag)
}
