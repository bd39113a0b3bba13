// Package validation holds the field rules of the client forms and the
// per-form schemas composed from them. A schema is a struct whose validate
// tags name the rules; Check evaluates it and returns Errors keyed by the
// field's JSON name.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Named rules. Each is registered as a validator alias so schemas can use
// the name directly in their tags.
const (
	RuleEmail    = "email_rule"
	RulePassword = "password_rule"
	RuleRequired = "required_rule"
	RuleOTP      = "otp_rule"
)

// MaxEmailLength bounds the email field.
const MaxEmailLength = 70

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

var ruleTags = map[string]string{
	RuleEmail:    "required,max=70,email,email_shape",
	RulePassword: "required,min=6,max=10",
	RuleRequired: "required",
	RuleOTP:      "len=6,numeric",
}

// messages maps rule -> failing tag -> text shown under the field.
var messages = map[string]map[string]string{
	RuleEmail: {
		"required":    "Email is required",
		"max":         "Email must be at most 70 characters",
		"email":       "Enter Email",
		"email_shape": "Email is required",
	},
	RulePassword: {
		"required": "Password is required",
		"min":      "Password must be at least 6 characters long.",
		"max":      "Password must be at most 10 characters long.",
	},
	RuleRequired: {
		"required": "Field is required.",
	},
	RuleOTP: {
		"len":     "Please enter all 6 digits",
		"numeric": "Please enter all 6 digits",
	},
	"confirm_required": {
		"required": "Confirm password is required",
	},
	"eqfield": {
		"eqfield": "Both the passwords do not match",
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("validation: register email_shape: %v", err))
	}
	for alias, tags := range ruleTags {
		v.RegisterAlias(alias, tags)
	}
	v.RegisterAlias("confirm_required", "required")
	return v
}

func message(fe validator.FieldError) string {
	if byTag, ok := messages[fe.Tag()]; ok {
		if msg, ok := byTag[fe.ActualTag()]; ok {
			return msg
		}
	}
	return fe.Error()
}
