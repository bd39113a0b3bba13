package validation

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field name to the first rule it broke.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the message for name, or "" when the field is valid.
func (e Errors) Field(name string) string {
	return e[name]
}

type Login struct {
	Email    string `json:"email" validate:"email_rule"`
	Password string `json:"password" validate:"password_rule"`
}

type SignUp struct {
	Name            string `json:"name" validate:"required_rule"`
	Email           string `json:"email" validate:"email_rule"`
	Password        string `json:"password" validate:"password_rule"`
	ConfirmPassword string `json:"confirmPassword" validate:"confirm_required,eqfield=Password"`
}

type ResetEmail struct {
	Email string `json:"email" validate:"email_rule"`
}

type NewPassword struct {
	NewPassword     string `json:"newPassword" validate:"password_rule"`
	ConfirmPassword string `json:"confirmPassword" validate:"confirm_required,eqfield=NewPassword"`
}

type OTPCode struct {
	OTP string `json:"otp" validate:"otp_rule"`
}

// Check validates a schema value. It returns nil or Errors.
func Check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe)
		}
	}
	return out
}

// AsErrors extracts field errors from err.
func AsErrors(err error) (Errors, bool) {
	var verrs Errors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}
