// Package forms holds the authoritative validation of the account forms.
package forms

import (
	"errors"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	MsgInvalidEmail      = "Please enter a valid email."
	MsgPasswordTooShort  = "Password must be at least 6 characters."
	MsgPasswordsMismatch = "Passwords don't match"
	MsgMissingToken      = "Missing reset token."
)

const (
	minPasswordLength = 6
	maxPasswordLength = 256
	maxEmailLength    = 512
	maxTokenLength    = 256
)

var (
	emailRules = []validation.Rule{
		validation.Required.Error(MsgInvalidEmail),
		validation.Length(0, maxEmailLength).Error(MsgInvalidEmail),
		is.Email.Error(MsgInvalidEmail),
	}
	passwordRules = []validation.Rule{
		validation.Required.Error(MsgPasswordTooShort),
		validation.RuneLength(minPasswordLength, maxPasswordLength).Error(MsgPasswordTooShort),
	}
)

type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewRegistration(values url.Values) Registration {
	return Registration{
		Email:    strings.TrimSpace(values.Get("email")),
		Password: values.Get("password"),
	}
}

func (f Registration) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, emailRules...),
		validation.Field(&f.Password, passwordRules...),
	)
}

type ResetRequest struct {
	Email string `json:"email"`
}

func NewResetRequest(values url.Values) ResetRequest {
	return ResetRequest{Email: strings.TrimSpace(values.Get("email"))}
}

func (f ResetRequest) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, emailRules...),
	)
}

type ResetRedemption struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func NewResetRedemption(values url.Values) ResetRedemption {
	return ResetRedemption{
		Token:           strings.TrimSpace(values.Get("token")),
		Password:        values.Get("password"),
		ConfirmPassword: values.Get("confirmPassword"),
	}
}

// Validate reports a mismatch on the confirmation field only.
func (f ResetRedemption) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(
			&f.Token,
			validation.Required.Error(MsgMissingToken),
			validation.Length(0, maxTokenLength).Error(MsgMissingToken),
		),
		validation.Field(&f.Password, passwordRules...),
		validation.Field(
			&f.ConfirmPassword,
			validation.By(f.matchesPassword),
			validation.RuneLength(minPasswordLength, maxPasswordLength).Error(MsgPasswordTooShort),
		),
	)
}

func (f ResetRedemption) matchesPassword(value interface{}) error {
	confirmPassword, _ := value.(string)
	if confirmPassword != f.Password {
		return errors.New(MsgPasswordsMismatch)
	}
	return nil
}

// FieldErrors flattens a validation failure into per-field messages.
// It returns false for errors that are not field-scoped.
func FieldErrors(err error) (map[string][]string, bool) {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil, false
	}
	fieldErrors := make(map[string][]string, len(errs))
	for field, fieldErr := range errs {
		if fieldErr == nil {
			continue
		}
		fieldErrors[field] = append(fieldErrors[field], fieldErr.Error())
	}
	return fieldErrors, true
}
