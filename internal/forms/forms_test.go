package forms

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	require.NotNil(t, err)
	errs, ok := FieldErrors(err)
	require.True(t, ok)
	return errs
}

func TestRegistrationValid(t *testing.T) {
	f := NewRegistration(url.Values{"email": {"  user@example.com "}, "password": {"abcdef"}})

	require.Nil(t, f.Validate())
	require.Equal(t, "user@example.com", f.Email)
}

func TestRegistrationInvalid(t *testing.T) {
	type testcase struct {
		id     string
		values url.Values
		errors map[string][]string
	}
	cases := []testcase{
		{
			id:     "missing fields",
			values: url.Values{},
			errors: map[string][]string{
				"email":    {MsgInvalidEmail},
				"password": {MsgPasswordTooShort},
			},
		},
		{
			id:     "malformed email",
			values: url.Values{"email": {"not-an-email"}, "password": {"abcdef"}},
			errors: map[string][]string{"email": {MsgInvalidEmail}},
		},
		{
			id:     "short password",
			values: url.Values{"email": {"user@example.com"}, "password": {"abcde"}},
			errors: map[string][]string{"password": {MsgPasswordTooShort}},
		},
		{
			id:     "too long email",
			values: url.Values{"email": {strings.Repeat("a", 510) + "@example.com"}, "password": {"abcdef"}},
			errors: map[string][]string{"email": {MsgInvalidEmail}},
		},
	}
	for _, c := range cases {
		t.Run(c.id, func(t *testing.T) {
			err := NewRegistration(c.values).Validate()
			require.Equal(t, c.errors, fieldErrors(t, err))
		})
	}
}

func TestPasswordLengthCountsCharacters(t *testing.T) {
	cases := []struct {
		password string
		isValid  bool
	}{
		{password: "пароль", isValid: true},
		{password: "🔑🔑🔑🔑🔑🔑", isValid: true},
		{password: "абв"},
		{password: "🔑🔑"},
		{password: "ünï"},
		{password: strings.Repeat("ж", maxPasswordLength), isValid: true},
		{password: strings.Repeat("ж", maxPasswordLength+1)},
	}
	for _, c := range cases {
		t.Run(c.password, func(t *testing.T) {
			err := Registration{Email: "user@example.com", Password: c.password}.Validate()
			if c.isValid {
				require.Nil(t, err)
				return
			}
			require.Equal(t, map[string][]string{"password": {MsgPasswordTooShort}}, fieldErrors(t, err))
		})
	}
}

func TestResetRequest(t *testing.T) {
	require.Nil(t, NewResetRequest(url.Values{"email": {"user@example.com"}}).Validate())

	err := NewResetRequest(url.Values{"email": {"user"}}).Validate()
	require.Equal(t, map[string][]string{"email": {MsgInvalidEmail}}, fieldErrors(t, err))
}

func TestResetRedemptionValid(t *testing.T) {
	f := NewResetRedemption(url.Values{
		"token":           {"token"},
		"password":        {"abcdef"},
		"confirmPassword": {"abcdef"},
	})

	require.Nil(t, f.Validate())
}

func TestResetRedemptionInvalid(t *testing.T) {
	type testcase struct {
		id     string
		values url.Values
		errors map[string][]string
	}
	cases := []testcase{
		{
			id: "mismatch",
			values: url.Values{
				"token":           {"token"},
				"password":        {"abcdef"},
				"confirmPassword": {"abcdeg"},
			},
			errors: map[string][]string{"confirmPassword": {MsgPasswordsMismatch}},
		},
		{
			id:     "missing confirmation",
			values: url.Values{"token": {"token"}, "password": {"abcdef"}},
			errors: map[string][]string{"confirmPassword": {MsgPasswordsMismatch}},
		},
		{
			id:     "missing token",
			values: url.Values{"password": {"abcdef"}, "confirmPassword": {"abcdef"}},
			errors: map[string][]string{"token": {MsgMissingToken}},
		},
		{
			id: "short password",
			values: url.Values{
				"token":           {"token"},
				"password":        {"abc"},
				"confirmPassword": {"abc"},
			},
			errors: map[string][]string{
				"password":        {MsgPasswordTooShort},
				"confirmPassword": {MsgPasswordTooShort},
			},
		},
		{
			id: "short non-ascii password",
			values: url.Values{
				"token":           {"token"},
				"password":        {"абв"},
				"confirmPassword": {"абв"},
			},
			errors: map[string][]string{
				"password":        {MsgPasswordTooShort},
				"confirmPassword": {MsgPasswordTooShort},
			},
		},
		{
			id:     "everything missing",
			values: url.Values{},
			errors: map[string][]string{
				"token":    {MsgMissingToken},
				"password": {MsgPasswordTooShort},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.id, func(t *testing.T) {
			err := NewResetRedemption(c.values).Validate()
			require.Equal(t, c.errors, fieldErrors(t, err))
		})
	}
}

func TestValidationIsDeterministic(t *testing.T) {
	values := url.Values{"token": {"t"}, "password": {"abc"}, "confirmPassword": {"abd"}}

	first, _ := FieldErrors(NewResetRedemption(values).Validate())
	second, _ := FieldErrors(NewResetRedemption(values).Validate())

	require.Equal(t, first, second)
}

func TestFieldErrorsRejectsOtherErrors(t *testing.T) {
	_, ok := FieldErrors(errors.New("boom"))
	require.False(t, ok)

	_, ok = FieldErrors(nil)
	require.False(t, ok)
}
