// Package actions exposes the account operations the way the web client
// consumes them: every call takes the previous form state and the submitted
// fields, and returns the next form state.
package actions

import (
	"context"
	c "dashboard/internal/core/domain/common"
	e "dashboard/internal/core/domain/errors"
	ratelimiter "dashboard/internal/core/domain/rate_limiter"
	"dashboard/internal/core/domain/user"
	"dashboard/internal/core/services"
	resetpassword "dashboard/internal/core/services/reset_password"
	sendpasswordresettoken "dashboard/internal/core/services/send_password_reset_token"
	signupwithemail "dashboard/internal/core/services/sign_up_with_email"
	"dashboard/internal/forms"
	"errors"
	"net/url"
)

const (
	MsgRegisterInvalid       = "Missing Fields. Failed to Create Account."
	MsgEmailAlreadyExists    = "An account with this email already exists."
	MsgRegisterFailed        = "Database Error: Failed to Create Account."
	MsgResetRequestInvalid   = "Please enter a valid email."
	MsgResetRequestAccepted  = "If an account exists, you will receive a password reset email."
	MsgResetRequestFailed    = "An error occurred. Please try again."
	MsgTooManyRequests       = "Too many requests. Please try again later."
	MsgResetInvalid          = "Invalid fields."
	MsgInvalidOrExpiredToken = "Invalid or expired reset token."
	MsgResetFailed           = "Database Error: Failed to reset password."
)

const (
	RedirectRegistered = "/login?registered=true"
	RedirectReset      = "/login?reset=true"
)

type State struct {
	Errors   map[string][]string `json:"errors,omitempty"`
	Message  string              `json:"message,omitempty"`
	Success  bool                `json:"success,omitempty"`
	Redirect string              `json:"redirect,omitempty"`
}

type Actions struct {
	signUpWithEmail        services.Service[signupwithemail.Input, signupwithemail.Result]
	sendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	resetPassword          services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	signUpWithEmail services.Service[signupwithemail.Input, signupwithemail.Result],
	sendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result],
	resetPassword services.Service[resetpassword.Input, resetpassword.Result],
) *Actions {
	if signUpWithEmail == nil {
		panic(e.NewNilArgumentError("signUpWithEmail"))
	}
	if sendPasswordResetToken == nil {
		panic(e.NewNilArgumentError("sendPasswordResetToken"))
	}
	if resetPassword == nil {
		panic(e.NewNilArgumentError("resetPassword"))
	}
	return &Actions{
		signUpWithEmail:        signUpWithEmail,
		sendPasswordResetToken: sendPasswordResetToken,
		resetPassword:          resetPassword,
	}
}

func (a *Actions) Register(ctx context.Context, prev State, values url.Values) State {
	form := forms.NewRegistration(values)
	if state, ok := validated(form.Validate(), MsgRegisterInvalid); !ok {
		return state
	}

	_, err := a.signUpWithEmail.Run(ctx, signupwithemail.Input{
		Email:    c.NewEmail(form.Email),
		Password: user.RawPassword(form.Password),
	})
	if errors.Is(err, user.ErrEmailAlreadyExists) {
		return State{Message: MsgEmailAlreadyExists}
	}
	if err != nil {
		return State{Message: MsgRegisterFailed}
	}
	return State{Redirect: RedirectRegistered}
}

// RequestReset answers the same way whether or not the account exists.
func (a *Actions) RequestReset(ctx context.Context, prev State, values url.Values) State {
	form := forms.NewResetRequest(values)
	if state, ok := validated(form.Validate(), MsgResetRequestInvalid); !ok {
		return state
	}

	_, err := a.sendPasswordResetToken.Run(ctx, sendpasswordresettoken.Input{Email: c.NewEmail(form.Email)})
	if err == nil || errors.Is(err, user.ErrUserDoesNotExist) {
		return State{Success: true, Message: MsgResetRequestAccepted}
	}
	if errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
		return State{Message: MsgTooManyRequests}
	}
	return State{Message: MsgResetRequestFailed}
}

func (a *Actions) RedeemReset(ctx context.Context, prev State, values url.Values) State {
	form := forms.NewResetRedemption(values)
	if state, ok := validated(form.Validate(), MsgResetInvalid); !ok {
		return state
	}

	_, err := a.resetPassword.Run(ctx, resetpassword.Input{
		Token:       user.PasswordResetToken(form.Token),
		NewPassword: user.RawPassword(form.Password),
	})
	if errors.Is(err, user.ErrInvalidOrExpiredPasswordResetToken) {
		return State{Message: MsgInvalidOrExpiredToken}
	}
	if err != nil {
		return State{Message: MsgResetFailed}
	}
	return State{Redirect: RedirectReset}
}

func validated(err error, message string) (State, bool) {
	if err == nil {
		return State{}, true
	}
	fieldErrors, ok := forms.FieldErrors(err)
	if !ok {
		return State{Message: message}, false
	}
	return State{Errors: fieldErrors, Message: message}, false
}
