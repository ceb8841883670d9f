package services

import (
	"dashboard/internal/actions"
	"dashboard/internal/app/deps"
	drl "dashboard/internal/core/domain/rate_limiter"
	"dashboard/internal/core/services"
	ratelimiting "dashboard/internal/core/services/rate_limiting"
	resetpassword "dashboard/internal/core/services/reset_password"
	sendpasswordresettoken "dashboard/internal/core/services/send_password_reset_token"
	signupwithemail "dashboard/internal/core/services/sign_up_with_email"
)

type Services struct {
	SignUpWithEmail        services.Service[signupwithemail.Input, signupwithemail.Result]
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]

	Actions *actions.Actions
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = signupwithemail.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)
	s.SendPasswordResetToken = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.PerHour(deps.Config.PasswordResetRateLimit),
		sendpasswordresettoken.NewWithLinkSending(
			deps.Logger,
			deps.PasswordResetLinkSender,
			deps.Config.PasswordResetURL,
			sendpasswordresettoken.New(
				deps.Logger,
				deps.UserRepository,
				deps.PasswordResetTokenGenerator,
				deps.Config.PasswordResetValidDuration,
				deps.Now,
			),
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)

	s.Actions = actions.New(s.SignUpWithEmail, s.SendPasswordResetToken, s.ResetPassword)
	return s
}
