package sendpasswordresettoken

import (
	"context"
	e "dashboard/internal/core/domain/errors"
	"dashboard/internal/core/domain/logging"
	"dashboard/internal/core/domain/user"
	"dashboard/internal/core/services"
	"errors"
	"fmt"
	"net/url"
)

type serviceWithLinkSending struct {
	log     logging.Logger
	sender  user.PasswordResetLinkSender
	baseURL url.URL
	inner   services.Service[Input, Result]
}

// NewWithLinkSending delivers the link of a freshly issued token.
// A failed delivery leaves the token in place, the user may request a new one.
func NewWithLinkSending(
	log logging.Logger,
	sender user.PasswordResetLinkSender,
	baseURL url.URL,
	inner services.Service[Input, Result],
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &serviceWithLinkSending{
		log:     log,
		sender:  sender,
		baseURL: baseURL,
		inner:   inner,
	}
}

func (s *serviceWithLinkSending) Run(ctx context.Context, input Input) (result Result, err error) {
	result, err = s.inner.Run(ctx, input)
	if err != nil {
		return result, err
	}

	link := user.NewPasswordResetLink(s.baseURL, result.Token)
	err = s.sender.SendPasswordResetLink(ctx, result.User.Email, link)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset link.",
			logging.Entry("userID", result.User.ID),
			logging.Entry("err", err),
		)
		return result, fmt.Errorf("%w: %v", user.ErrPasswordResetLinkNotSent, err)
	}

	s.log.Info(
		ctx,
		"Password reset link has been sent to the user.",
		logging.Entry("userID", result.User.ID),
	)
	return result, nil
}
