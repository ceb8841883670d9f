package user

import (
	"context"
	c "dashboard/internal/core/domain/common"
	"net/url"
)

type PasswordResetToken string

func (t PasswordResetToken) String() string {
	return "***"
}

type PasswordResetTokenGenerator interface {
	GeneratePasswordResetToken() (PasswordResetToken, error)
}

// PasswordResetLink is the URL delivered to the user out-of-band.
type PasswordResetLink string

func (l PasswordResetLink) String() string {
	return "***"
}

func NewPasswordResetLink(base url.URL, token PasswordResetToken) PasswordResetLink {
	query := base.Query()
	query.Set("token", string(token))
	base.RawQuery = query.Encode()
	return PasswordResetLink(base.String())
}

type PasswordResetLinkSender interface {
	SendPasswordResetLink(ctx context.Context, to c.Email, link PasswordResetLink) error
}
