package user

import (
	"crypto/subtle"
	c "dashboard/internal/core/domain/common"
	e "dashboard/internal/core/domain/errors"
	"time"
)

type ID int64

type User struct {
	ID                       ID
	Email                    c.Email
	Name                     string
	PasswordHash             PasswordHash
	CreatedAt                time.Time
	PasswordResetToken       c.Optional[PasswordResetToken]
	PasswordResetTokenExpiry c.Optional[time.Time]
}

func (u *User) Validate() error {
	if u.Email == "" {
		return e.NewInvalidStateErrorf("email is not set for user %d", u.ID)
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateErrorf("password hash is not set for user %d", u.ID)
	}
	if u.PasswordResetToken.IsPresent != u.PasswordResetTokenExpiry.IsPresent {
		return e.NewInvalidStateErrorf("password reset token and its expiry must be set together for user %d", u.ID)
	}
	return nil
}

// HasLivePasswordResetToken reports whether token can be redeemed at the given instant.
func (u *User) HasLivePasswordResetToken(token PasswordResetToken, at time.Time) bool {
	if !u.PasswordResetToken.IsPresent || !u.PasswordResetTokenExpiry.IsPresent {
		return false
	}
	if token == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(u.PasswordResetToken.Value), []byte(token)) != 1 {
		return false
	}
	return u.PasswordResetTokenExpiry.Value.After(at)
}
