package user

import (
	"context"
	c "dashboard/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	Email        c.Email
	Name         string
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type SetPasswordResetTokenInput struct {
	ID        ID
	Token     PasswordResetToken
	ExpiresAt time.Time
}

type ResetPasswordInput struct {
	ID           ID
	Token        PasswordResetToken
	PasswordHash PasswordHash
}

type UserRepository interface {
	// Create returns ErrEmailAlreadyExists if the email is taken.
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	// GetByLivePasswordResetTokenWithLock returns ErrInvalidOrExpiredPasswordResetToken
	// unless some user holds the token and its expiry is strictly after now.
	GetByLivePasswordResetTokenWithLock(ctx context.Context, token PasswordResetToken, now time.Time) (User, error)
	// SetPasswordResetToken overwrites any previously issued token.
	SetPasswordResetToken(ctx context.Context, input SetPasswordResetTokenInput) error
	// ResetPassword sets the new hash and clears the token pair in one statement.
	// It fails with ErrInvalidOrExpiredPasswordResetToken if the user no longer holds input.Token.
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
}
