package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists                 = errors.New("email already exists")
	ErrUserDoesNotExist                   = errors.New("user does not exist")
	ErrInvalidOrExpiredPasswordResetToken = errors.New("invalid or expired password reset token")
	ErrPasswordResetLinkNotSent           = errors.New("password reset link has not been sent")
)
