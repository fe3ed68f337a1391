package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserDoesNotExist   = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidPasswordResetToken deliberately covers unknown, already
	// consumed and expired tokens alike so that callers can not tell the
	// sub-cases apart.
	ErrInvalidPasswordResetToken      = errors.New("invalid or expired password reset token")
	ErrPasswordResetTokenNotDelivered = errors.New("password reset token could not be delivered")
)
