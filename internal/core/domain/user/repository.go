package user

import (
	"context"
	c "passreset/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	Email        c.Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type SetPasswordResetTokenInput struct {
	UserID    ID
	Token     PasswordResetToken
	ExpiresAt time.Time
}

type ResetPasswordInput struct {
	Token           PasswordResetToken
	NewPasswordHash PasswordHash
	Now             time.Time
}

type UserRepository interface {
	// Create fails with ErrEmailAlreadyExists if the normalized email is taken.
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	// GetByPasswordResetToken matches only a token whose expiry is strictly
	// after now; an unknown and an expired token both fail with
	// ErrInvalidPasswordResetToken.
	GetByPasswordResetToken(ctx context.Context, token PasswordResetToken, now time.Time) (User, error)
	// SetPasswordResetToken writes token and expiry in a single update,
	// unconditionally replacing any previously issued token.
	SetPasswordResetToken(ctx context.Context, input SetPasswordResetTokenInput) error
	// ResetPassword is a conditional update scoped to the record still holding
	// a matching, unexpired token: it replaces the password hash and clears
	// both token fields in one write. ErrInvalidPasswordResetToken if no
	// record was affected, so concurrent consumers succeed at most once.
	ResetPassword(ctx context.Context, input ResetPasswordInput) (User, error)
}
