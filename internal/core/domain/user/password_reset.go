package user

import "context"

// PasswordResetToken is an opaque single-use secret. Its value must never
// appear in logs or response bodies, hence the masked Stringer.
type PasswordResetToken string

func (t PasswordResetToken) String() string {
	return "***"
}

type PasswordResetTokenGenerator interface {
	GeneratePasswordResetToken() (PasswordResetToken, error)
}

// PasswordResetTokenSender delivers the token to the account holder
// out-of-band. Delivery happens after the token has been persisted and its
// failure must not affect the stored token.
type PasswordResetTokenSender interface {
	SendPasswordResetToken(ctx context.Context, user User, token PasswordResetToken) error
}
