package user

import (
	"fmt"
	c "passreset/internal/core/domain/common"
	e "passreset/internal/core/domain/errors"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type User struct {
	ID                          ID
	Email                       c.Email
	PasswordHash                PasswordHash
	CreatedAt                   time.Time
	PasswordResetToken          c.Optional[PasswordResetToken]
	PasswordResetTokenExpiresAt c.Optional[time.Time]
}

func (u *User) Validate() error {
	if u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for user %d", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %d", u.ID))
	}
	// Token and expiry must be set and cleared together.
	if u.PasswordResetToken.IsPresent != u.PasswordResetTokenExpiresAt.IsPresent {
		return e.NewInvalidStateError(
			fmt.Sprintf("password reset token and its expiry are out of sync for user %d", u.ID),
		)
	}
	return nil
}

// HasPendingPasswordReset reports whether a not-yet-expired reset token is set.
// Expiry is computed at read time, it is never persisted as a separate state.
func (u *User) HasPendingPasswordReset(now time.Time) bool {
	return u.PasswordResetToken.IsPresent && u.PasswordResetTokenExpiresAt.Value.After(now)
}
