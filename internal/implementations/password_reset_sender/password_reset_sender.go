package passwordresetsender

import (
	"context"
	"errors"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/user"
)

// Fallback tries the configured senders in order and stops at the first one
// that succeeds. Only the ordering is its concern; each sender decides for
// itself how a token gets delivered.
type Fallback struct {
	log     logging.Logger
	senders []user.PasswordResetTokenSender
}

func NewFallback(log logging.Logger, senders ...user.PasswordResetTokenSender) *Fallback {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if len(senders) == 0 {
		panic(e.NewNilArgumentError("senders"))
	}
	for _, s := range senders {
		if s == nil {
			panic(e.NewNilArgumentError("senders"))
		}
	}
	return &Fallback{log: log, senders: senders}
}

func (f *Fallback) SendPasswordResetToken(
	ctx context.Context,
	u user.User,
	token user.PasswordResetToken,
) error {
	for ix, sender := range f.senders {
		err := sender.SendPasswordResetToken(ctx, u, token)
		if err == nil {
			if ix > 0 {
				f.log.Info(
					ctx,
					"Password reset token delivered by a fallback sender.",
					logging.Entry("senderIx", ix),
					logging.Entry("userID", u.ID),
				)
			}
			return nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		f.log.Warning(
			ctx,
			"Password reset token sender failed, trying the next one.",
			logging.Entry("senderIx", ix),
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
	}
	return user.ErrPasswordResetTokenNotDelivered
}
