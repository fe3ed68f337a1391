package sendpasswordresettoken

import (
	"context"
	"errors"
	c "passreset/internal/core/domain/common"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/user"
	"passreset/internal/core/services"
	"time"

	"github.com/golang-module/carbon/v2"
)

type Input struct {
	Email c.Email
}

type Result struct {
	User user.User
	// Token is exposed only so that the HTTP layer can echo it in test mode;
	// it must never end up in a regular response.
	Token user.PasswordResetToken
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenGenerator user.PasswordResetTokenGenerator
	tokenSender    user.PasswordResetTokenSender
	validDuration  time.Duration
	sendTimeout    time.Duration
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenGenerator user.PasswordResetTokenGenerator,
	tokenSender user.PasswordResetTokenSender,
	validDuration time.Duration,
	sendTimeout time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if tokenSender == nil {
		panic(e.NewNilArgumentError("tokenSender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenGenerator: tokenGenerator,
		tokenSender:    tokenSender,
		validDuration:  validDuration,
		sendTimeout:    sendTimeout,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(
			ctx,
			"Password reset requested for unknown email.",
			logging.Entry("email", input.Email),
		)
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by email.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	token, err := s.tokenGenerator.GeneratePasswordResetToken()
	if err != nil {
		s.log.Error(ctx, "Could not generate password reset token.", logging.Entry("err", err))
		return result, err
	}

	now := s.now()
	expiresAt := carbon.Time2Carbon(now).AddSeconds(int(s.validDuration.Seconds())).Carbon2Time()
	// Overwrites any previously issued token for the account.
	err = s.userRepository.SetPasswordResetToken(ctx, user.SetPasswordResetTokenInput{
		UserID:    u.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not set password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// The token is committed at this point. Delivery is best-effort: a failing
	// sender is logged and the request still succeeds, the persisted token
	// stays valid either way.
	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()
	if err := s.tokenSender.SendPasswordResetToken(sendCtx, u, token); err != nil {
		s.log.Error(
			ctx,
			"Could not deliver password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
	} else {
		s.log.Info(
			ctx,
			"Password reset token has been sent.",
			logging.Entry("userID", u.ID),
			logging.Entry("expiresAt", expiresAt),
		)
	}

	return Result{User: u, Token: token}, nil
}
