package services

import (
	"passreset/internal/app/deps"
	"passreset/internal/core/services"
	loginwithemail "passreset/internal/core/services/log_in_with_email"
	resetpassword "passreset/internal/core/services/reset_password"
	sendpasswordresettoken "passreset/internal/core/services/send_password_reset_token"
	signupwithemail "passreset/internal/core/services/sign_up_with_email"
	verifypasswordresettoken "passreset/internal/core/services/verify_password_reset_token"
)

type Services struct {
	SignUpWithEmail          services.Service[signupwithemail.Input, signupwithemail.Result]
	LogInWithEmail           services.Service[loginwithemail.Input, loginwithemail.Result]
	SendPasswordResetToken   services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	VerifyPasswordResetToken services.Service[verifypasswordresettoken.Input, verifypasswordresettoken.Result]
	ResetPassword            services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = signupwithemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.Now,
	)
	s.LogInWithEmail = loginwithemail.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
	)
	s.SendPasswordResetToken = sendpasswordresettoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordResetTokenGenerator,
		deps.PasswordResetTokenSender,
		deps.Config.PasswordResetValidDuration(),
		deps.Config.PasswordResetSendTimeout,
		deps.Now,
	)
	s.VerifyPasswordResetToken = verifypasswordresettoken.New(
		deps.Logger,
		deps.UserRepository,
		deps.Now,
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UserRepository,
		deps.PasswordHasher,
		deps.Now,
	)

	return s
}
