package email

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"net/url"

	"passreset/internal/core/domain/user"
)

// SMTPSender is the secondary delivery channel used when SES is unavailable.
type SMTPSender struct {
	host                 string
	port                 int
	username             string
	password             string
	sender               string
	passwordResetBaseUrl url.URL
}

func NewSMTPSender(
	host string,
	port int,
	username string,
	password string,
	sender string,
	passwordResetBaseUrl url.URL,
) *SMTPSender {
	return &SMTPSender{
		host:                 host,
		port:                 port,
		username:             username,
		password:             password,
		sender:               sender,
		passwordResetBaseUrl: passwordResetBaseUrl,
	}
}

func (s *SMTPSender) SendPasswordResetToken(
	ctx context.Context,
	u user.User,
	token user.PasswordResetToken,
) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if s.username != "" {
		auth := smtp.PlainAuth("", s.username, s.password, s.host)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	recipient := string(u.Email)
	if err := client.Mail(s.sender); err != nil {
		return err
	}
	if err := client.Rcpt(recipient); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Password reset\r\n\r\n"+
			"Follow the link to reset your password: %s\r\n"+
			"The link is valid for a limited time and can be used only once.\r\n",
		s.sender,
		recipient,
		s.passwordResetBaseUrl.JoinPath(string(token)).String(),
	)
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
