package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "passreset/internal/core/domain/common"
	"sync"
	"time"
)

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:           maxID + 1,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by email")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByPasswordResetToken(
	ctx context.Context,
	token PasswordResetToken,
	now time.Time,
) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.PasswordResetToken.IsPresent &&
			u.PasswordResetToken.Value == token &&
			u.PasswordResetTokenExpiresAt.Value.After(now) {
			return u, nil
		}
	}
	return u, ErrInvalidPasswordResetToken
}

func (r *FakeUserRepository) SetPasswordResetToken(
	ctx context.Context,
	input SetPasswordResetTokenInput,
) error {
	if r.ReturnError {
		return fmt.Errorf("could not set password reset token %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == input.UserID {
			r.Users[ix].PasswordResetToken = c.NewOptional(input.Token, true)
			r.Users[ix].PasswordResetTokenExpiresAt = c.NewOptional(input.ExpiresAt, true)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) ResetPassword(ctx context.Context, input ResetPasswordInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not reset password")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.PasswordResetToken.IsPresent &&
			u.PasswordResetToken.Value == input.Token &&
			u.PasswordResetTokenExpiresAt.Value.After(input.Now) {
			r.Users[ix].PasswordHash = input.NewPasswordHash
			r.Users[ix].PasswordResetToken = c.NewOptional(PasswordResetToken(""), false)
			r.Users[ix].PasswordResetTokenExpiresAt = c.NewOptional(time.Time{}, false)
			return r.Users[ix], nil
		}
	}
	return u, ErrInvalidPasswordResetToken
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakePasswordResetTokenGenerator struct {
	Token       PasswordResetToken
	ReturnError bool
}

func NewFakePasswordResetTokenGenerator(token string) *FakePasswordResetTokenGenerator {
	return &FakePasswordResetTokenGenerator{Token: PasswordResetToken(token)}
}

func (g *FakePasswordResetTokenGenerator) GeneratePasswordResetToken() (PasswordResetToken, error) {
	if g.ReturnError {
		return PasswordResetToken(""), fmt.Errorf("could not generate password reset token")
	}
	return g.Token, nil
}

type SentPasswordResetToken struct {
	User  User
	Token PasswordResetToken
}

type FakePasswordResetTokenSender struct {
	Sent        []SentPasswordResetToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendPasswordResetToken(
	ctx context.Context,
	user User,
	token PasswordResetToken,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token for user %d", user.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentPasswordResetToken{User: user, Token: token})
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

func (s *FakePasswordResetTokenSender) LastSent() SentPasswordResetToken {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}
