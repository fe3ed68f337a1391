package resetpassword

import (
	"context"
	"errors"
	c "passreset/internal/core/domain/common"
	"passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/user"
	"passreset/internal/core/services"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL            = c.Email("test@test.test")
	OLD_RAW_PASSWORD = user.RawPassword("old-password")
	NEW_RAW_PASSWORD = user.RawPassword("new-password")
	RESET_TOKEN      = user.PasswordResetToken("test-password-reset-token")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	PasswordHasher *user.FakePasswordHasher
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.PasswordHasher,
		func() time.Time { return NOW },
	)
}

func (suite *testSuite) createUserWithToken(expiresAt time.Time) user.User {
	hash, err := suite.PasswordHasher.HashPassword(OLD_RAW_PASSWORD)
	suite.Require().Nil(err)
	u, err := suite.UserRepository.Create(context.Background(), user.CreateUserInput{
		Email:        EMAIL,
		PasswordHash: hash,
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	err = suite.UserRepository.SetPasswordResetToken(context.Background(), user.SetPasswordResetTokenInput{
		UserID:    u.ID,
		Token:     RESET_TOKEN,
		ExpiresAt: expiresAt,
	})
	suite.Require().Nil(err)
	return u
}

func TestResetPasswordService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	createdUser := suite.createUserWithToken(NOW.Add(time.Hour))

	result, err := suite.Service.Run(
		context.Background(),
		Input{Token: RESET_TOKEN, NewPassword: NEW_RAW_PASSWORD},
	)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(createdUser.ID, result.User.ID)

	stored, err := suite.UserRepository.GetByEmail(context.Background(), EMAIL)
	assert.Nil(err)
	assert.False(stored.PasswordResetToken.IsPresent)
	assert.False(stored.PasswordResetTokenExpiresAt.IsPresent)
	assert.True(suite.PasswordHasher.ValidatePassword(NEW_RAW_PASSWORD, stored.PasswordHash))
	assert.False(suite.PasswordHasher.ValidatePassword(OLD_RAW_PASSWORD, stored.PasswordHash))
}

func (suite *testSuite) TestUnknownToken() {
	suite.createUserWithToken(NOW.Add(time.Hour))

	_, err := suite.Service.Run(
		context.Background(),
		Input{Token: "unknown-token", NewPassword: NEW_RAW_PASSWORD},
	)

	suite.Require().True(errors.Is(err, user.ErrInvalidPasswordResetToken))
}

func (suite *testSuite) TestExpiredToken() {
	suite.createUserWithToken(NOW.Add(-time.Second))

	_, err := suite.Service.Run(
		context.Background(),
		Input{Token: RESET_TOKEN, NewPassword: NEW_RAW_PASSWORD},
	)

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrInvalidPasswordResetToken))

	stored, getErr := suite.UserRepository.GetByEmail(context.Background(), EMAIL)
	assert.Nil(getErr)
	assert.True(suite.PasswordHasher.ValidatePassword(OLD_RAW_PASSWORD, stored.PasswordHash))
}

func (suite *testSuite) TestSecondConsumeFails() {
	suite.createUserWithToken(NOW.Add(time.Hour))

	_, err := suite.Service.Run(
		context.Background(),
		Input{Token: RESET_TOKEN, NewPassword: NEW_RAW_PASSWORD},
	)
	suite.Require().Nil(err)

	_, err = suite.Service.Run(
		context.Background(),
		Input{Token: RESET_TOKEN, NewPassword: user.RawPassword("yet-another-password")},
	)
	suite.Require().True(errors.Is(err, user.ErrInvalidPasswordResetToken))

	stored, err := suite.UserRepository.GetByEmail(context.Background(), EMAIL)
	suite.Require().Nil(err)
	suite.Require().True(suite.PasswordHasher.ValidatePassword(NEW_RAW_PASSWORD, stored.PasswordHash))
}

func (suite *testSuite) TestConcurrentConsumeSucceedsExactlyOnce() {
	suite.createUserWithToken(NOW.Add(time.Hour))

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		i := i
		go func() {
			defer wg.Done()
			_, errs[i] = suite.Service.Run(
				context.Background(),
				Input{Token: RESET_TOKEN, NewPassword: NEW_RAW_PASSWORD},
			)
		}()
	}
	wg.Wait()

	succeeded := 0
	invalid := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, user.ErrInvalidPasswordResetToken):
			invalid++
		}
	}

	assert := suite.Require()
	assert.Equal(1, succeeded)
	assert.Equal(attempts-1, invalid)
}
