package verifypasswordresettoken

import (
	"context"
	"errors"
	c "passreset/internal/core/domain/common"
	"passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/user"
	"passreset/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL       = c.Email("test@test.test")
	RESET_TOKEN = user.PasswordResetToken("test-password-reset-token")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	Now            time.Time
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.Now = NOW
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		func() time.Time { return suite.Now },
	)
}

func (suite *testSuite) createUserWithToken(expiresAt time.Time) user.User {
	u, err := suite.UserRepository.Create(context.Background(), user.CreateUserInput{
		Email:        EMAIL,
		PasswordHash: user.PasswordHash("test-hash"),
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

func TestVerifyPasswordResetTokenService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	createdUser := suite.createUserWithToken(NOW.Add(time.Hour))

	result, err := suite.Service.Run(context.Background(), Input{Token: RESET_TOKEN})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(createdUser.ID, result.User.ID)
}

func (suite *testSuite) TestUnknownToken() {
	suite.createUserWithToken(NOW.Add(time.Hour))

	_, err := suite.Service.Run(context.Background(), Input{Token: "unknown-token"})

	suite.Require().True(errors.Is(err, user.ErrInvalidPasswordResetToken))
}

func (suite *testSuite) TestExpiredToken() {
	suite.createUserWithToken(NOW.Add(time.Hour))
	suite.Now = NOW.Add(time.Hour)

	_, err := suite.Service.Run(context.Background(), Input{Token: RESET_TOKEN})

	suite.Require().True(errors.Is(err, user.ErrInvalidPasswordResetToken))
}

func (suite *testSuite) TestVerificationIsIdempotent() {
	suite.createUserWithToken(NOW.Add(time.Hour))

	for i := 0; i < 5; i++ {
		result, err := suite.Service.Run(context.Background(), Input{Token: RESET_TOKEN})
		suite.Require().Nil(err)
		suite.Require().Equal(EMAIL, result.User.Email)
	}

	stored, err := suite.UserRepository.GetByEmail(context.Background(), EMAIL)
	suite.Require().Nil(err)
	suite.Require().True(stored.PasswordResetToken.IsPresent)
}
