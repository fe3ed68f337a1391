package signupwithemail

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
	EMAIL        = c.Email("test@test.test")
	RAW_PASSWORD = user.RawPassword("test-password")
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

func TestSignUpWithEmailService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	ctx := context.Background()
	result, err := suite.Service.Run(ctx, Input{Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.Nil(err)
	assert.NotEqual(user.ID(0), result.User.ID)
	assert.Equal(NOW, result.User.CreatedAt)
	assert.Equal(EMAIL, result.User.Email)
	assert.NotEqual(string(RAW_PASSWORD), string(result.User.PasswordHash))
	assert.False(result.User.PasswordResetToken.IsPresent)
	assert.False(result.User.PasswordResetTokenExpiresAt.IsPresent)
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	ctx := context.Background()
	suite.UserRepository.Create(ctx, user.CreateUserInput{
		Email:        EMAIL,
		PasswordHash: user.PasswordHash("test"),
		CreatedAt:    NOW,
	})

	_, err := suite.Service.Run(ctx, Input{Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.NotNil(err)
	assert.True(errors.Is(err, user.ErrEmailAlreadyExists))
	assert.Equal(1, len(suite.UserRepository.Users))
}

func (suite *testSuite) TestCaseVariedEmailConflicts() {
	ctx := context.Background()
	_, err := suite.Service.Run(ctx, Input{Email: c.NewEmail("Alice@X.com"), Password: RAW_PASSWORD})
	suite.Require().Nil(err)

	_, err = suite.Service.Run(ctx, Input{Email: c.NewEmail("alice@x.COM"), Password: RAW_PASSWORD})
	suite.Require().True(errors.Is(err, user.ErrEmailAlreadyExists))
}
