package resetpassword

import (
	"context"
	c "dashboard/internal/core/domain/common"
	"dashboard/internal/core/domain/logging"
	uow "dashboard/internal/core/domain/unit_of_work"
	"dashboard/internal/core/domain/user"
	"dashboard/internal/core/services"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL        = c.Email("test@test.test")
	OLD_PASSWORD = user.RawPassword("old-password")
	NEW_PASSWORD = user.RawPassword("new-password")
	TOKEN        = user.PasswordResetToken("test-token")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UnitOfWork     *uow.FakeUnitOfWork
	PasswordHasher *user.FakePasswordHasher
	Service        services.Service[Input, Result]
	User           user.User
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Service = New(
		suite.Logger,
		suite.UnitOfWork,
		suite.PasswordHasher,
		func() time.Time { return NOW },
	)

	ctx := context.Background()
	passwordHash, err := suite.PasswordHasher.HashPassword(OLD_PASSWORD)
	suite.Require().Nil(err)
	suite.User, err = suite.UnitOfWork.Context.UserRepository.Create(
		ctx,
		user.CreateUserInput{Email: EMAIL, PasswordHash: passwordHash, CreatedAt: NOW},
	)
	suite.Require().Nil(err)
	suite.setToken(TOKEN, NOW.Add(time.Hour))
}

func (suite *testSuite) setToken(token user.PasswordResetToken, expiresAt time.Time) {
	err := suite.UnitOfWork.Context.UserRepository.SetPasswordResetToken(
		context.Background(),
		user.SetPasswordResetTokenInput{ID: suite.User.ID, Token: token, ExpiresAt: expiresAt},
	)
	suite.Require().Nil(err)
}

func TestResetPasswordService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	ctx := context.Background()
	_, err := suite.Service.Run(ctx, Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	assert := suite.Require()
	assert.Nil(err)
	assert.True(suite.UnitOfWork.Context.WasCommitCalled)

	u := suite.UnitOfWork.Context.UserRepository.Get(EMAIL)
	assert.True(suite.PasswordHasher.ValidatePassword(NEW_PASSWORD, u.PasswordHash))
	assert.False(suite.PasswordHasher.ValidatePassword(OLD_PASSWORD, u.PasswordHash))
	assert.False(u.PasswordResetToken.IsPresent)
	assert.False(u.PasswordResetTokenExpiry.IsPresent)
	assert.False(suite.Logger.Contains(string(TOKEN)))
	assert.False(suite.Logger.Contains(string(NEW_PASSWORD)))
}

func (suite *testSuite) TestTokenIsSingleUse() {
	ctx := context.Background()
	_, err := suite.Service.Run(ctx, Input{Token: TOKEN, NewPassword: NEW_PASSWORD})
	suite.Require().Nil(err)

	_, err = suite.Service.Run(ctx, Input{Token: TOKEN, NewPassword: user.RawPassword("another-password")})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrInvalidOrExpiredPasswordResetToken)
	u := suite.UnitOfWork.Context.UserRepository.Get(EMAIL)
	assert.True(suite.PasswordHasher.ValidatePassword(NEW_PASSWORD, u.PasswordHash))
	assert.Equal(1, suite.UnitOfWork.Context.UserRepository.ResetPasswordCalls)
}

func (suite *testSuite) TestExpiredToken() {
	suite.setToken(TOKEN, NOW.Add(-time.Second))

	ctx := context.Background()
	_, err := suite.Service.Run(ctx, Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrInvalidOrExpiredPasswordResetToken)
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	assert.Equal(0, suite.UnitOfWork.Context.UserRepository.ResetPasswordCalls)
	u := suite.UnitOfWork.Context.UserRepository.Get(EMAIL)
	assert.True(suite.PasswordHasher.ValidatePassword(OLD_PASSWORD, u.PasswordHash))
}

func (suite *testSuite) TestTokenExpiringExactlyNowIsRejected() {
	suite.setToken(TOKEN, NOW)

	ctx := context.Background()
	_, err := suite.Service.Run(ctx, Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	suite.Require().ErrorIs(err, user.ErrInvalidOrExpiredPasswordResetToken)
}

func (suite *testSuite) TestUnknownToken() {
	cases := []user.PasswordResetToken{"unknown-token", "test-token ", "TEST-TOKEN", ""}
	for _, token := range cases {
		suite.Run(string(token), func() {
			ctx := context.Background()
			_, err := suite.Service.Run(ctx, Input{Token: token, NewPassword: NEW_PASSWORD})

			assert := suite.Require()
			assert.ErrorIs(err, user.ErrInvalidOrExpiredPasswordResetToken)
			assert.False(suite.UnitOfWork.Context.WasCommitCalled)
		})
	}
	u := suite.UnitOfWork.Context.UserRepository.Get(EMAIL)
	suite.Require().True(suite.PasswordHasher.ValidatePassword(OLD_PASSWORD, u.PasswordHash))
}

func (suite *testSuite) TestReissuedTokenInvalidatesPreviousOne() {
	newToken := user.PasswordResetToken("test-token-2")
	suite.setToken(newToken, NOW.Add(time.Hour))

	ctx := context.Background()
	_, err := suite.Service.Run(ctx, Input{Token: TOKEN, NewPassword: NEW_PASSWORD})
	suite.Require().ErrorIs(err, user.ErrInvalidOrExpiredPasswordResetToken)

	_, err = suite.Service.Run(ctx, Input{Token: newToken, NewPassword: NEW_PASSWORD})
	suite.Require().Nil(err)
}

func (suite *testSuite) TestConcurrentRedemptionSucceedsOnce() {
	const attempts = 10

	ctx := context.Background()
	errs := make(chan error, attempts)
	wg := sync.WaitGroup{}
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.Service.Run(ctx, Input{Token: TOKEN, NewPassword: NEW_PASSWORD})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		suite.Require().ErrorIs(err, user.ErrInvalidOrExpiredPasswordResetToken)
	}
	suite.Require().Equal(1, succeeded)
}

func (suite *testSuite) TestRepositoryError() {
	suite.UnitOfWork.Context.UserRepository.ReturnError = true

	ctx := context.Background()
	_, err := suite.Service.Run(ctx, Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	assert := suite.Require()
	assert.NotNil(err)
	assert.NotErrorIs(err, user.ErrInvalidOrExpiredPasswordResetToken)
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	assert.Equal(1, suite.Logger.CountOf(logging.ERROR))
}

func (suite *testSuite) TestBeginError() {
	suite.UnitOfWork.ReturnBeginError = true

	ctx := context.Background()
	_, err := suite.Service.Run(ctx, Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	assert := suite.Require()
	assert.NotNil(err)
	assert.Equal(0, suite.UnitOfWork.Context.UserRepository.ResetPasswordCalls)
}

func (suite *testSuite) TestCommitError() {
	suite.UnitOfWork.Context.ReturnCommitError = true

	ctx := context.Background()
	_, err := suite.Service.Run(ctx, Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	assert := suite.Require()
	assert.NotNil(err)
	assert.True(suite.UnitOfWork.Context.WasRollbackCalled)
	assert.Equal(1, suite.Logger.CountOf(logging.ERROR))
	assert.False(suite.Logger.Contains("successfully"))
}
