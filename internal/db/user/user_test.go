package user

import (
	"context"
	c "dashboard/internal/core/domain/common"
	"dashboard/internal/core/domain/user"
	"dashboard/internal/db"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = c.Email("test@test.test")
	PASSWORD_HASH = user.PasswordHash("test-password-hash")
	TOKEN         = user.PasswordResetToken("test-reset-token")
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUserRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createUser() user.User {
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email:        EMAIL,
		Name:         "test",
		PasswordHash: PASSWORD_HASH,
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	return u
}

func (suite *testSuite) TestCreateSuccess() {
	u := suite.createUser()

	assert := suite.Require()
	assert.NotEqual(user.ID(0), u.ID)
	assert.Equal(EMAIL, u.Email)
	assert.Equal("test", u.Name)
	assert.Equal(PASSWORD_HASH, u.PasswordHash)
	assert.Equal(NOW, u.CreatedAt)
	assert.False(u.PasswordResetToken.IsPresent)
	assert.False(u.PasswordResetTokenExpiry.IsPresent)
}

func (suite *testSuite) TestCreateDuplicateEmail() {
	suite.createUser()

	_, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email:        EMAIL,
		Name:         "other",
		PasswordHash: PASSWORD_HASH,
		CreatedAt:    NOW,
	})

	suite.Require().ErrorIs(err, user.ErrEmailAlreadyExists)
}

func (suite *testSuite) TestGetByEmail() {
	created := suite.createUser()

	u, err := suite.repo.GetByEmail(context.Background(), EMAIL)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created, u)
}

func (suite *testSuite) TestGetByEmailDoesNotExist() {
	_, err := suite.repo.GetByEmail(context.Background(), EMAIL)

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestSetPasswordResetTokenOverwritesPreviousOne() {
	created := suite.createUser()
	ctx := context.Background()

	err := suite.repo.SetPasswordResetToken(ctx, user.SetPasswordResetTokenInput{
		ID: created.ID, Token: user.PasswordResetToken("first"), ExpiresAt: NOW.Add(time.Hour),
	})
	suite.Require().Nil(err)
	err = suite.repo.SetPasswordResetToken(ctx, user.SetPasswordResetTokenInput{
		ID: created.ID, Token: TOKEN, ExpiresAt: NOW.Add(2 * time.Hour),
	})
	suite.Require().Nil(err)

	u, err := suite.repo.GetByEmail(ctx, EMAIL)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(c.Some(TOKEN), u.PasswordResetToken)
	assert.Equal(c.Some(NOW.Add(2*time.Hour)), u.PasswordResetTokenExpiry)

	_, err = suite.repo.GetByLivePasswordResetTokenWithLock(ctx, user.PasswordResetToken("first"), NOW)
	assert.ErrorIs(err, user.ErrInvalidOrExpiredPasswordResetToken)
}

func (suite *testSuite) TestSetPasswordResetTokenUserDoesNotExist() {
	err := suite.repo.SetPasswordResetToken(context.Background(), user.SetPasswordResetTokenInput{
		ID: user.ID(100500), Token: TOKEN, ExpiresAt: NOW,
	})

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestGetByLivePasswordResetToken() {
	created := suite.createUser()
	ctx := context.Background()
	err := suite.repo.SetPasswordResetToken(ctx, user.SetPasswordResetTokenInput{
		ID: created.ID, Token: TOKEN, ExpiresAt: NOW.Add(time.Hour),
	})
	suite.Require().Nil(err)

	type test struct {
		id    string
		token user.PasswordResetToken
		now   time.Time
		found bool
	}
	cases := []test{
		{id: "live", token: TOKEN, now: NOW, found: true},
		{id: "just before expiry", token: TOKEN, now: NOW.Add(time.Hour - time.Second), found: true},
		{id: "at expiry", token: TOKEN, now: NOW.Add(time.Hour), found: false},
		{id: "expired", token: TOKEN, now: NOW.Add(2 * time.Hour), found: false},
		{id: "unknown", token: user.PasswordResetToken("unknown"), now: NOW, found: false},
		{id: "empty", token: user.PasswordResetToken(""), now: NOW, found: false},
	}
	for _, testcase := range cases {
		suite.Run(testcase.id, func() {
			u, err := suite.repo.GetByLivePasswordResetTokenWithLock(ctx, testcase.token, testcase.now)

			assert := suite.Require()
			if testcase.found {
				assert.Nil(err)
				assert.Equal(created.ID, u.ID)
				return
			}
			assert.ErrorIs(err, user.ErrInvalidOrExpiredPasswordResetToken)
		})
	}
}

func (suite *testSuite) TestResetPassword() {
	created := suite.createUser()
	ctx := context.Background()
	err := suite.repo.SetPasswordResetToken(ctx, user.SetPasswordResetTokenInput{
		ID: created.ID, Token: TOKEN, ExpiresAt: NOW.Add(time.Hour),
	})
	suite.Require().Nil(err)

	newHash := user.PasswordHash("new-password-hash")
	err = suite.repo.ResetPassword(ctx, user.ResetPasswordInput{ID: created.ID, Token: TOKEN, PasswordHash: newHash})
	suite.Require().Nil(err)

	u, err := suite.repo.GetByEmail(ctx, EMAIL)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(newHash, u.PasswordHash)
	assert.False(u.PasswordResetToken.IsPresent)
	assert.False(u.PasswordResetTokenExpiry.IsPresent)

	err = suite.repo.ResetPassword(ctx, user.ResetPasswordInput{
		ID: created.ID, Token: TOKEN, PasswordHash: user.PasswordHash("another-hash"),
	})
	assert.ErrorIs(err, user.ErrInvalidOrExpiredPasswordResetToken)
}
