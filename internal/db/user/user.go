package user

import (
	"context"
	c "dashboard/internal/core/domain/common"
	e "dashboard/internal/core/domain/errors"
	"dashboard/internal/core/domain/user"
	"errors"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "users_email_idx"

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

const userColumns = `id, email, name, password_hash, created_at, reset_token, reset_token_expiry`

const createUser = `
INSERT INTO users (email, name, password_hash, created_at)
VALUES ($1, $2, $3, $4)
RETURNING ` + userColumns

const getUserByEmail = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1`

const getUserByLiveResetTokenForUpdate = `
SELECT ` + userColumns + `
FROM users
WHERE reset_token = $1 AND reset_token_expiry > $2
FOR UPDATE`

const setResetToken = `
UPDATE users
SET reset_token = $2, reset_token_expiry = $3
WHERE id = $1`

const resetPassword = `
UPDATE users
SET password_hash = $3, reset_token = NULL, reset_token_expiry = NULL
WHERE id = $1 AND reset_token = $2`

type PgxUserRepository struct {
	db DBTX
}

func NewPgxRepository(db DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		createUser,
		string(input.Email),
		input.Name,
		string(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	u, err = scanUser(r.db.QueryRow(ctx, getUserByEmail, string(email)))
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByLivePasswordResetTokenWithLock(
	ctx context.Context,
	token user.PasswordResetToken,
	now time.Time,
) (u user.User, err error) {
	if token == "" {
		return u, user.ErrInvalidOrExpiredPasswordResetToken
	}
	u, err = scanUser(r.db.QueryRow(ctx, getUserByLiveResetTokenForUpdate, string(token), now))
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrInvalidOrExpiredPasswordResetToken
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) SetPasswordResetToken(ctx context.Context, input user.SetPasswordResetTokenInput) error {
	tag, err := r.db.Exec(ctx, setResetToken, int64(input.ID), string(input.Token), input.ExpiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) ResetPassword(ctx context.Context, input user.ResetPasswordInput) error {
	tag, err := r.db.Exec(
		ctx,
		resetPassword,
		int64(input.ID),
		string(input.Token),
		string(input.PasswordHash),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrInvalidOrExpiredPasswordResetToken
	}
	return nil
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id               int64
		email            string
		name             string
		passwordHash     string
		createdAt        time.Time
		resetToken       pgtype.Text
		resetTokenExpiry pgtype.Timestamptz
	)
	err = row.Scan(&id, &email, &name, &passwordHash, &createdAt, &resetToken, &resetTokenExpiry)
	if err != nil {
		return u, err
	}
	return user.User{
		ID:           user.ID(id),
		Email:        c.Email(email),
		Name:         name,
		PasswordHash: user.PasswordHash(passwordHash),
		CreatedAt:    createdAt.UTC(),
		PasswordResetToken: c.NewOptional(
			user.PasswordResetToken(resetToken.String),
			resetToken.Status == pgtype.Present,
		),
		PasswordResetTokenExpiry: c.NewOptional(
			resetTokenExpiry.Time.UTC(),
			resetTokenExpiry.Status == pgtype.Present,
		),
	}, nil
}
