package uow

import (
	"context"
	e "dashboard/internal/core/domain/errors"
	uow "dashboard/internal/core/domain/unit_of_work"
	"dashboard/internal/core/domain/user"
	dbuser "dashboard/internal/db/user"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type txContext struct {
	tx    pgx.Tx
	users *dbuser.PgxUserRepository
}

func (c *txContext) Commit(ctx context.Context) error {
	return c.tx.Commit(ctx)
}

func (c *txContext) Rollback(ctx context.Context) error {
	err := c.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

func (c *txContext) Users() user.UserRepository {
	return c.users
}

// PgxUnitOfWork runs every unit in its own READ COMMITTED transaction.
// Token redemption relies on row locks rather than a stricter level.
type PgxUnitOfWork struct {
	db *pgxpool.Pool
}

func NewPgxUnitOfWork(db *pgxpool.Pool) *PgxUnitOfWork {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUnitOfWork{db: db}
}

func (u *PgxUnitOfWork) Begin(ctx context.Context) (uow.Context, error) {
	tx, err := u.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, err
	}
	return &txContext{tx: tx, users: dbuser.NewPgxRepository(tx)}, nil
}
