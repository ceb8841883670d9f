package uow

import (
	"context"
	"dashboard/internal/core/domain/user"
)

// Context is one open transaction. Rollback after a successful Commit
// does nothing, so callers defer it right after Begin.
type Context interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// Users is bound to this transaction. Row locks it takes are held
	// until Commit or Rollback.
	Users() user.UserRepository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
