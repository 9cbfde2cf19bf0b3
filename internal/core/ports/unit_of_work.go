package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command, keeping
// concurrent operations isolated from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. A command begins it,
// performs repository operations bound to the transaction, and commits;
// a deferred rollback covers every early return.
type UnitOfWork interface {
	// Begin starts the database transaction.
	Begin(ctx context.Context) error

	// Commit commits the transaction. Returns an error if no transaction
	// is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls the transaction back. Calling it after a successful
	// commit is a harmless no-op, enabling the deferred-rollback pattern.
	Rollback(ctx context.Context) error

	// OrderRepository returns an order repository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// StatusCatalog returns a status catalog reader bound to the current
	// transaction.
	StatusCatalog() StatusCatalog
}
