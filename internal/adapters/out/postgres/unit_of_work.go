// Package postgres provides the GORM-based Unit of Work implementation.
// A unit of work scopes one business transaction: repositories obtained
// from it share the same database transaction, so an order and its items
// commit or roll back together.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/postgres/statusrepo"
	"orders/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate modified during the unit of work,
// recorded for post-commit processing such as event publication.
type trackedAggregate struct {
	ID        int64
	Aggregate any
}

// GormUnitOfWorkFactory creates isolated UnitOfWork instances over one
// shared GORM connection. Each business operation gets its own instance.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory bound to the database
// connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the order
// repository and the status catalog.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling Begin again on an open unit of work
// is a no-op; nested transactions are never created.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. The unit of work cannot be reused
// afterwards.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. After a commit (or a prior rollback)
// it is a no-op, which lets callers run it unconditionally in a defer.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns the order repository bound to the current
// transaction, or to the main connection when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// StatusCatalog returns the status catalog bound to the current
// transaction, or to the main connection when none is open.
func (uow *GormUnitOfWork) StatusCatalog() ports.StatusCatalog {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return statusrepo.NewGormStatusCatalog(db)
}

// TrackAggregate registers a modified aggregate. Called by repositories on
// Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id int64, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
