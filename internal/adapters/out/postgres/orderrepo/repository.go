package orderrepo

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker records aggregates modified within the current unit of
// work.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormOrderRepository creates a GORM-backed order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(int64, any) {}

// NewReadOnlyGormOrderRepository creates a repository for read paths that
// run outside a unit of work. Tracked aggregates are discarded.
func NewReadOnlyGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: noopTracker{},
	}
}

// Add inserts the order and its items in one statement and writes the
// generated id back into the aggregate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := aggregate.AssignID(dto.ID); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update rewrites the lifecycle columns of an existing order. Items are
// immutable after creation and are left untouched.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID()).
		Updates(map[string]any{
			"deliverer_id": aggregate.DelivererID(),
			"status_id":    int64(aggregate.Status()),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its items by id.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListAwaitingPickup retrieves every order waiting for a deliverer,
// newest first.
func (r *GormOrderRepository) ListAwaitingPickup(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Where("status_id = ? AND deliverer_id IS NULL", order.AwaitingDeliverer).
		Order("created_at DESC").
		Order("id DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}
