// Package statusrepo persists the order status catalog. The catalog is a
// small, seeded reference table; everything outside it refers to statuses
// by id only.
package statusrepo

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"gorm.io/gorm"
)

// StatusDTO is one row of the status catalog.
type StatusDTO struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

// TableName pins the table name to "order_statuses".
func (StatusDTO) TableName() string {
	return "order_statuses"
}

// GormStatusCatalog implements ports.StatusCatalog using GORM.
type GormStatusCatalog struct {
	db *gorm.DB
}

// NewGormStatusCatalog creates a GORM-backed status catalog.
func NewGormStatusCatalog(db *gorm.DB) *GormStatusCatalog {
	return &GormStatusCatalog{db: db}
}

// Exists reports whether the catalog knows the status id.
func (c *GormStatusCatalog) Exists(ctx context.Context, id order.Status) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&StatusDTO{}).
		Where("id = ?", int64(id)).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Get retrieves one catalog row by id.
func (c *GormStatusCatalog) Get(ctx context.Context, id order.Status) (ports.StatusRecord, error) {
	var dto StatusDTO
	err := c.db.WithContext(ctx).First(&dto, "id = ?", int64(id)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.StatusRecord{}, errs.NewObjectNotFoundError("statusId", int64(id))
		}
		return ports.StatusRecord{}, err
	}

	return ports.StatusRecord{ID: order.Status(dto.ID), Name: dto.Name}, nil
}

// Seed upserts the seven lifecycle statuses. Run at startup so a fresh
// database accepts orders immediately.
func Seed(ctx context.Context, db *gorm.DB) error {
	statuses := []order.Status{
		order.AwaitingRestaurant,
		order.AwaitingDeliverer,
		order.InPreparation,
		order.InDelivery,
		order.Delivered,
		order.RefusedByRestaurant,
		order.Cancelled,
	}

	for _, status := range statuses {
		row := StatusDTO{ID: int64(status), Name: status.String()}
		err := db.WithContext(ctx).
			Where(StatusDTO{ID: row.ID}).
			Assign(StatusDTO{Name: row.Name}).
			FirstOrCreate(&StatusDTO{}).Error
		if err != nil {
			return err
		}
	}

	return nil
}
