package inventoryrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements ports.InventoryRepository.
//
// Reserve reads the row with SELECT ... FOR UPDATE and writes the decrement in
// the same transaction, so concurrent reservations on one sku serialize on the
// row lock. It must run inside a unit of work; outside one the lock is
// released at the end of the SELECT.
type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) Reserve(ctx context.Context, sku kernel.SKU, requested int) (int, error) {
	if err := sku.Validate(); err != nil {
		return 0, err
	}
	if requested < 0 {
		return 0, errs.NewValueIsOutOfRangeError("requested", requested, 0, "unbounded")
	}

	db := r.db.WithContext(ctx)

	var dto InventoryDTO
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&dto, "sku = ?", sku.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	record, err := toDomain(dto)
	if err != nil {
		return 0, err
	}

	granted, err := record.Reserve(requested)
	if err != nil {
		return 0, err
	}
	if granted == 0 {
		return 0, nil
	}

	if err = db.Model(&InventoryDTO{}).
		Where("sku = ?", dto.SKU).
		Update("available", record.Available()).Error; err != nil {
		return 0, fmt.Errorf("write reservation of %s: %w", sku, err)
	}

	return granted, nil
}

// Restock upserts the row, adding qty to whatever is available.
func (r *GormInventoryRepository) Restock(ctx context.Context, sku kernel.SKU, qty int) (*inventory.Record, error) {
	if err := sku.Validate(); err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("restock quantity", qty, 1, "unbounded")
	}

	dto := InventoryDTO{SKU: sku.String(), Available: qty}
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "sku"}},
				DoUpdates: clause.Assignments(map[string]any{
					"available": gorm.Expr("inventory.available + excluded.available"),
				}),
			},
			clause.Returning{},
		).
		Create(&dto).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormInventoryRepository) Get(ctx context.Context, sku kernel.SKU) (*inventory.Record, error) {
	if err := sku.Validate(); err != nil {
		return nil, err
	}

	var dto InventoryDTO
	if err := r.db.WithContext(ctx).First(&dto, "sku = ?", sku.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory", sku.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
