package userrepo

import (
	"context"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Add(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := fromDomain(u)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// FindByTag matches the tag against the user id first, then the employee id.
func (r *GormUserRepository) FindByTag(ctx context.Context, tagID string) (*user.User, error) {
	tagID = strings.TrimSpace(tagID)
	if tagID == "" {
		return nil, errs.NewValueIsRequiredError("nfc tag id")
	}

	query := r.db.WithContext(ctx).Where("employee_id = ?", tagID)
	id, idErr := kernel.UUIDFromString(tagID)
	if idErr == nil {
		query = r.db.WithContext(ctx).Where("id = ? OR employee_id = ?", id.Bytes(), tagID)
	}

	var dtos []UserDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, errs.NewObjectNotFoundError("user with nfc tag", tagID)
	}

	for _, dto := range dtos {
		if idErr == nil && dto.ID == id.Bytes() {
			return toDomain(dto)
		}
	}
	return toDomain(dtos[0])
}
