// Package userrepo stores the directory of custody actors.
package userrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	DisplayName string    `gorm:"type:varchar(255);not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:          u.ID().Bytes(),
		EmployeeID:  u.EmployeeID(),
		DisplayName: u.DisplayName(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return user.NewUser(id, dto.EmployeeID, dto.DisplayName)
}
