package dto

import (
	"github.com/kelechi/skylinkbackend/apperr"
	"github.com/kelechi/skylinkbackend/models"
)

type CreateUserDTO struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

func (d *CreateUserDTO) Validate() error {
	if !models.ValidRole(models.Role(d.Role)) {
		return apperr.Validation("role", "role must be ADMIN or STAFF")
	}
	return nil
}

type UpdateUserDTO struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
	Role  *string `json:"role,omitempty"`
}

func (d *UpdateUserDTO) Validate() error {
	if d.Role != nil && !models.ValidRole(models.Role(*d.Role)) {
		return apperr.Validation("role", "role must be ADMIN or STAFF")
	}
	if d.Name != nil && *d.Name == "" {
		return apperr.Validation("name", "name cannot be empty")
	}
	return nil
}

type ResetPasswordDTO struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type ChangeMyPasswordDTO struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}
