package dto

import "github.com/kelechi/skylinkbackend/apperr"

// CreateProductDTO is parsed from the "data" multipart field (JSON).
// Price is a pointer so that a zero price still satisfies "required".
type CreateProductDTO struct {
	Name          string `json:"name" binding:"required,min=2"`
	Price         *int64 `json:"price" binding:"required"`
	Description   string `json:"description"`
	Specification string `json:"specification"`
}

func (d *CreateProductDTO) Validate() error {
	if d.Price == nil {
		return apperr.Validation("price", "price is required")
	}
	if *d.Price < 0 {
		return apperr.Validation("price", "price must be a positive number")
	}
	return nil
}

// UpdateProductDTO has all fields as optional pointers; only present fields are
// applied. A replacement image travels as a separate multipart file.
type UpdateProductDTO struct {
	Name          *string `json:"name,omitempty"`
	Price         *int64  `json:"price,omitempty"`
	Description   *string `json:"description,omitempty"`
	Specification *string `json:"specification,omitempty"`
}

func (d *UpdateProductDTO) Validate() error {
	if d.Price != nil && *d.Price < 0 {
		return apperr.Validation("price", "price must be a positive number")
	}
	if d.Name != nil && *d.Name == "" {
		return apperr.Validation("name", "name cannot be empty")
	}
	return nil
}
