package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ProductRequest is used for both product creation and update. The category
// is never part of the body: creation takes it from the path and updates
// cannot move a product.
type ProductRequest struct {
	Name        string          `json:"name"        validate:"required,min=3,max=255,catalogname" example:"iphone16"`
	Description *string         `json:"description" validate:"omitempty,min=3" example:"latest apple phone"`
	Price       decimal.Decimal `json:"price"       validate:"required,gte=1,lte=99999999.99" swaggertype:"number" example:"999"`
}

func (r *ProductRequest) Normalize() {
	r.Name = normalizeName(r.Name)
	if r.Description != nil {
		d := normalizeName(*r.Description)
		r.Description = &d
	}
}

// ─── Filter ──────────────────────────────────────────────────────────────────

// ProductFilter holds the optional search criteria of GET /products. Every
// non-empty field is applied as a case-insensitive substring match.
type ProductFilter struct {
	CategoryName string `form:"categoryName"`
	ProductName  string `form:"productName"`
	AttributeKey string `form:"attributeKey"`
}

func (f *ProductFilter) Normalize() {
	f.CategoryName = normalizeName(f.CategoryName)
	f.ProductName = normalizeName(f.ProductName)
	f.AttributeKey = normalizeName(f.AttributeKey)
}

// IsEmpty reports whether no criterion was supplied.
func (f ProductFilter) IsEmpty() bool {
	return f.CategoryName == "" && f.ProductName == "" && f.AttributeKey == ""
}
