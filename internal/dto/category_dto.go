package dto

import "strings"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CategoryRequest is the body of every category write (create, add
// subcategory, rename).
type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=3,max=255,catalogname" example:"electronics"`
}

// Normalize trims and lower-cases the name before validation.
func (r *CategoryRequest) Normalize() {
	r.Name = normalizeName(r.Name)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
