package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node of the category forest. A nil ParentID marks a
// top-level category.
type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index" json:"parent_id"`
	Parent    *Category  `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"parent,omitempty"`
	Children  []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

// IsTopLevel reports whether the category has no parent.
func (c Category) IsTopLevel() bool { return c.ParentID == nil }
