package model

import (
	"time"

	"github.com/google/uuid"
)

// Attribute is a key/value pair owned by exactly one product.
type Attribute struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Key       string    `gorm:"type:varchar(255);not null" json:"key"`
	Value     string    `gorm:"type:varchar(255);not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Attribute) TableName() string { return "attributes" }
