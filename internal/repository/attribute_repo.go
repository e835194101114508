package repository

import (
	"context"

	"github.com/Hemantbam/Catalog-management/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttributeRepository defines the data access contract for product attributes.
type AttributeRepository interface {
	Create(ctx context.Context, a *model.Attribute) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Attribute, error)
	FindByKey(ctx context.Context, productID uuid.UUID, key string) (*model.Attribute, error)
	// FindLinked succeeds only when the attribute belongs to productID.
	FindLinked(ctx context.Context, id, productID uuid.UUID) (*model.Attribute, error)
	Update(ctx context.Context, id, productID uuid.UUID, key, value string) error
	Delete(ctx context.Context, id, productID uuid.UUID) error
}

type attributeRepo struct{ db *gorm.DB }

func NewAttributeRepository(db *gorm.DB) AttributeRepository {
	return &attributeRepo{db: db}
}

func (r *attributeRepo) Create(ctx context.Context, a *model.Attribute) error {
	res := r.db.WithContext(ctx).Create(a)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *attributeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Attribute, error) {
	var a model.Attribute
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attributeRepo) FindByKey(ctx context.Context, productID uuid.UUID, key string) (*model.Attribute, error) {
	var a model.Attribute
	err := r.db.WithContext(ctx).Where("product_id = ? AND key = ?", productID, key).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attributeRepo) FindLinked(ctx context.Context, id, productID uuid.UUID) (*model.Attribute, error) {
	var a model.Attribute
	err := r.db.WithContext(ctx).Where("id = ? AND product_id = ?", id, productID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attributeRepo) Update(ctx context.Context, id, productID uuid.UUID, key, value string) error {
	res := r.db.WithContext(ctx).Model(&model.Attribute{}).
		Where("id = ? AND product_id = ?", id, productID).
		Updates(map[string]any{"key": key, "value": value})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *attributeRepo) Delete(ctx context.Context, id, productID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND product_id = ?", id, productID).Delete(&model.Attribute{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
