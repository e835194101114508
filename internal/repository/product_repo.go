package repository

import (
	"context"

	"github.com/Hemantbam/Catalog-management/internal/dto"
	"github.com/Hemantbam/Catalog-management/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductChanges is the set of columns an update may touch. A nil
// Description leaves the stored description unchanged.
type ProductChanges struct {
	Name        string
	Description *string
	Price       decimal.Decimal
}

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	// FindByID preloads the owning category.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	// FindByNameInCategory matches within one category; a nil categoryID
	// matches uncategorised products.
	FindByNameInCategory(ctx context.Context, name string, categoryID *uuid.UUID) (*model.Product, error)
	// FindByIDInCategory succeeds only when the product is linked to categoryID.
	FindByIDInCategory(ctx context.Context, id uuid.UUID, categoryID *uuid.UUID) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, changes ProductChanges) error
	// Delete removes the product and its attributes in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
	// Search returns matching products ordered by name with category and
	// attributes preloaded.
	Search(ctx context.Context, filter dto.ProductFilter) ([]model.Product, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	res := r.db.WithContext(ctx).Omit("Category", "Attributes").Create(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByNameInCategory(ctx context.Context, name string, categoryID *uuid.UUID) (*model.Product, error) {
	var p model.Product
	q := r.db.WithContext(ctx).Where("name = ?", name)
	q = whereCategory(q, categoryID)
	if err := q.First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByIDInCategory(ctx context.Context, id uuid.UUID, categoryID *uuid.UUID) (*model.Product, error) {
	var p model.Product
	q := r.db.WithContext(ctx).Where("id = ?", id)
	q = whereCategory(q, categoryID)
	if err := q.First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Update(ctx context.Context, id uuid.UUID, changes ProductChanges) error {
	cols := map[string]any{
		"name":  changes.Name,
		"price": changes.Price,
	}
	if changes.Description != nil {
		cols["description"] = *changes.Description
	}
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.Attribute{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Product{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoRowsAffected
		}
		return nil
	})
}

func (r *productRepo) Search(ctx context.Context, filter dto.ProductFilter) ([]model.Product, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.CategoryName != "" {
		q = q.Joins("INNER JOIN categories ON categories.id = products.category_id").
			Where("categories.name ILIKE ?", containsPattern(filter.CategoryName))
	}
	if filter.ProductName != "" {
		q = q.Where("products.name ILIKE ?", containsPattern(filter.ProductName))
	}
	if filter.AttributeKey != "" {
		// EXISTS keeps one row per product however many attributes match.
		q = q.Where(
			"EXISTS (SELECT 1 FROM attributes a WHERE a.product_id = products.id AND a.key ILIKE ?)",
			containsPattern(filter.AttributeKey),
		)
	}

	var products []model.Product
	err := q.
		Preload("Category").
		Preload("Attributes", func(db *gorm.DB) *gorm.DB { return db.Order("attributes.key ASC") }).
		Order("products.name ASC").
		Find(&products).Error
	return products, err
}

func whereCategory(q *gorm.DB, categoryID *uuid.UUID) *gorm.DB {
	if categoryID == nil {
		return q.Where("category_id IS NULL")
	}
	return q.Where("category_id = ?", *categoryID)
}
