package repository

import (
	"context"

	"github.com/Hemantbam/Catalog-management/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// subtreeSQL walks the parent link from a single category down to all of
// its descendants. UNION (not UNION ALL) stops on a cyclic parent chain.
const subtreeSQL = `
WITH RECURSIVE subtree AS (
	SELECT id, name, parent_id, created_at, updated_at FROM categories WHERE id = ?
	UNION
	SELECT c.id, c.name, c.parent_id, c.created_at, c.updated_at
	FROM categories c
	INNER JOIN subtree s ON c.parent_id = s.id
)
SELECT id, name, parent_id, created_at, updated_at FROM subtree`

// CategoryRepository is the data access contract for the category forest.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	// FindTopLevelByName only matches categories without a parent.
	FindTopLevelByName(ctx context.Context, name string) (*model.Category, error)
	// FindChildByName matches a direct child of parentID.
	FindChildByName(ctx context.Context, parentID uuid.UUID, name string) (*model.Category, error)
	// ExistsSubcategoryNamed reports whether any category with a parent uses name.
	ExistsSubcategoryNamed(ctx context.Context, name string) (bool, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	// DeleteSubtree removes the category and every descendant in one
	// transaction, detaching their products first. Returns the number of
	// categories removed.
	DeleteSubtree(ctx context.Context, id uuid.UUID) (int64, error)
	// Subtree returns the flat rows of the category and its descendants.
	Subtree(ctx context.Context, id uuid.UUID) ([]model.Category, error)
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	res := r.db.WithContext(ctx).Create(c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *categoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).Preload("Parent").First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) FindTopLevelByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).
		Where("name = ? AND parent_id IS NULL", name).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) FindChildByName(ctx context.Context, parentID uuid.UUID, name string) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).
		Where("parent_id = ? AND name = ?", parentID, name).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) ExistsSubcategoryNamed(ctx context.Context, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("name = ? AND parent_id IS NOT NULL", name).
		Count(&n).Error
	return n > 0, err
}

func (r *categoryRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

func (r *categoryRepo) DeleteSubtree(ctx context.Context, id uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Raw(`
WITH RECURSIVE subtree AS (
	SELECT id FROM categories WHERE id = ?
	UNION
	SELECT c.id FROM categories c INNER JOIN subtree s ON c.parent_id = s.id
)
SELECT id FROM subtree`, id).Scan(&ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return ErrNoRowsAffected
		}

		// Products survive their category; they become uncategorised.
		if err := tx.Model(&model.Product{}).
			Where("category_id IN ?", ids).
			Update("category_id", gorm.Expr("NULL")).Error; err != nil {
			return err
		}

		res := tx.Where("id IN ?", ids).Delete(&model.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoRowsAffected
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}

func (r *categoryRepo) Subtree(ctx context.Context, id uuid.UUID) ([]model.Category, error) {
	var rows []model.Category
	err := r.db.WithContext(ctx).Raw(subtreeSQL, id).Scan(&rows).Error
	return rows, err
}
