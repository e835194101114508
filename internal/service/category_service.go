package service

import (
	"context"

	"github.com/Hemantbam/Catalog-management/internal/apierror"
	"github.com/Hemantbam/Catalog-management/internal/hierarchy"
	"github.com/Hemantbam/Catalog-management/internal/model"
	"github.com/Hemantbam/Catalog-management/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CategoryService maintains the category forest. Names are expected to be
// normalized (trimmed, lower-case) by the caller.
type CategoryService interface {
	AddCategory(ctx context.Context, name string) (*model.Category, error)
	// AddSubCategory returns the new category with Parent populated.
	AddSubCategory(ctx context.Context, parentID uuid.UUID, name string) (*model.Category, error)
	UpdateCategoryName(ctx context.Context, id uuid.UUID, name string) (*model.Category, error)
	// DeleteCategory removes the whole subtree; products under it are kept
	// without a category.
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	FetchSubtree(ctx context.Context, id uuid.UUID) (*hierarchy.Tree, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) AddCategory(ctx context.Context, name string) (*model.Category, error) {
	taken, err := found(s.repo.FindTopLevelByName(ctx, name))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apierror.Conflict("Conflict: %s name already existed as a category", name)
	}

	usedBelow, err := s.repo.ExistsSubcategoryNamed(ctx, name)
	if err != nil {
		return nil, apierror.Unexpected(err)
	}
	if usedBelow {
		return nil, apierror.Conflict("Conflict: %s already existed as a sub category. Enter a unique category name", name)
	}

	c := &model.Category{ID: uuid.New(), Name: name}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, writeError(err,
			apierror.BadRequest("Error in adding a new category"),
			apierror.Conflict("Conflict: %s name already existed as a category", name))
	}
	return c, nil
}

func (s *categoryService) AddSubCategory(ctx context.Context, parentID uuid.UUID, name string) (*model.Category, error) {
	parent, err := s.repo.FindByID(ctx, parentID)
	ok, err := found(parent, err)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierror.NotFound("The category for id %s does not exist. Please create the category first.", parentID)
	}
	if parent.Name == name {
		return nil, apierror.Conflict("The category name and subcategory name cannot be the same. Please provide a unique subcategory name.")
	}

	taken, err := found(s.repo.FindTopLevelByName(ctx, name))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apierror.Conflict("%s already exists as a category in the database.", name)
	}

	sibling, err := found(s.repo.FindChildByName(ctx, parentID, name))
	if err != nil {
		return nil, err
	}
	if sibling {
		return nil, apierror.Conflict("The name '%s' already exists as a subcategory in the database with the id %s", name, parentID)
	}

	c := &model.Category{ID: uuid.New(), Name: name, ParentID: &parent.ID}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, writeError(err,
			apierror.BadRequest("An error occurred while adding the subcategory. Please try again later."),
			apierror.Conflict("The name '%s' already exists as a subcategory in the database with the id %s", name, parentID))
	}
	parent.Parent = nil
	c.Parent = parent
	return c, nil
}

func (s *categoryService) UpdateCategoryName(ctx context.Context, id uuid.UUID, name string) (*model.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	ok, err := found(c, err)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierror.NotFound("Invalid id, No Details found")
	}

	if c.ParentID != nil {
		parent := c.Parent
		if parent == nil {
			if parent, err = s.repo.FindByID(ctx, *c.ParentID); err != nil {
				return nil, apierror.Unexpected(err)
			}
		}
		if parent.Name == name {
			return nil, apierror.Conflict("Conflict: %s cannot be same as parent category name. Enter a unique category name.", name)
		}
	}

	top, err := s.repo.FindTopLevelByName(ctx, name)
	if ok, err := found(top, err); err != nil {
		return nil, err
	} else if ok && top.ID != id {
		return nil, apierror.Conflict("Conflict: %s name already existed. Enter a unique category name.", name)
	}

	// Siblings of a top-level category are the other top-level categories,
	// already covered above.
	if c.ParentID != nil {
		sib, err := s.repo.FindChildByName(ctx, *c.ParentID, name)
		if ok, err := found(sib, err); err != nil {
			return nil, err
		} else if ok && sib.ID != id {
			return nil, apierror.Conflict("Conflict: %s already exists as a subcategory under this category. Enter a unique category name.", name)
		}
	}

	// A child may not end up sharing its parent's name.
	childClash, err := found(s.repo.FindChildByName(ctx, id, name))
	if err != nil {
		return nil, err
	}
	if childClash {
		return nil, apierror.Conflict("Conflict: %s already exists as a subcategory under this category. Enter a unique category name.", name)
	}

	if err := s.repo.UpdateName(ctx, id, name); err != nil {
		return nil, writeError(err,
			apierror.BadRequest("Unable to update category details currently"),
			apierror.Conflict("Conflict: %s name already existed. Enter a unique category name.", name))
	}
	c.Name = name
	c.Parent = nil
	return c, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	ok, err := found(s.repo.FindByID(ctx, id))
	if err != nil {
		return err
	}
	if !ok {
		return apierror.NotFound("Invalid id, No Details found")
	}

	n, err := s.repo.DeleteSubtree(ctx, id)
	if err != nil {
		return writeError(err, apierror.BadRequest("Unable to delete the details from the database"), nil)
	}
	log.Info().Str("category_id", id.String()).Int64("categories_deleted", n).Msg("category subtree deleted")
	return nil
}

func (s *categoryService) FetchSubtree(ctx context.Context, id uuid.UUID) (*hierarchy.Tree, error) {
	rows, err := s.repo.Subtree(ctx, id)
	if err != nil {
		return nil, apierror.Unexpected(err)
	}
	if len(rows) == 0 {
		return nil, apierror.NotFound("Category details not found for id %s", id)
	}

	tree, err := hierarchy.New(rows).Subtree(id)
	if err != nil {
		return nil, apierror.Unexpected(err)
	}
	return tree, nil
}
