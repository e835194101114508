package service

import (
	"context"

	"github.com/Hemantbam/Catalog-management/internal/apierror"
	"github.com/Hemantbam/Catalog-management/internal/dto"
	"github.com/Hemantbam/Catalog-management/internal/model"
	"github.com/Hemantbam/Catalog-management/internal/repository"

	"github.com/google/uuid"
)

// ProductService defines the business logic contract for products.
type ProductService interface {
	AddProduct(ctx context.Context, categoryID uuid.UUID, req dto.ProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req dto.ProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	SearchProducts(ctx context.Context, filter dto.ProductFilter) ([]model.Product, error)
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository) ProductService {
	return &productService{products: products, categories: categories}
}

func (s *productService) AddProduct(ctx context.Context, categoryID uuid.UUID, req dto.ProductRequest) (*model.Product, error) {
	category, err := s.categories.FindByID(ctx, categoryID)
	ok, err := found(category, err)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierror.NotFound("Category not found for the provided id.")
	}

	dup, err := found(s.products.FindByNameInCategory(ctx, req.Name, &categoryID))
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, apierror.Conflict("Product with name '%s' already exists in the category id %s", req.Name, categoryID)
	}

	p := &model.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  &categoryID,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, writeError(err,
			apierror.BadRequest("Failed to add the product."),
			apierror.Conflict("Product with name '%s' already exists in the category id %s", req.Name, categoryID))
	}
	category.Parent = nil
	p.Category = category
	p.Attributes = []model.Attribute{}
	return p, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req dto.ProductRequest) (*model.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	ok, err := found(p, err)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierror.NotFound("Product not found for the provided id.")
	}

	// Uncategorised products are compared with each other.
	other, err := s.products.FindByNameInCategory(ctx, req.Name, p.CategoryID)
	if ok, err := found(other, err); err != nil {
		return nil, err
	} else if ok && other.ID != id {
		return nil, apierror.Conflict("Conflict: The product name '%s' is already in use with the category of id %s", req.Name, idString(p.CategoryID))
	}

	linked, err := found(s.products.FindByIDInCategory(ctx, id, p.CategoryID))
	if err != nil {
		return nil, err
	}
	if !linked {
		return nil, apierror.Conflict("Conflict: Product id of %s is not linked with category id of %s", id, idString(p.CategoryID))
	}

	changes := repository.ProductChanges{Name: req.Name, Description: req.Description, Price: req.Price}
	if err := s.products.Update(ctx, id, changes); err != nil {
		return nil, writeError(err,
			apierror.BadRequest("Failed to update the product."),
			apierror.Conflict("Conflict: The product name '%s' is already in use with the category of id %s", req.Name, idString(p.CategoryID)))
	}

	p.Name = req.Name
	p.Price = req.Price
	if req.Description != nil {
		p.Description = req.Description
	}
	if p.Category != nil {
		p.Category.Parent = nil
	}
	return p, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	ok, err := found(s.products.FindByID(ctx, id))
	if err != nil {
		return err
	}
	if !ok {
		return apierror.NotFound("Product not found for the provided id.")
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return writeError(err, apierror.BadRequest("Failed to delete the product."), nil)
	}
	return nil
}

func (s *productService) SearchProducts(ctx context.Context, filter dto.ProductFilter) ([]model.Product, error) {
	products, err := s.products.Search(ctx, filter)
	if err != nil {
		return nil, apierror.Unexpected(err)
	}
	if len(products) == 0 {
		return nil, apierror.NotFound("No products found for the given criteria.")
	}
	return products, nil
}
