package service

import (
	"context"

	"github.com/Hemantbam/Catalog-management/internal/apierror"
	"github.com/Hemantbam/Catalog-management/internal/dto"
	"github.com/Hemantbam/Catalog-management/internal/model"
	"github.com/Hemantbam/Catalog-management/internal/repository"

	"github.com/google/uuid"
)

// AttributeService manages the key/value attributes of a product.
type AttributeService interface {
	AddAttribute(ctx context.Context, productID uuid.UUID, req dto.AttributeRequest) (*model.Attribute, error)
	UpdateAttribute(ctx context.Context, attributeID, productID uuid.UUID, req dto.AttributeRequest) (*model.Attribute, error)
	DeleteAttribute(ctx context.Context, productID, attributeID uuid.UUID) error
}

type attributeService struct {
	attributes repository.AttributeRepository
	products   repository.ProductRepository
}

func NewAttributeService(attributes repository.AttributeRepository, products repository.ProductRepository) AttributeService {
	return &attributeService{attributes: attributes, products: products}
}

func (s *attributeService) AddAttribute(ctx context.Context, productID uuid.UUID, req dto.AttributeRequest) (*model.Attribute, error) {
	ok, err := found(s.products.FindByID(ctx, productID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierror.NotFound("Invalid product id, No Details found")
	}

	dup, err := found(s.attributes.FindByKey(ctx, productID, req.Key))
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, apierror.Conflict("%s key attribute is already registered with the provided id %s", req.Key, productID)
	}

	a := &model.Attribute{ID: uuid.New(), ProductID: productID, Key: req.Key, Value: req.Value}
	if err := s.attributes.Create(ctx, a); err != nil {
		return nil, writeError(err,
			apierror.BadRequest("Unable to add a new attribute"),
			apierror.Conflict("%s key attribute is already registered with the provided id %s", req.Key, productID))
	}
	return a, nil
}

func (s *attributeService) UpdateAttribute(ctx context.Context, attributeID, productID uuid.UUID, req dto.AttributeRequest) (*model.Attribute, error) {
	ok, err := found(s.products.FindByID(ctx, productID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierror.NotFound("Invalid product id, No Details found")
	}

	if ok, err = found(s.attributes.FindByID(ctx, attributeID)); err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierror.NotFound("Invalid attribute id, No Details found")
	}

	a, err := s.attributes.FindLinked(ctx, attributeID, productID)
	if ok, err = found(a, err); err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierror.Conflict("Conflict: Product id of %s is not linked with attribute id of %s", productID, attributeID)
	}

	other, err := s.attributes.FindByKey(ctx, productID, req.Key)
	if ok, err = found(other, err); err != nil {
		return nil, err
	}
	if ok && other.ID != attributeID {
		return nil, apierror.Conflict("Conflict: The key '%s' is already in use with the product of id %s", req.Key, productID)
	}

	if err := s.attributes.Update(ctx, attributeID, productID, req.Key, req.Value); err != nil {
		return nil, writeError(err,
			apierror.BadRequest("Unable to update attribute"),
			apierror.Conflict("Conflict: The key '%s' is already in use with the product of id %s", req.Key, productID))
	}
	a.Key = req.Key
	a.Value = req.Value
	return a, nil
}

func (s *attributeService) DeleteAttribute(ctx context.Context, productID, attributeID uuid.UUID) error {
	ok, err := found(s.products.FindByID(ctx, productID))
	if err != nil {
		return err
	}
	if !ok {
		return apierror.NotFound("No Details found for the product id %s", productID)
	}

	if ok, err = found(s.attributes.FindByID(ctx, attributeID)); err != nil {
		return err
	}
	if !ok {
		return apierror.NotFound("No Details found for the attribute id %s", attributeID)
	}

	if ok, err = found(s.attributes.FindLinked(ctx, attributeID, productID)); err != nil {
		return err
	}
	if !ok {
		return apierror.Conflict("The attribute ID %s does not belong to the product with ID %s. Please verify the attribute ID and ensure it matches the product you are trying to delete.", attributeID, productID)
	}

	if err := s.attributes.Delete(ctx, attributeID, productID); err != nil {
		return writeError(err, apierror.BadRequest("Unable to delete attribute data"), nil)
	}
	return nil
}
