package handler

import (
	"github.com/Hemantbam/Catalog-management/internal/apierror"
	"github.com/Hemantbam/Catalog-management/internal/dto"
	"github.com/Hemantbam/Catalog-management/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

// AddProduct godoc
// @Summary      Add a product to a category
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id   path     string             true "Category UUID"
// @Param        body body     dto.ProductRequest true "Product"
// @Success      200  {object} dto.Envelope
// @Failure      400  {object} dto.Envelope
// @Failure      404  {object} dto.Envelope
// @Failure      409  {object} dto.Envelope
// @Router       /products/{id} [post]
func (h *ProductsHandler) AddProduct(c *gin.Context) {
	categoryID, valid := pathUUID(c, "id")
	if !valid {
		return
	}
	var req dto.ProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	product, err := h.svc.AddProduct(c.Request.Context(), categoryID, req)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, "Product added successfully.", product)
}

// UpdateProduct godoc
// @Summary      Update name, description and price of a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id   path     string             true "Product UUID"
// @Param        body body     dto.ProductRequest true "Product"
// @Success      200  {object} dto.Envelope
// @Failure      404  {object} dto.Envelope
// @Failure      409  {object} dto.Envelope
// @Router       /products/{id} [put]
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	id, valid := pathUUID(c, "id")
	if !valid {
		return
	}
	var req dto.ProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	product, err := h.svc.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, "Product updated successfully.", product)
}

// DeleteProduct godoc
// @Summary      Delete a product and its attributes
// @Tags         products
// @Produce      json
// @Param        id   path     string true "Product UUID"
// @Success      200  {object} dto.Envelope
// @Failure      404  {object} dto.Envelope
// @Router       /products/{id} [delete]
func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	id, valid := pathUUID(c, "id")
	if !valid {
		return
	}
	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	respondOK(c, "Product deleted successfully.", nil)
}

// SearchProducts godoc
// @Summary      Search products
// @Description  Every supplied filter is a case-insensitive substring match; filters are combined with AND.
// @Tags         products
// @Produce      json
// @Param        categoryName query string false "Category name contains"
// @Param        productName  query string false "Product name contains"
// @Param        attributeKey query string false "Attribute key contains"
// @Success      200  {object} dto.Envelope
// @Failure      404  {object} dto.Envelope
// @Router       /products [get]
func (h *ProductsHandler) SearchProducts(c *gin.Context) {
	var filter dto.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		fail(c, apierror.BadRequest("Invalid query: %s", err.Error()))
		return
	}
	filter.Normalize()

	products, err := h.svc.SearchProducts(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, "Product details fetched successfully.", products)
}
