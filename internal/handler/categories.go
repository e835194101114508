package handler

import (
	"fmt"

	"github.com/Hemantbam/Catalog-management/internal/dto"
	"github.com/Hemantbam/Catalog-management/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoriesHandler struct{ svc service.CategoryService }

func NewCategoriesHandler(svc service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{svc: svc}
}

// AddCategory godoc
// @Summary      Add a new top-level category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body body     dto.CategoryRequest true "Category name"
// @Success      200  {object} dto.Envelope
// @Failure      400  {object} dto.Envelope
// @Failure      409  {object} dto.Envelope
// @Failure      500  {object} dto.Envelope
// @Router       /categories [post]
func (h *CategoriesHandler) AddCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	category, err := h.svc.AddCategory(c.Request.Context(), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, fmt.Sprintf("A new %s category added successfully", category.Name), category)
}

// AddSubCategory godoc
// @Summary      Add a subcategory under an existing category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id   path     string              true "Parent category UUID"
// @Param        body body     dto.CategoryRequest true "Subcategory name"
// @Success      200  {object} dto.Envelope
// @Failure      400  {object} dto.Envelope
// @Failure      404  {object} dto.Envelope
// @Failure      409  {object} dto.Envelope
// @Router       /categories/{id} [post]
func (h *CategoriesHandler) AddSubCategory(c *gin.Context) {
	parentID, valid := pathUUID(c, "id")
	if !valid {
		return
	}
	var req dto.CategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	category, err := h.svc.AddSubCategory(c.Request.Context(), parentID, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c,
		fmt.Sprintf("The subcategory '%s' has been successfully added under the category '%s'.", category.Name, category.Parent.Name),
		category)
}

// UpdateCategoryName godoc
// @Summary      Rename a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id   path     string              true "Category UUID"
// @Param        body body     dto.CategoryRequest true "New name"
// @Success      200  {object} dto.Envelope
// @Failure      404  {object} dto.Envelope
// @Failure      409  {object} dto.Envelope
// @Router       /categories/{id} [put]
func (h *CategoriesHandler) UpdateCategoryName(c *gin.Context) {
	id, valid := pathUUID(c, "id")
	if !valid {
		return
	}
	var req dto.CategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	category, err := h.svc.UpdateCategoryName(c.Request.Context(), id, req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, "Category data updated successfully", category)
}

// DeleteCategory godoc
// @Summary      Delete a category with all of its subcategories
// @Description  Products of deleted categories are kept without a category.
// @Tags         categories
// @Produce      json
// @Param        id   path     string true "Category UUID"
// @Success      200  {object} dto.Envelope
// @Failure      404  {object} dto.Envelope
// @Router       /categories/{id} [delete]
func (h *CategoriesHandler) DeleteCategory(c *gin.Context) {
	id, valid := pathUUID(c, "id")
	if !valid {
		return
	}
	if err := h.svc.DeleteCategory(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	respondOK(c, fmt.Sprintf("All details related to id %s deleted from the database", id), nil)
}

// FetchSubtree godoc
// @Summary      Fetch a category and all of its descendants
// @Tags         categories
// @Produce      json
// @Param        id   path     string true "Category UUID"
// @Success      200  {object} dto.Envelope
// @Failure      404  {object} dto.Envelope
// @Router       /categories/{id} [get]
func (h *CategoriesHandler) FetchSubtree(c *gin.Context) {
	id, valid := pathUUID(c, "id")
	if !valid {
		return
	}
	tree, err := h.svc.FetchSubtree(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, fmt.Sprintf("Data fetched successfully for the id %s", id), tree)
}
