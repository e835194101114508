package handler

import (
	"fmt"

	"github.com/Hemantbam/Catalog-management/internal/dto"
	"github.com/Hemantbam/Catalog-management/internal/service"

	"github.com/gin-gonic/gin"
)

type AttributesHandler struct{ svc service.AttributeService }

func NewAttributesHandler(svc service.AttributeService) *AttributesHandler {
	return &AttributesHandler{svc: svc}
}

// AddAttribute godoc
// @Summary      Add a key/value attribute to a product
// @Tags         attributes
// @Accept       json
// @Produce      json
// @Param        id   path     string               true "Product UUID"
// @Param        body body     dto.AttributeRequest true "Attribute"
// @Success      200  {object} dto.Envelope
// @Failure      404  {object} dto.Envelope
// @Failure      409  {object} dto.Envelope
// @Router       /products/{id}/attributes [post]
func (h *AttributesHandler) AddAttribute(c *gin.Context) {
	productID, valid := pathUUID(c, "id")
	if !valid {
		return
	}
	var req dto.AttributeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	attr, err := h.svc.AddAttribute(c.Request.Context(), productID, req)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, "Attribute successfully added to the database", attr)
}

// UpdateAttribute godoc
// @Summary      Update an attribute of a product
// @Tags         attributes
// @Accept       json
// @Produce      json
// @Param        id           path     string               true "Product UUID"
// @Param        attribute_id path     string               true "Attribute UUID"
// @Param        body         body     dto.AttributeRequest true "Attribute"
// @Success      200  {object} dto.Envelope
// @Failure      404  {object} dto.Envelope
// @Failure      409  {object} dto.Envelope
// @Router       /products/{id}/attributes/{attribute_id} [put]
func (h *AttributesHandler) UpdateAttribute(c *gin.Context) {
	productID, valid := pathUUID(c, "id")
	if !valid {
		return
	}
	attributeID, valid := pathUUID(c, "attribute_id")
	if !valid {
		return
	}
	var req dto.AttributeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	attr, err := h.svc.UpdateAttribute(c.Request.Context(), attributeID, productID, req)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c,
		fmt.Sprintf("Key '%s' with value '%s' data updated successfully to the database of attribute id %s", attr.Key, attr.Value, attributeID),
		attr)
}

// DeleteAttribute godoc
// @Summary      Delete an attribute of a product
// @Tags         attributes
// @Produce      json
// @Param        id           path     string true "Product UUID"
// @Param        attribute_id path     string true "Attribute UUID"
// @Success      200  {object} dto.Envelope
// @Failure      404  {object} dto.Envelope
// @Failure      409  {object} dto.Envelope
// @Router       /products/{id}/attributes/{attribute_id} [delete]
func (h *AttributesHandler) DeleteAttribute(c *gin.Context) {
	productID, valid := pathUUID(c, "id")
	if !valid {
		return
	}
	attributeID, valid := pathUUID(c, "attribute_id")
	if !valid {
		return
	}
	if err := h.svc.DeleteAttribute(c.Request.Context(), productID, attributeID); err != nil {
		fail(c, err)
		return
	}
	respondOK(c, "Attribute data deleted successfully", nil)
}
