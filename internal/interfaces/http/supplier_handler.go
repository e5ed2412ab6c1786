package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-control-api/internal/application/dto"
	"github.com/jhoicas/inventory-control-api/internal/application/usecase"
)

// SupplierHandler maneja /api/suppliers.
type SupplierHandler struct {
	uc       *usecase.SupplierUseCase
	validate *Validator
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase, validate *Validator) *SupplierHandler {
	return &SupplierHandler{uc: uc, validate: validate}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      409   {object}  dto.MessageResponse
// @Router       /api/suppliers/create [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := h.validate.parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":   fiber.StatusCreated,
		"message":  "Supplier created successfully",
		"supplier": out,
	})
}

// Update godoc
// @Summary      Reemplazar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID del proveedor"
// @Param        body  body  dto.SupplierRequest  true  "Datos del proveedor"
// @Success      200   {object}  dto.SupplierResponse
// @Failure      404   {object}  dto.MessageResponse
// @Router       /api/suppliers/update/{id} [put]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SupplierRequest
	if err := h.validate.parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": fiber.StatusOK, "message": "Supplier updated successfully", "supplier": out})
}

// GetByID godoc
// @Summary      Obtener proveedor por ID
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del proveedor"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": fiber.StatusOK, "supplier": out})
}

// List godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/suppliers/all [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": fiber.StatusOK, "suppliers": out})
}

// Delete godoc
// @Summary      Eliminar proveedor
// @Description  Con productos asociados responde 409 salvo que se pida cascade=true.
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id       path   int   true   "ID del proveedor"
// @Param        cascade  query  bool  false  "Eliminar también órdenes y productos del proveedor"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.MessageResponse
// @Router       /api/suppliers/delete/{id} [delete]
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	cascade := c.QueryBool("cascade", false)
	if err := h.uc.Delete(c.UserContext(), GetPrincipal(c), id, cascade); err != nil {
		return respondError(c, err)
	}
	return message(c, fiber.StatusOK, fmt.Sprintf("Supplier deleted successfully with ID: %d", id))
}
