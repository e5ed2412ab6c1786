package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-control-api/internal/application/dto"
	"github.com/jhoicas/inventory-control-api/internal/application/usecase"
)

// OrderHandler maneja /api/orders.
type OrderHandler struct {
	uc       *usecase.OrderUseCase
	validate *Validator
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase, validate *Validator) *OrderHandler {
	return &OrderHandler{uc: uc, validate: validate}
}

// Create godoc
// @Summary      Crear orden
// @Description  El proveedor debe ser el del producto. total_price = price * quantity; estado inicial PENDING.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderRequest  true  "product_id, supplier_id, quantity"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.MessageResponse
// @Router       /api/orders/create [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := h.validate.parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  fiber.StatusCreated,
		"message": "Order created successfully",
		"order":   out,
	})
}

// Update godoc
// @Summary      Actualizar orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "ID de la orden"
// @Param        body  body  dto.OrderRequest  true  "Datos de la orden"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.MessageResponse
// @Router       /api/orders/update/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.OrderRequest
	if err := h.validate.parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetPrincipal(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": fiber.StatusOK, "message": "Order updated successfully", "order": out})
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), GetPrincipal(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": fiber.StatusOK, "order": out})
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders/all [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": fiber.StatusOK, "orders": out})
}

// Delete godoc
// @Summary      Eliminar orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/orders/delete/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetPrincipal(c), id); err != nil {
		return respondError(c, err)
	}
	return message(c, fiber.StatusOK, "Order deleted successfully")
}
