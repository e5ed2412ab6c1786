package http

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/inventory-control-api/internal/application/dto"
	"github.com/jhoicas/inventory-control-api/internal/domain"
	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
)

// BulkService importación/exportación CSV. Lo implementa *bulk.Service.
type BulkService interface {
	ImportProducts(ctx context.Context, actor entity.Principal, r io.Reader) ([]*dto.ProductResponse, error)
	ImportOrders(ctx context.Context, actor entity.Principal, r io.Reader) ([]*dto.OrderResponse, error)
	ExportProducts(ctx context.Context, actor entity.Principal, target string) (string, error)
	ExportOrders(ctx context.Context, actor entity.Principal, target string) (string, error)
}

// CSVHandler maneja /api/csv.
type CSVHandler struct {
	svc BulkService
}

// NewCSVHandler construye el handler.
func NewCSVHandler(svc BulkService) *CSVHandler {
	return &CSVHandler{svc: svc}
}

// ImportProducts godoc
// @Summary      Importar productos desde CSV
// @Description  Columnas: ID, Name, SKU, Price, Quantity, MinStockLevel, Category, Status, SupplierId, CreatedAt, UpdatedAt. Las filas inválidas se omiten.
// @Tags         csv
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo CSV"
// @Success      200   {object}  dto.CSVResponse
// @Failure      400   {object}  dto.CSVResponse
// @Failure      500   {object}  dto.CSVResponse
// @Router       /api/csv/import/products [post]
func (h *CSVHandler) ImportProducts(c *fiber.Ctx) error {
	return h.importFile(c, "Products imported successfully.", "Failed to import products.",
		func(ctx context.Context, r io.Reader) (interface{}, error) {
			return h.svc.ImportProducts(ctx, GetPrincipal(c), r)
		})
}

// ImportOrders godoc
// @Summary      Importar órdenes desde CSV
// @Description  Columnas: OrderID, ProductId, SupplierId, Quantity, TotalPrice, CreatedAt, Status. Las filas inválidas se omiten.
// @Tags         csv
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo CSV"
// @Success      200   {object}  dto.CSVResponse
// @Failure      400   {object}  dto.CSVResponse
// @Failure      500   {object}  dto.CSVResponse
// @Router       /api/csv/import/orders [post]
func (h *CSVHandler) ImportOrders(c *fiber.Ctx) error {
	return h.importFile(c, "Orders imported successfully.", "Failed to import orders.",
		func(ctx context.Context, r io.Reader) (interface{}, error) {
			return h.svc.ImportOrders(ctx, GetPrincipal(c), r)
		})
}

// ExportProducts godoc
// @Summary      Exportar productos a CSV
// @Description  Escribe el archivo en el directorio de exportación del servidor y devuelve la ruta final.
// @Tags         csv
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExportRequest  false  "Ruta destino (opcional)"
// @Success      200   {object}  dto.CSVResponse
// @Failure      400   {object}  dto.CSVResponse
// @Failure      500   {object}  dto.CSVResponse
// @Router       /api/csv/export/products [post]
func (h *CSVHandler) ExportProducts(c *fiber.Ctx) error {
	path, err := h.svc.ExportProducts(c.UserContext(), GetPrincipal(c), exportTarget(c))
	if err != nil {
		return csvFailure(c, err, "Failed to export products.")
	}
	return c.JSON(dto.CSVResponse{Status: "success", Message: "Products exported successfully.", FilePath: path})
}

// ExportOrders godoc
// @Summary      Exportar órdenes a CSV
// @Tags         csv
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExportRequest  false  "Ruta destino (opcional)"
// @Success      200   {object}  dto.CSVResponse
// @Failure      400   {object}  dto.CSVResponse
// @Failure      500   {object}  dto.CSVResponse
// @Router       /api/csv/export/orders [post]
func (h *CSVHandler) ExportOrders(c *fiber.Ctx) error {
	path, err := h.svc.ExportOrders(c.UserContext(), GetPrincipal(c), exportTarget(c))
	if err != nil {
		return csvFailure(c, err, "Failed to export orders.")
	}
	return c.JSON(dto.CSVResponse{Status: "success", Message: "Orders exported successfully.", FilePath: path})
}

func (h *CSVHandler) importFile(c *fiber.Ctx, okMsg, failMsg string, run func(context.Context, io.Reader) (interface{}, error)) error {
	fh, err := c.FormFile("file")
	if err != nil || fh.Size == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CSVResponse{Status: "error", Message: "The uploaded file is empty."})
	}
	f, err := fh.Open()
	if err != nil {
		return csvFailure(c, err, failMsg)
	}
	defer f.Close()

	data, err := run(c.UserContext(), f)
	if err != nil {
		return csvFailure(c, err, failMsg)
	}
	return c.JSON(dto.CSVResponse{Status: "success", Message: okMsg, Data: data})
}

// exportTarget acepta {"file_path": "..."} o la ruta como texto plano.
func exportTarget(c *fiber.Ctx) string {
	body := strings.TrimSpace(string(c.Body()))
	if body == "" {
		return ""
	}
	if strings.HasPrefix(body, "{") {
		var req dto.ExportRequest
		if err := c.BodyParser(&req); err == nil {
			return req.FilePath
		}
	}
	return strings.Trim(body, `"`)
}

func csvFailure(c *fiber.Ctx, err error, msg string) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CSVResponse{Status: "error", Message: err.Error()})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("operación CSV fallida")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.CSVResponse{Status: "error", Message: msg})
}
