package bulk

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/inventory-control-api/internal/application/dto"
	"github.com/jhoicas/inventory-control-api/internal/application/usecase"
	"github.com/jhoicas/inventory-control-api/internal/domain"
	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
	"github.com/jhoicas/inventory-control-api/internal/domain/repository"
	"github.com/jhoicas/inventory-control-api/pkg/logger"
)

// Service importa y exporta productos y órdenes en CSV. Las filas inválidas se registran
// y se omiten; solo un fallo de lectura del archivo aborta con *domain.ImportError.
type Service struct {
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	orders    repository.OrderRepository
	exportDir string
	log       *logger.Logger
	now       func() time.Time
}

// NewService construye el servicio. exportDir es la raíz donde se escriben las exportaciones.
func NewService(products repository.ProductRepository, suppliers repository.SupplierRepository, orders repository.OrderRepository, exportDir string, log *logger.Logger) *Service {
	return &Service{
		products:  products,
		suppliers: suppliers,
		orders:    orders,
		exportDir: exportDir,
		log:       log.Component("csv"),
		now:       time.Now,
	}
}

// ExportProducts escribe todos los productos en target (relativo a exportDir) y devuelve la ruta final.
func (s *Service) ExportProducts(ctx context.Context, actor entity.Principal, target string) (string, error) {
	list, err := s.products.List(ctx)
	if err != nil {
		return "", err
	}
	path, err := s.writeFile(target, "products", func(w io.Writer) error {
		return WriteProducts(w, list)
	})
	if err != nil {
		return "", err
	}
	s.log.Info().Str("actor", actor.Subject).Str("path", path).Int("rows", len(list)).Msg("productos exportados")
	return path, nil
}

// ExportOrders escribe todas las órdenes en target (relativo a exportDir) y devuelve la ruta final.
func (s *Service) ExportOrders(ctx context.Context, actor entity.Principal, target string) (string, error) {
	list, err := s.orders.List(ctx)
	if err != nil {
		return "", err
	}
	path, err := s.writeFile(target, "orders", func(w io.Writer) error {
		return WriteOrders(w, list)
	})
	if err != nil {
		return "", err
	}
	s.log.Info().Str("actor", actor.Subject).Str("path", path).Int("rows", len(list)).Msg("órdenes exportadas")
	return path, nil
}

// WriteProducts serializa productos con cabecera; los valores nulos quedan vacíos.
func WriteProducts(w io.Writer, products []*entity.Product) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write(ProductHeader); err != nil {
		return err
	}
	for _, p := range products {
		category, status := "", ""
		if p.Category != nil {
			category = string(*p.Category)
		}
		if p.Status != nil {
			status = string(*p.Status)
		}
		if err := writer.Write([]string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.SKU,
			p.Price.String(),
			strconv.Itoa(p.Quantity),
			formatIntPtr(p.MinStockLevel),
			category,
			status,
			formatInt64Ptr(p.SupplierID),
			formatTime(p.CreatedAt),
			formatTimePtr(p.UpdatedAt),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteOrders serializa órdenes con cabecera.
func WriteOrders(w io.Writer, orders []*entity.Order) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write(OrderHeader); err != nil {
		return err
	}
	for _, o := range orders {
		if err := writer.Write([]string{
			strconv.FormatInt(o.ID, 10),
			strconv.FormatInt(o.ProductID, 10),
			strconv.FormatInt(o.SupplierID, 10),
			strconv.Itoa(o.Quantity),
			o.TotalPrice.String(),
			formatTime(o.CreatedAt),
			string(o.Status),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ImportProducts crea un producto por fila válida y devuelve solo los creados.
// El ID de la fila se ignora: la base asigna uno nuevo.
func (s *Service) ImportProducts(ctx context.Context, actor entity.Principal, r io.Reader) ([]*dto.ProductResponse, error) {
	out := make([]*dto.ProductResponse, 0)
	err := s.readRows(r, len(ProductHeader), func(line int, rec []string) {
		p, err := s.productFromRow(ctx, rec)
		if err == nil {
			err = s.products.Create(ctx, p)
		}
		if err != nil {
			s.log.Warn().Err(err).Int("line", line).Msg("fila de producto omitida")
			return
		}
		out = append(out, usecase.ToProductResponse(p))
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("actor", actor.Subject).Int("imported", len(out)).Msg("importación de productos terminada")
	return out, nil
}

// ImportOrders crea una orden por fila válida. Aplica la misma consistencia producto/proveedor
// que la creación por API; total vacío se recalcula y estado inválido queda PENDING.
func (s *Service) ImportOrders(ctx context.Context, actor entity.Principal, r io.Reader) ([]*dto.OrderResponse, error) {
	out := make([]*dto.OrderResponse, 0)
	err := s.readRows(r, len(OrderHeader), func(line int, rec []string) {
		o, err := s.orderFromRow(ctx, rec)
		if err == nil {
			err = s.orders.Create(ctx, o)
		}
		if err != nil {
			s.log.Warn().Err(err).Int("line", line).Msg("fila de orden omitida")
			return
		}
		out = append(out, usecase.ToOrderResponse(o))
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("actor", actor.Subject).Int("imported", len(out)).Msg("importación de órdenes terminada")
	return out, nil
}

// recordReader lo que readRows usa de *csv.Reader.
type recordReader interface {
	Read() ([]string, error)
	FieldPos(field int) (line, column int)
}

// readRows salta la cabecera y las filas cortas. Un error de sintaxis CSV descarta solo ese registro.
func (s *Service) readRows(r io.Reader, minCols int, fn func(line int, rec []string)) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	return s.scanRecords(cr, minCols, fn)
}

// scanRecords el primer registro, legible o no, es la cabecera.
func (s *Service) scanRecords(cr recordReader, minCols int, fn func(line int, rec []string)) error {
	header := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				s.log.Warn().Err(err).Int("line", pe.Line).Bool("header", header).Msg("registro CSV ilegible omitido")
				header = false
				continue
			}
			return &domain.ImportError{Cause: err}
		}
		if header {
			header = false
			continue
		}
		if len(rec) < minCols {
			continue
		}
		line, _ := cr.FieldPos(0)
		fn(line, rec)
	}
}

func (s *Service) productFromRow(ctx context.Context, rec []string) (*entity.Product, error) {
	name := strings.TrimSpace(rec[1])
	sku := strings.TrimSpace(rec[2])
	if name == "" || sku == "" {
		return nil, fmt.Errorf("%w: name y sku son obligatorios", domain.ErrInvalidInput)
	}
	price, err := parseDecimal(rec[3])
	if err != nil || !price.IsPositive() {
		return nil, fmt.Errorf("%w: price %q", domain.ErrInvalidInput, rec[3])
	}
	qty, err := parseInt(rec[4])
	if err != nil || qty < 0 {
		return nil, fmt.Errorf("%w: quantity %q", domain.ErrInvalidInput, rec[4])
	}
	minStock, err := parseOptInt(rec[5])
	if err != nil {
		return nil, fmt.Errorf("%w: min stock %q", domain.ErrInvalidInput, rec[5])
	}
	p := &entity.Product{Name: name, SKU: sku, Price: price, Quantity: qty, MinStockLevel: minStock}
	if !isNull(rec[6]) {
		c, err := entity.ParseCategory(rec[6])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		p.Category = &c
	}
	status := entity.ProductActive
	if !isNull(rec[7]) {
		if status, err = entity.ParseProductStatus(rec[7]); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	p.Status = &status
	if isNull(rec[8]) {
		return nil, fmt.Errorf("%w: supplier id requerido", domain.ErrInvalidInput)
	}
	supplierID, err := parseInt64(rec[8])
	if err != nil {
		return nil, fmt.Errorf("%w: supplier id %q", domain.ErrInvalidInput, rec[8])
	}
	supplier, err := s.suppliers.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.NewNotFound("Supplier", supplierID)
	}
	p.SupplierID = &supplier.ID
	if p.CreatedAt, err = parseTime(rec[9], s.now()); err != nil {
		return nil, fmt.Errorf("%w: created at %q", domain.ErrInvalidInput, rec[9])
	}
	if p.UpdatedAt, err = parseOptTime(rec[10]); err != nil {
		return nil, fmt.Errorf("%w: updated at %q", domain.ErrInvalidInput, rec[10])
	}
	existing, err := s.products.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: sku %q", domain.ErrDuplicate, sku)
	}
	return p, nil
}

func (s *Service) orderFromRow(ctx context.Context, rec []string) (*entity.Order, error) {
	productID, err := parseInt64(rec[1])
	if err != nil {
		return nil, fmt.Errorf("%w: product id %q", domain.ErrInvalidInput, rec[1])
	}
	supplierID, err := parseInt64(rec[2])
	if err != nil {
		return nil, fmt.Errorf("%w: supplier id %q", domain.ErrInvalidInput, rec[2])
	}
	qty, err := parseInt(rec[3])
	if err != nil || qty < 1 {
		return nil, fmt.Errorf("%w: quantity %q", domain.ErrInvalidInput, rec[3])
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("Product", productID)
	}
	if product.SupplierID == nil || *product.SupplierID != supplierID {
		return nil, domain.ErrInvalidSupplier
	}
	supplier, err := s.suppliers.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.NewNotFound("Supplier", supplierID)
	}
	total := entity.OrderTotal(product.Price, qty)
	if !isNull(rec[4]) {
		if total, err = parseDecimal(rec[4]); err != nil {
			return nil, fmt.Errorf("%w: total %q", domain.ErrInvalidInput, rec[4])
		}
	}
	createdAt, err := parseTime(rec[5], s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: created at %q", domain.ErrInvalidInput, rec[5])
	}
	status, err := entity.ParseOrderStatus(rec[6])
	if err != nil {
		status = entity.OrderPending
	}
	return &entity.Order{
		ProductID:  product.ID,
		SupplierID: supplier.ID,
		Quantity:   qty,
		TotalPrice: total,
		CreatedAt:  createdAt,
		Status:     status,
	}, nil
}

// writeFile crea el archivo destino dentro de exportDir y delega la escritura.
func (s *Service) writeFile(target, kind string, write func(io.Writer) error) (path string, err error) {
	path, err = ResolveExportPath(s.exportDir, target, fmt.Sprintf("%s-%d.csv", kind, s.now().UnixMilli()))
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de exportación: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("crear archivo de exportación: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cerrar archivo de exportación: %w", cerr)
		}
	}()
	if err := write(f); err != nil {
		return "", fmt.Errorf("escribir CSV: %w", err)
	}
	return path, nil
}

// ResolveExportPath ubica target dentro de dir (defaultName si target está vacío).
// Una ruta que sale de dir devuelve ErrInvalidInput.
func ResolveExportPath(dir, target, defaultName string) (string, error) {
	base, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("directorio de exportación: %w", err)
	}
	target = strings.TrimSpace(target)
	if target == "" {
		target = defaultName
	}
	path := target
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	path = filepath.Clean(path)
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: file path must stay inside the export directory", domain.ErrInvalidInput)
	}
	return path, nil
}
