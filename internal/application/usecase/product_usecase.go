package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-control-api/internal/application/dto"
	"github.com/jhoicas/inventory-control-api/internal/application/notify"
	"github.com/jhoicas/inventory-control-api/internal/domain"
	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
	"github.com/jhoicas/inventory-control-api/internal/domain/repository"
	"github.com/jhoicas/inventory-control-api/pkg/logger"
)

// ProductUseCase casos de uso CRUD para productos. Los cambios de cantidad disparan la alerta de stock bajo.
type ProductUseCase struct {
	repo      repository.ProductRepository
	suppliers repository.SupplierRepository
	notifier  Notifier
	log       *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, suppliers repository.SupplierRepository, notifier Notifier, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, suppliers: suppliers, notifier: notifier, log: log.Component("products")}
}

// Create crea un nuevo producto. El proveedor debe existir; Status por defecto ACTIVE.
func (uc *ProductUseCase) Create(ctx context.Context, actor entity.Principal, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	supplier, err := uc.suppliers.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.NewNotFound("Supplier", in.SupplierID)
	}
	existing, err := uc.repo.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	product := &entity.Product{
		Name:          in.Name,
		SKU:           in.SKU,
		Price:         in.Price,
		MinStockLevel: in.MinStockLevel,
		SupplierID:    &supplier.ID,
		CreatedAt:     time.Now(),
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if err := applyCategory(product, in.Category); err != nil {
		return nil, err
	}
	status := entity.ProductActive
	if in.Status != "" {
		if status, err = entity.ParseProductStatus(in.Status); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}
	product.Status = &status

	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log.Info().Str("actor", actor.Subject).Int64("product_id", product.ID).Str("sku", product.SKU).Msg("producto creado")
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, actor entity.Principal, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("Product", id)
	}
	return ToProductResponse(product), nil
}

// List devuelve todos los productos.
func (uc *ProductUseCase) List(ctx context.Context, actor entity.Principal) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out, nil
}

// Update aplica solo los campos presentes. Si cambió la cantidad y quedó en o bajo el mínimo,
// se notifica al proveedor después de persistir.
func (uc *ProductUseCase) Update(ctx context.Context, actor entity.Principal, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NewNotFound("Product", id)
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.SKU != nil && *in.SKU != product.SKU {
		other, err := uc.repo.GetBySKU(ctx, *in.SKU)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != product.ID {
			return nil, domain.ErrDuplicate
		}
		product.SKU = *in.SKU
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if in.MinStockLevel != nil {
		product.MinStockLevel = in.MinStockLevel
	}
	if in.Category != nil {
		if err := applyCategory(product, *in.Category); err != nil {
			return nil, err
		}
	}
	if in.Status != nil {
		status, err := entity.ParseProductStatus(*in.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		product.Status = &status
	}
	if in.SupplierID != nil {
		supplier, err := uc.suppliers.GetByID(ctx, *in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.NewNotFound("Supplier", *in.SupplierID)
		}
		product.SupplierID = &supplier.ID
	}
	now := time.Now()
	product.UpdatedAt = &now

	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	if in.Quantity != nil && product.IsLowStock() {
		uc.alertLowStock(ctx, product)
	}
	return ToProductResponse(product), nil
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(ctx context.Context, actor entity.Principal, id int64) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NewNotFound("Product", id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("actor", actor.Subject).Int64("product_id", id).Msg("producto eliminado")
	return nil
}

// ExistsBySKU indica si ya hay un producto con ese SKU.
func (uc *ProductUseCase) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	p, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

// alertLowStock nunca devuelve error: el update ya quedó persistido.
func (uc *ProductUseCase) alertLowStock(ctx context.Context, product *entity.Product) {
	if product.SupplierID == nil {
		uc.log.Warn().Int64("product_id", product.ID).Msg("stock bajo sin proveedor asignado")
		return
	}
	supplier, err := uc.suppliers.GetByID(ctx, *product.SupplierID)
	if err != nil {
		uc.log.Error().Err(err).Int64("product_id", product.ID).Msg("no se pudo cargar el proveedor para la alerta de stock")
		return
	}
	if supplier == nil {
		uc.log.Warn().Int64("product_id", product.ID).Int64("supplier_id", *product.SupplierID).Msg("proveedor inexistente, alerta de stock omitida")
		return
	}
	uc.notifier.Dispatch(notify.LowStock(supplier, product))
}

func applyCategory(p *entity.Product, raw string) error {
	if raw == "" {
		p.Category = nil
		return nil
	}
	c, err := entity.ParseCategory(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	p.Category = &c
	return nil
}
