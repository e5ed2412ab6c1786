package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventory-control-api/internal/application/dto"
	"github.com/jhoicas/inventory-control-api/internal/domain"
	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
	"github.com/jhoicas/inventory-control-api/internal/domain/repository"
	"github.com/jhoicas/inventory-control-api/pkg/logger"
)

// SupplierUseCase aplica reglas de negocio para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
	tx   repository.TxRunner
	log  *logger.Logger
}

// NewSupplierUseCase construye el caso de uso con el puerto de persistencia y el runner transaccional.
func NewSupplierUseCase(repo repository.SupplierRepository, tx repository.TxRunner, log *logger.Logger) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, tx: tx, log: log.Component("suppliers")}
}

// Create registra un proveedor. El email es único.
func (uc *SupplierUseCase) Create(ctx context.Context, actor entity.Principal, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	email := strings.TrimSpace(in.Email)
	exists, err := uc.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	s := &entity.Supplier{
		Name:        in.Name,
		Email:       email,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		CompanyName: in.CompanyName,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.log.Info().Str("actor", actor.Subject).Int64("supplier_id", s.ID).Msg("proveedor creado")
	return toSupplierResponse(s), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(ctx context.Context, actor entity.Principal, id int64) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NewNotFound("Supplier", id)
	}
	return toSupplierResponse(s), nil
}

// List devuelve todos los proveedores.
func (uc *SupplierUseCase) List(ctx context.Context, actor entity.Principal) ([]*dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

// Update reemplaza todos los datos del proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, actor entity.Principal, id int64, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NewNotFound("Supplier", id)
	}
	email := strings.TrimSpace(in.Email)
	if !strings.EqualFold(email, s.Email) {
		exists, err := uc.repo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
	}
	s.Name = in.Name
	s.Email = email
	s.PhoneNumber = in.PhoneNumber
	s.Address = in.Address
	s.CompanyName = in.CompanyName
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Delete elimina el proveedor. Con productos asociados exige cascade; la cascada borra
// órdenes, productos y proveedor en la misma transacción.
func (uc *SupplierUseCase) Delete(ctx context.Context, actor entity.Principal, id int64, cascade bool) error {
	err := uc.tx.Run(ctx, func(r repository.TxRepos) error {
		s, err := r.Suppliers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.NewNotFound("Supplier", id)
		}
		n, err := r.Products.CountBySupplier(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			if !cascade {
				return fmt.Errorf("%w: supplier %d still has %d product(s); use cascade=true to delete them", domain.ErrConflict, id, n)
			}
			if err := r.Orders.DeleteBySupplier(ctx, id); err != nil {
				return err
			}
			if err := r.Products.DeleteBySupplier(ctx, id); err != nil {
				return err
			}
		}
		return r.Suppliers.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("actor", actor.Subject).Int64("supplier_id", id).Bool("cascade", cascade).Msg("proveedor eliminado")
	return nil
}
