package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-control-api/internal/application/dto"
	"github.com/jhoicas/inventory-control-api/internal/application/usecase"
	"github.com/jhoicas/inventory-control-api/internal/domain"
	"github.com/jhoicas/inventory-control-api/internal/domain/repository"
	"github.com/jhoicas/inventory-control-api/pkg/logger"
)

func newSupplierUseCase() (*usecase.SupplierUseCase, *mockSuppliers, *mockProducts, *mockOrders) {
	suppliers, products, orders := &mockSuppliers{}, &mockProducts{}, &mockOrders{}
	tx := inlineTx{repos: repository.TxRepos{Products: products, Suppliers: suppliers, Orders: orders}}
	return usecase.NewSupplierUseCase(suppliers, tx, logger.Nop()), suppliers, products, orders
}

func TestSupplierCreate_EmailDuplicado(t *testing.T) {
	uc, suppliers, _, _ := newSupplierUseCase()
	suppliers.On("ExistsByEmail", mock.Anything, "acme@example.com").Return(true, nil)

	_, err := uc.Create(context.Background(), ownerActor, dto.SupplierRequest{Name: "Acme", Email: "acme@example.com", CompanyName: "Acme Inc"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	suppliers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSupplierDelete_ConProductosSinCascadaEsConflicto(t *testing.T) {
	uc, suppliers, products, orders := newSupplierUseCase()
	suppliers.On("GetByID", mock.Anything, int64(1)).Return(acme(), nil)
	products.On("CountBySupplier", mock.Anything, int64(1)).Return(3, nil)

	err := uc.Delete(context.Background(), ownerActor, 1, false)
	require.ErrorIs(t, err, domain.ErrConflict)
	suppliers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "DeleteBySupplier", mock.Anything, mock.Anything)
}

func TestSupplierDelete_CascadaBorraOrdenesYProductos(t *testing.T) {
	uc, suppliers, products, orders := newSupplierUseCase()
	suppliers.On("GetByID", mock.Anything, int64(1)).Return(acme(), nil)
	products.On("CountBySupplier", mock.Anything, int64(1)).Return(2, nil)
	orders.On("DeleteBySupplier", mock.Anything, int64(1)).Return(nil)
	products.On("DeleteBySupplier", mock.Anything, int64(1)).Return(nil)
	suppliers.On("Delete", mock.Anything, int64(1)).Return(nil)

	require.NoError(t, uc.Delete(context.Background(), ownerActor, 1, true))
	orders.AssertExpectations(t)
	products.AssertExpectations(t)
	suppliers.AssertExpectations(t)
}

func TestSupplierDelete_Inexistente(t *testing.T) {
	uc, suppliers, _, _ := newSupplierUseCase()
	suppliers.On("GetByID", mock.Anything, int64(5)).Return(nil, nil)

	err := uc.Delete(context.Background(), ownerActor, 5, true)
	assert.EqualError(t, err, "Supplier not found with ID: 5")
}
