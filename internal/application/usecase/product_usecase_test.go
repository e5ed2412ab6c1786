package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-control-api/internal/application/dto"
	"github.com/jhoicas/inventory-control-api/internal/application/notify"
	"github.com/jhoicas/inventory-control-api/internal/application/usecase"
	"github.com/jhoicas/inventory-control-api/internal/domain"
	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
	"github.com/jhoicas/inventory-control-api/pkg/logger"
)

func stockedWidget() *entity.Product {
	p := widget()
	p.MinStockLevel = ptrInt(5)
	return p
}

func TestProductUpdate_StockBajoNotificaAlProveedor(t *testing.T) {
	products, suppliers, notifier := &mockProducts{}, &mockSuppliers{}, &mockNotifier{}
	products.On("GetByID", mock.Anything, int64(1)).Return(stockedWidget(), nil)
	products.On("Update", mock.Anything, mock.Anything).Return(nil)
	suppliers.On("GetByID", mock.Anything, int64(1)).Return(acme(), nil)
	uc := usecase.NewProductUseCase(products, suppliers, notifier, logger.Nop())

	out, err := uc.Update(context.Background(), ownerActor, 1, dto.UpdateProductRequest{Quantity: ptrInt(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Quantity)
	assert.NotNil(t, out.UpdatedAt)

	msgs := notifier.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Low Stock Alert: Widget", msgs[0].Subject)
	assert.Equal(t, "acme@example.com", msgs[0].To)
}

func TestProductUpdate_SinCambioDeCantidadNoNotifica(t *testing.T) {
	products, suppliers, notifier := &mockProducts{}, &mockSuppliers{}, &mockNotifier{}
	low := stockedWidget()
	low.Quantity = 1
	products.On("GetByID", mock.Anything, int64(1)).Return(low, nil)
	products.On("Update", mock.Anything, mock.Anything).Return(nil)
	uc := usecase.NewProductUseCase(products, suppliers, notifier, logger.Nop())

	name := "Widget Pro"
	_, err := uc.Update(context.Background(), ownerActor, 1, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Empty(t, notifier.messages())
}

func TestProductUpdate_CantidadSobreElMinimoNoNotifica(t *testing.T) {
	products, suppliers, notifier := &mockProducts{}, &mockSuppliers{}, &mockNotifier{}
	products.On("GetByID", mock.Anything, int64(1)).Return(stockedWidget(), nil)
	products.On("Update", mock.Anything, mock.Anything).Return(nil)
	uc := usecase.NewProductUseCase(products, suppliers, notifier, logger.Nop())

	_, err := uc.Update(context.Background(), ownerActor, 1, dto.UpdateProductRequest{Quantity: ptrInt(6)})
	require.NoError(t, err)
	assert.Empty(t, notifier.messages())
}

// countingSender cuenta los intentos y luego falla (error o panic).
type countingSender struct {
	calls atomic.Int32
	panic bool
}

func (s *countingSender) Send(context.Context, notify.Message) error {
	s.calls.Add(1)
	if s.panic {
		panic("smtp exploded")
	}
	return errors.New("connection refused")
}

func TestProductUpdate_FalloDelEnvioNoAfectaElUpdate(t *testing.T) {
	for name, sender := range map[string]*countingSender{
		"error": {},
		"panic": {panic: true},
	} {
		t.Run(name, func(t *testing.T) {
			products, suppliers := &mockProducts{}, &mockSuppliers{}
			products.On("GetByID", mock.Anything, int64(1)).Return(stockedWidget(), nil)
			products.On("Update", mock.Anything, mock.Anything).Return(nil)
			suppliers.On("GetByID", mock.Anything, int64(1)).Return(acme(), nil)
			dispatcher := notify.NewDispatcher(sender, logger.Nop(), time.Second)
			uc := usecase.NewProductUseCase(products, suppliers, dispatcher, logger.Nop())

			out, err := uc.Update(context.Background(), ownerActor, 1, dto.UpdateProductRequest{Quantity: ptrInt(2)})
			dispatcher.Wait()

			require.NoError(t, err)
			assert.Equal(t, 2, out.Quantity)
			assert.Equal(t, int32(1), sender.calls.Load(), "el envío se intenta una vez")
		})
	}
}

func TestProductCreate_ProveedorInexistente(t *testing.T) {
	products, suppliers := &mockProducts{}, &mockSuppliers{}
	suppliers.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)
	uc := usecase.NewProductUseCase(products, suppliers, &mockNotifier{}, logger.Nop())

	_, err := uc.Create(context.Background(), ownerActor, dto.CreateProductRequest{
		Name: "Widget", SKU: "W-1", Price: decimal.NewFromInt(10), Quantity: ptrInt(1), SupplierID: 99,
	})
	assert.EqualError(t, err, "Supplier not found with ID: 99")
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	products, suppliers := &mockProducts{}, &mockSuppliers{}
	suppliers.On("GetByID", mock.Anything, int64(1)).Return(acme(), nil)
	products.On("GetBySKU", mock.Anything, "W-1").Return(widget(), nil)
	uc := usecase.NewProductUseCase(products, suppliers, &mockNotifier{}, logger.Nop())

	_, err := uc.Create(context.Background(), ownerActor, dto.CreateProductRequest{
		Name: "Otro", SKU: "W-1", Price: decimal.NewFromInt(10), Quantity: ptrInt(1), SupplierID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// El nombre único lo garantiza la constraint de la tabla; el repositorio devuelve ErrDuplicate.
func TestProductCreate_NombreDuplicado(t *testing.T) {
	products, suppliers := &mockProducts{}, &mockSuppliers{}
	suppliers.On("GetByID", mock.Anything, int64(1)).Return(acme(), nil)
	products.On("GetBySKU", mock.Anything, "W-2").Return(nil, nil)
	products.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)
	uc := usecase.NewProductUseCase(products, suppliers, &mockNotifier{}, logger.Nop())

	out, err := uc.Create(context.Background(), ownerActor, dto.CreateProductRequest{
		Name: "Widget", SKU: "W-2", Price: decimal.NewFromInt(10), Quantity: ptrInt(1), SupplierID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Nil(t, out)
}

func TestProductUpdate_NombreDuplicadoNoNotifica(t *testing.T) {
	products, suppliers, notifier := &mockProducts{}, &mockSuppliers{}, &mockNotifier{}
	products.On("GetByID", mock.Anything, int64(1)).Return(stockedWidget(), nil)
	products.On("Update", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)
	uc := usecase.NewProductUseCase(products, suppliers, notifier, logger.Nop())

	name := "Gadget"
	_, err := uc.Update(context.Background(), ownerActor, 1, dto.UpdateProductRequest{Name: &name, Quantity: ptrInt(1)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, notifier.messages())
}

func TestProductCreate_EstadoPorDefectoActive(t *testing.T) {
	products, suppliers := &mockProducts{}, &mockSuppliers{}
	suppliers.On("GetByID", mock.Anything, int64(1)).Return(acme(), nil)
	products.On("GetBySKU", mock.Anything, "W-2").Return(nil, nil)
	products.On("Create", mock.Anything, mock.Anything).Return(nil)
	uc := usecase.NewProductUseCase(products, suppliers, &mockNotifier{}, logger.Nop())

	out, err := uc.Create(context.Background(), ownerActor, dto.CreateProductRequest{
		Name: "Gadget", SKU: "W-2", Price: decimal.NewFromInt(10), Quantity: ptrInt(3), Category: "electronics", SupplierID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", out.Status)
	assert.Equal(t, "ELECTRONICS", out.Category)
	require.NotNil(t, out.SupplierID)
	assert.Equal(t, int64(1), *out.SupplierID)
}

func TestProductCreate_CategoriaInvalida(t *testing.T) {
	products, suppliers := &mockProducts{}, &mockSuppliers{}
	suppliers.On("GetByID", mock.Anything, int64(1)).Return(acme(), nil)
	products.On("GetBySKU", mock.Anything, "W-3").Return(nil, nil)
	uc := usecase.NewProductUseCase(products, suppliers, &mockNotifier{}, logger.Nop())

	_, err := uc.Create(context.Background(), ownerActor, dto.CreateProductRequest{
		Name: "Gadget", SKU: "W-3", Price: decimal.NewFromInt(10), Quantity: ptrInt(3), Category: "weapons", SupplierID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductDelete_Inexistente(t *testing.T) {
	products := &mockProducts{}
	products.On("GetByID", mock.Anything, int64(4)).Return(nil, nil)
	uc := usecase.NewProductUseCase(products, &mockSuppliers{}, &mockNotifier{}, logger.Nop())

	err := uc.Delete(context.Background(), ownerActor, 4)
	assert.EqualError(t, err, "Product not found with ID: 4")
}
