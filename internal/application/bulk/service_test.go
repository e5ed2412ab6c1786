package bulk_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-control-api/internal/application/bulk"
	"github.com/jhoicas/inventory-control-api/internal/domain"
	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
	"github.com/jhoicas/inventory-control-api/pkg/logger"
)

// memStore implementa los tres repositorios en memoria.
type memStore struct {
	mu        sync.Mutex
	nextID    int64
	products  []*entity.Product
	suppliers map[int64]*entity.Supplier
	orders    []*entity.Order
}

func newMemStore(suppliers ...*entity.Supplier) *memStore {
	s := &memStore{suppliers: map[int64]*entity.Supplier{}}
	for _, sup := range suppliers {
		s.suppliers[sup.ID] = sup
	}
	return s
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

type memProducts struct{ *memStore }

func (r memProducts) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.id()
	r.products = append(r.products, p)
	return nil
}

func (r memProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r memProducts) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r memProducts) Update(context.Context, *entity.Product) error { return nil }
func (r memProducts) List(context.Context) ([]*entity.Product, error) {
	return r.products, nil
}
func (r memProducts) CountBySupplier(context.Context, int64) (int, error) { return 0, nil }
func (r memProducts) Delete(context.Context, int64) error                 { return nil }
func (r memProducts) DeleteBySupplier(context.Context, int64) error       { return nil }

type memSuppliers struct{ *memStore }

func (r memSuppliers) Create(context.Context, *entity.Supplier) error { return nil }
func (r memSuppliers) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}
func (r memSuppliers) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (r memSuppliers) Update(context.Context, *entity.Supplier) error      { return nil }
func (r memSuppliers) List(context.Context) ([]*entity.Supplier, error)    { return nil, nil }
func (r memSuppliers) Delete(context.Context, int64) error                 { return nil }

type memOrders struct{ *memStore }

func (r memOrders) Create(_ context.Context, o *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.id()
	r.orders = append(r.orders, o)
	return nil
}
func (r memOrders) GetByID(context.Context, int64) (*entity.Order, error) { return nil, nil }
func (r memOrders) Update(context.Context, *entity.Order) error           { return nil }
func (r memOrders) List(context.Context) ([]*entity.Order, error)         { return r.orders, nil }
func (r memOrders) Delete(context.Context, int64) error                   { return nil }
func (r memOrders) DeleteBySupplier(context.Context, int64) error         { return nil }

var actor = entity.Principal{Subject: "owner", Roles: []entity.Role{entity.RoleOwner}}

func newService(t *testing.T, store *memStore) *bulk.Service {
	t.Helper()
	return bulk.NewService(memProducts{store}, memSuppliers{store}, memOrders{store}, t.TempDir(), logger.Nop())
}

const productHeader = "ID,Name,SKU,Price,Quantity,MinStockLevel,Category,Status,SupplierId,CreatedAt,UpdatedAt\n"

func TestImportProducts_ProveedorInexistenteSeOmite(t *testing.T) {
	store := newMemStore(&entity.Supplier{ID: 1, Name: "Acme", Email: "acme@example.com"})
	svc := newService(t, store)

	csvData := productHeader +
		"1,Widget,W-1,50.00,10,5,ELECTRONICS,ACTIVE,1,2024-01-02T03:04:05Z,\n" +
		"2,Ghost,G-1,10.00,1,,,,999,,\n" +
		"3,Gadget,G-2,7.5,3,N/A,N/A,N/A,1,,\n"

	out, err := svc.ImportProducts(context.Background(), actor, strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "W-1", out[0].SKU)
	assert.Equal(t, "G-2", out[1].SKU)
	assert.Nil(t, out[1].MinStockLevel)
	assert.Equal(t, "ACTIVE", out[1].Status)
	assert.Len(t, store.products, 2)
}

func TestImportProducts_FilasCortasYMalformadas(t *testing.T) {
	store := newMemStore(&entity.Supplier{ID: 1})
	svc := newService(t, store)

	csvData := productHeader +
		"1,Short,S-1,1\n" +
		"2,BadPrice,B-1,abc,1,,,,1,,\n" +
		"3,Negative,N-1,-4,1,,,,1,,\n" +
		"4,Fine,F-1,4,1,,,,1,,\n"

	out, err := svc.ImportProducts(context.Background(), actor, strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "F-1", out[0].SKU)
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestImportProducts_FalloDeLecturaEsImportError(t *testing.T) {
	svc := newService(t, newMemStore())

	_, err := svc.ImportProducts(context.Background(), actor, brokenReader{})
	var importErr *domain.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.EqualError(t, importErr.Cause, "disk on fire")
}

func TestProducts_ExportarEImportarConservaLosCampos(t *testing.T) {
	created := time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.UTC)
	updated := created.Add(time.Hour)
	cat := entity.CategoryBooks
	st := entity.ProductInactive
	original := []*entity.Product{
		{ID: 10, Name: "Book", SKU: "BK-1", Price: decimal.RequireFromString("12.34"), Quantity: 4, MinStockLevel: ptrInt(2), Category: &cat, Status: &st, SupplierID: ptrInt64(1), CreatedAt: created, UpdatedAt: &updated},
		{ID: 11, Name: "Pen", SKU: "PN-1", Price: decimal.RequireFromString("0.99"), Quantity: 100, SupplierID: ptrInt64(1), CreatedAt: created},
	}

	var buf bytes.Buffer
	require.NoError(t, bulk.WriteProducts(&buf, original))

	store := newMemStore(&entity.Supplier{ID: 1})
	svc := newService(t, store)
	_, err := svc.ImportProducts(context.Background(), actor, &buf)
	require.NoError(t, err)
	require.Len(t, store.products, len(original))

	for i, want := range original {
		got := store.products[i]
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.SKU, got.SKU)
		assert.True(t, want.Price.Equal(got.Price), "price %s vs %s", want.Price, got.Price)
		assert.Equal(t, want.Quantity, got.Quantity)
		assert.Equal(t, want.MinStockLevel, got.MinStockLevel)
		assert.Equal(t, want.Category, got.Category)
		assert.Equal(t, want.SupplierID, got.SupplierID)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
		if want.UpdatedAt == nil {
			assert.Nil(t, got.UpdatedAt)
		} else {
			require.NotNil(t, got.UpdatedAt)
			assert.True(t, want.UpdatedAt.Equal(*got.UpdatedAt))
		}
	}
	assert.Equal(t, entity.ProductInactive, *store.products[0].Status)
}

func TestImportOrders_ConsistenciaYEstadoPorDefecto(t *testing.T) {
	store := newMemStore(&entity.Supplier{ID: 1}, &entity.Supplier{ID: 2})
	require.NoError(t, memProducts{store}.Create(context.Background(), &entity.Product{
		Name: "Widget", SKU: "W-1", Price: decimal.RequireFromString("50.00"), SupplierID: ptrInt64(1),
	}))
	svc := newService(t, store)

	csvData := "OrderID,ProductId,SupplierId,Quantity,TotalPrice,CreatedAt,Status\n" +
		"1,1,1,5,,,SHIPPED\n" +
		"2,1,2,5,,,PENDING\n" +
		"3,1,1,2,99.00,2024-01-01T00:00:00Z,COMPLETED\n"

	out, err := svc.ImportOrders(context.Background(), actor, strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, out, 2, "la fila con proveedor distinto se omite")

	assert.True(t, decimal.RequireFromString("250").Equal(out[0].TotalPrice), "total vacío se recalcula")
	assert.Equal(t, "PENDING", out[0].Status)
	assert.True(t, decimal.RequireFromString("99").Equal(out[1].TotalPrice))
	assert.Equal(t, "COMPLETED", out[1].Status)
}

func TestExportProducts_RutaDentroDelDirectorio(t *testing.T) {
	store := newMemStore(&entity.Supplier{ID: 1})
	dir := t.TempDir()
	svc := bulk.NewService(memProducts{store}, memSuppliers{store}, memOrders{store}, dir, logger.Nop())

	path, err := svc.ExportProducts(context.Background(), actor, "reports/today.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reports", "today.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, productHeader, string(data))

	_, err = svc.ExportProducts(context.Background(), actor, "../escape.csv")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportOrders_NombrePorDefecto(t *testing.T) {
	store := newMemStore()
	dir := t.TempDir()
	svc := bulk.NewService(memProducts{store}, memSuppliers{store}, memOrders{store}, dir, logger.Nop())

	path, err := svc.ExportOrders(context.Background(), actor, "")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "orders-"))
	assert.True(t, strings.HasSuffix(path, ".csv"))
}

func ptrInt(v int) *int       { return &v }
func ptrInt64(v int64) *int64 { return &v }
