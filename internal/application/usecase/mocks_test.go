package usecase_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/inventory-control-api/internal/application/notify"
	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
	"github.com/jhoicas/inventory-control-api/internal/domain/repository"
)

type mockProducts struct{ mock.Mock }

func (m *mockProducts) Create(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProducts) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *mockProducts) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	args := m.Called(ctx, sku)
	p, _ := args.Get(0).(*entity.Product)
	return p, args.Error(1)
}

func (m *mockProducts) Update(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProducts) List(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Product)
	return list, args.Error(1)
}

func (m *mockProducts) CountBySupplier(ctx context.Context, supplierID int64) (int, error) {
	args := m.Called(ctx, supplierID)
	return args.Int(0), args.Error(1)
}

func (m *mockProducts) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProducts) DeleteBySupplier(ctx context.Context, supplierID int64) error {
	return m.Called(ctx, supplierID).Error(0)
}

type mockSuppliers struct{ mock.Mock }

func (m *mockSuppliers) Create(ctx context.Context, s *entity.Supplier) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSuppliers) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*entity.Supplier)
	return s, args.Error(1)
}

func (m *mockSuppliers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockSuppliers) Update(ctx context.Context, s *entity.Supplier) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSuppliers) List(ctx context.Context) ([]*entity.Supplier, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Supplier)
	return list, args.Error(1)
}

func (m *mockSuppliers) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockOrders struct{ mock.Mock }

func (m *mockOrders) Create(ctx context.Context, o *entity.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrders) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*entity.Order)
	return o, args.Error(1)
}

func (m *mockOrders) Update(ctx context.Context, o *entity.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrders) List(ctx context.Context) ([]*entity.Order, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Order)
	return list, args.Error(1)
}

func (m *mockOrders) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockOrders) DeleteBySupplier(ctx context.Context, supplierID int64) error {
	return m.Called(ctx, supplierID).Error(0)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUsers) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUsers) FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	args := m.Called(ctx, identifier)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUsers) Update(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUsers) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.User)
	return list, args.Error(1)
}

func (m *mockUsers) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockRoles struct{ mock.Mock }

func (m *mockRoles) Exists(ctx context.Context, role entity.Role) (bool, error) {
	args := m.Called(ctx, role)
	return args.Bool(0), args.Error(1)
}

func (m *mockRoles) Ensure(ctx context.Context, role entity.Role) error {
	return m.Called(ctx, role).Error(0)
}

// mockNotifier registra los mensajes despachados.
type mockNotifier struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (n *mockNotifier) Dispatch(msg notify.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

func (n *mockNotifier) messages() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.sent...)
}

// inlineTx ejecuta fn directamente sobre los mocks, sin transacción real.
type inlineTx struct {
	repos repository.TxRepos
}

func (t inlineTx) Run(ctx context.Context, fn func(repository.TxRepos) error) error {
	return fn(t.repos)
}

var (
	ownerActor = entity.Principal{Subject: "owner", Roles: []entity.Role{entity.RoleOwner}}
	adminActor = entity.Principal{Subject: "admin", Roles: []entity.Role{entity.RoleAdmin}}
)

func ptrInt(v int) *int       { return &v }
func ptrInt64(v int64) *int64 { return &v }
