package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products  ProductRepository
	Suppliers SupplierRepository
	Orders    OrderRepository
}

// TxRunner ejecuta fn dentro de una transacción; si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
