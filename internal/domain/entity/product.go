package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Category categoría cerrada de productos.
type Category string

const (
	CategoryElectronics Category = "ELECTRONICS"
	CategoryClothing    Category = "CLOTHING"
	CategoryFood        Category = "FOOD"
	CategoryFurniture   Category = "FURNITURE"
	CategoryToys        Category = "TOYS"
	CategoryBooks       Category = "BOOKS"
	CategoryOther       Category = "OTHER"
)

// ParseCategory acepta el nombre sin distinguir mayúsculas.
func ParseCategory(s string) (Category, error) {
	switch c := Category(normalizeEnum(s)); c {
	case CategoryElectronics, CategoryClothing, CategoryFood, CategoryFurniture,
		CategoryToys, CategoryBooks, CategoryOther:
		return c, nil
	default:
		return "", fmt.Errorf("categoría desconocida: %q", s)
	}
}

// ProductStatus estado comercial del producto.
type ProductStatus string

const (
	ProductActive   ProductStatus = "ACTIVE"
	ProductInactive ProductStatus = "INACTIVE"
)

// ParseProductStatus acepta el nombre sin distinguir mayúsculas.
func ParseProductStatus(s string) (ProductStatus, error) {
	switch st := ProductStatus(normalizeEnum(s)); st {
	case ProductActive, ProductInactive:
		return st, nil
	default:
		return "", fmt.Errorf("estado de producto desconocido: %q", s)
	}
}

// Product artículo del inventario. SupplierID es una referencia débil (puede quedar nil).
type Product struct {
	ID            int64
	Name          string          // único
	SKU           string          // único
	Price         decimal.Decimal // positivo
	Quantity      int
	MinStockLevel *int
	Category      *Category
	Status        *ProductStatus
	SupplierID    *int64
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// IsLowStock indica si la cantidad quedó en o por debajo del mínimo configurado.
// Sin mínimo configurado nunca hay alerta.
func (p *Product) IsLowStock() bool {
	return p.MinStockLevel != nil && p.Quantity <= *p.MinStockLevel
}
