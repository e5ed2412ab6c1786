package entity

// Supplier proveedor de productos. Email único.
type Supplier struct {
	ID          int64
	Name        string
	Email       string
	PhoneNumber string
	Address     string
	CompanyName string
}
