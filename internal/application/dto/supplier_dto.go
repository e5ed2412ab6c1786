package dto

// SupplierRequest entrada para crear o reemplazar un proveedor.
type SupplierRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=15"`
	Address     string `json:"address" validate:"omitempty,max=255"`
	CompanyName string `json:"company_name" validate:"required,max=255"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	CompanyName string `json:"company_name"`
}
