package usecase

import (
	"github.com/jhoicas/inventory-control-api/internal/application/dto"
	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// ToProductResponse mapea la entidad a la salida HTTP/CSV.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Price:         p.Price,
		Quantity:      p.Quantity,
		MinStockLevel: p.MinStockLevel,
		SupplierID:    p.SupplierID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Category != nil {
		out.Category = string(*p.Category)
	}
	if p.Status != nil {
		out.Status = string(*p.Status)
	}
	return out
}

// ToOrderResponse mapea la entidad a la salida HTTP/CSV.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	return &dto.OrderResponse{
		ID:         o.ID,
		ProductID:  o.ProductID,
		SupplierID: o.SupplierID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
		CreatedAt:  o.CreatedAt,
		Status:     string(o.Status),
	}
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		PhoneNumber: s.PhoneNumber,
		Address:     s.Address,
		CompanyName: s.CompanyName,
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	out := &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		Roles:       entity.RoleNames(u.Roles),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.DateOfBirth != nil {
		out.DateOfBirth = u.DateOfBirth.Format(dateLayout)
	}
	return out
}
