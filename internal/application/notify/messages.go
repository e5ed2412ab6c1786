package notify

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
)

// OrderPlaced aviso al proveedor de una nueva orden.
func OrderPlaced(supplier *entity.Supplier, product *entity.Product, quantity int) Message {
	body := fmt.Sprintf(
		"Dear %s,\n\nA new order has been placed for the product '%s' (SKU: %s).\n\n"+
			"Quantity: %d\n"+
			"Please ensure timely delivery.\n\n"+
			"Thank you,\nInventory Management Team",
		supplier.Name, product.Name, product.SKU, quantity,
	)
	return Message{
		To:      supplier.Email,
		Subject: "New Order for Product: " + product.Name,
		Body:    body,
		SentAt:  time.Now(),
	}
}

// LowStock alerta al proveedor cuando la cantidad quedó en o bajo el mínimo.
func LowStock(supplier *entity.Supplier, product *entity.Product) Message {
	minStock := 0
	if product.MinStockLevel != nil {
		minStock = *product.MinStockLevel
	}
	body := fmt.Sprintf(
		"Dear %s,\n\nThe stock for product '%s' (SKU: %s) is critically low. "+
			"Current quantity: %d, Minimum stock level: %d.\n\n"+
			"Please restock as soon as possible.\n\nThank you.",
		supplier.Name, product.Name, product.SKU, product.Quantity, minStock,
	)
	return Message{
		To:      supplier.Email,
		Subject: "Low Stock Alert: " + product.Name,
		Body:    body,
		SentAt:  time.Now(),
	}
}

// Welcome correo de bienvenida tras el registro de un usuario.
func Welcome(user *entity.User) Message {
	name := user.FullName
	if name == "" {
		name = user.Username
	}
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Thank you for joining our Inventory Control System! We're excited to help you efficiently manage and track inventory.\n\n"+
			"With our system, you can streamline operations, stay organized, and make data-driven decisions to enhance productivity.\n\n"+
			"Best regards,\nInventory Control Team",
		name,
	)
	return Message{
		To:      user.Email,
		Subject: "Welcome to the Inventory Control System",
		Body:    body,
		SentAt:  time.Now(),
	}
}
