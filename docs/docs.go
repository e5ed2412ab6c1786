// Package docs expone la especificación Swagger de la API (swagger.json) a través de swag.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

// InstanceName nombre con el que se registra la especificación en swag.
const InstanceName = "swagger"

//go:embed swagger.json
var swaggerJSON string

// SwaggerInfo metadatos de la especificación.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Title:            "Inventory Control API",
	Description:      "Inventario de productos, proveedores y órdenes con autenticación JWT por roles.",
	InfoInstanceName: InstanceName,
	SwaggerTemplate:  swaggerJSON,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
