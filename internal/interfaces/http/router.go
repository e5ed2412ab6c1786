package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/inventory-control-api/internal/application/usecase"
	"github.com/jhoicas/inventory-control-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     LoginService
	Identities IdentityLoader
	Tokens     TokenVerifier
	UserUC     *usecase.UserUseCase
	ProductUC  *usecase.ProductUseCase
	SupplierUC *usecase.SupplierUseCase
	OrderUC    *usecase.OrderUseCase
	Bulk       BulkService
	Policy     *RolePolicy // nil = DefaultRolePolicy
	// Public rutas registradas antes de la autenticación (health, docs).
	Public      func(app *fiber.App)
	CORSOrigins string
	Log         *logger.Logger
}

// Router registra middlewares y rutas de la API.
// Orden: recover, request id, CORS, log de peticiones, rutas públicas, AuthMiddleware, RolePolicy, rutas /api.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	policy := deps.Policy
	if policy == nil {
		policy = DefaultRolePolicy()
	}
	origins := strings.TrimSpace(deps.CORSOrigins)
	if origins == "" {
		origins = "*"
	}

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(RequestLogger(log))

	if deps.Public != nil {
		deps.Public(app)
	}

	api := app.Group("/api", AuthMiddleware(deps.Tokens, deps.Identities, log), policy.Middleware())
	validate := NewValidator()

	// Auth (público según la política)
	authHandler := NewAuthHandler(deps.AuthUC, validate)
	api.Post("/auth/login", authHandler.Login)

	// Users
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, validate)
	users.Post("/register", userHandler.Register)
	users.Put("/update/:id", userHandler.Update)
	users.Get("/all", userHandler.List)
	users.Delete("/delete/:id", userHandler.Delete)
	users.Get("/:id", userHandler.GetByID)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, validate)
	products.Post("/create", productHandler.Create)
	products.Put("/update/:id", productHandler.Update)
	products.Get("/all", productHandler.List)
	products.Get("/exists/:sku", productHandler.ExistsBySKU)
	products.Delete("/delete/:id", productHandler.Delete)
	products.Get("/:id", productHandler.GetByID)

	// Suppliers
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC, validate)
	suppliers.Post("/create", supplierHandler.Create)
	suppliers.Put("/update/:id", supplierHandler.Update)
	suppliers.Get("/all", supplierHandler.List)
	suppliers.Delete("/delete/:id", supplierHandler.Delete)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Orders
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, validate)
	orders.Post("/create", orderHandler.Create)
	orders.Put("/update/:id", orderHandler.Update)
	orders.Get("/all", orderHandler.List)
	orders.Delete("/delete/:id", orderHandler.Delete)
	orders.Get("/:id", orderHandler.GetByID)

	// CSV
	csvGroup := api.Group("/csv")
	csvHandler := NewCSVHandler(deps.Bulk)
	csvGroup.Post("/import/products", csvHandler.ImportProducts)
	csvGroup.Post("/import/orders", csvHandler.ImportOrders)
	csvGroup.Post("/export/products", csvHandler.ExportProducts)
	csvGroup.Post("/export/orders", csvHandler.ExportOrders)
}
