// @title           Inventory Control API
// @version         1.0
// @description     Inventario de productos, proveedores y órdenes con autenticación JWT por roles.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"

	"github.com/jhoicas/inventory-control-api/docs"
	"github.com/jhoicas/inventory-control-api/internal/application/auth"
	"github.com/jhoicas/inventory-control-api/internal/application/bulk"
	"github.com/jhoicas/inventory-control-api/internal/application/notify"
	"github.com/jhoicas/inventory-control-api/internal/application/usecase"
	"github.com/jhoicas/inventory-control-api/internal/infrastructure/mail"
	"github.com/jhoicas/inventory-control-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventory-control-api/internal/interfaces/http"
	"github.com/jhoicas/inventory-control-api/pkg/config"
	"github.com/jhoicas/inventory-control-api/pkg/jwt"
	"github.com/jhoicas/inventory-control-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	tokens, err := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL())
	if err != nil {
		log.Fatal().Err(err).Msg("servicio de tokens")
	}

	// Notificaciones: SMTP si MAIL_HOST está definido, si no solo log.
	dispatcher := notify.NewDispatcher(
		mail.NewSender(cfg.Mail, log),
		log,
		time.Duration(cfg.Mail.Timeout)*time.Second,
	)

	authUC := auth.NewAuthUseCase(userRepo, tokens, log)
	userUC := usecase.NewUserUseCase(userRepo, roleRepo, dispatcher, log)
	productUC := usecase.NewProductUseCase(productRepo, supplierRepo, dispatcher, log)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, txRunner, log)
	orderUC := usecase.NewOrderUseCase(txRunner, orderRepo, dispatcher, log)
	bulkSvc := bulk.NewService(productRepo, supplierRepo, orderRepo, cfg.CSV.ExportDir, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024,
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		Identities:  authUC,
		Tokens:      tokens,
		UserUC:      userUC,
		ProductUC:   productUC,
		SupplierUC:  supplierUC,
		OrderUC:     orderUC,
		Bulk:        bulkSvc,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Log:         log,
		Public: func(app *fiber.App) {
			// Swagger UI en local: http://localhost:<port>/docs
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: "./docs/swagger.json",
				Path:     "docs",
				Title:    "Inventory Control API",
			}))
			app.Get("/openapi.json", func(c *fiber.Ctx) error {
				doc, err := swag.ReadDoc(docs.InstanceName)
				if err != nil {
					return fiber.ErrNotFound
				}
				c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
				return c.SendString(doc)
			})
			app.Get("/health", func(c *fiber.Ctx) error {
				return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
			})
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// Las notificaciones en curso terminan antes de cerrar el pool.
	dispatcher.Wait()
	pool.Close()

	log.Info().Msg("aplicación detenida")
}
