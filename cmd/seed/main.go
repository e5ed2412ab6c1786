// seed aplica las migraciones pendientes, garantiza los roles ADMIN y OWNER y crea
// la cuenta ADMIN inicial si ADMIN_EMAIL está definido y aún no está registrado.
//
// Uso: go run ./cmd/seed
// Variables: ADMIN_EMAIL, ADMIN_PASSWORD, ADMIN_USERNAME, ADMIN_FULL_NAME.
package main

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
	"github.com/jhoicas/inventory-control-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-control-api/pkg/config"
	"github.com/jhoicas/inventory-control-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	for _, name := range applied {
		log.Info().Str("migration", name).Msg("migración aplicada")
	}

	roles := postgres.NewRoleRepository(pool)
	for _, role := range entity.AllRoles {
		if err := roles.Ensure(ctx, role); err != nil {
			log.Fatal().Err(err).Str("role", role.String()).Msg("crear rol")
		}
	}

	admin := cfg.Admin
	if admin.Email == "" {
		log.Info().Msg("ADMIN_EMAIL vacío: no se crea cuenta ADMIN")
		return
	}
	users := postgres.NewUserRepository(pool)
	exists, err := users.ExistsByEmail(ctx, admin.Email)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar ADMIN")
	}
	if exists {
		log.Info().Str("email", admin.Email).Msg("ADMIN ya registrado")
		return
	}
	if admin.Password == "" {
		log.Fatal().Msg("ADMIN_PASSWORD es obligatorio para crear la cuenta ADMIN")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de password")
	}
	user := &entity.User{
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: string(hash),
		FullName:     admin.FullName,
		Roles:        []entity.Role{entity.RoleAdmin},
		CreatedAt:    time.Now(),
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatal().Err(err).Msg("crear ADMIN")
	}
	log.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("cuenta ADMIN creada")
}
