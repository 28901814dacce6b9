package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/nookcoder/library-console/config"
	"github.com/nookcoder/library-console/internal/auth"
	"github.com/nookcoder/library-console/internal/devapi"
	"github.com/nookcoder/library-console/internal/logger"
	"go.uber.org/zap"
)

func main() {
	// 0. Load Config
	env := os.Getenv("LIBCTL_ENV")
	cfg, err := config.Load(env)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding, Output: "stdout"})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	if cfg.DevAPI.JWTSecret == "" {
		zl.Fatal("devapi.jwt_secret (or LIBCTL_JWT_SECRET) is required")
	}

	// 1. Setup
	if cfg.DevAPI.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Services
	tokens := auth.NewJWTService(cfg.DevAPI.JWTSecret, cfg.DevAPI.TokenTTL)
	users := devapi.NewDirectory(0)
	if _, err := users.Add(devapi.User{
		Email:            cfg.DevAPI.AdminEmail,
		FirstName:        "Library",
		LastName:         "Admin",
		MembershipNumber: "ADMIN-0001",
		Roles:            []string{"ADMIN", "USER"},
	}, cfg.DevAPI.AdminPass); err != nil {
		zl.Fatal("Failed to seed admin account", zap.Error(err))
	}

	// 3. Routes
	handler := devapi.NewHandler(users, tokens, devapi.SeedBooks(), zl)
	r := devapi.NewRouter(handler, tokens, devapi.Options{AllowOrigins: cfg.DevAPI.AllowOrigins})

	// 4. Run
	addr := ":" + cfg.DevAPI.Port
	zl.Info("Starting development library API", zap.String("addr", addr), zap.String("admin", cfg.DevAPI.AdminEmail))
	if err := r.Run(addr); err != nil {
		zl.Fatal("Failed to run server", zap.Error(err))
	}
}
