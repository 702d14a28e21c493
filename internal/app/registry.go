package app

import (
	"path/filepath"

	"proryx/internal/account"
	"proryx/internal/auth"
	"proryx/internal/config"
	"proryx/internal/messaging/kafka"
	"proryx/internal/middleware"
	"proryx/internal/property"
	"proryx/internal/rbac"
	"proryx/internal/rbac/infra"
	"proryx/internal/renter"
	"proryx/internal/tenancy"
	"proryx/internal/user"
	"proryx/internal/vendors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// registerModules wires repositories, services, and handlers for every
// module and mounts them under /api/v1.
func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	redisClient *redis.Client,
	cfg *config.Config,
) error {
	logger := zap.L()

	seqRepo := tenancy.NewSequenceRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	enforcer, err := infra.NewEnforcer(filepath.Join("configs", "rbac_model.conf"))
	if err != nil {
		return err
	}

	// RBAC
	rbacRepo := rbac.NewRepository(db)
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)
	rbacHandler := rbac.NewHandler(rbacService)

	// User
	userRepo := user.NewRepository(db, seqRepo)
	userService := user.NewService(userRepo, logger)
	userHandler := user.NewHandler(userService, logger)

	// Auth
	authRepo := auth.NewRepository(db)
	authService := auth.NewService(authRepo, userRepo, rbacService, auth.Options{
		JWTSecret:       cfg.JWTSecret,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
		MaxFailedLogins: cfg.MaxFailedLogins,
		LockoutDuration: cfg.LockoutDuration,
	}, logger)
	authHandler := auth.NewHandler(authService, logger)

	// Account & companies
	accountRepo := account.NewRepository(db)
	accountService := account.NewService(db, accountRepo, userRepo, logger)
	accountHandler := account.NewHandler(accountService, logger)

	// Property portfolio
	propertyRepo := property.NewRepository(db, seqRepo)
	propertyService := property.NewService(propertyRepo, redisClient, logger)
	propertyHandler := property.NewHandlerWithRedis(propertyService, redisClient, logger)

	// Renters & KYC
	renterRepo := renter.NewRepository(db, seqRepo)
	renterService := renter.NewService(db, renterRepo, outboxRepo, logger)
	renterHandler := renter.NewHandlerWithRedis(renterService, redisClient, logger)

	// Vendors
	vendorRepo := vendor.NewRepository(db, seqRepo)
	vendorService := vendor.NewService(vendorRepo, logger)
	vendorHandler := vendor.NewHandlerWithRedis(vendorService, redisClient, logger)

	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")

	auth.RegisterRoutes(api, authHandler, cfg.JWTSecret)
	account.RegisterRoutes(api, accountHandler, rbacService, cfg.JWTSecret)
	user.RegisterRoutes(api, userHandler, rbacService, cfg.JWTSecret, logger)
	rbac.RegisterRoutes(api, rbacHandler, rbacService, cfg.JWTSecret)
	property.RegisterRoutes(api, propertyHandler, rbacService, cfg.JWTSecret, logger, redisClient)
	renter.RegisterRoutes(api, renterHandler, rbacService, cfg.JWTSecret, logger, redisClient)
	vendor.RegisterRoutes(api, vendorHandler, rbacService, cfg.JWTSecret, logger, redisClient)

	return nil
}
