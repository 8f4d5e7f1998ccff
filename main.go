package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/auth"
	"github.com/sepnoty-tech/sepnoty-api/config"
	paymentControllers "github.com/sepnoty-tech/sepnoty-api/controllers/payment"
	"github.com/sepnoty-tech/sepnoty-api/logger"
	"github.com/sepnoty-tech/sepnoty-api/models"
	"github.com/sepnoty-tech/sepnoty-api/routes"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(); err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := initDatabase(cfg)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductImage{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		logger.L().Fatal("auto-migrate failed", zap.Error(err))
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	chain := buildAuthChain(db, cfg)
	gw := paymentControllers.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)

	routes.SetupRoutes(r, db, cfg, chain, gw)

	logger.L().Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.L().Fatal("server exited", zap.Error(err))
	}
}

func initDatabase(cfg config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logger.L().Fatal("database connection failed", zap.Error(err))
	}
	return db
}

// buildAuthChain assembles the token verifiers in priority order. Firebase
// is optional: without credentials the API still serves local JWT accounts.
func buildAuthChain(db *gorm.DB, cfg config.Config) *auth.Chain {
	verifiers := []auth.Verifier{}

	fb, err := auth.NewFirebaseVerifier(context.Background(), db, cfg)
	if err != nil {
		logger.L().Warn("firebase verifier disabled", zap.Error(err))
	} else {
		verifiers = append(verifiers, fb)
	}

	verifiers = append(verifiers, auth.NewJWTVerifier(db, cfg.JWTSecret, cfg.AdminEmail))
	return auth.NewChain(verifiers...)
}
