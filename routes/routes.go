package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/auth"
	"github.com/sepnoty-tech/sepnoty-api/config"
	paymentControllers "github.com/sepnoty-tech/sepnoty-api/controllers/payment"
)

// SetupRoutes is the single entry point wiring every route group under /api.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, chain *auth.Chain, gw paymentControllers.Gateway) {
	api := r.Group("/api")

	SetupAuthRoutes(api, db, cfg, chain)
	SetupCartRoutes(api, db, chain)
	SetupProductRoutes(api, db, cfg, chain)
	SetupOrderRoutes(api, db, cfg, chain)
	SetupPaymentRoutes(api, db, cfg, chain, gw)
	SetupAdminRoutes(api, db, chain)
}
