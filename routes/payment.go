package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/auth"
	"github.com/sepnoty-tech/sepnoty-api/config"
	paymentControllers "github.com/sepnoty-tech/sepnoty-api/controllers/payment"
	"github.com/sepnoty-tech/sepnoty-api/middleware"
)

func SetupPaymentRoutes(api *gin.RouterGroup, db *gorm.DB, cfg config.Config, chain *auth.Chain, gw paymentControllers.Gateway) {
	group := api.Group("/payments/razorpay", middleware.RequireAuth(chain))
	{
		group.POST("/create", paymentControllers.CreateRazorpayOrder(db, gw, cfg.Pricing))
		group.POST("/verify", paymentControllers.VerifyRazorpayPayment(db, gw))
	}
}
