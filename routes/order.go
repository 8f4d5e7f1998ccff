package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/auth"
	"github.com/sepnoty-tech/sepnoty-api/config"
	orderControllers "github.com/sepnoty-tech/sepnoty-api/controllers/order"
	"github.com/sepnoty-tech/sepnoty-api/middleware"
)

func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB, cfg config.Config, chain *auth.Chain) {
	group := api.Group("/orders", middleware.RequireAuth(chain))
	{
		group.POST("", orderControllers.PlaceOrderHandler(db, cfg.Pricing))
		group.GET("/mine", orderControllers.GetMyOrders(db))
		group.GET("/:orderID", orderControllers.GetOrderByID(db))
	}
}
