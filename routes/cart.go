package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/auth"
	cartControllers "github.com/sepnoty-tech/sepnoty-api/controllers/cart"
	"github.com/sepnoty-tech/sepnoty-api/middleware"
)

func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB, chain *auth.Chain) {
	group := api.Group("/cart", middleware.RequireAuth(chain))
	{
		group.GET("", cartControllers.GetCart(db))
		group.POST("", cartControllers.SaveCart(db))
		group.POST("/merge", cartControllers.MergeCart(db))
		group.DELETE("", cartControllers.ClearCart(db))
		group.DELETE("/items/:productID", cartControllers.RemoveCartItem(db))
	}
}
