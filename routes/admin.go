package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/auth"
	orderControllers "github.com/sepnoty-tech/sepnoty-api/controllers/order"
	productControllers "github.com/sepnoty-tech/sepnoty-api/controllers/product"
	userControllers "github.com/sepnoty-tech/sepnoty-api/controllers/user"
	"github.com/sepnoty-tech/sepnoty-api/middleware"
)

func SetupAdminRoutes(api *gin.RouterGroup, db *gorm.DB, chain *auth.Chain) {
	admin := api.Group("/admin", middleware.RequireAuth(chain), middleware.RequireAdmin())
	{
		orders := admin.Group("/orders")
		{
			orders.GET("", orderControllers.GetAllOrders(db))
			orders.GET("/export", orderControllers.ExportOrdersToExcel(db))
			orders.GET("/ws", orderControllers.OrderWebSocketHandler)
			orders.PUT("/:orderID/status", orderControllers.UpdateOrderStatus(db))
			orders.DELETE("/:orderID", orderControllers.DeleteOrder(db))
		}

		products := admin.Group("/products")
		{
			products.POST("", productControllers.CreateProduct(db))
			products.GET("/export", productControllers.ExportProductsToExcel(db))
			products.PUT("/:id", productControllers.UpdateProduct(db))
			products.DELETE("/:id", productControllers.DeleteProduct(db))
		}

		users := admin.Group("/users")
		{
			users.GET("", userControllers.GetAllUsers(db))
			users.GET("/:id", userControllers.GetUserByID(db))
			users.PUT("/:id", userControllers.UpdateUser(db))
			users.DELETE("/:id", userControllers.DeleteUser(db))
		}
	}
}
