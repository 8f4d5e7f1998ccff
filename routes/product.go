package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/auth"
	"github.com/sepnoty-tech/sepnoty-api/config"
	productControllers "github.com/sepnoty-tech/sepnoty-api/controllers/product"
	"github.com/sepnoty-tech/sepnoty-api/middleware"
)

func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB, cfg config.Config, chain *auth.Chain) {
	group := api.Group("/products")
	{
		group.GET("", productControllers.GetProducts(db))
		group.GET("/:id", productControllers.GetProductByID(db))
	}

	upload := api.Group("/upload", middleware.RequireAuth(chain), middleware.RequireAdmin())
	{
		upload.GET("/sign", productControllers.SignUpload(cfg))
	}
}
