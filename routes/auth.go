package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/auth"
	"github.com/sepnoty-tech/sepnoty-api/config"
	userControllers "github.com/sepnoty-tech/sepnoty-api/controllers/user"
	"github.com/sepnoty-tech/sepnoty-api/middleware"
)

func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB, cfg config.Config, chain *auth.Chain) {
	group := api.Group("/auth")
	{
		group.POST("/register", auth.Register(db, cfg))
		group.POST("/login", auth.Login(db, cfg))

		me := group.Group("/me", middleware.RequireAuth(chain))
		{
			me.GET("", userControllers.GetProfile(db))
			me.PUT("", userControllers.UpdateProfile(db))
		}
	}
}
