package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/httpx"
	"github.com/sepnoty-tech/sepnoty-api/middleware"
	"github.com/sepnoty-tech/sepnoty-api/models"
)

// GET /api/auth/me
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.Identity(c)

		var user models.User
		if err := db.First(&user, ident.UserID).Error; err != nil {
			httpx.Fail(c, httpx.NotFound("User"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

// PUT /api/auth/me
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.Identity(c)

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, httpx.Validation("Invalid profile payload: %s", err.Error()))
			return
		}

		var user models.User
		if err := db.First(&user, ident.UserID).Error; err != nil {
			httpx.Fail(c, httpx.NotFound("User"))
			return
		}

		if req.Name != "" {
			user.Name = req.Name
		}
		if req.Email != "" {
			user.Email = req.Email
		}
		if req.Password != "" {
			if user.Provider == "firebase" {
				httpx.Fail(c, httpx.Validation("This account uses Google sign-in only."))
				return
			}
			hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				httpx.Fail(c, err)
				return
			}
			user.Password = string(hashed)
		}

		if err := db.Save(&user).Error; err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

// GET /api/admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(users), "users": users})
	}
}

// GET /api/admin/users/:id
func GetUserByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		err := db.First(&user, c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(c, httpx.NotFound("User"))
			return
		}
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

type AdminUpdateUserRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email" binding:"omitempty,email"`
	IsAdmin *bool  `json:"isAdmin"`
}

// PUT /api/admin/users/:id
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminUpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, httpx.Validation("Invalid user payload: %s", err.Error()))
			return
		}

		var user models.User
		err := db.First(&user, c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(c, httpx.NotFound("User"))
			return
		}
		if err != nil {
			httpx.Fail(c, err)
			return
		}

		if req.Name != "" {
			user.Name = req.Name
		}
		if req.Email != "" {
			user.Email = req.Email
		}
		if req.IsAdmin != nil {
			user.IsAdmin = *req.IsAdmin
		}

		if err := db.Save(&user).Error; err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

// DELETE /api/admin/users/:id
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&models.User{}, c.Param("id"))
		if res.Error != nil {
			httpx.Fail(c, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			httpx.Fail(c, httpx.NotFound("User"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
	}
}
