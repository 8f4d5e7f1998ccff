package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/config"
	"github.com/sepnoty-tech/sepnoty-api/httpx"
	"github.com/sepnoty-tech/sepnoty-api/models"
)

type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func publicUser(u *models.User) gin.H {
	return gin.H{"id": u.ID, "name": u.Name, "email": u.Email, "isAdmin": u.IsAdmin}
}

// POST /api/auth/register
func Register(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, httpx.Validation("Invalid registration payload: %s", err.Error()))
			return
		}
		if req.Password != req.ConfirmPassword {
			httpx.Fail(c, httpx.Validation("Passwords do not match"))
			return
		}

		var existing models.User
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			httpx.Fail(c, httpx.Validation("Email already registered. Please log in."))
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(c, err)
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httpx.Fail(c, err)
			return
		}

		user := models.User{
			Name:     req.Name,
			Email:    req.Email,
			Password: string(hashed),
			Provider: "local",
			IsAdmin:  req.Email == cfg.AdminEmail,
			Cart:     models.Cart{},
		}
		if err := db.Create(&user).Error; err != nil {
			httpx.Fail(c, err)
			return
		}

		token, err := IssueToken(cfg.JWTSecret, &user)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "token": token, "user": publicUser(&user)})
	}
}

// POST /api/auth/login
func Login(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, httpx.Validation("Email and password are required"))
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			httpx.Fail(c, httpx.Unauthorized("Invalid email or password"))
			return
		}
		if user.Provider == "firebase" {
			httpx.Fail(c, httpx.Unauthorized("This account uses Google sign-in only."))
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
			httpx.Fail(c, httpx.Unauthorized("Invalid email or password"))
			return
		}

		token, err := IssueToken(cfg.JWTSecret, &user)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": publicUser(&user)})
	}
}
