package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/httpx"
	"github.com/sepnoty-tech/sepnoty-api/middleware"
	"github.com/sepnoty-tech/sepnoty-api/models"
)

type CartLineInput struct {
	ProductID *uint   `json:"productId"`
	Name      string  `json:"name" binding:"required"`
	Quantity  int     `json:"qty" binding:"required,min=1"`
	UnitPrice float64 `json:"price" binding:"gte=0"`
	Image     string  `json:"image"`
}

type CartRequest struct {
	Items []CartLineInput `json:"items" binding:"dive"`
}

func toCartItems(inputs []CartLineInput) []models.CartItem {
	items := make([]models.CartItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, models.CartItem{
			ProductID: in.ProductID,
			Name:      in.Name,
			Quantity:  in.Quantity,
			UnitPrice: in.UnitPrice,
			Image:     in.Image,
			AddedAt:   time.Now(),
		})
	}
	return items
}

// loadOrCreateCart fetches the caller's cart, creating an empty one on first
// use. A store failure surfaces as an error, never as an empty cart.
func loadOrCreateCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// ReplaceCart overwrites the persisted cart with items in one transaction.
// There is no line-level update; every mutation rewrites the whole cart.
func ReplaceCart(db *gorm.DB, cartID uint, items []models.CartItem) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].ID = 0
			items[i].CartID = cartID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Cart{}).Where("id = ?", cartID).
			Update("updated_at", time.Now()).Error
	})
}

// GET /api/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.Identity(c)
		cart, err := loadOrCreateCart(db, ident.UserID)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart.Items})
	}
}

// POST /api/cart — idempotent whole-cart replace.
func SaveCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.Identity(c)

		var req CartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, httpx.Validation("Invalid cart payload: %s", err.Error()))
			return
		}

		cart, err := loadOrCreateCart(db, ident.UserID)
		if err != nil {
			httpx.Fail(c, err)
			return
		}

		items := MergeCarts(nil, toCartItems(req.Items))
		if err := ReplaceCart(db, cart.ID, items); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cart": items})
	}
}

// POST /api/cart/merge — fold a client-held cart into the persisted one.
func MergeCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.Identity(c)

		var req CartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, httpx.Validation("Invalid cart payload: %s", err.Error()))
			return
		}

		cart, err := loadOrCreateCart(db, ident.UserID)
		if err != nil {
			httpx.Fail(c, err)
			return
		}

		merged := MergeCarts(cart.Items, toCartItems(req.Items))
		if err := ReplaceCart(db, cart.ID, merged); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cart": merged})
	}
}

// DELETE /api/cart/items/:productID — explicit line removal, propagated to
// the persisted cart immediately.
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.Identity(c)

		productID, err := strconv.ParseUint(c.Param("productID"), 10, 64)
		if err != nil {
			httpx.Fail(c, httpx.Validation("Invalid product id"))
			return
		}

		cart, err := loadOrCreateCart(db, ident.UserID)
		if err != nil {
			httpx.Fail(c, err)
			return
		}

		kept := make([]models.CartItem, 0, len(cart.Items))
		removed := false
		for _, item := range cart.Items {
			if item.ProductID != nil && *item.ProductID == uint(productID) {
				removed = true
				continue
			}
			kept = append(kept, item)
		}
		if !removed {
			httpx.Fail(c, httpx.NotFound("Cart item"))
			return
		}

		if err := ReplaceCart(db, cart.ID, kept); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cart": kept})
	}
}

// DELETE /api/cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.Identity(c)

		cart, err := loadOrCreateCart(db, ident.UserID)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		if err := ReplaceCart(db, cart.ID, nil); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "cart": []models.CartItem{}})
	}
}
