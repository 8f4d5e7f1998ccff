package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/config"
	"github.com/sepnoty-tech/sepnoty-api/httpx"
	"github.com/sepnoty-tech/sepnoty-api/logger"
	"github.com/sepnoty-tech/sepnoty-api/middleware"
	"github.com/sepnoty-tech/sepnoty-api/models"
)

// -------- Request structs --------

type ItemInput struct {
	ProductID *uint    `json:"product"`
	Name      string   `json:"name"`
	Quantity  int      `json:"qty" binding:"required,min=1"`
	Price     *float64 `json:"price"`
	Image     string   `json:"image"`
}

type AddressInput struct {
	FullName   string `json:"fullName" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone"`
}

type PlaceOrderRequest struct {
	Items           []ItemInput  `json:"orderItems" binding:"required,min=1,dive"`
	ShippingAddress AddressInput `json:"shippingAddress" binding:"required"`
}

func (a AddressInput) toModel() models.ShippingAddress {
	return models.ShippingAddress{
		FullName:   a.FullName,
		Address:    a.Address,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
	}
}

func newOrderReference() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core logic --------

// resolveItems matches each submitted line against the catalog: by product id
// first, then by exact name. Resolved lines take the store's current price
// and image; the client's copy is ignored. Unresolved lines are accepted
// ad-hoc but must carry a name and a non-negative price.
func resolveItems(tx *gorm.DB, inputs []ItemInput) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		var product *models.Product

		if in.ProductID != nil {
			var p models.Product
			err := tx.First(&p, *in.ProductID).Error
			if err == nil {
				product = &p
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		if product == nil && in.Name != "" {
			var p models.Product
			err := tx.Where("name = ?", in.Name).First(&p).Error
			if err == nil {
				product = &p
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}

		if product != nil {
			if in.Quantity > product.CountInStock {
				return nil, httpx.Stock(product.Name)
			}
			image := product.Thumbnail
			if image == "" && len(product.Images) > 0 {
				image = product.Images[0].URL
			}
			items = append(items, models.OrderItem{
				ProductID: &product.ID,
				Name:      product.Name,
				Quantity:  in.Quantity,
				UnitPrice: product.Price,
				Image:     image,
			})
			continue
		}

		if in.Name == "" || in.Price == nil || *in.Price < 0 {
			return nil, httpx.Validation("Invalid product data in cart")
		}
		items = append(items, models.OrderItem{
			Name:      in.Name,
			Quantity:  in.Quantity,
			UnitPrice: *in.Price,
			Image:     in.Image,
		})
	}
	return items, nil
}

// DecrementStock subtracts qty from a product's stock only if enough remains,
// in one conditional update. Returns false when stock was insufficient. A
// read-then-write check here would let two concurrent orders oversell.
func DecrementStock(tx *gorm.DB, productID uint, qty int) (bool, error) {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND count_in_stock >= ?", productID, qty).
		UpdateColumn("count_in_stock", gorm.Expr("count_in_stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DecrementStockClamped subtracts qty but never drives stock below zero.
// Used after payment verification, where the order is already paid and the
// stock ledger has to follow.
func DecrementStockClamped(tx *gorm.DB, productID uint, qty int) error {
	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("count_in_stock",
			gorm.Expr("CASE WHEN count_in_stock >= ? THEN count_in_stock - ? ELSE 0 END", qty, qty)).
		Error
}

// BuildOrder resolves and prices the request, persists an unpaid order, and
// for the direct (COD) path decrements stock in the same transaction. Order
// creation and stock decrement succeed or fail as one unit.
func BuildOrder(db *gorm.DB, userID uint, req PlaceOrderRequest, pricing config.Pricing,
	method models.PaymentMethod, decrementStock bool) (*models.Order, error) {

	var order *models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		items, err := resolveItems(tx, req.Items)
		if err != nil {
			return err
		}

		if decrementStock {
			for _, item := range items {
				if item.ProductID == nil {
					continue
				}
				ok, err := DecrementStock(tx, *item.ProductID, item.Quantity)
				if err != nil {
					return err
				}
				if !ok {
					return httpx.Stock(item.Name)
				}
			}
		}

		totals := ComputeTotals(items, pricing)
		order = &models.Order{
			Reference:       newOrderReference(),
			UserID:          userID,
			Items:           items,
			ShippingAddress: req.ShippingAddress.toModel(),
			PaymentMethod:   method,
			TotalPrice:      totals.Total,
			Status:          models.OrderStatusPending,
		}
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}

	logger.L().Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", userID),
		zap.String("method", string(method)),
		zap.Float64("total", order.TotalPrice))
	return order, nil
}

// -------- Handlers --------

// POST /api/orders — direct (cash-on-delivery) path. Stock is decremented at
// placement; payment is collected on delivery.
func PlaceOrderHandler(db *gorm.DB, pricing config.Pricing) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.Identity(c)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, httpx.Validation("Invalid order payload: %s", err.Error()))
			return
		}

		order, err := BuildOrder(db, ident.UserID, req, pricing, models.PaymentMethodCOD, true)
		if err != nil {
			httpx.Fail(c, err)
			return
		}

		BroadcastOrderEvent(OrderEvent{Type: "created", OrderID: order.ID, Status: order.Status})
		c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
	}
}

// GET /api/orders/mine
func GetMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.Identity(c)

		var orders []models.Order
		if err := db.Preload("Items").
			Where("user_id = ?", ident.UserID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}

// GET /api/orders/:orderID — owner or admin only.
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.Identity(c)

		// Route accepts either the numeric id or the order reference.
		key := c.Param("orderID")
		query := db.Preload("Items")
		if _, err := strconv.ParseUint(key, 10, 64); err == nil {
			query = query.Where("id = ?", key)
		} else {
			query = query.Where("reference = ?", key)
		}

		var order models.Order
		err := query.First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.Fail(c, httpx.NotFound("Order"))
			return
		}
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		if !ident.IsAdmin && order.UserID != ident.UserID {
			httpx.Fail(c, httpx.Forbidden("Access denied"))
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}
