package paymentControllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/config"
	orderControllers "github.com/sepnoty-tech/sepnoty-api/controllers/order"
	"github.com/sepnoty-tech/sepnoty-api/httpx"
	"github.com/sepnoty-tech/sepnoty-api/logger"
	"github.com/sepnoty-tech/sepnoty-api/middleware"
	"github.com/sepnoty-tech/sepnoty-api/models"
)

type VerifyRequest struct {
	PaymentID      string `json:"razorpay_payment_id" binding:"required"`
	GatewayOrderID string `json:"razorpay_order_id" binding:"required"`
	Signature      string `json:"razorpay_signature" binding:"required"`
	OrderID        uint   `json:"orderId" binding:"required"`
}

// minorUnits converts a price to the gateway's minor unit (paise).
func minorUnits(total float64) int64 {
	return int64(math.Round(total * 100))
}

// CreatePaymentOrder runs the same resolution and pricing as the direct
// path but leaves stock untouched; stock is only reserved once payment is
// verified, so abandoned checkouts hold nothing.
func CreatePaymentOrder(db *gorm.DB, userID uint, req orderControllers.PlaceOrderRequest,
	pricing config.Pricing) (*models.Order, error) {
	return orderControllers.BuildOrder(db, userID, req, pricing, models.PaymentMethodRazorpay, false)
}

// VerifyPayment checks the callback signature and the order linkage, then
// marks the order paid and decrements stock. transitioned reports whether
// this call performed the unpaid-to-paid flip; a replayed callback returns
// the paid order with transitioned false. The returned warnings list names
// any stock decrements that failed after payment was confirmed; those never
// roll back the payment.
func VerifyPayment(db *gorm.DB, gw Gateway, req VerifyRequest) (order *models.Order, warnings []string, transitioned bool, err error) {
	if !gw.VerifySignature(req.GatewayOrderID, req.PaymentID, req.Signature) {
		return nil, nil, false, httpx.PaymentIntegrity("Invalid signature. Payment not verified.")
	}

	var existing models.Order
	err = db.Preload("Items").First(&existing, req.OrderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, false, httpx.NotFound("Order")
	}
	if err != nil {
		return nil, nil, false, err
	}

	// A valid signature for some other gateway order must not pay this one.
	if existing.RazorpayOrderID != req.GatewayOrderID {
		return nil, nil, false, httpx.PaymentIntegrity("Order mismatch")
	}

	if existing.IsPaid {
		// Already verified; repeating the side effects would double-decrement.
		return &existing, nil, false, nil
	}

	raw, err := json.Marshal(gin.H{
		"razorpay_order_id":  req.GatewayOrderID,
		"razorpay_signature": req.Signature,
	})
	if err != nil {
		return nil, nil, false, err
	}

	now := time.Now()
	result := models.PaymentResult{
		PaymentID: req.PaymentID,
		Status:    "paid",
		Method:    "razorpay",
		Raw:       datatypes.JSON(raw),
	}

	// Conditional update: only one verification call can flip is_paid.
	res := db.Model(&models.Order{}).
		Where("id = ? AND is_paid = ?", existing.ID, false).
		Updates(map[string]any{
			"is_paid":            true,
			"paid_at":            now,
			"payment_payment_id": result.PaymentID,
			"payment_status":     result.Status,
			"payment_method":     result.Method,
			"payment_raw":        result.Raw,
		})
	if res.Error != nil {
		return nil, nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race to a concurrent verify; treat as the idempotent case.
		if err := db.Preload("Items").First(&existing, existing.ID).Error; err != nil {
			return nil, nil, false, err
		}
		return &existing, nil, false, nil
	}

	existing.IsPaid = true
	existing.PaidAt = &now
	existing.PaymentResult = result

	// Payment is confirmed at this point. Stock decrement failures are
	// reported as warnings, never as a rollback of the paid state.
	for _, item := range existing.Items {
		if item.ProductID == nil {
			continue
		}
		if err := orderControllers.DecrementStockClamped(db, *item.ProductID, item.Quantity); err != nil {
			warnings = append(warnings, fmt.Sprintf("stock not decremented for %s", item.Name))
			logger.L().Warn("stock decrement failed after payment",
				zap.Uint("order_id", existing.ID),
				zap.Uint("product_id", *item.ProductID),
				zap.Int("qty", item.Quantity),
				zap.Error(err))
		}
	}

	logger.L().Info("payment verified",
		zap.Uint("order_id", existing.ID),
		zap.String("payment_id", req.PaymentID))
	return &existing, warnings, true, nil
}

// -------- Handlers --------

// POST /api/payments/razorpay/create
func CreateRazorpayOrder(db *gorm.DB, gw Gateway, pricing config.Pricing) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := middleware.Identity(c)

		var req orderControllers.PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, httpx.Validation("Invalid order payload: %s", err.Error()))
			return
		}

		order, err := CreatePaymentOrder(db, ident.UserID, req, pricing)
		if err != nil {
			httpx.Fail(c, err)
			return
		}

		gatewayOrder, err := gw.CreateOrder(c.Request.Context(),
			minorUnits(order.TotalPrice), "INR",
			fmt.Sprintf("order_%d", order.ID),
			map[string]string{
				"orderId": fmt.Sprint(order.ID),
				"email":   ident.Email,
			})
		if err != nil {
			// The local order stays pending; a retry creates a fresh intent.
			logger.L().Error("gateway order creation failed",
				zap.Uint("order_id", order.ID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Failed to initiate payment"})
			return
		}

		if err := db.Model(order).Update("razorpay_order_id", gatewayOrder.ID).Error; err != nil {
			httpx.Fail(c, err)
			return
		}
		order.RazorpayOrderID = gatewayOrder.ID

		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"keyId":         gw.KeyID(),
			"razorpayOrder": gatewayOrder,
			"order":         order,
		})
	}
}

// POST /api/payments/razorpay/verify
func VerifyRazorpayPayment(db *gorm.DB, gw Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, httpx.Validation("Missing payment verification fields"))
			return
		}

		order, warnings, transitioned, err := VerifyPayment(db, gw, req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}

		// A replayed callback must not push a duplicate event to dashboards.
		if transitioned {
			orderControllers.BroadcastOrderEvent(orderControllers.OrderEvent{
				Type: "paid", OrderID: order.ID, Status: order.Status, IsPaid: true,
			})
		}

		resp := gin.H{"success": true, "message": "Payment verified and order marked as paid", "order": order}
		if len(warnings) > 0 {
			resp["warnings"] = warnings
		}
		c.JSON(http.StatusOK, resp)
	}
}
