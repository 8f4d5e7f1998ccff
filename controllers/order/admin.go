package orderControllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/httpx"
	"github.com/sepnoty-tech/sepnoty-api/models"
)

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// GET /api/admin/orders
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))
		if limit < 1 {
			limit = 15
		}
		offset := (page - 1) * limit

		unpaidOnly := c.Query("unpaid") == "true"
		filtered := func() *gorm.DB {
			q := db.Model(&models.Order{})
			if unpaidOnly {
				// Surfaces abandoned gateway orders; there is no automatic expiry.
				q = q.Where("is_paid = ? AND payment_method = ?", false, models.PaymentMethodRazorpay)
			}
			return q
		}

		var orders []models.Order
		if err := filtered().Preload("Items").Preload("User").
			Order("created_at DESC").Limit(limit).Offset(offset).
			Find(&orders).Error; err != nil {
			httpx.Fail(c, err)
			return
		}

		// Pagination describes the filtered set, not the whole table.
		var count int64
		if err := filtered().Count(&count).Error; err != nil {
			httpx.Fail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"orders":  orders,
			"metadata": gin.H{
				"total":       count,
				"currentPage": page,
				"limit":       limit,
				"totalPages":  int(math.Ceil(float64(count) / float64(limit))),
			},
		})
	}
}

// PUT /api/admin/orders/:orderID/status
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, httpx.Validation("Order status is required"))
			return
		}
		if !models.ValidOrderStatus(req.Status) {
			httpx.Fail(c, httpx.Validation("Invalid order status"))
			return
		}

		var order models.Order
		if err := db.First(&order, c.Param("orderID")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpx.Fail(c, httpx.NotFound("Order"))
				return
			}
			httpx.Fail(c, err)
			return
		}

		if err := db.Model(&order).Update("status", req.Status).Error; err != nil {
			httpx.Fail(c, err)
			return
		}
		order.Status = req.Status

		BroadcastOrderEvent(OrderEvent{Type: "status", OrderID: order.ID, Status: order.Status, IsPaid: order.IsPaid})
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// DELETE /api/admin/orders/:orderID
func DeleteOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.First(&order, c.Param("orderID")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				httpx.Fail(c, httpx.NotFound("Order"))
				return
			}
			httpx.Fail(c, err)
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&order).Error
		})
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order deleted successfully"})
	}
}

// GET /api/admin/orders/export
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Preload("User").
			Order("created_at DESC").Find(&orders).Error; err != nil {
			httpx.Fail(c, err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			httpx.Fail(c, err)
			return
		}

		headers := []string{
			"ID", "Reference", "Customer", "Email", "Items", "Total",
			"Method", "Paid", "PaidAt", "Status", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.ID)
			row.AddCell().SetValue(o.Reference)
			row.AddCell().SetValue(o.User.Name)
			row.AddCell().SetValue(o.User.Email)
			itemCount := 0
			for _, item := range o.Items {
				itemCount += item.Quantity
			}
			row.AddCell().SetValue(itemCount)
			row.AddCell().SetValue(o.TotalPrice)
			row.AddCell().SetValue(string(o.PaymentMethod))
			row.AddCell().SetValue(o.IsPaid)
			if o.PaidAt != nil {
				row.AddCell().SetValue(o.PaidAt.Format("2006-01-02 15:04:05"))
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			httpx.Fail(c, err)
			return
		}
	}
}
