package models

import (
	"time"

	"gorm.io/datatypes"
)

type OrderStatus string
type PaymentMethod string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusRefunded   OrderStatus = "Refunded"

	PaymentMethodRazorpay PaymentMethod = "Razorpay"
	PaymentMethodCOD      PaymentMethod = "COD"
)

// ValidOrderStatus reports whether s is one of the closed status enum values.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// PaymentResult is the gateway's callback snapshot, stored verbatim so a
// dispute can be traced back to the provider payload.
type PaymentResult struct {
	PaymentID string         `json:"id"`
	Status    string         `json:"status"`
	Method    string         `json:"method"`
	Raw       datatypes.JSON `json:"raw"`
}

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Reference       string          `gorm:"uniqueIndex" json:"reference"`
	UserID          uint            `gorm:"not null;index:idx_orders_user_created" json:"userId"`
	User            User            `gorm:"foreignKey:UserID" json:"-"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"orderItems"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `gorm:"type:VARCHAR(20);default:'COD'" json:"paymentMethod"`
	RazorpayOrderID string          `gorm:"index" json:"razorpayOrderId"`
	PaymentResult   PaymentResult   `gorm:"embedded;embeddedPrefix:payment_" json:"paymentResult"`
	TotalPrice      float64         `gorm:"not null" json:"totalPrice"`
	IsPaid          bool            `gorm:"default:false" json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt"`
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
	CreatedAt       time.Time       `gorm:"index:idx_orders_user_created" json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem is a cart line frozen at order time: price and name are copied,
// not referenced, so later catalog edits do not rewrite history.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   uint    `gorm:"index" json:"-"`
	ProductID *uint   `json:"product"`
	Name      string  `gorm:"not null" json:"name"`
	Quantity  int     `gorm:"not null" json:"qty"`
	UnitPrice float64 `gorm:"not null" json:"price"`
	Image     string  `json:"image"`
}
