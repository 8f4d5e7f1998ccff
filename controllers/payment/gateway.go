package paymentControllers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// GatewayOrder is the provider-side object representing a pending charge,
// linked 1:1 to a local order.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway abstracts the payment provider so handlers can be exercised
// without network access.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string, notes map[string]string) (*GatewayOrder, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
	KeyID() string
}

// Signature computes the hex HMAC-SHA256 over "orderID|paymentID", the
// format Razorpay signs its checkout callbacks with.
func Signature(gatewayOrderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type razorpayGateway struct {
	keyID     string
	keySecret string
	http      *resty.Client
}

// NewRazorpay builds the production gateway client.
func NewRazorpay(keyID, keySecret string) Gateway {
	client := resty.New().
		SetBaseURL("https://api.razorpay.com/v1").
		SetBasicAuth(keyID, keySecret).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &razorpayGateway{keyID: keyID, keySecret: keySecret, http: client}
}

func (g *razorpayGateway) KeyID() string { return g.keyID }

func (g *razorpayGateway) CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string, notes map[string]string) (*GatewayOrder, error) {
	var gatewayOrder GatewayOrder
	resp, err := g.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"amount":   amountMinorUnits,
			"currency": currency,
			"receipt":  receipt,
			"notes":    notes,
		}).
		SetResult(&gatewayOrder).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("razorpay order request: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("razorpay order request failed with status %d: %s",
			resp.StatusCode(), resp.String())
	}
	if gatewayOrder.ID == "" {
		return nil, fmt.Errorf("razorpay returned no order id: %s", resp.String())
	}
	return &gatewayOrder, nil
}

func (g *razorpayGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	expected := Signature(gatewayOrderID, paymentID, g.keySecret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
