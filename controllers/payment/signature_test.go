package paymentControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignatureDeterministic(t *testing.T) {
	a := Signature("order_abc", "pay_123", "secret")
	b := Signature("order_abc", "pay_123", "secret")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64) // hex-encoded sha256
}

func TestSignatureVariesWithInputs(t *testing.T) {
	base := Signature("order_abc", "pay_123", "secret")
	assert.NotEqual(t, base, Signature("order_xyz", "pay_123", "secret"))
	assert.NotEqual(t, base, Signature("order_abc", "pay_456", "secret"))
	assert.NotEqual(t, base, Signature("order_abc", "pay_123", "other"))
}

func TestRazorpayVerifySignature(t *testing.T) {
	gw := NewRazorpay("rzp_test_key", "secret")

	valid := Signature("order_abc", "pay_123", "secret")
	assert.True(t, gw.VerifySignature("order_abc", "pay_123", valid))
	assert.False(t, gw.VerifySignature("order_abc", "pay_123", valid+"00"))
	assert.False(t, gw.VerifySignature("order_abc", "pay_999", valid))
	assert.False(t, gw.VerifySignature("order_abc", "pay_123", ""))
}
