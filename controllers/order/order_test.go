package orderControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/httpx"
	"github.com/sepnoty-tech/sepnoty-api/models"
	"github.com/sepnoty-tech/sepnoty-api/testutil"
)

func uptr(v uint) *uint       { return &v }
func fptr(v float64) *float64 { return &v }

func orderRequest(items ...ItemInput) PlaceOrderRequest {
	return PlaceOrderRequest{
		Items: items,
		ShippingAddress: AddressInput{
			FullName:   "Asha Rao",
			Address:    "12 MG Road",
			City:       "Pune",
			PostalCode: "411001",
			Country:    "India",
		},
	}
}

func reloadStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, id).Error)
	return p.CountInStock
}

func TestBuildOrderDirectPath(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "asha@example.com")
	product := testutil.NewProduct(t, db, "Mug", 100, 5)

	// Client-sent price is ignored for catalog items.
	req := orderRequest(ItemInput{ProductID: uptr(product.ID), Quantity: 2, Price: fptr(1)})

	order, err := BuildOrder(db, user.ID, req, defaultPricing(), models.PaymentMethodCOD, true)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.False(t, order.IsPaid)
	assert.NotEmpty(t, order.Reference)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 100.0, order.Items[0].UnitPrice)
	assert.Equal(t, 225.99, order.TotalPrice)

	assert.Equal(t, 3, reloadStock(t, db, product.ID))
}

func TestBuildOrderInsufficientStock(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "asha@example.com")
	product := testutil.NewProduct(t, db, "Mug", 100, 1)

	req := orderRequest(ItemInput{ProductID: uptr(product.ID), Quantity: 2})

	_, err := BuildOrder(db, user.ID, req, defaultPricing(), models.PaymentMethodCOD, true)
	require.Error(t, err)
	assert.True(t, httpx.IsCode(err, httpx.CodeStock))

	// Nothing persisted, nothing decremented.
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, 1, reloadStock(t, db, product.ID))
}

func TestBuildOrderGatewayPathKeepsStock(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "asha@example.com")
	product := testutil.NewProduct(t, db, "Mug", 100, 5)

	req := orderRequest(ItemInput{ProductID: uptr(product.ID), Quantity: 3})

	order, err := BuildOrder(db, user.ID, req, defaultPricing(), models.PaymentMethodRazorpay, false)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentMethodRazorpay, order.PaymentMethod)
	assert.Equal(t, 5, reloadStock(t, db, product.ID))
}

func TestBuildOrderResolvesByName(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "asha@example.com")
	product := testutil.NewProduct(t, db, "Mug", 42, 5)

	req := orderRequest(ItemInput{Name: "Mug", Quantity: 1, Price: fptr(1)})

	order, err := BuildOrder(db, user.ID, req, defaultPricing(), models.PaymentMethodCOD, true)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	require.NotNil(t, order.Items[0].ProductID)
	assert.Equal(t, product.ID, *order.Items[0].ProductID)
	assert.Equal(t, 42.0, order.Items[0].UnitPrice)
}

func TestBuildOrderAdHocLine(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "asha@example.com")

	req := orderRequest(ItemInput{Name: "Gift Wrap", Quantity: 2, Price: fptr(2.5)})

	order, err := BuildOrder(db, user.ID, req, defaultPricing(), models.PaymentMethodCOD, true)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Nil(t, order.Items[0].ProductID)
	assert.Equal(t, 2.5, order.Items[0].UnitPrice)
}

func TestBuildOrderAdHocRequiresNameAndPrice(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "asha@example.com")

	_, err := BuildOrder(db, user.ID,
		orderRequest(ItemInput{Name: "Mystery Item", Quantity: 1}),
		defaultPricing(), models.PaymentMethodCOD, true)
	require.Error(t, err)
	assert.True(t, httpx.IsCode(err, httpx.CodeValidation))

	_, err = BuildOrder(db, user.ID,
		orderRequest(ItemInput{Quantity: 1, Price: fptr(5)}),
		defaultPricing(), models.PaymentMethodCOD, true)
	require.Error(t, err)
	assert.True(t, httpx.IsCode(err, httpx.CodeValidation))
}

func TestBuildOrderLastUnitGoesToOneBuyer(t *testing.T) {
	db := testutil.NewDB(t)
	first := testutil.NewUser(t, db, "first@example.com")
	second := testutil.NewUser(t, db, "second@example.com")
	product := testutil.NewProduct(t, db, "Mug", 100, 1)

	req := orderRequest(ItemInput{ProductID: uptr(product.ID), Quantity: 1})

	_, err := BuildOrder(db, first.ID, req, defaultPricing(), models.PaymentMethodCOD, true)
	require.NoError(t, err)

	_, err = BuildOrder(db, second.ID, req, defaultPricing(), models.PaymentMethodCOD, true)
	require.Error(t, err)
	assert.True(t, httpx.IsCode(err, httpx.CodeStock))

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 0, reloadStock(t, db, product.ID))
}

func TestDecrementStockConditional(t *testing.T) {
	db := testutil.NewDB(t)
	product := testutil.NewProduct(t, db, "Mug", 100, 1)

	ok, err := DecrementStock(db, product.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second buyer of the last unit must lose, not oversell.
	ok, err = DecrementStock(db, product.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 0, reloadStock(t, db, product.ID))
}

func TestDecrementStockClamped(t *testing.T) {
	db := testutil.NewDB(t)
	product := testutil.NewProduct(t, db, "Mug", 100, 2)

	require.NoError(t, DecrementStockClamped(db, product.ID, 5))
	assert.Equal(t, 0, reloadStock(t, db, product.ID))

	other := testutil.NewProduct(t, db, "Shirt", 50, 10)
	require.NoError(t, DecrementStockClamped(db, other.ID, 4))
	assert.Equal(t, 6, reloadStock(t, db, other.ID))
}
