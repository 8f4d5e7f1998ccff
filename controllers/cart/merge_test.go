package cartControllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sepnoty-tech/sepnoty-api/models"
)

func ptr(v uint) *uint { return &v }

func TestMergeCartsTakesMaxQuantity(t *testing.T) {
	server := []models.CartItem{
		{ProductID: ptr(1), Name: "Mug", Quantity: 2, UnitPrice: 9.99},
	}
	client := []models.CartItem{
		{ProductID: ptr(1), Name: "Mug", Quantity: 5, UnitPrice: 9.99},
	}

	merged := MergeCarts(server, client)
	require.Len(t, merged, 1)
	assert.Equal(t, 5, merged[0].Quantity)

	// Lower client quantity never shrinks the server line.
	merged = MergeCarts(server, []models.CartItem{
		{ProductID: ptr(1), Name: "Mug", Quantity: 1},
	})
	require.Len(t, merged, 1)
	assert.Equal(t, 2, merged[0].Quantity)
}

func TestMergeCartsUnion(t *testing.T) {
	server := []models.CartItem{
		{ProductID: ptr(1), Name: "Mug", Quantity: 1},
		{ProductID: ptr(2), Name: "Shirt", Quantity: 3},
	}
	client := []models.CartItem{
		{ProductID: ptr(2), Name: "Shirt", Quantity: 1},
		{ProductID: ptr(3), Name: "Hat", Quantity: 2},
	}

	merged := MergeCarts(server, client)
	require.Len(t, merged, 3)

	byID := map[uint]int{}
	for _, item := range merged {
		require.NotNil(t, item.ProductID)
		byID[*item.ProductID] = item.Quantity
	}
	assert.Equal(t, 1, byID[1]) // server-only line retained
	assert.Equal(t, 3, byID[2]) // shared line keeps the higher quantity
	assert.Equal(t, 2, byID[3]) // client-only line appended
}

func TestMergeCartsIdempotent(t *testing.T) {
	server := []models.CartItem{
		{ProductID: ptr(1), Name: "Mug", Quantity: 2},
	}
	client := []models.CartItem{
		{ProductID: ptr(1), Name: "Mug", Quantity: 4},
		{ProductID: ptr(2), Name: "Shirt", Quantity: 1},
	}

	once := MergeCarts(server, client)
	twice := MergeCarts(once, client)

	require.Len(t, twice, len(once))
	for i := range once {
		assert.Equal(t, once[i].Quantity, twice[i].Quantity)
	}
}

func TestMergeCartsAdHocLinesKeyedByName(t *testing.T) {
	server := []models.CartItem{
		{Name: "Gift Wrap", Quantity: 1, UnitPrice: 2.50},
	}
	client := []models.CartItem{
		{Name: "Gift Wrap", Quantity: 3, UnitPrice: 2.50},
		{Name: "Greeting Card", Quantity: 1, UnitPrice: 1.00},
	}

	merged := MergeCarts(server, client)
	require.Len(t, merged, 2)
	assert.Equal(t, "Gift Wrap", merged[0].Name)
	assert.Equal(t, 3, merged[0].Quantity)
	assert.Equal(t, "Greeting Card", merged[1].Name)
}

func TestMergeCartsCollapsesDuplicateInput(t *testing.T) {
	client := []models.CartItem{
		{ProductID: ptr(7), Name: "Mug", Quantity: 1},
		{ProductID: ptr(7), Name: "Mug", Quantity: 4},
		{ProductID: ptr(7), Name: "Mug", Quantity: 2},
	}

	merged := MergeCarts(nil, client)
	require.Len(t, merged, 1)
	assert.Equal(t, 4, merged[0].Quantity)
}

func TestMergeCartsStampsAddedAt(t *testing.T) {
	merged := MergeCarts(nil, []models.CartItem{
		{ProductID: ptr(1), Name: "Mug", Quantity: 1},
	})
	require.Len(t, merged, 1)
	assert.False(t, merged[0].AddedAt.IsZero())
}
