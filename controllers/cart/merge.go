package cartControllers

import (
	"fmt"
	"time"

	"github.com/sepnoty-tech/sepnoty-api/models"
)

// lineKey collapses lines on product ref; ad-hoc lines (no ref) collapse on
// name so the same unmatched item never appears twice.
func lineKey(item models.CartItem) string {
	if item.ProductID != nil {
		return fmt.Sprintf("p:%d", *item.ProductID)
	}
	return "n:" + item.Name
}

// MergeCarts combines the server cart with a client-held cart. The server
// cart is the base; client lines either raise a shared line's quantity to
// max(server, client) or are appended. Quantities are never summed, so
// re-merging the same client cart is a no-op. Nothing is ever deleted here;
// removal is a separate explicit operation.
func MergeCarts(server, client []models.CartItem) []models.CartItem {
	merged := make([]models.CartItem, 0, len(server)+len(client))
	index := make(map[string]int, len(server))

	add := func(item models.CartItem) {
		key := lineKey(item)
		if i, ok := index[key]; ok {
			if item.Quantity > merged[i].Quantity {
				merged[i].Quantity = item.Quantity
			}
			return
		}
		index[key] = len(merged)
		merged = append(merged, models.CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Image:     item.Image,
			AddedAt:   item.AddedAt,
		})
	}

	for _, item := range server {
		add(item)
	}
	for _, item := range client {
		if item.AddedAt.IsZero() {
			item.AddedAt = time.Now()
		}
		add(item)
	}
	return merged
}
