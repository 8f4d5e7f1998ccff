package cartControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sepnoty-tech/sepnoty-api/auth"
	"github.com/sepnoty-tech/sepnoty-api/middleware"
	"github.com/sepnoty-tech/sepnoty-api/models"
	"github.com/sepnoty-tech/sepnoty-api/testutil"
)

func cartRouter(db *gorm.DB, ident *auth.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("", middleware.SetIdentity(ident))
	authed.GET("/cart", GetCart(db))
	authed.POST("/cart", SaveCart(db))
	authed.POST("/cart/merge", MergeCart(db))
	authed.DELETE("/cart", ClearCart(db))
	authed.DELETE("/cart/items/:productID", RemoveCartItem(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cartLines(t *testing.T, w *httptest.ResponseRecorder) []models.CartItem {
	t.Helper()
	var resp struct {
		Cart []models.CartItem `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Cart
}

func TestGetCartCreatesEmptyCart(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "asha@example.com")
	r := cartRouter(db, &auth.Identity{UserID: user.ID})

	w := doJSON(t, r, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, cartLines(t, w))
}

func TestSaveCartReplacesWholeCart(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "asha@example.com")
	r := cartRouter(db, &auth.Identity{UserID: user.ID})

	w := doJSON(t, r, http.MethodPost, "/cart", gin.H{"items": []gin.H{
		{"productId": 1, "name": "Mug", "qty": 2, "price": 9.99},
		{"productId": 2, "name": "Shirt", "qty": 1, "price": 19.99},
	}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, cartLines(t, w), 2)

	// The second save is a replace, not an append.
	w = doJSON(t, r, http.MethodPost, "/cart", gin.H{"items": []gin.H{
		{"productId": 3, "name": "Hat", "qty": 1, "price": 4.99},
	}})
	require.Equal(t, http.StatusOK, w.Code)
	lines := cartLines(t, w)
	require.Len(t, lines, 1)
	assert.Equal(t, "Hat", lines[0].Name)

	w = doJSON(t, r, http.MethodGet, "/cart", nil)
	require.Len(t, cartLines(t, w), 1)
}

func TestMergeCartEndpoint(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "asha@example.com")
	r := cartRouter(db, &auth.Identity{UserID: user.ID})

	w := doJSON(t, r, http.MethodPost, "/cart", gin.H{"items": []gin.H{
		{"productId": 1, "name": "Mug", "qty": 2, "price": 9.99},
	}})
	require.Equal(t, http.StatusOK, w.Code)

	// A client cart from another device folds in without losing lines.
	w = doJSON(t, r, http.MethodPost, "/cart/merge", gin.H{"items": []gin.H{
		{"productId": 1, "name": "Mug", "qty": 5, "price": 9.99},
		{"productId": 2, "name": "Shirt", "qty": 1, "price": 19.99},
	}})
	require.Equal(t, http.StatusOK, w.Code)

	lines := cartLines(t, w)
	require.Len(t, lines, 2)
	byName := map[string]int{}
	for _, l := range lines {
		byName[l.Name] = l.Quantity
	}
	assert.Equal(t, 5, byName["Mug"])
	assert.Equal(t, 1, byName["Shirt"])
}

func TestRemoveCartItem(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "asha@example.com")
	r := cartRouter(db, &auth.Identity{UserID: user.ID})

	w := doJSON(t, r, http.MethodPost, "/cart", gin.H{"items": []gin.H{
		{"productId": 1, "name": "Mug", "qty": 2, "price": 9.99},
		{"productId": 2, "name": "Shirt", "qty": 1, "price": 19.99},
	}})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/cart/items/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	lines := cartLines(t, w)
	require.Len(t, lines, 1)
	assert.Equal(t, "Shirt", lines[0].Name)

	// Removing a line that is not in the cart is an error, not a no-op.
	w = doJSON(t, r, http.MethodDelete, "/cart/items/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearCart(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.NewUser(t, db, "asha@example.com")
	r := cartRouter(db, &auth.Identity{UserID: user.ID})

	w := doJSON(t, r, http.MethodPost, "/cart", gin.H{"items": []gin.H{
		{"productId": 1, "name": "Mug", "qty": 2, "price": 9.99},
	}})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/cart", nil)
	assert.Empty(t, cartLines(t, w))
}
