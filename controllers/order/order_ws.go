package orderControllers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/sepnoty-tech/sepnoty-api/models"
)

// OrderEvent is pushed to connected admin dashboards when an order is
// created, paid, or changes status.
type OrderEvent struct {
	Type    string             `json:"type"` // "created", "paid", "status"
	OrderID uint               `json:"orderId"`
	Status  models.OrderStatus `json:"status"`
	IsPaid  bool               `json:"isPaid"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

// GET /api/admin/orders/ws
func OrderWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wsMu.Lock()
	wsClients[conn] = true
	wsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			wsMu.Lock()
			delete(wsClients, conn)
			wsMu.Unlock()
			break
		}
	}
}

// BroadcastOrderEvent fans the event out to every connected client. Dead
// connections are dropped on the next read error.
func BroadcastOrderEvent(event OrderEvent) {
	wsMu.Lock()
	defer wsMu.Unlock()
	for client := range wsClients {
		_ = client.WriteJSON(event)
	}
}
