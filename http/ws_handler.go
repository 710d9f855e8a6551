package http

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"

	"golang.org/x/net/websocket"

	"autosyndicate/domain"
	"autosyndicate/hub"
)

// wsObserver adapts one websocket to a hub connection. The write mutex keeps
// frames from interleaving, which also preserves per-connection event order.
type wsObserver struct {
	mu      sync.Mutex
	encoder *json.Encoder
	conn    *websocket.Conn
}

func (o *wsObserver) Send(event domain.Event) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.encoder.Encode(event); err != nil {
		// A broken socket stays broken; closing it makes the read loop
		// exit and unregister the observer.
		o.conn.Close()
		return err
	}
	return nil
}

type WSHandler struct {
	hub *hub.Hub
}

func NewWSHandler(h *hub.Hub) *WSHandler {
	return &WSHandler{hub: h}
}

// Handler serves GET /ws. Each accepted socket is registered with the hub
// for the lifetime of the connection.
func (h *WSHandler) Handler() http.Handler {
	wsHandler := websocket.Handler(func(conn *websocket.Conn) {
		observer := &wsObserver{encoder: json.NewEncoder(conn), conn: conn}
		h.hub.Register(observer)
		defer h.hub.Unregister(observer)

		// Observers are write-only; drain inbound frames until the
		// socket closes.
		for {
			var discard string
			if err := websocket.Message.Receive(conn, &discard); err != nil {
				if err != io.EOF {
					log.Printf("observer disconnected: %v", err)
				}
				return
			}
		}
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		wsHandler.ServeHTTP(w, r)
	})
}
