package messaging

import (
	"time"

	"github.com/gorilla/websocket"
)

// ServeConn attaches a websocket connection to the hub until either side
// goes away. Incoming messages are read and discarded so control frames
// are processed.
func (h *Hub) ServeConn(conn *websocket.Conn, tenantID string, writeTimeout time.Duration) error {
	client := NewClient(tenantID)
	if err := h.Register(client); err != nil {
		conn.Close()
		return err
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		WritePump(conn, client.Send, writeTimeout)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.Unregister(client)
	<-writerDone
	return nil
}

// WritePump writes every message from send as a text frame and closes the
// connection once send is closed or a write fails.
func WritePump(conn *websocket.Conn, send <-chan []byte, writeTimeout time.Duration) {
	defer conn.Close()
	for message := range send {
		if writeTimeout > 0 {
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		}
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
