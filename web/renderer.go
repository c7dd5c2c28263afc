package web

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"genchat/models"
)

// WSRenderer implements the session renderer over a websocket connection.
// Every render event becomes one typed JSON frame for the attached front
// end to apply.
type WSRenderer struct {
	Conn   *websocket.Conn
	Logger *log.Logger
	mu     sync.Mutex
}

func (w *WSRenderer) write(event map[string]interface{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.Conn.WriteJSON(event); err != nil {
		w.Logger.Printf("Error writing render event: %v", err)
	}
}

func (w *WSRenderer) AppendMessage(msg models.Message) {
	w.write(map[string]interface{}{"type": "append", "message": msg})
}

func (w *WSRenderer) StreamDelta(text string) {
	w.write(map[string]interface{}{"type": "delta", "text": text})
}

func (w *WSRenderer) SetLoading(status string) {
	w.write(map[string]interface{}{"type": "loading", "status": status})
}

func (w *WSRenderer) ResolveLoading(msg models.Message) {
	w.write(map[string]interface{}{"type": "resolve", "message": msg})
}

func (w *WSRenderer) FailLoading(message string) {
	w.write(map[string]interface{}{"type": "fail", "error": message})
}

func (w *WSRenderer) SetBusy(busy bool) {
	w.write(map[string]interface{}{"type": "busy", "busy": busy})
}

func (w *WSRenderer) ClearInput() {
	w.write(map[string]interface{}{"type": "clear_input"})
}
