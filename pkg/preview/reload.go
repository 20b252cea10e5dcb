package preview

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// ReloadMessageType represents the type of reload message.
type ReloadMessageType string

const (
	ReloadTypeFull  ReloadMessageType = "reload"
	ReloadTypeError ReloadMessageType = "error"
	ReloadTypeClear ReloadMessageType = "clear"
)

// ReloadMessage is sent to browsers via WebSocket.
type ReloadMessage struct {
	Type   ReloadMessageType `json:"type"`
	Script string            `json:"script,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// ReloadHub tracks live-reload WebSocket clients.
type ReloadHub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

// NewReloadHub creates an empty hub.
func NewReloadHub() *ReloadHub {
	return &ReloadHub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleWebSocket upgrades the request and holds the connection until the
// client goes away.
func (h *ReloadHub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// NotifyReload tells clients that script changed.
func (h *ReloadHub) NotifyReload(script string) {
	h.broadcast(ReloadMessage{Type: ReloadTypeFull, Script: script})
}

// NotifyError shows an error overlay on all clients.
func (h *ReloadHub) NotifyError(script, errMsg string) {
	h.broadcast(ReloadMessage{Type: ReloadTypeError, Script: script, Error: errMsg})
}

// ClearError removes the error overlay for script.
func (h *ReloadHub) ClearError(script string) {
	h.broadcast(ReloadMessage{Type: ReloadTypeClear, Script: script})
}

func (h *ReloadHub) broadcast(msg ReloadMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			h.mu.Lock()
			delete(h.clients, client)
			h.mu.Unlock()
			client.Close()
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *ReloadHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *ReloadHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}

// reloadClientScript reloads the page when its script changes and shows
// build errors in an overlay.
const reloadClientScript = `(function() {
  var delay = 1000;
  var current = document.body.getAttribute('data-script');
  function overlay(text) {
    clear();
    var pre = document.createElement('pre');
    pre.id = 'seqtree-error';
    pre.style.cssText = 'position:fixed;inset:0;margin:0;padding:20px;background:rgba(0,0,0,.9);color:#f55;white-space:pre-wrap;z-index:99999;';
    pre.textContent = text;
    document.body.appendChild(pre);
  }
  function clear() {
    var el = document.getElementById('seqtree-error');
    if (el) { el.remove(); }
  }
  function connect() {
    var proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
    var ws = new WebSocket(proto + '//' + location.host + '/_seqtree/reload');
    ws.onopen = function() { delay = 1000; };
    ws.onmessage = function(e) {
      var msg;
      try { msg = JSON.parse(e.data); } catch (err) { return; }
      if (msg.script && current && msg.script !== current) { return; }
      if (msg.type === 'reload') { location.reload(); }
      if (msg.type === 'error') { overlay(msg.error); }
      if (msg.type === 'clear') { clear(); }
    };
    ws.onclose = function() {
      setTimeout(function() { delay = Math.min(delay * 2, 30000); connect(); }, delay);
    };
  }
  connect();
})();`
