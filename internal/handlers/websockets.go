package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"plant_monitor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB
)

// Envelope types sent to the client.
const (
	wsTypeView  = "view"
	wsTypeError = "error"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// wsViewRequest updates the session's view state. Omitted fields keep their
// current value; an empty sort selects the default key.
type wsViewRequest struct {
	Search *string `json:"search"`
	Sort   *string `json:"sort"`
}

// Upgrader for HTTP -> WebSocket. The API is read-only and unauthenticated, so any origin is accepted.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Department view session
// @Description  WebSocket. The server pushes {"type":"view","data":DepartmentPage} on connect and after every
// @Description  client message {"search":"…","sort":"…"}; invalid input yields {"type":"error"} and the session stays open.
// @Tags         sites
// @Param        siteID  path   string  true   "Site id"
// @Param        depID   path   string  true   "Department id"
// @Param        search  query  string  false  "Initial search term"
// @Param        sort    query  string  false  "Initial sort key"
// @Success      101  {string}  string  "Switching Protocols"
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /ws/sites/{siteID}/departments/{depID} [get]
func (h *Handler) wsDepartmentView(c *gin.Context) {
	siteID, depID := c.Param("siteID"), c.Param("depID")
	q, err := parseViewQuery(c)
	if err != nil {
		h.respondError(c, "parse_view_query_failed", err)
		return
	}
	// Resolve before upgrading so a missing department is a plain 404.
	page, err := h.services.GetDepartment(siteID, depID, q)
	if err != nil {
		h.respondError(c, "ws_get_department_failed", err, "site_id", siteID, "department_id", depID)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	h.metrics.SessionOpened()
	defer h.metrics.SessionClosed()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(h.opts.MaxMessageBytes)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine hands client messages to this goroutine, the only writer.
	msgs := make(chan []byte)
	done := make(chan struct{})
	quit := make(chan struct{})
	defer close(quit)
	go h.startReader(conn, msgs, done, quit)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	// Send initial view immediately.
	if err := writeEnvelope(conn, wsEnvelope{Type: wsTypeView, Data: page}); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case raw := <-msgs:
			env := h.applyViewRequest(siteID, depID, &q, raw)
			if err := writeEnvelope(conn, env); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// applyViewRequest folds one client message into the session query and
// renders the reply. The query is left unchanged when the message is rejected.
func (h *Handler) applyViewRequest(siteID, depID string, q *service.ViewQuery, raw []byte) wsEnvelope {
	var req wsViewRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		h.metrics.SessionQuery(false)
		return wsEnvelope{Type: wsTypeError, Error: "invalid message: expected {\"search\":\"…\",\"sort\":\"…\"}"}
	}

	next := *q
	if req.Search != nil {
		next.Search = *req.Search
	}
	if req.Sort != nil {
		key, err := service.ParseSortKey(*req.Sort)
		if err != nil {
			h.metrics.SessionQuery(false)
			return wsEnvelope{Type: wsTypeError, Error: err.Error()}
		}
		next.Sort = key
	}

	page, err := h.services.GetDepartment(siteID, depID, next)
	if err != nil {
		h.metrics.SessionQuery(false)
		if errors.Is(err, service.ErrNotFound) {
			return wsEnvelope{Type: wsTypeError, Error: errNotFound}
		}
		if h.log != nil {
			h.log.Errorw("ws_get_department_failed", "err", err, "site_id", siteID, "department_id", depID)
		}
		return wsEnvelope{Type: wsTypeError, Error: errInternal}
	}
	*q = next
	h.metrics.SessionQuery(true)
	return wsEnvelope{Type: wsTypeView, Data: page}
}

// Helper: startReader forwards text messages until the connection closes or
// the session ends.
func (h *Handler) startReader(conn *websocket.Conn, msgs chan<- []byte, done chan<- struct{}, quit <-chan struct{}) {
	defer close(done)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
		select {
		case msgs <- data:
		case <-quit:
			return
		}
	}
}

// Helper: writeEnvelope writes one message with a write deadline.
func writeEnvelope(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
