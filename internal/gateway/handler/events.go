package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	eventsWSWriteWait = 10 * time.Second
	eventsWSPongWait  = 60 * time.Second
	eventsWSPingEvery = (eventsWSPongWait * 9) / 10
)

var eventsWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type eventsWSInbound struct {
	Type string `json:"type"`
}

type eventsWSOutbound struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Session   *view  `json:"session,omitempty"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
}

// events streams a snapshot after every state change. Inbound messages are
// {"type":"ping"} and {"type":"snapshot"}.
func (h *SessionHandler) events(c *gin.Context) {
	id, ctrl, ok := h.controller(c)
	if !ok {
		return
	}

	conn, err := eventsWSUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(eventsWSPongWait)); err != nil {
		h.log.Warn("events ws set read deadline failed", "session_id", id, "error", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(eventsWSPongWait))
	})

	writeCh := make(chan eventsWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(eventsWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(eventsWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(eventsWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	pushEventsWS(writeCh, eventsWSOutbound{Type: "subscribed", SessionID: id})

	states := ctrl.Subscribe(ctx)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case st, ok := <-states:
				if !ok {
					return
				}
				pushEventsWS(writeCh, eventsWSOutbound{
					Type:      "state",
					SessionID: id,
					Session:   newView(id, st),
				})
			}
		}
	}()

	for {
		var in eventsWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		switch msgType := strings.ToLower(strings.TrimSpace(in.Type)); msgType {
		case "ping":
			pushEventsWS(writeCh, eventsWSOutbound{Type: "pong"})
		case "snapshot":
			pushEventsWS(writeCh, eventsWSOutbound{Type: "state", SessionID: id, Session: newView(id, ctrl.Snapshot())})
		case "":
			pushEventsWS(writeCh, eventsWSOutbound{Type: "error", Code: "invalid_argument", Message: "type is required"})
		default:
			pushEventsWS(writeCh, eventsWSOutbound{Type: "error", Code: "invalid_argument", Message: "unsupported type: " + msgType})
		}
	}
}

// pushEventsWS never blocks the reader loop; the oldest queued frame is
// dropped when the writer falls behind.
func pushEventsWS(writeCh chan eventsWSOutbound, out eventsWSOutbound) {
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
