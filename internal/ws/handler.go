package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"energy_balance/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Runner serves stored balance runs and composes new ones.
type Runner interface {
	Latest() (store.Run, bool)
	Run(id string) (store.Run, error)
	Recompute(zoneIDs []string) (store.Run, error)
}

// Handler manages WebSocket connections and routes messages to the runner.
type Handler struct {
	hub    *Hub
	runner Runner
	logger *zap.Logger
}

func NewHandler(hub *Hub, runner Runner, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{hub: hub, runner: runner, logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := newClient(h.hub, conn, 256)

	h.hub.Register(client)
	go client.writePump()

	// New clients start from the latest stored run, if any.
	if run, ok := h.runner.Latest(); ok {
		h.sendRun(client, run)
	}

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}

		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		h.logger.Debug("invalid message", zap.Error(err))
		h.sendError(c, "invalid message")
		return
	}

	switch env.Type {
	case TypeBalanceGet:
		var p GetPayload
		if len(env.Payload) > 0 {
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				h.sendError(c, "invalid get payload")
				return
			}
		}
		if p.RunID != "" {
			run, err := h.runner.Run(p.RunID)
			if err != nil {
				h.sendError(c, err.Error())
				return
			}
			h.sendRun(c, run)
			return
		}
		run, ok := h.runner.Latest()
		if !ok {
			h.sendError(c, "no balance computed yet")
			return
		}
		h.sendRun(c, run)

	case TypeBalanceRecompute:
		var p RecomputePayload
		if len(env.Payload) > 0 {
			if err := json.Unmarshal(env.Payload, &p); err != nil {
				h.sendError(c, "invalid recompute payload")
				return
			}
		}
		// A successful run reaches every client through the bridge.
		if _, err := h.runner.Recompute(p.ZoneIDs); err != nil {
			h.sendError(c, err.Error())
		}

	default:
		h.logger.Debug("unknown message type", zap.String("type", env.Type))
		h.sendError(c, "unknown message type: "+env.Type)
	}
}

func (h *Handler) sendRun(c *Client, run store.Run) {
	if err := c.publish(TypeBalanceResult, ResultFromRun(run)); err != nil {
		h.logger.Error("sending balance result", zap.String("run_id", run.ID), zap.Error(err))
		h.sendError(c, "balance result could not be encoded")
		return
	}
	if run.Result == nil || len(run.Result.Warnings) == 0 {
		return
	}
	if err := c.publish(TypeBalanceWarnings, WarningsFromRun(run)); err != nil {
		h.logger.Error("sending balance warnings", zap.String("run_id", run.ID), zap.Error(err))
	}
}

func (h *Handler) sendError(c *Client, message string) {
	_ = c.publish(TypeError, ErrorPayload{Message: message})
}
