package ws

import (
	"go.uber.org/zap"

	"energy_balance/internal/store"
)

// Bridge implements service.Callback and broadcasts runs to the WebSocket hub.
type Bridge struct {
	hub    *Hub
	logger *zap.Logger
}

func NewBridge(hub *Hub, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{hub: hub, logger: logger}
}

func (b *Bridge) OnRun(r store.Run) {
	if err := b.hub.Publish(TypeBalanceResult, ResultFromRun(r)); err != nil {
		b.logger.Error("broadcasting balance result", zap.String("run_id", r.ID), zap.Error(err))
		return
	}

	if r.Result == nil || len(r.Result.Warnings) == 0 {
		return
	}
	if err := b.hub.Publish(TypeBalanceWarnings, WarningsFromRun(r)); err != nil {
		b.logger.Error("broadcasting balance warnings", zap.String("run_id", r.ID), zap.Error(err))
	}
}
