package ws

import (
	"encoding/json"
	"time"

	"energy_balance/internal/model"
	"energy_balance/internal/series"
	"energy_balance/internal/store"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeBalanceGet       = "balance:get"
	TypeBalanceRecompute = "balance:recompute"

	// Server -> Client
	TypeBalanceResult   = "balance:result"
	TypeBalanceWarnings = "balance:warnings"
	TypeError           = "error"
)

// Client -> Server messages

// GetPayload selects a stored run. An empty RunID means the latest.
type GetPayload struct {
	RunID string `json:"run_id,omitempty"`
}

type RecomputePayload struct {
	ZoneIDs []string `json:"zone_ids,omitempty"`
}

// Server -> Client messages

type ResultPayload struct {
	RunID       string              `json:"run_id"`
	ComputedAt  string              `json:"computed_at"`
	ZoneIDs     []string            `json:"zone_ids"`
	Balance     model.BalanceResult `json:"balance"`
	WithStorage model.BalanceResult `json:"with_storage"`
}

type WarningInfo struct {
	Term    string `json:"term"`
	Check   string `json:"check"`
	Message string `json:"message"`
	Fatal   bool   `json:"fatal"`
}

type WarningsPayload struct {
	RunID    string        `json:"run_id"`
	Warnings []WarningInfo `json:"warnings"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

func ResultFromRun(r store.Run) ResultPayload {
	p := ResultPayload{
		RunID:      r.ID,
		ComputedAt: r.ComputedAt.UTC().Format(time.RFC3339),
		ZoneIDs:    r.ZoneIDs,
	}
	if r.Result != nil {
		p.Balance = r.Result.Balance
		p.WithStorage = r.Result.WithStorage
	}
	return p
}

func WarningsFromRun(r store.Run) WarningsPayload {
	p := WarningsPayload{RunID: r.ID}
	if r.Result == nil {
		return p
	}
	p.Warnings = make([]WarningInfo, 0, len(r.Result.Warnings))
	for _, w := range r.Result.Warnings {
		p.Warnings = append(p.Warnings, warningInfo(w))
	}
	return p
}

func warningInfo(w series.Warning) WarningInfo {
	return WarningInfo{
		Term:    w.Term,
		Check:   string(w.Check),
		Message: w.Message,
		Fatal:   w.Check.Fatal(),
	}
}
