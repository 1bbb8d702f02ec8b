package types

import "github.com/DoyleJ11/casual-games-backend/internal/engine"

// Client -> Server
// SelectChip:
//   chip: 5 | 10 | 25 | 100
//
// PlaceBet:
//   side: "big" | "small"
//   (the server picks where the chip lands)
//
// Server -> Client
// StateSnapshot: see snapshot.go
//
// Error:
//   error: string
//
// Commands the round cannot take (no chip, locked side, not enough balance,
// countdown over) produce no reply at all.
type ClientMessage struct {
	Type string `json:"type"`
	Chip int    `json:"chip,omitempty"`
	Side string `json:"side,omitempty"`
}

type ServerMessage struct {
	Type    string        `json:"type"` // "StateSnapshot" | "Error"
	Version int           `json:"version,omitempty"`
	State   *engine.State `json:"state,omitempty"`
	Error   string        `json:"error,omitempty"`
}

const (
	MsgSelectChip    = "SelectChip"
	MsgPlaceBet      = "PlaceBet"
	MsgStateSnapshot = "StateSnapshot"
	MsgError         = "Error"
)
