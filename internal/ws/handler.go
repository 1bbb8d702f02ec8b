package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DoyleJ11/casual-games-backend/internal/engine"
	"github.com/DoyleJ11/casual-games-backend/internal/hub"
	"github.com/DoyleJ11/casual-games-backend/internal/table"
	"github.com/DoyleJ11/casual-games-backend/pkg/types"
)

const (
	writeTimeout = 3 * time.Second
	// Idle clients still get a snapshot every tick, so a long silence on the
	// read side is fine.
	readTimeout = 5 * time.Minute
)

type Options struct {
	Logger *zap.Logger
	// OriginPatterns loosens the same-origin check, e.g. for local dev.
	OriginPatterns []string
}

func Handler(h *hub.Hub, opts Options) http.HandlerFunc {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}

		reply := make(chan *table.Table, 1)
		h.Inbox() <- hub.GetTable{Code: code, Reply: reply}
		tb := <-reply
		if tb == nil {
			http.Error(w, "table not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: opts.OriginPatterns,
		})
		if err != nil {
			log.Debug("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan table.Snapshot, 8)
		clientID := uuid.NewString()
		log := log.With(zap.String("table", code), zap.String("client", clientID))

		if !send(tb, table.Join{ClientID: clientID, Outbox: out}) {
			return
		}
		log.Debug("client joined")
		defer func() {
			send(tb, table.Leave{ClientID: clientID})
			log.Debug("client left")
		}()

		// Writer goroutine; exits when the table closes out.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				msg := types.ServerMessage{Type: types.MsgStateSnapshot, Version: snap.Version, State: &snap.State}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				err := conn.Write(ctx, websocket.MessageText, payload)
				cancel()
				if err != nil {
					return
				}
			}
			// Table dropped us (slow client or shutdown).
			conn.Close(websocket.StatusGoingAway, "table closed")
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				// Treat clean close/going-away as normal:
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				default:
					log.Debug("websocket read failed", zap.Error(err))
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			cmd, ok := toEngineCommand(cm)
			if !ok {
				writeError(r.Context(), conn, "unknown type")
				continue
			}

			if !send(tb, table.FromClient{Cmd: cmd}) {
				return
			}
		}
	}
}

// send posts msg to the table unless it has already stopped.
func send(tb *table.Table, msg table.Msg) bool {
	select {
	case tb.Inbox() <- msg:
		return true
	case <-tb.Done():
		return false
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, msg string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: types.MsgError, Error: msg})
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_ = conn.Write(ctx, websocket.MessageText, payload)
}

func toEngineCommand(m types.ClientMessage) (engine.Command, bool) {
	switch m.Type {
	case types.MsgSelectChip:
		return engine.Command{Type: engine.CmdSelectChip, Chip: engine.Chip(m.Chip)}, true
	case types.MsgPlaceBet:
		side, ok := parseSide(m.Side)
		if !ok {
			return engine.Command{}, false
		}
		return engine.Command{Type: engine.CmdPlaceBet, Side: side}, true
	default:
		return engine.Command{}, false
	}
}

func parseSide(side string) (engine.Side, bool) {
	switch side {
	case "big":
		return engine.SideBig, true
	case "small":
		return engine.SideSmall, true
	default:
		return "", false
	}
}
