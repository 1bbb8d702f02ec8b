package hub

import (
	"context"

	"go.uber.org/zap"

	"github.com/DoyleJ11/casual-games-backend/internal/table"
)

type HubMsg interface{ isHubMsg() }

type CreateTable struct {
	Code  string
	Reply chan *table.Table
}

type GetTable struct {
	Code  string
	Reply chan *table.Table
}

type EnsureTable struct {
	Code  string
	Reply chan *table.Table
}

type RemoveTable struct {
	Code string
}

type CountTables struct {
	Reply chan int
}

type ShutdownHub struct{}

func (CreateTable) isHubMsg() {}
func (GetTable) isHubMsg()    {}
func (EnsureTable) isHubMsg() {}
func (RemoveTable) isHubMsg() {}
func (CountTables) isHubMsg() {}
func (ShutdownHub) isHubMsg() {}

// TableOptions builds the options for each new table, so every table gets
// its own rng.
type TableOptions func(code string) table.Options

type Hub struct {
	inbox   chan HubMsg
	tables  map[string]*table.Table
	newOpts TableOptions
	log     *zap.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewHub(parent context.Context, newOpts TableOptions, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	if newOpts == nil {
		newOpts = func(string) table.Options { return table.Options{} }
	}
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		inbox:   make(chan HubMsg, 64),
		tables:  make(map[string]*table.Table),
		newOpts: newOpts,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			h.shutdown()
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case CreateTable, EnsureTable:
				code, reply := createArgs(msg)
				if tb := h.tables[code]; tb != nil {
					reply <- tb
					break
				}
				tb := table.NewTable(h.ctx, h.newOpts(code))
				h.tables[code] = tb
				h.log.Info("table opened", zap.String("code", code))
				reply <- tb

			case GetTable:
				msg.Reply <- h.tables[msg.Code] // May be nil

			case RemoveTable:
				if tb := h.tables[msg.Code]; tb != nil {
					stopTable(tb)
					delete(h.tables, msg.Code)
					h.log.Info("table closed", zap.String("code", msg.Code))
				}

			case CountTables:
				msg.Reply <- len(h.tables)

			case ShutdownHub:
				h.shutdown()
				return
			}
		}
	}
}

func createArgs(m HubMsg) (string, chan *table.Table) {
	switch msg := m.(type) {
	case CreateTable:
		return msg.Code, msg.Reply
	case EnsureTable:
		return msg.Code, msg.Reply
	}
	return "", nil
}

func (h *Hub) shutdown() {
	for _, tb := range h.tables {
		stopTable(tb)
	}
	clear(h.tables)
	h.cancel()
}

// stopTable asks tb to shut down unless it has already exited.
func stopTable(tb *table.Table) {
	select {
	case tb.Inbox() <- table.Shutdown{}:
	case <-tb.Done():
	}
}
