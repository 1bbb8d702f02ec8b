package table

import (
	"context"
	"math/rand"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/DoyleJ11/casual-games-backend/internal/engine"
	"github.com/DoyleJ11/casual-games-backend/internal/metrics"
)

const (
	TickInterval      = time.Second
	PlacementDelay    = time.Second
	PresentationDelay = 5 * time.Second
)

type Msg interface{ isTableMsg() }

type FromClient struct {
	Cmd engine.Command
}

func (FromClient) isTableMsg() {}

type Join struct {
	ClientID string
	Outbox   chan Snapshot // where this client wants to receive snapshots
}

func (Join) isTableMsg() {}

type Leave struct{ ClientID string }

func (Leave) isTableMsg() {}

type Shutdown struct{}

func (Shutdown) isTableMsg() {}

type GetState struct {
	Reply chan View
}

func (GetState) isTableMsg() {}

type timerKind int

const (
	timerPlacement timerKind = iota
	timerPresentation
)

// timerFired is posted by AfterFunc callbacks. Fires whose gen no longer
// matches the table's counter were superseded and are dropped.
type timerFired struct {
	kind timerKind
	gen  int
}

func (timerFired) isTableMsg() {}

type Snapshot struct {
	Version int
	State   engine.State
}

type View struct {
	Version    int
	NumClients int
	State      engine.State
}

type Options struct {
	Rules   engine.Rules
	Box     engine.Box
	Clock   clock.Clock
	Rand    *rand.Rand
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

type Table struct {
	inbox   chan Msg
	state   engine.State
	version int
	clients map[string]chan Snapshot

	clock   clock.Clock
	rng     *rand.Rand
	box     engine.Box
	log     *zap.Logger
	metrics *metrics.Metrics

	ticker *clock.Ticker
	timers map[timerKind]*clock.Timer
	gens   map[timerKind]int

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewTable(parent context.Context, opts Options) *Table {
	ctx, cancel := context.WithCancel(parent)

	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Box == (engine.Box{}) {
		opts.Box = engine.DefaultBox
	}
	if opts.Rules == (engine.Rules{}) {
		opts.Rules = engine.DefaultRules()
	}

	t := &Table{
		inbox:   make(chan Msg, 64), // Small buffer
		state:   engine.NewRound(opts.Rules),
		clients: make(map[string]chan Snapshot),
		clock:   opts.Clock,
		rng:     opts.Rand,
		box:     opts.Box,
		log:     opts.Logger,
		metrics: opts.Metrics,
		timers:  make(map[timerKind]*clock.Timer),
		gens:    make(map[timerKind]int),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	// Armed before the loop starts so a mocked clock can be advanced right away.
	t.startTicker()
	t.metrics.TableOpened()

	go t.loop()
	return t
}

func (t *Table) loop() {
	defer close(t.done)
	for {
		select {
		case <-t.ctx.Done():
			t.shutdown()
			return

		case <-t.tickC():
			t.dispatch(engine.Command{Type: engine.CmdTick})

		case m := <-t.inbox:
			switch msg := m.(type) {
			case Join:
				// Register client + send current snapshot immediately
				t.clients[msg.ClientID] = msg.Outbox
				msg.Outbox <- Snapshot{Version: t.version, State: t.state}

			case Leave:
				if ch, ok := t.clients[msg.ClientID]; ok {
					close(ch)
					delete(t.clients, msg.ClientID)
				}

			case FromClient:
				cmd := msg.Cmd
				if cmd.Type == engine.CmdPlaceBet {
					cmd.Position = engine.RandomPosition(t.rng, t.box, t.betsOn(cmd.Side))
				}
				t.dispatch(cmd)

			case timerFired:
				if msg.gen != t.gens[msg.kind] {
					break
				}
				delete(t.timers, msg.kind)
				switch msg.kind {
				case timerPlacement:
					t.dispatch(engine.Command{Type: engine.CmdPlacementDone})
				case timerPresentation:
					t.dispatch(engine.Command{Type: engine.CmdPresentationDone})
				}

			case GetState:
				// reflect internal state without data races
				msg.Reply <- View{
					Version:    t.version,
					NumClients: len(t.clients),
					State:      t.state,
				}

			case Shutdown:
				t.shutdown()
				return
			}
		}
	}
}

// dispatch applies cmd and reacts to the resulting events. Rejected commands
// are dropped without telling the sender.
func (t *Table) dispatch(cmd engine.Command) {
	events, newState, err := engine.Apply(t.state, cmd)
	if err != nil {
		t.log.Debug("command ignored",
			zap.String("cmd", string(cmd.Type)),
			zap.Int("round", t.state.Round),
			zap.Error(err))
		return
	}
	if len(events) == 0 {
		return
	}

	t.state = newState
	t.version++
	t.broadcast(Snapshot{Version: t.version, State: t.state})

	for _, e := range events {
		t.react(e)
	}
}

func (t *Table) react(e engine.Event) {
	switch e.Type {
	case engine.EvtBetPlaced:
		t.metrics.BetPlaced(string(e.Side), e.Amount)
		t.arm(timerPlacement, PlacementDelay)

	case engine.EvtTimerExpired:
		t.stopTicker()
		dice := engine.RollDice(t.rng)
		t.dispatch(engine.Command{Type: engine.CmdRoll, Dice: dice})

	case engine.EvtRoundSettled:
		t.log.Info("round settled",
			zap.Int("round", t.state.Round),
			zap.Ints("dice", t.state.Dice[:]),
			zap.Int("total", e.Total),
			zap.String("side", string(e.Side)),
			zap.String("outcome", string(e.Outcome)),
			zap.Int("payout", e.Amount),
			zap.Int("balance", t.state.Balance))
		t.metrics.RoundSettled(string(e.Outcome), e.Amount)
		t.arm(timerPresentation, PresentationDelay)

	case engine.EvtRoundReset:
		t.cancelTimer(timerPlacement)
		t.startTicker()
	}
}

func (t *Table) betsOn(side engine.Side) []engine.Bet {
	if side == engine.SideBig {
		return t.state.BigBets
	}
	return t.state.SmallBets
}

func (t *Table) tickC() <-chan time.Time {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C
}

func (t *Table) startTicker() {
	t.stopTicker()
	t.ticker = t.clock.Ticker(TickInterval)
}

func (t *Table) stopTicker() {
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
}

func (t *Table) arm(kind timerKind, d time.Duration) {
	t.cancelTimer(kind)
	gen := t.gens[kind]
	t.timers[kind] = t.clock.AfterFunc(d, func() {
		select {
		case t.inbox <- timerFired{kind: kind, gen: gen}:
		case <-t.ctx.Done():
		}
	})
}

// cancelTimer stops a pending timer and bumps its generation so a fire that
// already left the clock is dropped as stale.
func (t *Table) cancelTimer(kind timerKind) {
	t.gens[kind]++
	if timer, ok := t.timers[kind]; ok {
		timer.Stop()
		delete(t.timers, kind)
	}
}

func (t *Table) shutdown() {
	t.stopTicker()
	for kind := range t.timers {
		t.cancelTimer(kind)
	}
	for id, ch := range t.clients {
		close(ch) // Tell client no more snapshots
		delete(t.clients, id)
	}
	t.metrics.TableClosed()
	t.cancel()
}

func (t *Table) broadcast(snap Snapshot) {
	for id, ch := range t.clients {
		select {
		case ch <- snap:
			//ok
		default:
			// Client is slow/full - drop them.
			close(ch)
			delete(t.clients, id)
		}
	}
}

// Expose the inbox so tests or WS layer can send messages.
func (t *Table) Inbox() chan<- Msg { return t.inbox }

// Done is closed once the table loop has exited.
func (t *Table) Done() <-chan struct{} { return t.done }
