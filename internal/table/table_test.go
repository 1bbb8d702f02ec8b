package table

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/DoyleJ11/casual-games-backend/internal/engine"
)

// helper: receive one snapshot with a timeout so tests never hang
func recvSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatalf("client outbox closed unexpectedly")
		}
		return snap
	case <-time.After(within):
		t.Fatalf("timed out waiting for snapshot")
		return Snapshot{} // unreachable
	}
}

func recvNoSnapshot(t *testing.T, ch <-chan Snapshot, within time.Duration) {
	t.Helper()
	select {
	case s, ok := <-ch:
		if !ok {
			// channel closed → that's fine; no further snapshots possible
			return
		}
		t.Fatalf("expected no snapshot within %v, but got: %+v", within, s)
	case <-time.After(within):
		// good: no snapshot
	}
}

func view(t *testing.T, tb *Table) View {
	t.Helper()
	reply := make(chan View, 1)
	tb.Inbox() <- GetState{Reply: reply}
	select {
	case v := <-reply:
		return v
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for view")
		return View{} // unreachable
	}
}

// waitFor polls the table until cond holds. Mock timers deliver through
// goroutines, so there is a short gap between Add and the loop seeing it.
func waitFor(t *testing.T, tb *Table, what string, cond func(engine.State) bool) engine.State {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		v := view(t, tb)
		if cond(v.State) {
			return v.State
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s; state=%+v", what, v.State)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

// tickDown advances the mock clock one second at a time until the countdown
// reaches want.
func tickDown(t *testing.T, mock *clock.Mock, tb *Table, want int) engine.State {
	t.Helper()
	s := view(t, tb).State
	round := s.Round
	for s.Round == round && s.Phase == engine.PhaseBetting && s.Countdown > want {
		next := s.Countdown - 1
		mock.Add(TickInterval)
		s = waitFor(t, tb, "tick", func(st engine.State) bool {
			return st.Countdown <= next || st.Phase != engine.PhaseBetting || st.Round != round
		})
	}
	return s
}

func newTestTable(t *testing.T, seed int64) (*Table, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	tb := NewTable(ctx, Options{
		Clock: mock,
		Rand:  rand.New(rand.NewSource(seed)),
	})
	return tb, mock
}

func TestTable_Join_SendsInitialRound(t *testing.T) {
	tb, _ := newTestTable(t, 1)

	out := make(chan Snapshot, 4)
	tb.Inbox() <- Join{ClientID: "c1", Outbox: out}

	first := recvSnapshot(t, out, 100*time.Millisecond)
	if first.Version != 0 {
		t.Fatalf("after join: want version=0, got %d", first.Version)
	}
	if first.State.Countdown != engine.DefaultCountdownSec || first.State.Balance != engine.DefaultStartBalance {
		t.Fatalf("after join: unexpected round %+v", first.State)
	}
}

func TestTable_Bet_BroadcastsSnapshotAndVersionIncrements(t *testing.T) {
	tb, _ := newTestTable(t, 1)

	out := make(chan Snapshot, 8)
	tb.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	tb.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdSelectChip, Chip: engine.Chip100}}
	sel := recvSnapshot(t, out, 100*time.Millisecond)
	if sel.Version != 1 || sel.State.SelectedChip != engine.Chip100 {
		t.Fatalf("after select: version=%d chip=%d", sel.Version, sel.State.SelectedChip)
	}

	tb.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdPlaceBet, Side: engine.SideBig}}
	bet := recvSnapshot(t, out, 100*time.Millisecond)
	if bet.Version != 2 {
		t.Fatalf("after bet: want version=2, got %d", bet.Version)
	}
	if bet.State.Balance != 900 || bet.State.BigTotal != 100 {
		t.Fatalf("after bet: balance=%d big=%d", bet.State.Balance, bet.State.BigTotal)
	}
	if len(bet.State.BigBets) != 1 {
		t.Fatalf("after bet: want one bet record, got %d", len(bet.State.BigBets))
	}
	p := bet.State.BigBets[0].Position
	if p.X < engine.BoxBorder+engine.BoxPadding || p.Y < engine.BoxBorder+engine.BoxPadding {
		t.Fatalf("bet placed outside the box: %+v", p)
	}
}

func TestTable_RejectedCommandIsSilent(t *testing.T) {
	tb, _ := newTestTable(t, 1)

	out := make(chan Snapshot, 4)
	tb.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	// No chip selected.
	tb.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdPlaceBet, Side: engine.SideSmall}}
	recvNoSnapshot(t, out, 100*time.Millisecond)

	v := view(t, tb)
	if v.Version != 0 || v.State.Balance != engine.DefaultStartBalance {
		t.Fatalf("rejected bet changed state: %+v", v)
	}
}

func TestTable_PlacementAnimationBlocksSecondBet(t *testing.T) {
	tb, mock := newTestTable(t, 1)

	tb.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdSelectChip, Chip: engine.Chip5}}
	tb.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdPlaceBet, Side: engine.SideSmall}}
	tb.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdSelectChip, Chip: engine.Chip5}}
	tb.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdPlaceBet, Side: engine.SideSmall}}

	s := view(t, tb).State
	if s.SmallTotal != 5 || !s.Placing {
		t.Fatalf("want one bet in flight, got small=%d placing=%v", s.SmallTotal, s.Placing)
	}

	mock.Add(PlacementDelay)
	waitFor(t, tb, "placement done", func(st engine.State) bool { return !st.Placing })

	tb.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdPlaceBet, Side: engine.SideSmall}}
	s = waitFor(t, tb, "second bet", func(st engine.State) bool { return st.SmallTotal == 10 })
	if s.Balance != engine.DefaultStartBalance-10 {
		t.Fatalf("want balance %d, got %d", engine.DefaultStartBalance-10, s.Balance)
	}
}

func TestTable_FullRound_SettlesAndResets(t *testing.T) {
	tb, mock := newTestTable(t, 42)

	tb.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdSelectChip, Chip: engine.Chip100}}
	tb.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdPlaceBet, Side: engine.SideBig}}
	waitFor(t, tb, "bet", func(st engine.State) bool { return st.BigTotal == 100 })

	s := tickDown(t, mock, tb, 0)
	s = waitFor(t, tb, "settling", func(st engine.State) bool { return st.Phase == engine.PhaseSettling })

	if s.DiceTotal < 3 || s.DiceTotal > 18 {
		t.Fatalf("dice total %d out of range", s.DiceTotal)
	}
	switch engine.Classify(s.DiceTotal) {
	case engine.SideBig:
		if s.Outcome != engine.OutcomeWin || s.Balance != 1100 {
			t.Fatalf("big total %d: outcome=%s balance=%d", s.DiceTotal, s.Outcome, s.Balance)
		}
	case engine.SideSmall:
		if s.Outcome != engine.OutcomeLose || s.Balance != 900 {
			t.Fatalf("small total %d: outcome=%s balance=%d", s.DiceTotal, s.Outcome, s.Balance)
		}
	}
	balance := s.Balance

	mock.Add(PresentationDelay)
	s = waitFor(t, tb, "reset", func(st engine.State) bool { return st.Phase == engine.PhaseBetting })

	if s.Round != 2 || s.Countdown != engine.DefaultCountdownSec {
		t.Fatalf("after reset: round=%d countdown=%d", s.Round, s.Countdown)
	}
	if s.BigTotal != 0 || s.SmallTotal != 0 || s.DiceTotal != 0 {
		t.Fatalf("after reset: fields not cleared %+v", s)
	}
	if s.Balance != balance {
		t.Fatalf("reset changed balance %d -> %d", balance, s.Balance)
	}

	// Countdown restarts for the new round.
	s = tickDown(t, mock, tb, engine.DefaultCountdownSec-1)
	if s.Countdown != engine.DefaultCountdownSec-1 {
		t.Fatalf("new round did not tick: countdown=%d", s.Countdown)
	}
}

func TestTable_NoStake_LoopsStraightIntoNextRound(t *testing.T) {
	tb, mock := newTestTable(t, 3)

	tickDown(t, mock, tb, 0)
	s := waitFor(t, tb, "next round", func(st engine.State) bool { return st.Round == 2 })

	if s.Phase != engine.PhaseBetting || s.Countdown != engine.DefaultCountdownSec || s.Outcome != engine.OutcomeNone {
		t.Fatalf("want fresh betting round, got %+v", s)
	}
}

func TestTable_DropSlowClient(t *testing.T) {
	tb, _ := newTestTable(t, 1)

	clientOut := make(chan Snapshot, 1)
	tb.Inbox() <- Join{ClientID: "ch1", Outbox: clientOut}

	tb.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdSelectChip, Chip: engine.Chip10}}

	v := view(t, tb)
	if v.NumClients != 0 {
		t.Fatalf("expected slow client to be dropped; NumClients=%d", v.NumClients)
	}
}

func TestTable_Leave_ClosesOutbox(t *testing.T) {
	tb, _ := newTestTable(t, 1)

	out := make(chan Snapshot, 2)
	tb.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	tb.Inbox() <- Leave{ClientID: "c1"}
	if v := view(t, tb); v.NumClients != 0 {
		t.Fatalf("want no clients after leave, got %d", v.NumClients)
	}
	if _, ok := <-out; ok {
		t.Fatalf("expected outbox closed after leave")
	}
}

func TestTable_Shutdown_StopsTimers_NoFire(t *testing.T) {
	tb, mock := newTestTable(t, 1)

	out := make(chan Snapshot, 4)
	tb.Inbox() <- Join{ClientID: "c1", Outbox: out}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	tb.Inbox() <- FromClient{Cmd: engine.Command{Type: engine.CmdSelectChip, Chip: engine.Chip5}}
	_ = recvSnapshot(t, out, 100*time.Millisecond)

	tb.Inbox() <- Shutdown{}
	select {
	case <-tb.Done():
	case <-time.After(time.Second):
		t.Fatalf("table did not stop")
	}

	mock.Add(3 * time.Second)
	// Now assert no *new* snapshot shows up (or channel is closed)
	recvNoSnapshot(t, out, 100*time.Millisecond)
}
