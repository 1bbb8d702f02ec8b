package engine

import (
	"errors"
)

var ErrNotBetting = errors.New("round is not accepting bets")
var ErrNotResolving = errors.New("round is not resolving")
var ErrNotSettling = errors.New("round is not settling")
var ErrNoChipSelected = errors.New("no chip selected")
var ErrIllegalChip = errors.New("illegal chip")
var ErrPlacementInFlight = errors.New("placement already in flight")
var ErrInsufficientBalance = errors.New("insufficient balance")
var ErrSideLocked = errors.New("opposite side already staked")
var ErrIllegalSide = errors.New("illegal side")
var ErrIllegalDice = errors.New("illegal dice")
var ErrUnsupportedCommand = errors.New("unsupported command")

type Side string

const (
	SideBig   Side = "big"
	SideSmall Side = "small"
)

type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
)

type Phase string

const (
	PhaseBetting   Phase = "betting"
	PhaseResolving Phase = "resolving"
	PhaseSettling  Phase = "settling"
)

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bet is only a rendering record; the totals are what get settled.
type Bet struct {
	Position Position `json:"position"`
	Chip     Chip     `json:"chip"`
}

type State struct {
	Round        int     `json:"round"`
	Phase        Phase   `json:"phase"`
	Countdown    int     `json:"countdown"`
	Balance      int     `json:"balance"`
	SelectedChip Chip    `json:"selected_chip,omitempty"`
	Placing      bool    `json:"placing"`
	BigTotal     int     `json:"big_total"`
	SmallTotal   int     `json:"small_total"`
	BigBets      []Bet   `json:"big_bets"`
	SmallBets    []Bet   `json:"small_bets"`
	Dice         [3]int  `json:"dice"`
	DiceTotal    int     `json:"dice_total,omitempty"`
	Outcome      Outcome `json:"outcome,omitempty"`
	Payout       int     `json:"payout,omitempty"`
	Rules        Rules   `json:"rules"`
}

type Rules struct {
	CountdownSec   int `json:"countdown_sec"`
	StartBalance   int `json:"start_balance"`
	PayoutMultiple int `json:"payout_multiple"`
}

type CommandType string

const (
	CmdSelectChip       CommandType = "SelectChip"
	CmdPlaceBet         CommandType = "PlaceBet"
	CmdPlacementDone    CommandType = "PlacementDone"
	CmdTick             CommandType = "Tick"
	CmdRoll             CommandType = "Roll"
	CmdPresentationDone CommandType = "PresentationDone"
)

/*
	CmdSelectChip       -> EvtChipSelected
	CmdPlaceBet         -> EvtBetPlaced
	CmdPlacementDone    -> EvtPlacementSettled
	CmdTick             -> EvtCountdownTicked (-> EvtTimerExpired at zero)
	CmdRoll             -> EvtDiceRolled -> EvtRoundSettled, or EvtRoundReset when nothing was staked
	CmdPresentationDone -> EvtRoundReset
*/

type Command struct {
	Type     CommandType
	Chip     Chip
	Side     Side
	Position Position
	Dice     [3]int
}

type EventType string

const (
	EvtChipSelected     EventType = "ChipSelected"
	EvtBetPlaced        EventType = "BetPlaced"
	EvtPlacementSettled EventType = "PlacementSettled"
	EvtCountdownTicked  EventType = "CountdownTicked"
	EvtTimerExpired     EventType = "TimerExpired"
	EvtDiceRolled       EventType = "DiceRolled"
	EvtRoundSettled     EventType = "RoundSettled"
	EvtRoundReset       EventType = "RoundReset"
)

type Event struct {
	Type    EventType
	Side    Side
	Chip    Chip
	Amount  int
	Dice    [3]int
	Total   int
	Outcome Outcome
}

// Apply is pure: s is never mutated, slices are copied before append.
func Apply(s State, cmd Command) ([]Event, State, error) {
	newState := s

	switch cmd.Type {
	case CmdSelectChip:
		if s.Phase != PhaseBetting || s.Countdown <= 0 {
			return nil, s, ErrNotBetting
		}
		if !cmd.Chip.Valid() {
			return nil, s, ErrIllegalChip
		}

		newState.SelectedChip = cmd.Chip
		return []Event{{Type: EvtChipSelected, Chip: cmd.Chip}}, newState, nil

	case CmdPlaceBet:
		if err := canPlace(s, cmd.Side); err != nil {
			return nil, s, err
		}

		chip := s.SelectedChip
		bet := Bet{Position: cmd.Position, Chip: chip}

		newState.Balance -= chip.Value()
		if cmd.Side == SideBig {
			newState.BigBets = appendBet(s.BigBets, bet)
			newState.BigTotal += chip.Value()
		} else {
			newState.SmallBets = appendBet(s.SmallBets, bet)
			newState.SmallTotal += chip.Value()
		}
		newState.SelectedChip = 0
		newState.Placing = true

		events := []Event{
			{Type: EvtBetPlaced, Side: cmd.Side, Chip: chip, Amount: chip.Value()},
		}
		return events, newState, nil

	case CmdPlacementDone:
		if !s.Placing {
			return nil, s, nil
		}
		newState.Placing = false
		return []Event{{Type: EvtPlacementSettled}}, newState, nil

	case CmdTick:
		if s.Phase != PhaseBetting || s.Countdown <= 0 {
			return nil, s, ErrNotBetting
		}

		newState.Countdown--
		events := []Event{{Type: EvtCountdownTicked}}

		// Completion
		if newState.Countdown == 0 {
			newState.Phase = PhaseResolving
			newState.SelectedChip = 0
			events = append(events, Event{Type: EvtTimerExpired})
		}
		return events, newState, nil

	case CmdRoll:
		if s.Phase != PhaseResolving {
			return nil, s, ErrNotResolving
		}
		if !validDice(cmd.Dice) {
			return nil, s, ErrIllegalDice
		}

		total := SumDice(cmd.Dice)
		newState.Dice = cmd.Dice
		newState.DiceTotal = total
		events := []Event{{Type: EvtDiceRolled, Dice: cmd.Dice, Total: total}}

		side, stake := stakedSide(s)
		if stake == 0 {
			// Nothing to settle, straight into the next round.
			reset := resetRound(s)
			return append(events, Event{Type: EvtRoundReset}), reset, nil
		}

		newState.Phase = PhaseSettling
		if Classify(total) == side {
			payout := stake * s.Rules.payoutMultiple()
			newState.Balance += payout
			newState.Payout = payout
			newState.Outcome = OutcomeWin
		} else {
			newState.Payout = 0
			newState.Outcome = OutcomeLose
		}

		events = append(events, Event{
			Type:    EvtRoundSettled,
			Side:    side,
			Amount:  newState.Payout,
			Total:   total,
			Outcome: newState.Outcome,
		})
		return events, newState, nil

	case CmdPresentationDone:
		if s.Phase != PhaseSettling {
			return nil, s, ErrNotSettling
		}
		return []Event{{Type: EvtRoundReset}}, resetRound(s), nil

	default:
		return nil, s, ErrUnsupportedCommand
	}
}

// Reduce replays events on top of a fresh round. The bet lists are not
// rebuilt since events carry no chip positions; totals, dice and balance are.
func Reduce(rules Rules, events []Event) State {
	s := NewRound(rules)
	for _, event := range events {
		switch event.Type {
		case EvtChipSelected:
			s.SelectedChip = event.Chip
		case EvtBetPlaced:
			s.Balance -= event.Amount
			if event.Side == SideBig {
				s.BigTotal += event.Amount
			} else {
				s.SmallTotal += event.Amount
			}
			s.SelectedChip = 0
			s.Placing = true
		case EvtPlacementSettled:
			s.Placing = false
		case EvtCountdownTicked:
			s.Countdown--
		case EvtTimerExpired:
			s.Phase = PhaseResolving
			s.SelectedChip = 0
		case EvtDiceRolled:
			s.Dice = event.Dice
			s.DiceTotal = event.Total
		case EvtRoundSettled:
			s.Phase = PhaseSettling
			s.Balance += event.Amount
			s.Payout = event.Amount
			s.Outcome = event.Outcome
		case EvtRoundReset:
			s = resetRound(s)
		}
	}
	return s
}

func canPlace(s State, side Side) error {
	if s.Phase != PhaseBetting || s.Countdown <= 0 {
		return ErrNotBetting
	}
	if side != SideBig && side != SideSmall {
		return ErrIllegalSide
	}
	if s.SelectedChip == 0 {
		return ErrNoChipSelected
	}
	if s.Placing {
		return ErrPlacementInFlight
	}
	if s.Balance < s.SelectedChip.Value() {
		return ErrInsufficientBalance
	}
	if side == SideBig && s.SmallTotal > 0 || side == SideSmall && s.BigTotal > 0 {
		return ErrSideLocked
	}
	return nil
}

func stakedSide(s State) (Side, int) {
	switch {
	case s.BigTotal > 0:
		return SideBig, s.BigTotal
	case s.SmallTotal > 0:
		return SideSmall, s.SmallTotal
	default:
		return "", 0
	}
}

func appendBet(bets []Bet, bet Bet) []Bet {
	out := make([]Bet, len(bets), len(bets)+1)
	copy(out, bets)
	return append(out, bet)
}

func validDice(dice [3]int) bool {
	for _, d := range dice {
		if d < 1 || d > DieSides {
			return false
		}
	}
	return true
}
