package rps

import "math/rand"

// Mode is the number of throws in a match: a single throw, best of three or
// best of five.
type Mode int

const (
	ModeSingle  Mode = 1
	ModeBestOf3 Mode = 3
	ModeBestOf5 Mode = 5
)

var Modes = []Mode{ModeSingle, ModeBestOf3, ModeBestOf5}

func (m Mode) Valid() bool {
	return m == ModeSingle || m == ModeBestOf3 || m == ModeBestOf5
}

type Match struct {
	ID             string `json:"id"`
	Mode           Mode   `json:"mode"`
	Remaining      int    `json:"remaining"`
	PlayerWins     int    `json:"player_wins"`
	ComputerWins   int    `json:"computer_wins"`
	PlayerAction   Action `json:"player_action,omitempty"`
	ComputerAction Action `json:"computer_action,omitempty"`
	Result         Result `json:"result,omitempty"`
}

func NewMatch(id string, mode Mode) (Match, error) {
	if !mode.Valid() {
		return Match{}, ErrIllegalMode
	}
	return Match{ID: id, Mode: mode, Remaining: int(mode)}, nil
}

// Over reports whether a multi-throw match has used all its throws. A single
// throw match is never over, it simply restarts.
func (m Match) Over() bool {
	return m.Mode != ModeSingle && m.Remaining == 0
}

// Winner is only meaningful once the match is over.
func (m Match) Winner() Result {
	switch {
	case m.PlayerWins > m.ComputerWins:
		return Win
	case m.PlayerWins < m.ComputerWins:
		return Lose
	default:
		return Draw
	}
}

// Throw plays the player's action against a random computer action. Draws
// still use up a throw.
func Throw(m Match, action Action, rng *rand.Rand) (Match, error) {
	if !action.Valid() {
		return m, ErrIllegalAction
	}
	if m.Over() {
		return m, ErrMatchOver
	}
	if m.Result != "" {
		return m, ErrThrowPending
	}

	next := m
	next.PlayerAction = action
	next.ComputerAction = RandomAction(rng)
	next.Result = Decide(action, next.ComputerAction)

	if m.Mode == ModeSingle {
		return next, nil
	}

	next.Remaining--
	switch next.Result {
	case Win:
		next.PlayerWins++
	case Lose:
		next.ComputerWins++
	}
	return next, nil
}

// Next clears the shown throw. In a single throw match, or once the match is
// over, it starts a fresh match instead.
func Next(m Match) (Match, error) {
	if m.Result == "" {
		return m, ErrNoThrow
	}
	if m.Mode == ModeSingle || m.Over() {
		return Reset(m, m.Mode)
	}
	next := m
	next.PlayerAction = ""
	next.ComputerAction = ""
	next.Result = ""
	return next, nil
}

// Reset restarts the match, optionally switching mode.
func Reset(m Match, mode Mode) (Match, error) {
	return NewMatch(m.ID, mode)
}
