package rps

import (
	"errors"
	"math/rand"
)

var ErrIllegalAction = errors.New("illegal action")
var ErrIllegalMode = errors.New("illegal mode")
var ErrThrowPending = errors.New("previous throw not cleared")
var ErrNoThrow = errors.New("no throw to clear")
var ErrMatchOver = errors.New("match already over")

type Action string

const (
	Scissors Action = "scissors"
	Rock     Action = "rock"
	Paper    Action = "paper"
)

// Actions in the order the buttons are laid out.
var Actions = []Action{Scissors, Rock, Paper}

func (a Action) Valid() bool {
	return a == Scissors || a == Rock || a == Paper
}

type Result string

const (
	Win  Result = "win"
	Lose Result = "lose"
	Draw Result = "draw"
)

// beats maps each action to the one it defeats.
var beats = map[Action]Action{
	Scissors: Paper,
	Rock:     Scissors,
	Paper:    Rock,
}

// Decide scores one throw from the player's side.
func Decide(player, computer Action) Result {
	if player == computer {
		return Draw
	}
	if beats[player] == computer {
		return Win
	}
	return Lose
}

func RandomAction(rng *rand.Rand) Action {
	return Actions[rng.Intn(len(Actions))]
}
