package engine

import "math/rand"

const (
	DieSides     = 6
	BigThreshold = 11
)

// RollDice draws three independent dice from rng. Pass a seeded rng for
// reproducible rounds.
func RollDice(rng *rand.Rand) [3]int {
	var dice [3]int
	for i := range dice {
		dice[i] = rng.Intn(DieSides) + 1
	}
	return dice
}

const (
	BoxBorder  = 3.0
	BoxPadding = 10.0
	ChipSize   = 40.0

	placementAttempts = 16
)

// Box is the measured size of a betting zone on the client.
type Box struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var DefaultBox = Box{Width: 160, Height: 180}

// RandomPosition picks the top-left corner of a chip inside box, trying not
// to cover chips already on that side. After placementAttempts misses the
// last candidate is used.
func RandomPosition(rng *rand.Rand, box Box, taken []Bet) Position {
	minX := BoxBorder + BoxPadding
	maxX := box.Width - BoxBorder - ChipSize - BoxPadding
	minY := BoxBorder + BoxPadding
	maxY := box.Height - BoxBorder - ChipSize - BoxPadding

	if maxX < minX || maxY < minY {
		return Position{X: minX, Y: minY}
	}

	var p Position
	for i := 0; i < placementAttempts; i++ {
		p = Position{
			X: rng.Float64()*(maxX-minX) + minX,
			Y: rng.Float64()*(maxY-minY) + minY,
		}
		if !overlaps(p, taken) {
			return p
		}
	}
	return p
}

func overlaps(p Position, taken []Bet) bool {
	for _, bet := range taken {
		dx := p.X - bet.Position.X
		dy := p.Y - bet.Position.Y
		if dx < ChipSize && dx > -ChipSize && dy < ChipSize && dy > -ChipSize {
			return true
		}
	}
	return false
}
