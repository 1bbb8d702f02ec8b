package bingo

import "math/rand"

const Reels = 3

// Symbols is the strip every reel draws from.
var Symbols = []string{"🍎", "🍊", "🍇", "🍒", "🍋", "🍉", "🔔", "⭐"}

type Prize string

const (
	PrizeJackpot Prize = "jackpot"
	PrizeSmall   Prize = "small"
	PrizeNone    Prize = "none"
)

type Spin struct {
	Symbols    [Reels]string `json:"symbols"`
	Prize      Prize         `json:"prize"`
	Guaranteed bool          `json:"guaranteed"`
}

// Evaluate scores a finished spin: three of a kind is the jackpot, any pair a
// small prize.
func Evaluate(s [Reels]string) Prize {
	a, b, c := s[0], s[1], s[2]
	if a == b && b == c {
		return PrizeJackpot
	}
	if a == b || b == c || a == c {
		return PrizeSmall
	}
	return PrizeNone
}

func pick(rng *rand.Rand) string {
	return Symbols[rng.Intn(len(Symbols))]
}

// Roll draws each reel independently.
func Roll(rng *rand.Rand) Spin {
	var s [Reels]string
	for i := range s {
		s[i] = pick(rng)
	}
	return Spin{Symbols: s, Prize: Evaluate(s)}
}

// RollGuaranteed lands the same random symbol on every reel.
func RollGuaranteed(rng *rand.Rand) Spin {
	sym := pick(rng)
	s := [Reels]string{sym, sym, sym}
	return Spin{Symbols: s, Prize: Evaluate(s), Guaranteed: true}
}
