package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func drawDice(t *rapid.T) [3]int {
	return [3]int{
		rapid.IntRange(1, 6).Draw(t, "d1"),
		rapid.IntRange(1, 6).Draw(t, "d2"),
		rapid.IntRange(1, 6).Draw(t, "d3"),
	}
}

func drawChip(t *rapid.T, label string) Chip {
	return rapid.SampledFrom(Chips).Draw(t, label)
}

func TestProperty_ClassificationIsTotal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		dice := drawDice(t)
		total := SumDice(dice)

		if total < 3 || total > 18 {
			t.Fatalf("sum %d out of [3,18]", total)
		}
		side := Classify(total)
		if total >= 11 && side != SideBig {
			t.Fatalf("total %d classified %s", total, side)
		}
		if total <= 10 && side != SideSmall {
			t.Fatalf("total %d classified %s", total, side)
		}
	})
}

func TestProperty_PlacementDebitsExactly(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewRound(DefaultRules())
		s.Balance = rapid.IntRange(0, 300).Draw(t, "balance")
		chip := drawChip(t, "chip")
		side := rapid.SampledFrom([]Side{SideBig, SideSmall}).Draw(t, "side")

		_, s, err := Apply(s, Command{Type: CmdSelectChip, Chip: chip})
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		before := s
		_, after, err := Apply(s, Command{Type: CmdPlaceBet, Side: side})

		if before.Balance < chip.Value() {
			if err != ErrInsufficientBalance {
				t.Fatalf("want ErrInsufficientBalance, got %v", err)
			}
			return
		}
		if err != nil {
			t.Fatalf("place: %v", err)
		}
		if after.Balance != before.Balance-chip.Value() {
			t.Fatalf("balance %d -> %d for chip %d", before.Balance, after.Balance, chip)
		}
		if after.Balance < 0 {
			t.Fatalf("negative balance %d", after.Balance)
		}
		gotTotal := after.BigTotal + after.SmallTotal - before.BigTotal - before.SmallTotal
		if gotTotal != chip.Value() {
			t.Fatalf("side total grew by %d, want %d", gotTotal, chip.Value())
		}
	})
}

func TestProperty_SidesNeverBothStaked(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewRound(DefaultRules())
		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			var cmd Command
			switch rapid.IntRange(0, 2).Draw(t, "kind") {
			case 0:
				cmd = Command{Type: CmdSelectChip, Chip: drawChip(t, "chip")}
			case 1:
				cmd = Command{Type: CmdPlaceBet, Side: rapid.SampledFrom([]Side{SideBig, SideSmall}).Draw(t, "side")}
			default:
				cmd = Command{Type: CmdPlacementDone}
			}
			_, s, _ = Apply(s, cmd)

			if s.BigTotal > 0 && s.SmallTotal > 0 {
				t.Fatalf("both sides staked: big=%d small=%d", s.BigTotal, s.SmallTotal)
			}
			if s.Balance < 0 {
				t.Fatalf("negative balance %d", s.Balance)
			}
		}
	})
}

func TestProperty_SettlementPaysDoubleOrNothing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewRound(DefaultRules())
		side := rapid.SampledFrom([]Side{SideBig, SideSmall}).Draw(t, "side")
		stake := 0
		bets := rapid.IntRange(1, 5).Draw(t, "bets")
		for i := 0; i < bets; i++ {
			chip := drawChip(t, "chip")
			_, s, _ = Apply(s, Command{Type: CmdSelectChip, Chip: chip})
			_, s, _ = Apply(s, Command{Type: CmdPlaceBet, Side: side})
			_, s, _ = Apply(s, Command{Type: CmdPlacementDone})
			stake += chip.Value()
		}
		for s.Phase == PhaseBetting {
			_, s, _ = Apply(s, Command{Type: CmdTick})
		}

		before := s.Balance
		dice := drawDice(t)
		_, s, err := Apply(s, Command{Type: CmdRoll, Dice: dice})
		if err != nil {
			t.Fatalf("roll: %v", err)
		}

		if Classify(SumDice(dice)) == side {
			if s.Balance != before+2*stake {
				t.Fatalf("win: balance %d, want %d", s.Balance, before+2*stake)
			}
		} else if s.Balance != before {
			t.Fatalf("lose: balance moved %d -> %d", before, s.Balance)
		}
	})
}

func TestRollDice_SeededIsDeterministic(t *testing.T) {
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		da, db := RollDice(a), RollDice(b)
		require.Equal(t, da, db)
		for _, d := range da {
			require.GreaterOrEqual(t, d, 1)
			require.LessOrEqual(t, d, 6)
		}
	}
}

func TestRandomPosition_StaysInsideBox(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	box := Box{Width: 200, Height: 150}
	var taken []Bet
	for i := 0; i < 30; i++ {
		p := RandomPosition(rng, box, taken)
		assert.GreaterOrEqual(t, p.X, BoxBorder+BoxPadding)
		assert.LessOrEqual(t, p.X, box.Width-BoxBorder-ChipSize-BoxPadding)
		assert.GreaterOrEqual(t, p.Y, BoxBorder+BoxPadding)
		assert.LessOrEqual(t, p.Y, box.Height-BoxBorder-ChipSize-BoxPadding)
		taken = append(taken, Bet{Position: p, Chip: Chip5})
	}
}

func TestRandomPosition_AvoidsOverlapWhenThereIsRoom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	box := Box{Width: 400, Height: 400}
	first := RandomPosition(rng, box, nil)
	second := RandomPosition(rng, box, []Bet{{Position: first}})

	assert.False(t, overlaps(second, []Bet{{Position: first}}), "second chip covers the first: %+v %+v", first, second)
}

func TestRandomPosition_TinyBox(t *testing.T) {
	p := RandomPosition(rand.New(rand.NewSource(1)), Box{Width: 10, Height: 10}, nil)
	assert.Equal(t, Position{X: BoxBorder + BoxPadding, Y: BoxBorder + BoxPadding}, p)
}
