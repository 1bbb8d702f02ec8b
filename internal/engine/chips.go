package engine

type Chip int

const (
	Chip5   Chip = 5
	Chip10  Chip = 10
	Chip25  Chip = 25
	Chip100 Chip = 100
)

// Chips in the order they are laid out on the table.
var Chips = []Chip{Chip5, Chip10, Chip25, Chip100}

func (c Chip) Value() int { return int(c) }

func (c Chip) Valid() bool {
	switch c {
	case Chip5, Chip10, Chip25, Chip100:
		return true
	}
	return false
}
