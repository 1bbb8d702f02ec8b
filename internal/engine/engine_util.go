package engine

const (
	DefaultCountdownSec   = 10
	DefaultStartBalance   = 1000
	DefaultPayoutMultiple = 2
)

func DefaultRules() Rules {
	return Rules{
		CountdownSec:   DefaultCountdownSec,
		StartBalance:   DefaultStartBalance,
		PayoutMultiple: DefaultPayoutMultiple,
	}
}

func NewRound(rules Rules) State {
	if rules.CountdownSec <= 0 {
		rules.CountdownSec = DefaultCountdownSec
	}
	if rules.PayoutMultiple <= 0 {
		rules.PayoutMultiple = DefaultPayoutMultiple
	}
	return State{
		Round:     1,
		Phase:     PhaseBetting,
		Countdown: rules.CountdownSec,
		Balance:   rules.StartBalance,
		BigBets:   []Bet{},
		SmallBets: []Bet{},
		Rules:     rules,
	}
}

// resetRound returns the initial round shape, keeping balance and rules.
func resetRound(s State) State {
	next := NewRound(s.Rules)
	next.Balance = s.Balance
	next.Round = s.Round + 1
	return next
}

func (r Rules) payoutMultiple() int {
	if r.PayoutMultiple <= 0 {
		return DefaultPayoutMultiple
	}
	return r.PayoutMultiple
}

// Classify splits [3,18] at the midpoint: 11 and up is big, 10 and down small.
func Classify(total int) Side {
	if total >= BigThreshold {
		return SideBig
	}
	return SideSmall
}

func SumDice(dice [3]int) int {
	return dice[0] + dice[1] + dice[2]
}

// StakedSide reports which side holds the stake, if any.
func StakedSide(s State) (Side, int) {
	return stakedSide(s)
}

func ContainsEvent(events []Event, eventType EventType) bool {
	for _, event := range events {
		if event.Type == eventType {
			return true
		}
	}
	return false
}
