package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	HttpRequests  *prometheus.CounterVec
	BetsPlaced    *prometheus.CounterVec
	Staked        *prometheus.CounterVec
	RoundsSettled *prometheus.CounterVec
	PaidOut       prometheus.Counter
	OpenTables    prometheus.Gauge
	RPSThrows     *prometheus.CounterVec
	BingoSpins    *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		HttpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		BetsPlaced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sicbo_bets_placed_total",
				Help: "Accepted Sic-Bo bets",
			},
			[]string{"side"},
		),
		Staked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sicbo_staked_chips_total",
				Help: "Chip value staked on Sic-Bo",
			},
			[]string{"side"},
		),
		RoundsSettled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sicbo_rounds_settled_total",
				Help: "Sic-Bo rounds settled by outcome",
			},
			[]string{"outcome"},
		),
		PaidOut: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sicbo_paid_out_chips_total",
				Help: "Chip value credited back to winners",
			},
		),
		OpenTables: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sicbo_open_tables",
				Help: "Sic-Bo tables currently running",
			},
		),
		RPSThrows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rps_throws_total",
				Help: "Rock-paper-scissors throws by result",
			},
			[]string{"result"},
		),
		BingoSpins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bingo_spins_total",
				Help: "Bingo reel spins by prize",
			},
			[]string{"prize"},
		),
	}
}

func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.HttpRequests,
		m.BetsPlaced,
		m.Staked,
		m.RoundsSettled,
		m.PaidOut,
		m.OpenTables,
		m.RPSThrows,
		m.BingoSpins,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// The helpers below are nil-safe so components can run without metrics.

func (m *Metrics) BetPlaced(side string, amount int) {
	if m == nil {
		return
	}
	m.BetsPlaced.WithLabelValues(side).Inc()
	m.Staked.WithLabelValues(side).Add(float64(amount))
}

func (m *Metrics) RoundSettled(outcome string, payout int) {
	if m == nil {
		return
	}
	m.RoundsSettled.WithLabelValues(outcome).Inc()
	m.PaidOut.Add(float64(payout))
}

func (m *Metrics) TableOpened() {
	if m == nil {
		return
	}
	m.OpenTables.Inc()
}

func (m *Metrics) TableClosed() {
	if m == nil {
		return
	}
	m.OpenTables.Dec()
}

func (m *Metrics) RPSThrow(result string) {
	if m == nil {
		return
	}
	m.RPSThrows.WithLabelValues(result).Inc()
}

func (m *Metrics) BingoSpin(prize string) {
	if m == nil {
		return
	}
	m.BingoSpins.WithLabelValues(prize).Inc()
}
