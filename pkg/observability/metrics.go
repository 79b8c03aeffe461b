package observability

import (
	"errors"

	"github.com/aretw0/goban/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts moves, rejections and phase changes across every game whose
// hooks it supplies. Safe for concurrent use.
type Metrics struct {
	Moves        *prometheus.CounterVec
	IllegalMoves *prometheus.CounterVec
	Phases       *prometheus.CounterVec
	Captures     prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Moves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goban_moves_total",
				Help: "Accepted moves by kind",
			},
			[]string{"kind"},
		),
		IllegalMoves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goban_illegal_moves_total",
				Help: "Rejected moves by reason",
			},
			[]string{"reason"},
		),
		Phases: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goban_phase_transitions_total",
				Help: "Game phase transitions by target phase",
			},
			[]string{"to"},
		),
		Captures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "goban_captured_stones_total",
				Help: "Stones removed from the board by captures",
			},
		),
	}
	reg.MustRegister(m.Moves, m.IllegalMoves, m.Phases, m.Captures)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnMove: func(e *domain.MoveEvent) {
			m.Moves.WithLabelValues(e.Move.Kind.String()).Inc()
			m.Captures.Add(float64(e.Captured))
		},
		OnIllegalMove: func(e *domain.IllegalMoveEvent) {
			m.IllegalMoves.WithLabelValues(Reason(e.Err)).Inc()
		},
		OnPhase: func(e *domain.PhaseEvent) {
			m.Phases.WithLabelValues(string(e.To)).Inc()
		},
	}
}

// Reason maps a move error to a short label.
func Reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, domain.ErrOccupied):
		return "occupied"
	case errors.Is(err, domain.ErrSuicide):
		return "suicide"
	case errors.Is(err, domain.ErrKoViolation):
		return "ko"
	case errors.Is(err, domain.ErrGameOver):
		return "game_over"
	default:
		return "other"
	}
}
