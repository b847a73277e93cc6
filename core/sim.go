package core

import "github.com/rs/zerolog"

// DefaultMaxInputChanges bounds how many times a single gate input may
// change within one clock tick before the run is declared oscillating.
const DefaultMaxInputChanges = 5000

// Simulation is the explicit context threaded through a gate network: it
// allocates gate ids, owns the global clock-tick counter, and carries the
// configuration every gate and the engine consult. One Simulation per
// network; gates from different Simulations must not be wired together.
//
// A Simulation is not safe for concurrent use. The engine is
// single-threaded and cooperative; observers should sample outputs
// between ticks.
type Simulation struct {
	nextID uint64
	tick   uint64
	stop   bool

	// MaxInputChanges is the per-gate per-tick oscillation bound.
	MaxInputChanges int

	// Strict upgrades construction-API misuse (reconnecting a connected
	// output, bad disconnects) from logged warnings to panics carrying an
	// InvariantError. Unknown tags are reported the same way in both
	// modes.
	Strict bool

	// Log receives structured trace events from wiring, the propagation
	// engine and the clock loop. Defaults to a no-op logger.
	Log zerolog.Logger
}

// NewSimulation returns a context with the default oscillation bound and
// a discarding logger.
func NewSimulation() *Simulation {
	return &Simulation{
		MaxInputChanges: DefaultMaxInputChanges,
		Log:             zerolog.Nop(),
	}
}

// NewID allocates the next gate id. Id 0 is reserved (ZeroID) and never
// returned.
func (s *Simulation) NewID() UniqueID {
	s.nextID++
	return UniqueID(s.nextID)
}

// Tick returns the current clock-tick number. Tick 0 is the priming
// phase, before the first real clock event.
func (s *Simulation) Tick() uint64 {
	return s.tick
}

// AdvanceTick moves the simulation to the next clock tick. The clock
// loop calls it exactly once per tick, between quiescent states; nothing
// else writes the counter.
func (s *Simulation) AdvanceTick() {
	s.tick++
}

// RequestStop asks the clock loop to stop after the current tick
// completes. Cancellation is cooperative; a tick in progress always runs
// to quiescence.
func (s *Simulation) RequestStop() {
	s.stop = true
}

// Stopped reports whether RequestStop has been called.
func (s *Simulation) Stopped() bool {
	return s.stop
}
