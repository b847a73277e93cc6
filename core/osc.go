package core

// OscillationGuard counts how many times a gate's inputs change within
// the current clock tick. Every gate embeds one; the engine compares the
// running count against Simulation.MaxInputChanges and aborts the run
// when the bound is reached.
//
// Updates whose driver is ZeroID are exempt: they are levels poked into
// a gate directly, with no driving gate behind them. Wiring stores levels
// without going through UpdateInput. Propagation during priming is sent
// under the real driver ids and is counted like any other delivery, in
// the tick-0 window.
type OscillationGuard struct {
	tick    uint64
	changes int
}

// Observe records one input delivery during the given tick and returns
// the number of changes seen this tick, including this one.
func (g *OscillationGuard) Observe(tick uint64, driver UniqueID) int {
	if driver.IsZero() {
		return g.changes
	}
	if g.tick == tick {
		g.changes++
	} else {
		g.tick = tick
		g.changes = 1
	}
	return g.changes
}
