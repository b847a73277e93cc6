package gates

import (
	"github.com/pkg/errors"

	"github.com/xDarkicex/gatesim/core"
)

// EndTag is the sink tag the engine watches for program termination: a
// tick during which an unconnected output of a gate tagged EndTag carries
// HIGH is the terminal tick.
const EndTag = "END"

// TickInput records what one input source emitted during a tick, for
// reporting and assertions.
type TickInput struct {
	Tag     string
	Outputs []OutputState
}

// TickHandler observes a quiescent tick: the levels every input source
// emitted and the sinks ready to be sampled.
type TickHandler func(inputs []TickInput, sinks []*SimpleOutput)

// Run drives the network to a quiescent fixed point: a BFS-style
// worklist seeded with the input sources, drained level by level until
// no gate's input changes.
//
// Within a level, a gate reporting multi-driver contention is deferred
// to the next level; a level consisting entirely of deferred gates is a
// true multi-driver fault and fails with core.DeferredError. A gate
// whose input-change count reaches the simulation's bound fails the run
// with core.OscillationError. A scripted source running dry stops the
// clock gracefully.
//
// establish forces scheduling of gates whose inputs did not change, so
// that the initial levels of a fresh circuit propagate once; it is set
// on the first tick and during priming.
//
// Run returns false when the clock should stop: scripted input was
// exhausted or the END sink asserted HIGH.
func Run(sim *core.Simulation, seeds []Gate, sinks []*SimpleOutput, establish bool, onQuiescent TickHandler) (bool, error) {
	cont := true
	var tickInputs []TickInput

	frontier := append([]Gate(nil), seeds...)
	for level := 0; len(frontier) > 0; level++ {
		current := frontier
		frontier = nil
		scheduled := make(map[core.UniqueID]struct{})
		deferred := 0

		sim.Log.Trace().
			Uint64("tick", sim.Tick()).
			Int("level", level).
			Int("gates", len(current)).
			Msg("propagation level")

		for _, g := range current {
			outs, err := g.Fetch()
			if err != nil {
				if errors.Is(err, core.ErrInputExhausted) {
					sim.Log.Debug().Uint64("tick", sim.Tick()).Stringer("gate", Info(g)).
						Msg("scripted input exhausted, stopping clock")
					return false, nil
				}
				var contention *core.ContentionError
				if errors.As(err, &contention) {
					// Transient: other drivers of the contended input are
					// still queued this level. Retry next level. The gate
					// is deliberately not marked as scheduled, so a driver
					// resolving the contention later in this level re-adds
					// it and the all-deferred check below sees progress.
					deferred++
					frontier = append(frontier, g)
					continue
				}
				return false, errors.Wrapf(err, "fetch failed on clock tick %d", sim.Tick())
			}

			if g.IsInputSource() {
				tickInputs = append(tickInputs, TickInput{Tag: g.Tag(), Outputs: outs})
			}

			for _, out := range outs {
				if !out.Connected() {
					if g.Tag() == EndTag && out.Signal == core.High {
						sim.Log.Info().Uint64("tick", sim.Tick()).
							Msg("END asserted, terminal tick")
						cont = false
					}
					continue
				}

				res := out.Target.UpdateInput(core.GateInput{
					Index:  out.TargetInput,
					Signal: out.Signal,
					Sender: g.ID(),
				})
				if res.Changes >= sim.MaxInputChanges {
					return false, &core.OscillationError{
						Gate:    Info(out.Target),
						Tick:    sim.Tick(),
						Changes: res.Changes,
					}
				}

				// An unchanged input means an unchanged output downstream,
				// so the gate needs no revisit, except on establishment
				// passes where the first delivery must propagate anyway.
				if !res.Updated && !(establish && res.Changes == 1) {
					continue
				}
				id := out.Target.ID()
				if _, seen := scheduled[id]; seen {
					continue
				}
				scheduled[id] = struct{}{}
				frontier = append(frontier, out.Target)
			}
		}

		if deferred > 0 && deferred == len(frontier) {
			infos := make([]core.GateInfo, len(frontier))
			for i, g := range frontier {
				infos[i] = Info(g)
			}
			return false, &core.DeferredError{Tick: sim.Tick(), Gates: infos}
		}
	}

	if onQuiescent != nil {
		onQuiescent(tickInputs, sinks)
	}
	return cont, nil
}

// Prime runs one establishment propagation without advancing the tick
// counter, so a freshly wired circuit's output levels reflect its input
// levels before the first clock event. Priming twice is idempotent.
func Prime(sim *core.Simulation, seeds []Gate, sinks []*SimpleOutput) error {
	_, err := Run(sim, seeds, sinks, true, nil)
	return err
}

// StartClock is the top-level driver loop: advance the tick counter, run
// to quiescence, hand the quiescent state to onTick, and continue until
// scripted input is exhausted, the END sink asserts HIGH, or the caller
// requests a stop through the Simulation.
func StartClock(sim *core.Simulation, sources []Gate, sinks []*SimpleOutput, onTick TickHandler) error {
	if len(sources) == 0 || len(sinks) == 0 {
		return errors.New("gates: StartClock needs at least one input source and one output sink")
	}

	establish := true
	for {
		sim.AdvanceTick()

		cont, err := Run(sim, sources, sinks, establish, onTick)
		if err != nil {
			return err
		}
		if !cont || sim.Stopped() {
			return nil
		}
		establish = false
	}
}

// CountGates walks the network reachable from seeds and returns the
// number of distinct gates, without recomputing any outputs. Compound
// gates use it to report their child counts.
func CountGates(seeds []Gate) int {
	unique := make(map[core.UniqueID]struct{})
	frontier := append([]Gate(nil), seeds...)

	for len(frontier) > 0 {
		g := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		if _, seen := unique[g.ID()]; seen {
			continue
		}
		unique[g.ID()] = struct{}{}

		for _, out := range g.snapshot() {
			if out.Connected() {
				frontier = append(frontier, out.Target)
			}
		}
	}
	return len(unique)
}
