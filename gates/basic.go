package gates

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xDarkicex/gatesim/core"
)

// computeFunc is a primitive's combinational rule: reduced input vector
// in, one broadcast output level out.
type computeFunc func(inputs []core.Signal) core.Signal

// Basic is the shell shared by every primitive gate: per-input fan-in
// maps, output port states, the oscillation guard and identity. A
// primitive broadcasts one computed level to all of its output ports;
// per-port behavior (Splitter, ControlledBuffer) overrides Fetch.
type Basic struct {
	sim     *core.Simulation
	id      core.UniqueID
	kind    Kind
	tag     string
	inputs  []core.FanIn
	outputs []OutputState
	guard   core.OscillationGuard
	compute computeFunc

	children int
	isSource bool
}

// newBasic builds a shell with numIn input ports, each primed with the
// zero-id placeholder, and numOut output ports. When initial is nil the
// starting output level is computed from the placeholder inputs, so a
// fresh NOT gate already shows HIGH.
func newBasic(sim *core.Simulation, kind Kind, numIn, numOut int, compute computeFunc, initial *core.Signal) Basic {
	if numIn <= 0 {
		panic(fmt.Sprintf("gates: %s gate needs at least one input", kind))
	}
	if numOut <= 0 {
		panic(fmt.Sprintf("gates: %s gate needs at least one output", kind))
	}

	inputs := make([]core.FanIn, numIn)
	for i := range inputs {
		inputs[i] = core.FanIn{core.ZeroID: core.Low}
	}

	var start core.Signal
	if initial != nil {
		start = *initial
	} else {
		sigs, _, _ := core.ResolveAll(inputs)
		start = compute(sigs)
	}

	outputs := make([]OutputState, numOut)
	for i := range outputs {
		outputs[i] = OutputState{Signal: start}
	}

	return Basic{
		sim:     sim,
		id:      sim.NewID(),
		kind:    kind,
		inputs:  inputs,
		outputs: outputs,
		compute: compute,
	}
}

func (b *Basic) ID() core.UniqueID { return b.id }
func (b *Basic) Kind() Kind        { return b.kind }
func (b *Basic) Tag() string       { return b.tag }
func (b *Basic) SetTag(tag string) { b.tag = tag }
func (b *Basic) NumInputs() int    { return len(b.inputs) }
func (b *Basic) NumOutputs() int   { return len(b.outputs) }
func (b *Basic) Children() int     { return b.children }
func (b *Basic) IsInputSource() bool {
	return b.isSource
}

func (b *Basic) info() core.GateInfo {
	return core.GateInfo{Kind: string(b.kind), ID: b.id, Tag: b.tag}
}

// UpdateInput stores one driver's contribution on an input port. The
// oscillation guard observes every delivery from a real driver whether or
// not the value changed; the engine compares the returned count against
// the simulation's bound.
func (b *Basic) UpdateInput(in core.GateInput) InputResult {
	changes := b.guard.Observe(b.sim.Tick(), in.Sender)

	updated := false
	if b.inputs[in.Index][in.Sender] != in.Signal {
		b.inputs[in.Index][in.Sender] = in.Signal
		updated = true
	}

	return InputResult{Changes: changes, Updated: updated}
}

// resolve reduces every fan-in map, surfacing contention as the
// distinguished multi-driver error the engine recovers by deferral.
func (b *Basic) resolve() ([]core.Signal, error) {
	sigs, contended, ok := core.ResolveAll(b.inputs)
	if !ok {
		return nil, &core.ContentionError{Gate: b.info(), Input: contended}
	}
	return sigs, nil
}

// Fetch reduces the inputs, runs the combinational rule, and broadcasts
// the result to every output port.
func (b *Basic) Fetch() ([]OutputState, error) {
	sigs, err := b.resolve()
	if err != nil {
		return nil, err
	}
	b.broadcast(b.compute(sigs))
	return b.snapshot(), nil
}

func (b *Basic) broadcast(sig core.Signal) {
	for i := range b.outputs {
		b.outputs[i].Signal = sig
	}
}

func (b *Basic) snapshot() []OutputState {
	out := make([]OutputState, len(b.outputs))
	copy(out, b.outputs)
	return out
}

// connectOutput recomputes the port's current level, points the port at
// the downstream input, and hands the level back so Connect can deliver
// it.
func (b *Basic) connectOutput(output int, target Gate, targetInput int) core.Signal {
	sig := b.outputs[output].Signal
	if sigs, err := b.resolve(); err == nil {
		sig = b.compute(sigs)
	}
	b.setTarget(output, target, targetInput, sig)
	return sig
}

// setTarget installs a connection on one output port, enforcing the
// connect-at-most-once invariant.
func (b *Basic) setTarget(output int, target Gate, targetInput int, sig core.Signal) {
	if b.outputs[output].Connected() {
		b.violate("gates.Connect", fmt.Sprintf("output %d is already connected", output))
		return
	}
	b.outputs[output] = OutputState{Signal: sig, Target: target, TargetInput: targetInput}

	b.sim.Log.Trace().
		Stringer("from", b.info()).
		Int("output", output).
		Stringer("to", Info(target)).
		Int("input", targetInput).
		Stringer("signal", sig).
		Msg("connected")
}

// registerDriver introduces a driver on an input port during wiring. The
// zero-id placeholder is evicted and the level is stored under the real
// driver's id; UpdateInput is not called, so wiring does not touch the
// oscillation guard.
func (b *Basic) registerDriver(driver core.UniqueID, input int, sig core.Signal) {
	delete(b.inputs[input], core.ZeroID)
	b.inputs[input][driver] = sig
}

// RemoveInputDriver takes one driver's contribution off an input port.
// A port left with no drivers gets the {ZeroID: Low} placeholder back so
// fan-in maps are never empty.
func (b *Basic) RemoveInputDriver(input int, driver core.UniqueID) {
	if _, ok := b.inputs[input][driver]; !ok {
		b.violate("gates.Disconnect", fmt.Sprintf("driver %d is not connected to input %d", driver, input))
		return
	}
	delete(b.inputs[input], driver)
	if len(b.inputs[input]) == 0 {
		b.inputs[input][core.ZeroID] = core.Low
	}
}

// IndexOfTag supports the positional port names i_N / o_N that every
// primitive answers to; compound gates override this with their frozen
// tag tables.
func (b *Basic) IndexOfTag(tag string) (int, error) {
	var limit int
	var rest string
	switch {
	case strings.HasPrefix(tag, "i_"):
		rest, limit = tag[2:], len(b.inputs)
	case strings.HasPrefix(tag, "o_"):
		rest, limit = tag[2:], len(b.outputs)
	default:
		return 0, &core.InvariantError{Op: "gates.IndexOfTag", Gate: b.info(), Message: fmt.Sprintf("unknown tag %q", tag)}
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 || n >= limit {
		return 0, &core.InvariantError{Op: "gates.IndexOfTag", Gate: b.info(), Message: fmt.Sprintf("tag %q is out of range", tag)}
	}
	return n, nil
}

// violate handles construction-API misuse per the simulation's mode:
// panic under Strict, logged warning otherwise.
func (b *Basic) violate(op, msg string) {
	err := &core.InvariantError{Op: op, Gate: b.info(), Message: msg}
	if b.sim.Strict {
		panic(err)
	}
	b.sim.Log.Warn().Err(err).Msg("invariant violation ignored")
}
