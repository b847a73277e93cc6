package gates

import (
	"fmt"

	"github.com/xDarkicex/gatesim/core"
)

// Clock is an input source with no real inputs and numOut broadcast
// outputs. Every Fetch toggles the output, so seeding the worklist with
// the clock each tick produces the alternating level a driven circuit
// expects.
type Clock struct {
	Basic
	prev core.Signal
}

// NewClock builds a clock whose first fetched level is HIGH.
func NewClock(sim *core.Simulation, numOut int, tag string) *Clock {
	low := core.Low
	c := &Clock{
		// The single input port is never driven; it keeps the shell's
		// invariant that every gate has at least one fan-in map.
		Basic: newBasic(sim, KindClock, 1, numOut, nil, &low),
		prev:  core.Low,
	}
	c.isSource = true
	c.SetTag(tag)
	return c
}

// UpdateInput is a no-op: the clock originates signals. It reports one
// change so the engine schedules downstream establishment on the first
// tick.
func (c *Clock) UpdateInput(in core.GateInput) InputResult {
	return InputResult{Changes: 1, Updated: false}
}

// Fetch toggles the clock and broadcasts the new level.
func (c *Clock) Fetch() ([]OutputState, error) {
	c.prev = c.prev.Invert()
	c.broadcast(c.prev)
	return c.snapshot(), nil
}

// SetState forces the clock's level without a toggle, used when an
// external driver (a load script) owns the clock line.
func (c *Clock) SetState(sig core.Signal) {
	c.prev = sig
	c.broadcast(sig)
}

func (c *Clock) connectOutput(output int, target Gate, targetInput int) core.Signal {
	// Wiring propagates the level the next fetch will produce, without
	// consuming the toggle.
	sig := c.prev.Invert()
	c.setTarget(output, target, targetInput, sig)
	return sig
}

// Disconnect undoes the connection on one output port, removing this
// clock from the downstream fan-in map. Only valid between ticks.
func (c *Clock) Disconnect(output int) {
	disconnectOutput(&c.Basic, output)
}

// AutomaticInput is the scripted input source: an ordered queue of
// levels, one consumed per fetch. Exhaustion surfaces
// core.ErrInputExhausted, which the clock loop treats as the end of the
// script.
type AutomaticInput struct {
	Basic
	queue []core.Signal
}

// NewAutomaticInput builds a scripted source that will emit values in
// order on numOut broadcast outputs.
func NewAutomaticInput(sim *core.Simulation, values []core.Signal, numOut int, tag string) *AutomaticInput {
	high := core.High
	a := &AutomaticInput{
		Basic: newBasic(sim, KindAutomaticInput, 1, numOut, nil, &high),
		queue: append([]core.Signal(nil), values...),
	}
	a.isSource = true
	a.SetTag(tag)
	return a
}

// UpdateInput appends the delivered level to the back of the queue. This
// lets one scripted source be chained behind another during load
// sequences; it never counts toward oscillation.
func (a *AutomaticInput) UpdateInput(in core.GateInput) InputResult {
	a.queue = append(a.queue, in.Signal)
	return InputResult{Changes: 1, Updated: true}
}

// Fetch emits the next scripted level, or reports exhaustion.
func (a *AutomaticInput) Fetch() ([]OutputState, error) {
	if len(a.queue) == 0 {
		return nil, fmt.Errorf("%s: %w", a.info(), core.ErrInputExhausted)
	}
	a.broadcast(a.queue[0])
	a.queue = a.queue[1:]
	return a.snapshot(), nil
}

// Remaining reports how many scripted values are left.
func (a *AutomaticInput) Remaining() int {
	return len(a.queue)
}

func (a *AutomaticInput) connectOutput(output int, target Gate, targetInput int) core.Signal {
	// Propagate the level the next fetch will emit, without consuming it.
	sig := a.outputs[output].Signal
	if len(a.queue) > 0 {
		sig = a.queue[0]
	}
	a.setTarget(output, target, targetInput, sig)
	return sig
}

// Disconnect undoes the connection on one output port so load-time
// scaffolding can be removed before the main run. Only valid between
// ticks.
func (a *AutomaticInput) Disconnect(output int) {
	disconnectOutput(&a.Basic, output)
}

// SimpleInput is the pass-through input source: one input port mirrored
// to numOut broadcast outputs. Compound gates use one per external input
// port as the boundary adapter; standalone, it lets a caller poke levels
// into a circuit.
type SimpleInput struct {
	Basic
}

// NewSimpleInput builds a pass-through input.
func NewSimpleInput(sim *core.Simulation, numOut int, tag string) *SimpleInput {
	low := core.Low
	s := &SimpleInput{
		Basic: newBasic(sim, KindSimpleInput, 1, numOut, func(in []core.Signal) core.Signal { return in[0] }, &low),
	}
	s.isSource = true
	s.SetTag(tag)
	return s
}

// disconnectOutput reverts one output port to NotConnected and removes
// the gate from the downstream fan-in map.
func disconnectOutput(b *Basic, output int) {
	out := b.outputs[output]
	if !out.Connected() {
		b.violate("gates.Disconnect", fmt.Sprintf("output %d is not connected", output))
		return
	}
	out.Target.RemoveInputDriver(out.TargetInput, b.id)
	b.outputs[output] = OutputState{Signal: out.Signal}
}
