package gates

import (
	"github.com/xDarkicex/gatesim/core"
)

// SimpleOutput is the observable sink at the edge of a circuit: one
// input port, one never-connected output port whose level callers sample
// between ticks. Compound gates use one per external output port as the
// boundary adapter.
type SimpleOutput struct {
	sim   *core.Simulation
	id    core.UniqueID
	tag   string
	state core.Signal
	guard core.OscillationGuard
}

// NewSimpleOutput builds a sink reading LOW until driven.
func NewSimpleOutput(sim *core.Simulation, tag string) *SimpleOutput {
	return &SimpleOutput{
		sim:   sim,
		id:    sim.NewID(),
		tag:   tag,
		state: core.Low,
	}
}

func (o *SimpleOutput) ID() core.UniqueID  { return o.id }
func (o *SimpleOutput) Kind() Kind         { return KindSimpleOutput }
func (o *SimpleOutput) Tag() string        { return o.tag }
func (o *SimpleOutput) SetTag(tag string)  { o.tag = tag }
func (o *SimpleOutput) NumInputs() int     { return 1 }
func (o *SimpleOutput) NumOutputs() int    { return 1 }
func (o *SimpleOutput) IsInputSource() bool { return false }
func (o *SimpleOutput) Children() int      { return 0 }

// Signal returns the level last delivered to the sink.
func (o *SimpleOutput) Signal() core.Signal {
	return o.state
}

func (o *SimpleOutput) info() core.GateInfo {
	return core.GateInfo{Kind: string(KindSimpleOutput), ID: o.id, Tag: o.tag}
}

// UpdateInput stores the delivered level. Sinks keep the last level per
// se rather than a fan-in map; a bus feeding a sink goes through a
// ControlledBuffer like any other bus tap.
func (o *SimpleOutput) UpdateInput(in core.GateInput) InputResult {
	changes := o.guard.Observe(o.sim.Tick(), in.Sender)
	updated := o.state != in.Signal
	o.state = in.Signal
	return InputResult{Changes: changes, Updated: updated}
}

// Fetch exposes the stored level as a single unconnected output port.
func (o *SimpleOutput) Fetch() ([]OutputState, error) {
	return []OutputState{{Signal: o.state}}, nil
}

func (o *SimpleOutput) snapshot() []OutputState {
	return []OutputState{{Signal: o.state}}
}

// IndexOfTag resolves only the sink's own tag, to port 0.
func (o *SimpleOutput) IndexOfTag(tag string) (int, error) {
	if tag == o.tag {
		return 0, nil
	}
	return 0, &core.InvariantError{Op: "gates.IndexOfTag", Gate: o.info(), Message: "unknown tag " + tag}
}

// connectOutput panics: an output sink ends the circuit.
func (o *SimpleOutput) connectOutput(output int, target Gate, targetInput int) core.Signal {
	panic(&core.InvariantError{
		Op:      "gates.Connect",
		Gate:    o.info(),
		Message: "an output gate ends the circuit and cannot drive another input",
	})
}

func (o *SimpleOutput) registerDriver(driver core.UniqueID, input int, sig core.Signal) {
	o.state = sig
}

// RemoveInputDriver resets the sink to LOW when its driver disconnects.
func (o *SimpleOutput) RemoveInputDriver(input int, driver core.UniqueID) {
	o.state = core.Low
}
