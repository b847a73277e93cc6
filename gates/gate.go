// Package gates implements the simulation network: the Gate contract,
// the primitive gates the engine understands directly, the wiring model,
// the compound-gate mechanism, and the event-driven propagation engine
// that drives a network to a quiescent fixed point each clock tick.
package gates

import (
	"fmt"

	"github.com/xDarkicex/gatesim/core"
)

// Kind is a gate's type tag, used for dispatch-free diagnostics. Packages
// building compound gates declare their own kinds.
type Kind string

const (
	KindNot              Kind = "NOT"
	KindAnd              Kind = "AND"
	KindOr               Kind = "OR"
	KindNand             Kind = "NAND"
	KindNor              Kind = "NOR"
	KindXor              Kind = "XOR"
	KindSplitter         Kind = "SPLITTER"
	KindControlledBuffer Kind = "CONTROLLED_BUFFER"
	KindClock            Kind = "CLOCK"
	KindAutomaticInput   Kind = "AUTOMATIC_INPUT"
	KindSimpleInput      Kind = "SIMPLE_INPUT"
	KindSimpleOutput     Kind = "SIMPLE_OUTPUT"
)

// OutputState describes one output port. A port drives at most one
// downstream input; fan-out is expressed with a Splitter. Target is nil
// for an unconnected port, whose Signal is still observable.
type OutputState struct {
	Signal      core.Signal
	Target      Gate
	TargetInput int
}

// Connected reports whether the port drives a downstream input.
func (o OutputState) Connected() bool {
	return o.Target != nil
}

// InputResult is returned by UpdateInput: how many input changes the gate
// has seen this tick (the oscillation count) and whether this delivery
// actually changed the stored value.
type InputResult struct {
	Changes int
	Updated bool
}

// Gate is the contract every node in the network satisfies, primitive or
// compound. Implementations outside this package are built by embedding
// *Compound; the unexported methods keep the wiring protocol internal.
type Gate interface {
	// ID returns the gate's unique id within its Simulation.
	ID() core.UniqueID

	// Kind returns the gate's type tag.
	Kind() Kind

	// Tag returns the gate's human-readable tag, empty if unset.
	Tag() string

	// SetTag sets the diagnostic tag.
	SetTag(tag string)

	// NumInputs and NumOutputs report the fixed port counts.
	NumInputs() int
	NumOutputs() int

	// UpdateInput records one signal delivery on an input port.
	UpdateInput(in core.GateInput) InputResult

	// Fetch recomputes the gate's outputs from its current inputs and
	// returns a snapshot of every output port. It fails with
	// core.ContentionError when an input is momentarily multi-driven,
	// and with core.ErrInputExhausted when a scripted source runs dry.
	Fetch() ([]OutputState, error)

	// IndexOfTag resolves a named port to its index. Intended for
	// construction and diagnostics only; wired circuits run on indices.
	IndexOfTag(tag string) (int, error)

	// IsInputSource reports whether the gate originates signals (clock,
	// scripted input, pass-through input) and therefore seeds the
	// propagation worklist.
	IsInputSource() bool

	// Children reports how many gates the interior of a compound gate
	// holds; zero for primitives.
	Children() int

	// RemoveInputDriver removes one driver's contribution from an input
	// port, restoring the zero-id placeholder when the port is left with
	// no drivers. Used by disconnect; must not run during a tick.
	RemoveInputDriver(input int, driver core.UniqueID)

	// connectOutput points an output port at a downstream input and
	// returns the level currently on the port, which Connect then
	// delivers so that wiring is never silent.
	connectOutput(output int, target Gate, targetInput int) core.Signal

	// registerDriver introduces a new driver id on an input port,
	// evicting the zero-id placeholder.
	registerDriver(driver core.UniqueID, input int, sig core.Signal)

	// snapshot returns the output ports without recomputing them.
	snapshot() []OutputState
}

// Info captures a gate's identity for error values and log events.
func Info(g Gate) core.GateInfo {
	return core.GateInfo{Kind: string(g.Kind()), ID: g.ID(), Tag: g.Tag()}
}

// Connect wires src's output port to dst's input port and immediately
// delivers the port's current level to dst, so a freshly built circuit
// sees established signals rather than defaults.
//
// An output port is connected at most once. Reconnecting is a programming
// error: strict simulations panic with an InvariantError, non-strict ones
// log a warning and leave the existing connection in place.
func Connect(src Gate, output int, dst Gate, input int) {
	sig := src.connectOutput(output, dst, input)
	if out := src.snapshot()[output]; out.Target != dst || out.TargetInput != input {
		// The connection was refused; dst gains no driver.
		return
	}
	dst.registerDriver(src.ID(), input, sig)
}

// MustIndex resolves a named port on g and panics when the tag is
// unknown. Construction-time wiring uses it so that misspelled port
// names fail loudly while building, never while running.
func MustIndex(g Gate, tag string) int {
	i, err := g.IndexOfTag(tag)
	if err != nil {
		panic(&core.InvariantError{
			Op:      "gates.MustIndex",
			Gate:    Info(g),
			Message: fmt.Sprintf("no port tagged %q", tag),
		})
	}
	return i
}
