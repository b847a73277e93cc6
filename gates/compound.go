package gates

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/xDarkicex/gatesim/core"
)

// TagRef locates a named port on a compound gate.
type TagRef struct {
	Index  int
	Output bool
}

// Compound owns an interior subnetwork behind the primitive contract:
// one SimpleInput adapter per external input port, one SimpleOutput
// adapter per external output port, and arbitrary child gates between
// them. External updates are forwarded to the input adapters; fetching
// re-runs the interior to quiescence and samples the output adapters.
//
// Adapters are ordinary gates on the ordinary worklist, so propagation
// across compound boundaries needs no special casing, and compounds nest
// arbitrarily. Builders embed *Compound and wire the interior in their
// constructors, finishing with Prime.
type Compound struct {
	Basic
	ins  []*SimpleInput
	outs []*SimpleOutput
	tags map[string]TagRef
}

// NewCompound builds the external shell around the given boundary
// adapters. Every adapter must carry a unique tag; the tag table is
// frozen here and serves all later IndexOfTag lookups.
func NewCompound(sim *core.Simulation, kind Kind, ins []*SimpleInput, outs []*SimpleOutput) *Compound {
	if len(ins) == 0 || len(outs) == 0 {
		panic(fmt.Sprintf("gates: %s compound needs at least one input and one output adapter", kind))
	}

	tags := make(map[string]TagRef, len(ins)+len(outs))
	for i, in := range ins {
		tags[in.Tag()] = TagRef{Index: i}
	}
	for i, out := range outs {
		tags[out.Tag()] = TagRef{Index: i, Output: true}
	}
	if len(tags) != len(ins)+len(outs) {
		panic(fmt.Sprintf("gates: %s compound has duplicate adapter tags", kind))
	}

	low := core.Low
	return &Compound{
		Basic: newBasic(sim, kind, len(ins), len(outs), nil, &low),
		ins:   ins,
		outs:  outs,
		tags:  tags,
	}
}

// InputAdapter returns the boundary adapter behind external input i, for
// interior wiring by builders.
func (c *Compound) InputAdapter(i int) *SimpleInput {
	return c.ins[i]
}

// OutputAdapter returns the boundary adapter behind external output i.
func (c *Compound) OutputAdapter(i int) *SimpleOutput {
	return c.outs[i]
}

// IndexOfTag resolves a named external port against the frozen table.
func (c *Compound) IndexOfTag(tag string) (int, error) {
	ref, ok := c.tags[tag]
	if !ok {
		return 0, &core.InvariantError{Op: "gates.IndexOfTag", Gate: c.info(), Message: fmt.Sprintf("unknown tag %q", tag)}
	}
	return ref.Index, nil
}

// UpdateInput mirrors the delivery into the shell's records, then
// forwards it to the matching input adapter, whose result the engine
// sees.
func (c *Compound) UpdateInput(in core.GateInput) InputResult {
	c.Basic.UpdateInput(in)
	return c.ins[in.Index].UpdateInput(core.GateInput{
		Index:  0,
		Signal: in.Signal,
		Sender: in.Sender,
	})
}

func (c *Compound) registerDriver(driver core.UniqueID, input int, sig core.Signal) {
	c.ins[input].registerDriver(driver, 0, sig)
	c.Basic.registerDriver(driver, input, sig)
}

// RemoveInputDriver forwards the disconnect to the adapter and the
// shell's own records.
func (c *Compound) RemoveInputDriver(input int, driver core.UniqueID) {
	c.ins[input].RemoveInputDriver(0, driver)
	c.Basic.RemoveInputDriver(input, driver)
}

// Fetch re-runs the interior subnetwork to quiescence, then samples
// every output adapter into the external output ports.
func (c *Compound) Fetch() ([]OutputState, error) {
	if err := c.recalculate(false); err != nil {
		return nil, err
	}
	c.sampleAdapters()
	return c.Basic.snapshot(), nil
}

func (c *Compound) snapshot() []OutputState {
	c.sampleAdapters()
	return c.Basic.snapshot()
}

// recalculate drives the interior to a fixed point, seeded by the input
// adapters.
func (c *Compound) recalculate(establish bool) error {
	seeds := make([]Gate, len(c.ins))
	for i, in := range c.ins {
		seeds[i] = in
	}
	if _, err := Run(c.sim, seeds, c.outs, establish, nil); err != nil {
		return errors.Wrapf(err, "interior of %s", c.info())
	}
	return nil
}

// sampleAdapters copies each output adapter's level into the matching
// external output port, preserving connections.
func (c *Compound) sampleAdapters() {
	for i, out := range c.outs {
		c.outputs[i].Signal = out.Signal()
	}
}

// connectOutput hands out the stored level without re-running the
// interior; connection-time levels were established by Prime.
func (c *Compound) connectOutput(output int, target Gate, targetInput int) core.Signal {
	c.sampleAdapters()
	sig := c.outputs[output].Signal
	c.setTarget(output, target, targetInput, sig)
	return sig
}

// Prime runs one interior establishment pass so the compound's external
// outputs are defined before it is wired into a larger circuit, and
// freezes the child-gate count. Builders call it last; priming twice
// leaves the gate in the same state as priming once.
func (c *Compound) Prime() {
	if err := c.recalculate(true); err != nil {
		panic(errors.Wrapf(err, "priming %s", c.info()))
	}
	seeds := make([]Gate, len(c.ins))
	for i, in := range c.ins {
		seeds[i] = in
	}
	c.children = CountGates(seeds)
	c.sampleAdapters()
}
