package gates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xDarkicex/gatesim/core"
)

// buildNandCompound wraps AND + NOT behind the compound mechanism: two
// external inputs "A"/"B", one external output "OUT".
func buildNandCompound(sim *core.Simulation) *Compound {
	a := NewSimpleInput(sim, 1, "A")
	b := NewSimpleInput(sim, 1, "B")
	out := NewSimpleOutput(sim, "OUT")

	c := NewCompound(sim, Kind("TEST_NAND"), []*SimpleInput{a, b}, []*SimpleOutput{out})

	and := NewAnd(sim, 2, 1)
	not := NewNot(sim, 1)
	Connect(a, 0, and, 0)
	Connect(b, 0, and, 1)
	Connect(and, 0, not, 0)
	Connect(not, 0, out, 0)

	c.Prime()
	return c
}

// =======================
// COMPOUND MECHANISM TESTS
// =======================

func TestCompoundComputesThroughInterior(t *testing.T) {
	sim := core.NewSimulation()
	c := buildNandCompound(sim)

	tests := []struct {
		a, b, want core.Signal
	}{
		{core.Low, core.Low, core.High},
		{core.High, core.Low, core.High},
		{core.Low, core.High, core.High},
		{core.High, core.High, core.Low},
	}

	for _, tt := range tests {
		poke(t, c, 0, tt.a)
		poke(t, c, 1, tt.b)
		assert.Equal(t, tt.want, fetchOne(t, c))
	}
}

func TestCompoundTagTable(t *testing.T) {
	sim := core.NewSimulation()
	c := buildNandCompound(sim)

	i, err := c.IndexOfTag("B")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	o, err := c.IndexOfTag("OUT")
	require.NoError(t, err)
	assert.Equal(t, 0, o)

	_, err = c.IndexOfTag("i_0")
	assert.Error(t, err, "compounds freeze their own tag table")
}

func TestCompoundChildCount(t *testing.T) {
	sim := core.NewSimulation()
	c := buildNandCompound(sim)

	// Two adapters in, one adapter out, AND, NOT.
	assert.Equal(t, 5, c.Children())
}

// TestPrimingIdempotence: priming twice leaves the gate exactly as
// priming once.
func TestPrimingIdempotence(t *testing.T) {
	sim := core.NewSimulation()
	c := buildNandCompound(sim)

	first, err := c.Fetch()
	require.NoError(t, err)

	c.Prime()
	second, err := c.Fetch()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestCompoundWiredIntoLargerCircuit drives a compound from a scripted
// source and reads it through a sink, crossing the boundary both ways.
func TestCompoundWiredIntoLargerCircuit(t *testing.T) {
	sim := core.NewSimulation()
	c := buildNandCompound(sim)

	a := NewAutomaticInput(sim, []core.Signal{core.High, core.High}, 1, "a")
	b := NewAutomaticInput(sim, []core.Signal{core.Low, core.High}, 1, "b")
	sink := NewSimpleOutput(sim, "probe")

	Connect(a, 0, c, 0)
	Connect(b, 0, c, 1)
	Connect(c, 0, sink, 0)

	var levels []core.Signal
	err := StartClock(sim, []Gate{a, b}, []*SimpleOutput{sink}, func(_ []TickInput, sinks []*SimpleOutput) {
		levels = append(levels, sinks[0].Signal())
	})
	require.NoError(t, err)
	assert.Equal(t, []core.Signal{core.High, core.Low}, levels)
}

// TestCompoundNesting wraps a compound inside another compound and
// checks propagation recurses naturally.
func TestCompoundNesting(t *testing.T) {
	sim := core.NewSimulation()

	inner := buildNandCompound(sim)

	// Outer gate: AND built as NAND followed by NOT.
	a := NewSimpleInput(sim, 1, "A")
	b := NewSimpleInput(sim, 1, "B")
	out := NewSimpleOutput(sim, "OUT")
	outer := NewCompound(sim, Kind("TEST_AND"), []*SimpleInput{a, b}, []*SimpleOutput{out})

	not := NewNot(sim, 1)
	Connect(a, 0, inner, 0)
	Connect(b, 0, inner, 1)
	Connect(inner, 0, not, 0)
	Connect(not, 0, out, 0)
	outer.Prime()

	poke(t, outer, 0, core.High)
	poke(t, outer, 1, core.High)
	assert.Equal(t, core.High, fetchOne(t, outer))

	poke(t, outer, 1, core.Low)
	assert.Equal(t, core.Low, fetchOne(t, outer))

	// The nested compound counts as a single child: A, B, the inner
	// compound, NOT and OUT. Its own interior is not walked.
	assert.Greater(t, outer.Children(), 4)
}
