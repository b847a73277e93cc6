package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =======================
// SIGNAL ALGEBRA TESTS
// =======================

func TestSignalStrings(t *testing.T) {
	assert.Equal(t, "NONE", None.String())
	assert.Equal(t, "LOW", Low.String())
	assert.Equal(t, "HIGH", High.String())
}

func TestSignalInvert(t *testing.T) {
	assert.Equal(t, Low, High.Invert())
	assert.Equal(t, High, Low.Invert())
	// A floating input reads as LOW, so its inversion is HIGH.
	assert.Equal(t, High, None.Invert())
}

func TestFanInResolve(t *testing.T) {
	a, b := UniqueID(10), UniqueID(11)

	tests := []struct {
		name string
		in   FanIn
		want Signal
		ok   bool
	}{
		{"placeholder only", FanIn{ZeroID: Low}, Low, true},
		{"single driver high", FanIn{a: High}, High, true},
		{"all none", FanIn{a: None, b: None}, None, true},
		{"none never overrides", FanIn{a: None, b: High}, High, true},
		{"two agreeing drivers", FanIn{a: Low, b: Low}, Low, true},
		{"distinct driven levels", FanIn{a: Low, b: High}, None, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.in.Resolve()
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolveAllReportsContendedPort(t *testing.T) {
	inputs := []FanIn{
		{ZeroID: Low},
		{UniqueID(3): Low, UniqueID(4): High},
	}
	_, contended, ok := ResolveAll(inputs)
	require.False(t, ok)
	assert.Equal(t, 1, contended)
}

// =======================
// SIMULATION CONTEXT TESTS
// =======================

func TestSimulationAllocatesNonZeroMonotonicIDs(t *testing.T) {
	sim := NewSimulation()
	prev := ZeroID
	for i := 0; i < 100; i++ {
		id := sim.NewID()
		require.False(t, id.IsZero())
		require.Greater(t, id, prev)
		prev = id
	}
}

func TestSimulationTickAdvances(t *testing.T) {
	sim := NewSimulation()
	require.EqualValues(t, 0, sim.Tick())
	sim.AdvanceTick()
	sim.AdvanceTick()
	assert.EqualValues(t, 2, sim.Tick())
}

func TestSimulationStopFlag(t *testing.T) {
	sim := NewSimulation()
	require.False(t, sim.Stopped())
	sim.RequestStop()
	assert.True(t, sim.Stopped())
}

// =======================
// OSCILLATION GUARD TESTS
// =======================

func TestOscillationGuardCountsWithinTick(t *testing.T) {
	var g OscillationGuard
	driver := UniqueID(7)

	assert.Equal(t, 1, g.Observe(1, driver))
	assert.Equal(t, 2, g.Observe(1, driver))
	assert.Equal(t, 3, g.Observe(1, driver))

	// A new tick resets the window.
	assert.Equal(t, 1, g.Observe(2, driver))
}

func TestOscillationGuardExemptsZeroID(t *testing.T) {
	var g OscillationGuard
	driver := UniqueID(7)

	g.Observe(1, driver)
	g.Observe(1, driver)

	// Updates sent under the zero id are invisible: the count neither
	// advances nor resets.
	assert.Equal(t, 2, g.Observe(1, ZeroID))
	assert.Equal(t, 3, g.Observe(1, driver))
}
