// Package gatesim is a gate-level digital-logic simulator: three-valued
// signals, primitive Boolean gates wired into arbitrary (and cyclic)
// networks, hierarchical compound gates, and an event-driven engine that
// drives the network to a quiescent fixed point on every clock tick.
//
// The root package re-exports the public surface of the subpackages for
// convenience; the implementation lives in core (signal algebra, ids,
// errors, the Simulation context), gates (primitives, wiring, the
// compound mechanism, the propagation engine) and parts (latches,
// memory, registers, decoders, RAM, adders, steppers).
package gatesim

import (
	"github.com/xDarkicex/gatesim/core"
	"github.com/xDarkicex/gatesim/gates"
	"github.com/xDarkicex/gatesim/parts"
)

// Signal levels.
type Signal = core.Signal

const (
	None = core.None
	Low  = core.Low
	High = core.High
)

// Identity and context.
type (
	UniqueID   = core.UniqueID
	Simulation = core.Simulation
)

var NewSimulation = core.NewSimulation

// Error kinds.
type (
	ContentionError  = core.ContentionError
	OscillationError = core.OscillationError
	DeferredError    = core.DeferredError
	InvariantError   = core.InvariantError
)

var ErrInputExhausted = core.ErrInputExhausted

// The gate contract and wiring.
type (
	Gate        = gates.Gate
	OutputState = gates.OutputState
	Compound    = gates.Compound
)

var (
	Connect    = gates.Connect
	MustIndex  = gates.MustIndex
	Prime      = gates.Prime
	Run        = gates.Run
	StartClock = gates.StartClock
)

// Primitive constructors.
var (
	NewNot              = gates.NewNot
	NewAnd              = gates.NewAnd
	NewOr               = gates.NewOr
	NewNand             = gates.NewNand
	NewNor              = gates.NewNor
	NewXor              = gates.NewXor
	NewSplitter         = gates.NewSplitter
	NewControlledBuffer = gates.NewControlledBuffer
	NewClock            = gates.NewClock
	NewAutomaticInput   = gates.NewAutomaticInput
	NewSimpleInput      = gates.NewSimpleInput
	NewSimpleOutput     = gates.NewSimpleOutput
	NewCompound         = gates.NewCompound
)

// Compound part constructors.
var (
	NewSRLatch          = parts.NewSRLatch
	NewActiveLowSRLatch = parts.NewActiveLowSRLatch
	NewMemoryCell       = parts.NewMemoryCell
	NewWordMemory       = parts.NewWordMemory
	NewEnableBank       = parts.NewEnableBank
	NewRegister         = parts.NewRegister
	NewDecoder          = parts.NewDecoder
	NewRAMCell          = parts.NewRAMCell
	NewRAM              = parts.NewRAM
	NewHalfAdder        = parts.NewHalfAdder
	NewFullAdder        = parts.NewFullAdder
	NewWordAdder        = parts.NewWordAdder
	NewStepper          = parts.NewStepper
	NewLoader           = parts.NewLoader
)
