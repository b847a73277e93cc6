package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInputExhausted is returned by a scripted input source that has no
// values left. The clock loop treats it as a graceful stop.
var ErrInputExhausted = errors.New("no scripted input remaining")

// GateInfo identifies a gate in diagnostics: its type tag, unique id and
// optional human tag.
type GateInfo struct {
	Kind string
	ID   UniqueID
	Tag  string
}

// String formats the identity the way every fatal diagnostic prints it.
func (g GateInfo) String() string {
	if g.Tag == "" {
		return fmt.Sprintf("%s gate id %d", g.Kind, g.ID)
	}
	return fmt.Sprintf("%s gate id %d tag %s", g.Kind, g.ID, g.Tag)
}

// ContentionError reports that a gate input currently holds two distinct
// driven levels. It is the only recoverable error kind: the engine defers
// the gate and retries after the input's remaining drivers have been
// processed.
type ContentionError struct {
	Gate  GateInfo
	Input int
}

func (e *ContentionError) Error() string {
	return fmt.Sprintf("multiple driven signals on input %d of %s", e.Input, e.Gate)
}

// OscillationError reports that a gate's input changed more times within
// one clock tick than the configured bound allows. Fatal.
type OscillationError struct {
	Gate    GateInfo
	Tick    uint64
	Changes int
}

func (e *OscillationError) Error() string {
	return fmt.Sprintf("oscillation detected on %s: %d input changes on clock tick %d", e.Gate, e.Changes, e.Tick)
}

// DeferredError reports that a whole propagation level consisted of
// contended gates, so deferral cannot make progress. This indicates a
// true multi-driver fault in the circuit. Fatal.
type DeferredError struct {
	Tick  uint64
	Gates []GateInfo
}

func (e *DeferredError) Error() string {
	names := make([]string, len(e.Gates))
	for i, g := range e.Gates {
		names[i] = g.String()
	}
	return fmt.Sprintf("all gates deferred on clock tick %d: %s", e.Tick, strings.Join(names, "; "))
}

// InvariantError reports misuse of the construction API: reconnecting a
// connected output, disconnecting a gate that is not connected, looking
// up an unknown port tag. For reconnects and disconnects, strict
// simulations panic with it and non-strict ones log a warning and refuse
// the operation. An unknown tag is returned as this error by IndexOfTag
// and makes MustIndex panic, in either mode.
type InvariantError struct {
	Op      string
	Gate    GateInfo
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Gate, e.Message)
}
