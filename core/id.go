package core

// UniqueID identifies a gate for the lifetime of a simulation. Ids are
// allocated monotonically by the Simulation context; equality and map
// hashing are by integer value.
type UniqueID uint64

// ZeroID is reserved and never allocated to a gate. It stands in as the
// driver of an input that has no real connection yet: a new input port
// holds {ZeroID: Low}, and updates sent under ZeroID during wiring are
// invisible to oscillation detection.
const ZeroID UniqueID = 0

// IsZero reports whether the id is the reserved sentinel.
func (id UniqueID) IsZero() bool {
	return id == ZeroID
}
