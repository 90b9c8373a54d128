// Package input defines the per-tick input snapshot read by the simulation.
package input

// DeadZone is the analog stick magnitude below which the axis reads as zero
const DeadZone = 0.2

// Snapshot is the input state sampled once per tick
type Snapshot struct {
	Left          bool
	Right         bool
	Jump          bool
	JumpPressed   bool
	AttackPressed bool
	Axis          float64 // analog horizontal axis in [-1, 1]
}

// Horizontal returns the movement direction in [-1, 1].
// Digital keys override the analog axis; the axis is dead-zoned.
func (s Snapshot) Horizontal() float64 {
	switch {
	case s.Left && !s.Right:
		return -1
	case s.Right && !s.Left:
		return 1
	case s.Left && s.Right:
		return 0
	}
	if s.Axis > -DeadZone && s.Axis < DeadZone {
		return 0
	}
	if s.Axis > 1 {
		return 1
	}
	if s.Axis < -1 {
		return -1
	}
	return s.Axis
}

// Source produces one snapshot per tick
type Source interface {
	Poll() Snapshot
}

// SourceFunc adapts a function to Source
type SourceFunc func() Snapshot

// Poll calls f
func (f SourceFunc) Poll() Snapshot { return f() }

// Idle is a Source that never presses anything
var Idle Source = SourceFunc(func() Snapshot { return Snapshot{} })
