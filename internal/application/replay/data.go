package replay

import "github.com/younwookim/tilebound/internal/domain/input"

// Version is written into every recording
const Version = "1.1"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int     `json:"f"`            // Frame number
	L  bool    `json:"l,omitempty"`  // Left
	R  bool    `json:"r,omitempty"`  // Right
	J  bool    `json:"j,omitempty"`  // Jump held
	JP bool    `json:"jp,omitempty"` // JumpPressed
	A  bool    `json:"a,omitempty"`  // AttackPressed
	AX float64 `json:"ax,omitempty"` // Analog axis
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Level     string       `json:"level"`
	Framerate int          `json:"framerate"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// FromSnapshot encodes one frame of input
func FromSnapshot(frame int, s input.Snapshot) FrameInput {
	return FrameInput{
		F:  frame,
		L:  s.Left,
		R:  s.Right,
		J:  s.Jump,
		JP: s.JumpPressed,
		A:  s.AttackPressed,
		AX: s.Axis,
	}
}

// Snapshot decodes the frame back into an input snapshot
func (fi FrameInput) Snapshot() input.Snapshot {
	return input.Snapshot{
		Left:          fi.L,
		Right:         fi.R,
		Jump:          fi.J,
		JumpPressed:   fi.JP,
		AttackPressed: fi.A,
		Axis:          fi.AX,
	}
}
