package stream

import (
	"math"

	"github.com/san-kum/planets/internal/dynamo"
)

const (
	FrameInit = "init"
	FrameTick = "tick"
)

type BodyState struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Mass   float64 `json:"mass,omitempty"`
	Radius float64 `json:"radius,omitempty"`
}

// Frame is one message on the wire. Init frames carry mass and radius so
// clients can size their visuals; tick frames carry positions only. Bodies
// are in population order.
type Frame struct {
	Type   string      `json:"type"`
	Tick   int         `json:"tick"`
	Bodies []BodyState `json:"bodies"`
}

func NewFrame(kind string, tick int, pop dynamo.Population) Frame {
	f := Frame{Type: kind, Tick: tick, Bodies: make([]BodyState, len(pop))}
	for i, b := range pop {
		f.Bodies[i] = BodyState{X: b.Position.X, Y: b.Position.Y}
		if kind == FrameInit {
			f.Bodies[i].Mass = b.Mass
			f.Bodies[i].Radius = math.Sqrt(b.Mass / 100)
		}
	}
	return f
}

// Command is a control message sent by a client.
type Command struct {
	Command string `json:"command"`
}

const (
	CommandPause  = "pause"
	CommandResume = "resume"
	CommandReset  = "reset"
)
