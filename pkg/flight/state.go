package flight

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-butterflies/pkg/geometry"
)

// StateKind tags the active behavior of a butterfly.
type StateKind int

const (
	Cruising StateKind = iota
	Seeking
	Resting
)

func (k StateKind) String() string {
	switch k {
	case Cruising:
		return "cruising"
	case Seeking:
		return "seeking"
	case Resting:
		return "resting"
	default:
		return fmt.Sprintf("StateKind(%d)", int(k))
	}
}

// State is the behavior a butterfly is in. Exactly one is active at a time and the
// data each state needs travels with it, so a target only exists while seeking and a
// rest countdown only exists while resting.
type State interface {
	Kind() StateKind
	isState()
}

// CruisingState roams with a random velocity until the next decision.
type CruisingState struct{}

// SeekingState steers toward a landing site.
type SeekingState struct {
	Target geometry.Vector3D
}

// RestingState sits on a landing site until Remaining reaches zero.
type RestingState struct {
	Remaining float64
}

func (CruisingState) Kind() StateKind { return Cruising }
func (SeekingState) Kind() StateKind  { return Seeking }
func (RestingState) Kind() StateKind  { return Resting }

func (CruisingState) isState() {}
func (SeekingState) isState()  {}
func (RestingState) isState()  {}
