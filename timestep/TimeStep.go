// Package timestep implements timesteps, which are returned by
// environments on each environmental step, as well as trajectories of
// timesteps generated over full episodes.
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of a timestep in an episode
type StepType int

const (
	// First denotes the first timestep in an episode
	First StepType = iota

	// Mid denotes any timestep between the first and last timesteps of
	// an episode
	Mid

	// Last denotes the last timestep in an episode
	Last
)

// EndType denotes the reason that an episode ended
type EndType int

const (
	// Nil is the end type of any timestep that does not end its episode
	Nil EndType = iota

	// TerminalStateReached denotes that an episode ended by reaching a
	// terminal state
	TerminalStateReached

	// Timeout denotes that an episode ended due to reaching a step limit
	Timeout
)

// TimeStep packages together all the information needed about an
// environmental step. The Observation is the state observation made
// after taking some action in the environment, and the Reward is the
// reward earned for taking that action.
type TimeStep struct {
	StepType    StepType
	Reward      float64
	Discount    float64
	Observation mat.Vector
	Number      int
	endType     EndType
}

// New creates and returns a new TimeStep
func New(t StepType, r, d float64, o mat.Vector, n int) TimeStep {
	return TimeStep{t, r, d, o, n, Nil}
}

// First returns whether a timestep is the first in an episode
func (t TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a timestep is between the first and last
// timesteps of an episode
func (t TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a timestep is the last in an episode
func (t TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd sets the reason that the timestep ended its episode. Enders
// call this method when marking a timestep as the last in an episode.
func (t *TimeStep) SetEnd(e EndType) {
	t.endType = e
}

// End returns the reason that the timestep ended its episode, which is
// Nil for timesteps that are not the last in their episode.
func (t TimeStep) End() EndType {
	return t.endType
}

// TerminalEnd returns whether the timestep ended its episode by
// reaching a terminal state
func (t TimeStep) TerminalEnd() bool {
	return t.endType == TerminalStateReached
}

// TimeoutEnd returns whether the timestep ended its episode by
// reaching a step limit
func (t TimeStep) TimeoutEnd() bool {
	return t.endType == Timeout
}

// String implements the fmt.Stringer interface
func (t TimeStep) String() string {
	return fmt.Sprintf("TimeStep  |  Type: %v  |  Reward: %v  |  Discount: "+
		"%v  |  Step Number: %v", t.StepType, t.Reward, t.Discount, t.Number)
}

// String implements the fmt.Stringer interface
func (s StepType) String() string {
	switch s {
	case First:
		return "First"

	case Mid:
		return "Mid"

	case Last:
		return "Last"
	}
	return "Unknown"
}
