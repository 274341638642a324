// Package environment outlines the interfaces and structs needed to
// implement environments, as well as concrete tasks, starters, and
// enders shared by environment implementations.
package environment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	ts "github.com/samuelfneumann/gomdp/timestep"
)

// Starter determines the starting state of an environment at the
// beginning of each episode
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines when episodes end. Enders check whether a timestep
// is the last in its episode and, if so, adjust the timestep's
// StepType and end type accordingly.
type Ender interface {
	End(*ts.TimeStep) bool
}

// Task determines the goal that an agent should solve in an
// environment. Tasks determine the starting states of episodes, the
// rewards earned for transitions, and the conditions under which
// episodes end.
type Task interface {
	Starter
	Ender
	GetReward(state, action, nextState mat.Vector) float64
	AtGoal(state mat.Matrix) bool
	Min() float64 // returns the min possible reward
	Max() float64 // returns the max possible reward
	RewardSpec() Spec
}

// Environment implements a complete environment with which agents can
// interact. Environments step through discrete time, consuming one
// action and producing one timestep on each step.
type Environment interface {
	Task
	Reset() (ts.TimeStep, error)
	Step(action *mat.VecDense) (ts.TimeStep, bool, error)
	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
	CurrentTimeStep() ts.TimeStep
	fmt.Stringer
}
