// Package agent defines the interfaces for policies and for the
// algorithms that evaluate them
package agent

import (
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gomdp/timestep"
)

// Evaluator estimates the state value function of a fixed policy.
//
// An Evaluator is composed of a Learner, which updates the value
// estimates from experience, and a Policy, which chooses the actions
// taken in each state. Evaluators never change their Policy; they only
// predict the values of following it.
type Evaluator interface {
	Learner
	Policy

	// Values returns the current estimate of the state value function,
	// with one entry per state
	Values() *mat.VecDense
}

// Learner implements a learning algorithm that defines how value
// estimates are updated
type Learner interface {
	// Step performs a single update to the learner
	Step() error

	// Observe records that an action lead to some timestep
	Observe(action mat.Vector, nextObs timestep.TimeStep) error

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep) error

	// EndEpisode performs cleanup at the end of an episode
	EndEpisode()
}

// TdErrorer is a Learner that can return the TD error of some
// transition
type TdErrorer interface {
	Learner

	// TdError returns the TD error on a transition
	TdError(t timestep.Transition) float64
}

// Policy determines how actions are selected in each state
type Policy interface {
	SelectAction(t timestep.TimeStep) *mat.VecDense
}
