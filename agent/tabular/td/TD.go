// Package td implements one-step temporal difference policy evaluation
// for environments with one-hot state observations.
//
// On every transition, the value estimate of the state left behind is
// moved toward the bootstrapped target formed from the reward and the
// value estimate of the next state:
//
//	V(s) <- V(s) + α(r + γV(s') - V(s))
//
// Updates are fully online: each transition updates the value
// estimates as soon as it is observed. Only the predecessor state of a
// transition is updated, so the value estimates of terminal states
// stay fixed at 0.
package td

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gomdp/agent"
	env "github.com/samuelfneumann/gomdp/environment"
	ts "github.com/samuelfneumann/gomdp/timestep"
	"github.com/samuelfneumann/gomdp/utils/matutils"
)

// TD implements one-step temporal difference policy evaluation
type TD struct {
	agent.Policy

	values       *mat.VecDense
	learningRate float64
	discount     float64

	step     ts.TimeStep
	nextStep ts.TimeStep

	printEvery int
	episodes   int
}

// New returns a new one-step TD evaluator of the policy p on e
func New(e env.Environment, p agent.Policy, c Config) (*TD, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	features := e.ObservationSpec().Shape.Len()
	return &TD{
		Policy:       p,
		values:       mat.NewVecDense(features, nil),
		learningRate: c.LearningRate,
		discount:     c.Discount,
		printEvery:   c.PrintEvery,
	}, nil
}

// ObserveFirst observes and records the first timestep of an episode
func (t *TD) ObserveFirst(step ts.TimeStep) error {
	if !step.First() {
		fmt.Fprintf(os.Stderr, "Warning: ObserveFirst() should only be "+
			"called on the first timestep (current timestep = %d)",
			step.Number)
	}

	t.step = ts.TimeStep{}
	t.nextStep = step
	return nil
}

// Observe records that the argument action led to the timestep
// nextStep in the current episode
func (t *TD) Observe(action mat.Vector, nextStep ts.TimeStep) error {
	t.step = t.nextStep
	t.nextStep = nextStep
	return nil
}

// Step updates the value estimates using the last observed transition
func (t *TD) Step() error {
	state := t.step.Observation
	nextState := t.nextStep.Observation

	value := mat.Dot(t.values, state)
	nextValue := mat.Dot(t.values, nextState)
	tdError := t.nextStep.Reward + t.discount*nextValue - value

	t.values.AddScaledVec(t.values, t.learningRate*tdError, state)
	return nil
}

// EndEpisode performs cleanup at the end of an episode
func (t *TD) EndEpisode() {
	t.episodes++
	if t.printEvery > 0 && t.episodes%t.printEvery == 0 {
		fmt.Printf("Episode %v:\n%v\n", t.episodes,
			matutils.Format(t.values.T()))
	}
}

// TdError returns the one-step TD error of the argument transition
// under the current value estimates, using the transition's own
// discount
func (t *TD) TdError(transition ts.Transition) float64 {
	value := mat.Dot(t.values, transition.State)
	nextValue := mat.Dot(t.values, transition.NextState)

	return transition.Reward + transition.Discount*nextValue - value
}

// Values returns the current estimate of the state value function
func (t *TD) Values() *mat.VecDense {
	return t.values
}
