// Package tdlambda implements TD(λ) policy evaluation with
// accumulating eligibility traces for environments with one-hot state
// observations.
//
// TD(λ) keeps an eligibility trace for every state. On each
// transition, every trace is decayed by λγ and the trace of the state
// left behind is incremented by 1. The value estimates of all states
// are then moved in proportion to their traces:
//
//	z <- λγz + x(s)
//	V <- V + αδz
//
// where the update's error term is δ = r + V(s') - V(s). Note that the
// successor value is not discounted in δ; discounting enters the
// update only through the trace decay. With λ = 0 the update touches
// only the state left behind, and as λ approaches 1 the updates of a
// single episode approach the Monte Carlo updates toward the
// undiscounted return.
package tdlambda

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gomdp/agent"
	env "github.com/samuelfneumann/gomdp/environment"
	ts "github.com/samuelfneumann/gomdp/timestep"
	"github.com/samuelfneumann/gomdp/utils/matutils"
)

// TDLambda implements TD(λ) policy evaluation with accumulating
// eligibility traces
type TDLambda struct {
	agent.Policy

	values       *mat.VecDense
	trace        *mat.VecDense
	learningRate float64
	discount     float64
	decay        float64 // λ, the trace decay rate

	step     ts.TimeStep
	nextStep ts.TimeStep

	printEvery int
	episodes   int
}

// New returns a new TD(λ) evaluator of the policy p on e
func New(e env.Environment, p agent.Policy, c Config) (*TDLambda, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	features := e.ObservationSpec().Shape.Len()
	return &TDLambda{
		Policy:       p,
		values:       mat.NewVecDense(features, nil),
		trace:        mat.NewVecDense(features, nil),
		learningRate: c.LearningRate,
		discount:     c.Discount,
		decay:        c.Lambda,
		printEvery:   c.PrintEvery,
	}, nil
}

// ObserveFirst observes and records the first timestep of an episode,
// clearing the eligibility traces
func (t *TDLambda) ObserveFirst(step ts.TimeStep) error {
	if !step.First() {
		fmt.Fprintf(os.Stderr, "Warning: ObserveFirst() should only be "+
			"called on the first timestep (current timestep = %d)",
			step.Number)
	}

	t.trace.Zero()
	t.step = ts.TimeStep{}
	t.nextStep = step
	return nil
}

// Observe records that the argument action led to the timestep
// nextStep in the current episode
func (t *TDLambda) Observe(action mat.Vector, nextStep ts.TimeStep) error {
	t.step = t.nextStep
	t.nextStep = nextStep
	return nil
}

// Step updates the eligibility traces and the value estimates using
// the last observed transition
func (t *TDLambda) Step() error {
	state := t.step.Observation
	nextState := t.nextStep.Observation

	value := mat.Dot(t.values, state)
	nextValue := mat.Dot(t.values, nextState)
	tdError := t.nextStep.Reward + nextValue - value

	t.trace.AddScaledVec(state, t.decay*t.discount, t.trace)
	t.values.AddScaledVec(t.values, t.learningRate*tdError, t.trace)
	return nil
}

// EndEpisode performs cleanup at the end of an episode
func (t *TDLambda) EndEpisode() {
	t.episodes++
	if t.printEvery > 0 && t.episodes%t.printEvery == 0 {
		fmt.Printf("Episode %v:\n%v\n", t.episodes,
			matutils.Format(t.values.T()))
	}
}

// TdError returns the error term of the TD(λ) update for the argument
// transition under the current value estimates. Consistent with the
// update rule, the successor value is not discounted.
func (t *TDLambda) TdError(transition ts.Transition) float64 {
	value := mat.Dot(t.values, transition.State)
	nextValue := mat.Dot(t.values, transition.NextState)

	return transition.Reward + nextValue - value
}

// Values returns the current estimate of the state value function
func (t *TDLambda) Values() *mat.VecDense {
	return t.values
}
