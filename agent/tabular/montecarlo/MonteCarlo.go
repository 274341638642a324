// Package montecarlo implements every-visit Monte Carlo policy
// evaluation for environments with one-hot state observations.
//
// A Monte Carlo evaluator records the full trajectory of each episode.
// Once the episode has finished, the discounted return following every
// visit is computed, and the value estimate of each visited state is
// moved toward the return that followed it:
//
//	V(s) <- V(s) + α(G - V(s))
//
// The final state of an episode is never updated, so the value
// estimates of terminal states stay fixed at 0.
package montecarlo

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gomdp/agent"
	env "github.com/samuelfneumann/gomdp/environment"
	ts "github.com/samuelfneumann/gomdp/timestep"
	"github.com/samuelfneumann/gomdp/utils/matutils"
)

// MonteCarlo implements every-visit Monte Carlo policy evaluation
type MonteCarlo struct {
	agent.Policy

	values       *mat.VecDense
	trajectory   *ts.Trajectory
	nextStep     ts.TimeStep
	learningRate float64
	discount     float64

	printEvery int
	episodes   int
}

// New returns a new Monte Carlo evaluator of the policy p on e
func New(e env.Environment, p agent.Policy, c Config) (*MonteCarlo, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	features := e.ObservationSpec().Shape.Len()
	return &MonteCarlo{
		Policy:       p,
		values:       mat.NewVecDense(features, nil),
		learningRate: c.LearningRate,
		discount:     c.Discount,
		printEvery:   c.PrintEvery,
	}, nil
}

// ObserveFirst observes and records the first timestep of an episode,
// starting a new trajectory
func (m *MonteCarlo) ObserveFirst(t ts.TimeStep) error {
	if !t.First() {
		fmt.Fprintf(os.Stderr, "Warning: ObserveFirst() should only be "+
			"called on the first timestep (current timestep = %d)", t.Number)
	}

	m.trajectory = ts.NewTrajectory(t)
	m.nextStep = t
	return nil
}

// Observe records that the argument action led to the timestep
// nextStep in the current episode
func (m *MonteCarlo) Observe(action mat.Vector, nextStep ts.TimeStep) error {
	a, ok := action.(*mat.VecDense)
	if !ok {
		return fmt.Errorf("observe: actions must be *mat.VecDense")
	}

	m.trajectory.Push(a, nextStep)
	m.nextStep = nextStep
	return nil
}

// Step updates the value estimates of the evaluator. Monte Carlo
// updates are only available once an episode has finished; on all
// earlier timesteps, Step is a no-op.
func (m *MonteCarlo) Step() error {
	if !m.nextStep.Last() {
		return nil
	}

	m.update()
	return nil
}

// update moves the value estimate of every state visited in the
// episode toward the discounted return that followed the visit. The
// final state of the episode is not updated.
func (m *MonteCarlo) update() {
	rewards := mat.NewVecDense(len(m.trajectory.Rewards), m.trajectory.Rewards)
	returns := discountCumSum(rewards, m.discount)

	for i := 0; i < m.trajectory.Len()-1; i++ {
		obs := m.trajectory.Observations[i]

		// Rewards trail observations by one index, so the return
		// following the visit to state i starts at reward i+1
		ret := returns[i+1]
		value := mat.Dot(m.values, obs)

		m.values.AddScaledVec(m.values, m.learningRate*(ret-value), obs)
	}
}

// EndEpisode performs cleanup at the end of an episode, discarding the
// episode's trajectory
func (m *MonteCarlo) EndEpisode() {
	m.episodes++
	if m.printEvery > 0 && m.episodes%m.printEvery == 0 {
		fmt.Printf("Episode %v:\n%v\n", m.episodes,
			matutils.Format(m.values.T()))
	}
	m.trajectory = nil
}

// TdError implements the agent.TdErrorer interface. Monte Carlo
// evaluation has no temporal difference error, so this method always
// panics.
func (m *MonteCarlo) TdError(t ts.Transition) float64 {
	panic("tderror: not implemented")
}

// Values returns the current estimate of the state value function
func (m *MonteCarlo) Values() *mat.VecDense {
	return m.values
}

// discountCumSum computes the discounted cumulative sum of x:
// out[i] = x[i] + discount*x[i+1] + discount^2*x[i+2] + ...
func discountCumSum(x *mat.VecDense, discount float64) []float64 {
	discounts := mat.NewVecDense(x.Len(), nil)
	cumSums := make([]float64, x.Len())
	scaled := mat.NewVecDense(x.Len(), nil)
	backing := scaled.RawVector().Data

	for i := 0; i < x.Len(); i++ {
		discounts.ScaleVec(discount, discounts)
		discounts.SetVec(x.Len()-i-1, 1)
		scaled.MulElemVec(discounts, x)
		cumSums[x.Len()-i-1] = floats.Sum(backing[x.Len()-i-1:])
	}
	return cumSums
}
