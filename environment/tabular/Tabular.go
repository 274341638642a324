// Package tabular implements small discrete MDPs whose dynamics and
// rewards are given by explicit tables. States are observed as one-hot
// feature vectors so that tabular value estimates coincide with linear
// function approximation over the state features.
package tabular

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	env "github.com/samuelfneumann/gomdp/environment"
	ts "github.com/samuelfneumann/gomdp/timestep"
	"github.com/samuelfneumann/gomdp/utils/matutils"
)

// MDP implements a tabular MDP environment. States and actions are
// identified by indices. On each environmental step, the index of the
// next state is computed by the MDP's Dynamics and the reward for the
// transition by its Task.
type MDP struct {
	env.Task
	dynamics    Dynamics
	states      int
	actions     int
	position    int // index of the current state
	discount    float64
	currentStep ts.TimeStep
}

// New returns a new tabular MDP with the argument task and dynamics,
// together with the first timestep of the environment
func New(t env.Task, d Dynamics, discount float64) (env.Environment,
	ts.TimeStep, error) {
	if discount < 0 || discount > 1 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: discount must be in "+
			"[0, 1], got %v", discount)
	}

	mdp := &MDP{
		Task:     t,
		dynamics: d,
		states:   d.NumStates(),
		actions:  d.NumActions(),
		discount: discount,
	}

	firstStep, err := mdp.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}
	return mdp, firstStep, nil
}

// Reset resets the environment and returns the first timestep of a new
// episode
func (m *MDP) Reset() (ts.TimeStep, error) {
	start := m.Start()
	if start.Len() != m.states {
		return ts.TimeStep{}, fmt.Errorf("reset: starting state has %v "+
			"features, expected %v", start.Len(), m.states)
	}
	if m.AtGoal(start) {
		return ts.TimeStep{}, fmt.Errorf("reset: starting state %v is "+
			"terminal", matutils.MaxVec(start))
	}

	m.position = matutils.MaxVec(start)
	firstStep := ts.New(ts.First, 0, m.discount, start, 0)
	m.currentStep = firstStep

	return firstStep, nil
}

// Step takes one environmental step given the argument action and
// returns the next timestep and whether the episode has ended
func (m *MDP) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	if action.Len() > 1 {
		return ts.TimeStep{}, true, fmt.Errorf("step: actions must be " +
			"1-dimensional")
	}

	a := int(action.AtVec(0))
	if a < 0 || a >= m.actions {
		return ts.TimeStep{}, true, fmt.Errorf("step: action %v ∉ [0, %v)",
			a, m.actions)
	}

	next, err := m.dynamics.Next(m.position, a)
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: %v", err)
	}

	nextObs := mat.NewVecDense(m.states, nil)
	nextObs.SetVec(next, 1.0)

	reward := m.GetReward(m.CurrentTimeStep().Observation, action, nextObs)
	nextStep := ts.New(ts.Mid, reward, m.discount, nextObs,
		m.CurrentTimeStep().Number+1)
	last := m.End(&nextStep)

	m.position = next
	m.currentStep = nextStep

	return nextStep, last, nil
}

// DiscountSpec returns the discounting specification of the environment
func (m *MDP) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{m.discount})

	return env.NewSpec(shape, env.Discount, bound, bound, env.Continuous)
}

// ObservationSpec returns the observation specification of the
// environment
func (m *MDP) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(m.states, nil)
	lowerBound := mat.NewVecDense(m.states, nil)
	upperBound := matutils.VecOnes(m.states)

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Discrete)
}

// ActionSpec returns the action specification of the environment
func (m *MDP) ActionSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{0})
	upperBound := mat.NewVecDense(1, []float64{float64(m.actions - 1)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// CurrentTimeStep returns the last timestep returned by the environment
func (m *MDP) CurrentTimeStep() ts.TimeStep {
	return m.currentStep
}

// String implements the fmt.Stringer interface
func (m *MDP) String() string {
	return fmt.Sprintf("Tabular MDP  |  States: %v  |  Actions: %v  |  "+
		"Current state: %v", m.states, m.actions, m.position)
}
