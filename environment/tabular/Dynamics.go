package tabular

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
	"gorgonia.org/tensor"
)

// probTolerance is the largest amount by which the outgoing transition
// probabilities of a state-action pair may differ from 1
const probTolerance float64 = 1e-8

// Dynamics computes the successor states of a tabular MDP. Given the
// index of a current state and the index of an action taken in that
// state, a Dynamics returns the index of the resulting next state.
type Dynamics interface {
	Next(state, action int) (int, error)
	NumStates() int
	NumActions() int
}

// Functional implements deterministic MDP dynamics backed by a
// transition function
type Functional struct {
	states  int
	actions int
	next    func(state, action int) int
}

// NewFunctional returns deterministic dynamics over states states and
// actions actions, where f computes the state that follows each
// state-action pair. The function f must return states in [0, states)
// for all legal inputs.
func NewFunctional(states, actions int, f func(state, action int) int) (Dynamics,
	error) {
	if states <= 0 {
		return nil, fmt.Errorf("newFunctional: states must be positive, "+
			"got %v", states)
	}
	if actions <= 0 {
		return nil, fmt.Errorf("newFunctional: actions must be positive, "+
			"got %v", actions)
	}
	if f == nil {
		return nil, fmt.Errorf("newFunctional: transition function cannot " +
			"be nil")
	}
	return Functional{states, actions, f}, nil
}

// Next computes the state resulting from taking action in state
func (f Functional) Next(state, action int) (int, error) {
	if state < 0 || state >= f.states {
		return 0, fmt.Errorf("next: state %v ∉ [0, %v)", state, f.states)
	}
	if action < 0 || action >= f.actions {
		return 0, fmt.Errorf("next: action %v ∉ [0, %v)", action, f.actions)
	}

	next := f.next(state, action)
	if next < 0 || next >= f.states {
		return 0, fmt.Errorf("next: transition function returned state "+
			"%v ∉ [0, %v)", next, f.states)
	}
	return next, nil
}

// NumStates returns the number of states in the MDP
func (f Functional) NumStates() int {
	return f.states
}

// NumActions returns the number of actions in the MDP
func (f Functional) NumActions() int {
	return f.actions
}

// Stochastic implements stochastic MDP dynamics backed by a dense rank-3
// tensor of transition probabilities. Entry (s, a, s') of the tensor
// holds the probability of transitioning to state s' when taking action
// a in state s.
type Stochastic struct {
	states  int
	actions int
	probs   [][]float64 // categorical weights for each state-action pair
	source  rand.Source
}

// NewStochastic returns stochastic dynamics over states states and
// actions actions, with transition probabilities given by probs. The
// tensor probs must have shape (states, actions, states), must contain
// no negative entries, and each of its rows must sum to 1. Successor
// states are sampled using the random number generator seeded by seed.
func NewStochastic(probs *tensor.Dense, states, actions int,
	seed uint64) (Dynamics, error) {
	if states <= 0 {
		return nil, fmt.Errorf("newStochastic: states must be positive, "+
			"got %v", states)
	}
	if actions <= 0 {
		return nil, fmt.Errorf("newStochastic: actions must be positive, "+
			"got %v", actions)
	}
	if probs == nil {
		return nil, fmt.Errorf("newStochastic: probs cannot be nil")
	}
	if probs.Dtype() != tensor.Float64 {
		return nil, fmt.Errorf("newStochastic: probs must have dtype "+
			"float64, got %v", probs.Dtype())
	}
	if probs.Dims() != 3 {
		return nil, fmt.Errorf("newStochastic: probs must be a rank-3 "+
			"tensor, got rank %v", probs.Dims())
	}
	shape := probs.Shape()
	if shape[0] != states || shape[1] != actions || shape[2] != states {
		return nil, fmt.Errorf("newStochastic: probs must have shape "+
			"(%v, %v, %v), got %v", states, actions, states, shape)
	}

	rows := make([][]float64, states*actions)
	for state := 0; state < states; state++ {
		for action := 0; action < actions; action++ {
			row := make([]float64, states)
			var sum float64
			for next := 0; next < states; next++ {
				val, err := probs.At(state, action, next)
				if err != nil {
					return nil, fmt.Errorf("newStochastic: could not read "+
						"transition probabilities: %v", err)
				}
				prob := val.(float64)
				if prob < 0 {
					return nil, fmt.Errorf("newStochastic: negative "+
						"probability %v for transition (%v, %v, %v)", prob,
						state, action, next)
				}
				row[next] = prob
				sum += prob
			}
			if math.Abs(sum-1.0) > probTolerance {
				return nil, fmt.Errorf("newStochastic: transition "+
					"probabilities of state %v and action %v sum to %v, "+
					"expected 1", state, action, sum)
			}
			rows[state*actions+action] = row
		}
	}

	return &Stochastic{states, actions, rows, rand.NewSource(seed)}, nil
}

// Next samples the state resulting from taking action in state
func (s *Stochastic) Next(state, action int) (int, error) {
	if state < 0 || state >= s.states {
		return 0, fmt.Errorf("next: state %v ∉ [0, %v)", state, s.states)
	}
	if action < 0 || action >= s.actions {
		return 0, fmt.Errorf("next: action %v ∉ [0, %v)", action, s.actions)
	}

	dist := distuv.NewCategorical(s.probs[state*s.actions+action], s.source)
	return int(dist.Rand()), nil
}

// NumStates returns the number of states in the MDP
func (s *Stochastic) NumStates() int {
	return s.states
}

// NumActions returns the number of actions in the MDP
func (s *Stochastic) NumActions() int {
	return s.actions
}
