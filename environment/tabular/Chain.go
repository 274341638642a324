package tabular

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	env "github.com/samuelfneumann/gomdp/environment"
	ts "github.com/samuelfneumann/gomdp/timestep"
)

// Actions available in a chain MDP
const (
	Left int = iota
	Right
)

// ChainGoalReward is the reward earned for stepping onto the rightmost
// state of a chain MDP
const ChainGoalReward float64 = 1.0

// NewChain returns a corridor of states arranged in a line, whose
// leftmost and rightmost states are terminal. The Left and Right
// actions deterministically move one state left or right along the
// corridor. Stepping onto the rightmost state earns a reward of
// ChainGoalReward; every other transition earns 0. Episodes start
// uniformly at random in a non-terminal state and, if cutoff is
// positive, are cut off after cutoff timesteps.
func NewChain(states, cutoff int, discount float64,
	seed uint64) (env.Environment, ts.TimeStep, error) {
	if states < 3 {
		return nil, ts.TimeStep{}, fmt.Errorf("newChain: chains need at "+
			"least 3 states, got %v", states)
	}

	dynamics, err := NewFunctional(states, 2, func(state, action int) int {
		if action == Left {
			if state == 0 {
				return 0
			}
			return state - 1
		}
		if state == states-1 {
			return states - 1
		}
		return state + 1
	})
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newChain: %v", err)
	}

	rewards := mat.NewDense(states, 2, nil)
	rewards.Set(states-2, Right, ChainGoalReward)

	c := Config{
		States:    states,
		Actions:   2,
		Discount:  discount,
		Dynamics:  dynamics,
		Rewards:   rewards,
		Terminals: []int{0, states - 1},
		Cutoff:    cutoff,
	}
	return c.Create(seed)
}
