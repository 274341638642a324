package tabular

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// NonTerminalStarter samples episode starting states uniformly at
// random from the non-terminal states of a tabular MDP. Starting
// states are returned as one-hot feature vectors.
type NonTerminalStarter struct {
	states int
	dist   distuv.Categorical
}

// NewNonTerminalStarter returns a starter that samples starting states
// uniformly from the states in [0, states) that are not listed in
// terminals, using the random number generator seeded by seed.
func NewNonTerminalStarter(states int, terminals []int,
	seed uint64) (*NonTerminalStarter, error) {
	if states <= 0 {
		return nil, fmt.Errorf("newNonTerminalStarter: states must be "+
			"positive, got %v", states)
	}

	weights := make([]float64, states)
	for i := range weights {
		weights[i] = 1.0
	}
	for _, terminal := range terminals {
		if terminal < 0 || terminal >= states {
			return nil, fmt.Errorf("newNonTerminalStarter: terminal state "+
				"%v ∉ [0, %v)", terminal, states)
		}
		weights[terminal] = 0.0
	}
	if floats.Sum(weights) == 0 {
		return nil, fmt.Errorf("newNonTerminalStarter: no non-terminal " +
			"states to start from")
	}

	source := rand.NewSource(seed)
	return &NonTerminalStarter{states, distuv.NewCategorical(weights,
		source)}, nil
}

// Start returns the one-hot observation of a sampled starting state
func (n *NonTerminalStarter) Start() *mat.VecDense {
	obs := mat.NewVecDense(n.states, nil)
	obs.SetVec(int(n.dist.Rand()), 1.0)
	return obs
}
