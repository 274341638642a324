// Package policy implements fixed policies for selecting actions in
// environments
package policy

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/gomdp/environment"
	ts "github.com/samuelfneumann/gomdp/timestep"
	"github.com/samuelfneumann/gomdp/utils/matutils"
)

// Random implements a uniform random policy over a discrete action
// space. Action probabilities are stored as a stochastic matrix with
// one row per state and one column per action, with each row holding
// the uniform distribution over actions.
type Random struct {
	probs  *mat.Dense
	source rand.Source
}

// NewRandom returns a uniform random policy for env, selecting actions
// using the random number generator seeded by seed. The environment
// must have a 1-dimensional discrete action space and one-hot state
// observations.
func NewRandom(env environment.Environment, seed uint64) *Random {
	if env.ActionSpec().Shape.Len() != 1 {
		panic("newRandom: can only select actions from 1-dimensional " +
			"action spaces")
	}
	if env.ActionSpec().Cardinality != environment.Discrete {
		panic("newRandom: actions must be discrete")
	}

	actions := int(env.ActionSpec().UpperBound.AtVec(0)) + 1
	states := env.ObservationSpec().Shape.Len()

	probs := mat.NewDense(states, actions, nil)
	for state := 0; state < states; state++ {
		for action := 0; action < actions; action++ {
			probs.Set(state, action, 1.0/float64(actions))
		}
	}

	return &Random{probs, rand.NewSource(seed)}
}

// SelectAction samples an action from the policy's action distribution
// in the state observed on timestep t
func (p *Random) SelectAction(t ts.TimeStep) *mat.VecDense {
	state := matutils.MaxVec(t.Observation)
	weights := mat.Row(nil, state, p.probs)

	dist := distuv.NewCategorical(weights, p.source)
	return mat.NewVecDense(1, []float64{dist.Rand()})
}
