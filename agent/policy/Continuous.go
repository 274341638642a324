package policy

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/samuelfneumann/gomdp/environment"
	ts "github.com/samuelfneumann/gomdp/timestep"
)

// Continuous implements a policy that selects actions uniformly at
// random from a bounded continuous action space, ignoring the state
type Continuous struct {
	dims int
	dist *distmv.Uniform
}

// NewContinuous returns a policy that selects actions uniformly at
// random from the action space described by action, using the random
// number generator seeded by seed. The argument action must be the
// specification of a continuous action space.
func NewContinuous(action environment.Spec, seed uint64) *Continuous {
	if action.Type != environment.Action {
		panic("newContinuous: spec must be an action specification")
	}
	if action.Cardinality != environment.Continuous {
		panic("newContinuous: actions must be continuous")
	}

	bounds := make([]r1.Interval, action.Shape.Len())
	for i := range bounds {
		bounds[i] = r1.Interval{
			Min: action.LowerBound.AtVec(i),
			Max: action.UpperBound.AtVec(i),
		}
	}

	source := rand.NewSource(seed)
	return &Continuous{len(bounds), distmv.NewUniform(bounds, source)}
}

// SelectAction selects an action uniformly at random from the action
// space
func (p *Continuous) SelectAction(t ts.TimeStep) *mat.VecDense {
	return mat.NewVecDense(p.dims, p.dist.Rand(nil))
}
