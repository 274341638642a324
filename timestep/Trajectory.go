package timestep

import "gonum.org/v1/gonum/mat"

// Trajectory records the sequence of states visited, actions taken,
// and rewards earned over a single episode.
//
// Observations[i] is the i-th state visited in the episode, and
// Actions[i] is the action taken from that state. The final state
// visited has no corresponding action. Rewards is offset so that
// Rewards[i+1] is the reward earned for leaving Observations[i]:
// Rewards[0] always holds 0, since no transition produces the first
// state of an episode. This way, len(Rewards) == len(Observations)
// at all times.
type Trajectory struct {
	Observations []*mat.VecDense
	Actions      []*mat.VecDense
	Rewards      []float64
}

// NewTrajectory returns a trajectory containing only the starting
// state of an episode, observed on the timestep first.
func NewTrajectory(first TimeStep) *Trajectory {
	return &Trajectory{
		Observations: []*mat.VecDense{first.Observation.(*mat.VecDense)},
		Rewards:      []float64{first.Reward},
	}
}

// Push records a single transition in the trajectory: action was
// taken in the last recorded state, producing the timestep step.
func (t *Trajectory) Push(action *mat.VecDense, step TimeStep) {
	t.Actions = append(t.Actions, action)
	t.Observations = append(t.Observations, step.Observation.(*mat.VecDense))
	t.Rewards = append(t.Rewards, step.Reward)
}

// Len returns the number of states visited so far in the trajectory
func (t *Trajectory) Len() int {
	return len(t.Observations)
}
