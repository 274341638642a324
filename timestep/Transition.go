package timestep

import "gonum.org/v1/gonum/mat"

// Transition packages together the information about a single
// environmental transition: taking Action in State resulted in
// NextState with reward Reward. The NextAction field holds the action
// selected in NextState and may be nil if no such action exists, for
// example when NextState is terminal.
type Transition struct {
	State      *mat.VecDense
	Action     *mat.VecDense
	Reward     float64
	Discount   float64
	NextState  *mat.VecDense
	NextAction *mat.VecDense
}

// NewTransition returns the transition generated by taking action in
// the state observed on step, resulting in the state observed on
// nextStep. Observations on both timesteps must be *mat.VecDense.
func NewTransition(step TimeStep, action *mat.VecDense, nextStep TimeStep,
	nextAction *mat.VecDense) Transition {
	state := step.Observation.(*mat.VecDense)
	nextState := nextStep.Observation.(*mat.VecDense)

	return Transition{
		State:      state,
		Action:     action,
		Reward:     nextStep.Reward,
		Discount:   nextStep.Discount,
		NextState:  nextState,
		NextAction: nextAction,
	}
}
