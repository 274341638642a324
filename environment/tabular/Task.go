package tabular

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	env "github.com/samuelfneumann/gomdp/environment"
	ts "github.com/samuelfneumann/gomdp/timestep"
	"github.com/samuelfneumann/gomdp/utils/matutils"
)

// Goal implements the task of reaching a terminal state in a tabular
// MDP. The reward for a transition is looked up in a table with one
// row per state and one column per action. Episodes end when a
// terminal state is reached or, if a positive step limit is given,
// when the step limit is reached.
type Goal struct {
	env.Starter
	rewards       *mat.Dense
	terminals     *mat.VecDense // 1.0 at indices of terminal states
	terminalEnder env.Ender
	stepEnder     env.Ender // nil when episodes have no step limit
	minReward     float64
	maxReward     float64
}

// NewGoal returns a new Goal with starting states drawn from s and
// transition rewards given by rewards. The states listed in terminals
// are the terminal states of the MDP. If cutoff is positive, episodes
// are cut off after cutoff timesteps.
func NewGoal(s env.Starter, rewards *mat.Dense, terminals []int,
	cutoff int) (*Goal, error) {
	if rewards == nil {
		return nil, fmt.Errorf("newGoal: rewards cannot be nil")
	}

	states, _ := rewards.Dims()
	terminalVec := mat.NewVecDense(states, nil)
	for _, terminal := range terminals {
		if terminal < 0 || terminal >= states {
			return nil, fmt.Errorf("newGoal: terminal state %v ∉ [0, %v)",
				terminal, states)
		}
		terminalVec.SetVec(terminal, 1.0)
	}

	goal := &Goal{
		Starter:   s,
		rewards:   rewards,
		terminals: terminalVec,
		minReward: mat.Min(rewards),
		maxReward: mat.Max(rewards),
	}
	goal.terminalEnder = env.NewFunctionEnder(goal.terminal,
		ts.TerminalStateReached)
	if cutoff > 0 {
		goal.stepEnder = env.NewStepLimit(cutoff)
	}
	return goal, nil
}

// terminal returns whether obs is the observation of a terminal state
func (g *Goal) terminal(obs mat.Vector) bool {
	return g.terminals.AtVec(matutils.MaxVec(obs)) == 1.0
}

// GetReward returns the reward for taking action in the state observed
// as state. The nextState argument exists to satisfy the Task
// interface; rewards in tabular MDPs depend only on the state and
// action.
func (g *Goal) GetReward(state, action, nextState mat.Vector) float64 {
	return g.rewards.At(matutils.MaxVec(state), int(action.AtVec(0)))
}

// AtGoal returns whether state is the one-hot observation of a
// terminal state
func (g *Goal) AtGoal(state mat.Matrix) bool {
	vec, ok := state.(mat.Vector)
	if !ok {
		panic("atGoal: state must be a vector of one-hot state features")
	}
	return g.terminal(vec)
}

// Min returns the minimum possible reward of the task
func (g *Goal) Min() float64 {
	return g.minReward
}

// Max returns the maximum possible reward of the task
func (g *Goal) Max() float64 {
	return g.maxReward
}

// RewardSpec returns the reward specification of the task
func (g *Goal) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{g.minReward})
	upperBound := mat.NewVecDense(1, []float64{g.maxReward})

	return env.NewSpec(shape, env.Reward, lowerBound, upperBound,
		env.Continuous)
}

// End checks whether the timestep t ends its episode, either by
// reaching a terminal state or by reaching the task's step limit. If
// so, t is adjusted to record how the episode ended.
func (g *Goal) End(t *ts.TimeStep) bool {
	if g.terminalEnder.End(t) {
		return true
	}
	if g.stepEnder != nil && g.stepEnder.End(t) {
		return true
	}
	return false
}
