package experiment

import (
	"fmt"

	"github.com/samuelfneumann/gomdp/agent"
	env "github.com/samuelfneumann/gomdp/environment"
	ts "github.com/samuelfneumann/gomdp/timestep"
)

// RunEpisode runs a single episode of the policy p on the environment
// e, returning the trajectory of states visited, actions taken, and
// rewards earned over the episode. The episode runs until e reports an
// episode end, either by reaching a terminal state or by cutting the
// episode off at a step limit.
func RunEpisode(e env.Environment, p agent.Policy) (*ts.Trajectory, error) {
	step, err := e.Reset()
	if err != nil {
		return nil, fmt.Errorf("runEpisode: could not reset environment: "+
			"%v", err)
	}
	trajectory := ts.NewTrajectory(step)

	for !step.Last() {
		action := p.SelectAction(step)
		step, _, err = e.Step(action)
		if err != nil {
			return nil, fmt.Errorf("runEpisode: could not step "+
				"environment: %v", err)
		}
		trajectory.Push(action, step)
	}

	return trajectory, nil
}
