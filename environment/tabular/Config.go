package tabular

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	env "github.com/samuelfneumann/gomdp/environment"
	ts "github.com/samuelfneumann/gomdp/timestep"
)

// Config fully describes a tabular MDP. The Rewards matrix holds the
// reward for each state-action pair, with one row per state and one
// column per action. States listed in Terminals end episodes when
// reached. A positive Cutoff limits episodes to Cutoff timesteps; a
// Cutoff of 0 means episodes are never cut off.
type Config struct {
	States    int
	Actions   int
	Discount  float64
	Dynamics  Dynamics
	Rewards   *mat.Dense
	Terminals []int
	Cutoff    int
}

// Validate returns an error describing why the configuration cannot
// produce a valid MDP, or nil if it can
func (c Config) Validate() error {
	if c.States <= 0 {
		return fmt.Errorf("validate: states must be positive, got %v",
			c.States)
	}
	if c.Actions <= 0 {
		return fmt.Errorf("validate: actions must be positive, got %v",
			c.Actions)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1], got %v",
			c.Discount)
	}
	if c.Dynamics == nil {
		return fmt.Errorf("validate: dynamics cannot be nil")
	}
	if c.Dynamics.NumStates() != c.States ||
		c.Dynamics.NumActions() != c.Actions {
		return fmt.Errorf("validate: dynamics cover %v states and %v "+
			"actions, expected %v and %v", c.Dynamics.NumStates(),
			c.Dynamics.NumActions(), c.States, c.Actions)
	}
	if c.Rewards == nil {
		return fmt.Errorf("validate: rewards cannot be nil")
	}
	rows, cols := c.Rewards.Dims()
	if rows != c.States || cols != c.Actions {
		return fmt.Errorf("validate: rewards have shape (%v, %v), expected "+
			"(%v, %v)", rows, cols, c.States, c.Actions)
	}
	for _, terminal := range c.Terminals {
		if terminal < 0 || terminal >= c.States {
			return fmt.Errorf("validate: terminal state %v ∉ [0, %v)",
				terminal, c.States)
		}
	}
	if c.Cutoff < 0 {
		return fmt.Errorf("validate: cutoff cannot be negative, got %v",
			c.Cutoff)
	}
	return nil
}

// Create returns the MDP that the configuration describes, together
// with the first timestep of the environment. Starting states are
// sampled uniformly from the non-terminal states using the random
// number generator seeded by seed.
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %v", err)
	}

	starter, err := NewNonTerminalStarter(c.States, c.Terminals, seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %v", err)
	}

	task, err := NewGoal(starter, c.Rewards, c.Terminals, c.Cutoff)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %v", err)
	}

	return New(task, c.Dynamics, c.Discount)
}
