// Package envconfig provides configuration structs for configuring
// environments with default parameters and tasks. Environment
// configurations in this package are JSON serializable.
package envconfig

import (
	"fmt"

	env "github.com/samuelfneumann/gomdp/environment"
	"github.com/samuelfneumann/gomdp/environment/tabular"
	ts "github.com/samuelfneumann/gomdp/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Chain EnvName = "Chain"
)

// Config implements a specific configuration of a specific
// environment. The States field determines the number of states in the
// environment, and EpisodeCutoff the maximum number of timesteps per
// episode, with 0 meaning that episodes are never cut off.
type Config struct {
	Environment   EnvName
	States        uint
	EpisodeCutoff uint
	Discount      float64
}

// NewConfig returns a new environment Config
func NewConfig(envName EnvName, states, episodeCutoff uint,
	discount float64) Config {
	return Config{
		Environment:   envName,
		States:        states,
		EpisodeCutoff: episodeCutoff,
		Discount:      discount,
	}
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	switch c.Environment {
	case Chain:
		return CreateChain(int(c.States), int(c.EpisodeCutoff), c.Discount,
			seed)
	}

	return nil, ts.TimeStep{}, fmt.Errorf("create: cannot create "+
		"environment %v, no such environment", c.Environment)
}

// CreateChain is a factory for creating a chain environment with
// default task parameters
func CreateChain(states, cutoff int, discount float64,
	seed uint64) (env.Environment, ts.TimeStep, error) {
	return tabular.NewChain(states, cutoff, discount, seed)
}
