// Package experiment implements functionality for running an
// experiment
package experiment

import (
	"fmt"

	"github.com/samuelfneumann/gomdp/agent"
	"github.com/samuelfneumann/gomdp/agent/policy"
	"github.com/samuelfneumann/gomdp/environment"
	"github.com/samuelfneumann/gomdp/environment/envconfig"
	"github.com/samuelfneumann/gomdp/experiment/tracker"
	ts "github.com/samuelfneumann/gomdp/timestep"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments track environment TimeSteps, caching data about each
// TimeStep in RAM to be later saved to disk. The Save() function will
// then take all cached data and save it to disk. This is usually
// performed after an experiment has been run. The Run() method runs
// the experiment to completion, and the RunEpisode() method runs a
// single episode.
//
// In order to save data, Experiments use Trackers. Trackers determine
// which data generated during the experiment is saved. Experiments
// send each TimeStep to Trackers using the Tracker's Track() method.
// The Tracker then determines which data from the TimeStep it caches
// and saves. New Trackers can be registered with an Experiment through
// the constructor or through an Experiment's Register() function.
type Experiment interface {
	Run() error
	RunEpisode() (bool, error) // Returns whether the experiment finished

	// Tracks current timestep by sending it to Trackers
	track(ts.TimeStep)

	// Save all tracked data to disk
	Save()

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t tracker.Tracker)
}

type Type string

const (
	EvaluationExp Type = "EvaluationExperiment"
)

// Config represents a configuration of an experiment
type Config struct {
	Type
	EnvConf       envconfig.Config
	EvaluatorConf agent.TypedConfigList
	Policy        agent.PolicyType
}

// CreateExp creates the experiment described by the Config, running
// the evaluator described at index i of the Config's evaluator
// configuration list
func (c Config) CreateExp(i int, seed uint64,
	t []tracker.Tracker) (Experiment, error) {
	env, _, err := c.EnvConf.Create(seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create environment: "+
			"%v", err)
	}

	conf := c.EvaluatorConf.At(i)
	p, err := NewPolicy(c.Policy, env, seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: %v", err)
	}

	evaluator, err := conf.CreateEvaluator(env, p, seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create evaluator: "+
			"%v", err)
	}

	switch c.Type {
	case EvaluationExp:
		return NewEvaluation(env, evaluator, conf.Episodes(), t...), nil
	}

	return nil, fmt.Errorf("createExp: no such experiment type %v", c.Type)
}

// NewPolicy returns a new policy of type policyType for selecting
// actions in env
func NewPolicy(policyType agent.PolicyType, env environment.Environment,
	seed uint64) (agent.Policy, error) {
	switch policyType {
	case agent.Random:
		return policy.NewRandom(env, seed), nil

	case agent.Uniform:
		return policy.NewContinuous(env.ActionSpec(), seed), nil
	}

	return nil, fmt.Errorf("newPolicy: no such policy type %v", policyType)
}
