package td

import (
	"fmt"
	"reflect"

	"github.com/samuelfneumann/gomdp/agent"
	env "github.com/samuelfneumann/gomdp/environment"
)

func init() {
	// Register ConfigList type so that it can be typed using
	// agent.TypedConfigList to help with serialization/deserialization.
	agent.Register(agent.TDTabular, ConfigList{})
}

// ConfigList implements functionality for storing a number of Config's
// in a simple manner. Instead of storing a slice of Configs, the
// ConfigList stores the values that each Config field should take,
// and holds one Config for every combination of its field values.
type ConfigList struct {
	LearningRate []float64
	Discount     []float64
	NIter        []int
	PrintEvery   []int
}

// NewConfigList returns a new ConfigList as an agent.TypedConfigList
func NewConfigList(learningRate, discount []float64, nIter,
	printEvery []int) agent.TypedConfigList {
	configs := ConfigList{
		LearningRate: learningRate,
		Discount:     discount,
		NIter:        nIter,
		PrintEvery:   printEvery,
	}

	return agent.NewTypedConfigList(configs)
}

// Config returns an empty Config of the type stored by the list
func (c ConfigList) Config() agent.Config {
	return Config{}
}

// Type returns the type of the configurations stored in the list
func (c ConfigList) Type() agent.Type {
	return Config{}.Type()
}

// NumFields returns the number of settable fields of the Config's in
// the list
func (c ConfigList) NumFields() int {
	rValue := reflect.ValueOf(c)
	return rValue.NumField()
}

// Len returns the number of Config's stored in the list
func (c ConfigList) Len() int {
	return len(c.LearningRate) * len(c.Discount) * len(c.NIter) *
		len(c.PrintEvery)
}

// Config implements a configuration for one-step TD policy evaluation.
// NIter is the number of episodes that the evaluator should be run
// for. If PrintEvery is positive, the state value estimates are
// printed every PrintEvery episodes.
type Config struct {
	LearningRate float64
	Discount     float64
	NIter        int
	PrintEvery   int
}

// CreateEvaluator creates a new one-step TD evaluator of the policy p
// on e based on the configuration
func (c Config) CreateEvaluator(e env.Environment, p agent.Policy,
	seed uint64) (agent.Evaluator, error) {
	return New(e, p, c)
}

// ValidEvaluator returns whether the argument evaluator is a valid
// evaluator for this Config
func (c Config) ValidEvaluator(a agent.Evaluator) bool {
	_, ok := a.(*TD)
	return ok
}

// Validate returns an error describing whether or not the
// configuration is valid
func (c Config) Validate() error {
	if c.LearningRate <= 0 {
		return fmt.Errorf("validate: learning rate must be positive, "+
			"got %v", c.LearningRate)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1], got %v",
			c.Discount)
	}
	if c.NIter < 0 {
		return fmt.Errorf("validate: nIter cannot be negative, got %v",
			c.NIter)
	}
	return nil
}

// Type returns the type of the configuration
func (c Config) Type() agent.Type {
	return agent.TDTabular
}

// Episodes returns the number of episodes that the evaluator should be
// run for
func (c Config) Episodes() int {
	return c.NIter
}
