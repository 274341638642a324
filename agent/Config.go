package agent

import (
	"fmt"
	"reflect"

	"github.com/samuelfneumann/gomdp/environment"
)

// Config represents a configuration for creating an Evaluator
type Config interface {
	// CreateEvaluator creates the evaluator that the config describes,
	// which estimates the value function of policy p on env
	CreateEvaluator(env environment.Environment, p Policy,
		seed uint64) (Evaluator, error)

	// ValidEvaluator returns whether the argument evaluator is valid
	// for the Config
	ValidEvaluator(Evaluator) bool

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the type of the configuration
	Type() Type

	// Episodes returns the number of episodes that the evaluator
	// should be run for
	Episodes() int
}

// PolicyType represents a type of distribution that a policy could be
type PolicyType string

const (
	Random  PolicyType = "UniformRandom"
	Uniform PolicyType = "UniformContinuous"
)

// ConfigList represents a list of Config's, where each field of the
// concrete ConfigList is a slice of values for the corresponding field
// of the Config. The list holds one Config for each combination of
// field values, so its length is the product of the lengths of its
// fields.
type ConfigList interface {
	// Config returns an empty Config of the type that the list holds
	Config() Config

	// Type returns the type of the configurations in the list
	Type() Type

	// NumFields returns the number of settable fields of the Config's
	// in the list
	NumFields() int

	// Len returns the number of Config's in the list
	Len() int
}

// ConfigAt returns the Config at index i in a ConfigList. Configs are
// ordered by the cross product of the list's fields, with earlier
// fields varying fastest.
func ConfigAt(i int, list ConfigList) Config {
	if i < 0 || i >= list.Len() {
		panic(fmt.Sprintf("configAt: index out of range [%v] with length %v",
			i, list.Len()))
	}

	listValue := reflect.ValueOf(list)
	listType := listValue.Type()

	config := reflect.New(reflect.TypeOf(list.Config())).Elem()
	for field := 0; field < list.NumFields(); field++ {
		options := listValue.Field(field)
		if options.Len() == 0 {
			panic(fmt.Sprintf("configAt: no values for field %v",
				listType.Field(field).Name))
		}

		index := i % options.Len()
		i /= options.Len()
		config.FieldByName(listType.Field(field).Name).Set(options.Index(index))
	}

	return config.Interface().(Config)
}
