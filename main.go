package main

import (
	"fmt"

	"github.com/samuelfneumann/gomdp/agent"
	"github.com/samuelfneumann/gomdp/agent/policy"
	"github.com/samuelfneumann/gomdp/agent/tabular/montecarlo"
	"github.com/samuelfneumann/gomdp/agent/tabular/td"
	"github.com/samuelfneumann/gomdp/agent/tabular/tdlambda"
	"github.com/samuelfneumann/gomdp/environment/tabular"
	"github.com/samuelfneumann/gomdp/experiment"
	"github.com/samuelfneumann/gomdp/utils/matutils"
)

func main() {
	var seed uint64 = 192382

	// A 7-state corridor whose leftmost and rightmost states are
	// terminal. Stepping onto the rightmost state earns reward 1; all
	// other transitions earn 0.
	states := 7
	discount := 0.999

	// Evaluate the uniform random policy with each algorithm. With a
	// shared seed, every evaluator sees exactly the same episodes, so
	// the final estimates differ only by algorithm.
	configs := []agent.Config{
		montecarlo.Config{LearningRate: 0.01, Discount: discount,
			NIter: 1_000},
		td.Config{LearningRate: 0.01, Discount: discount, NIter: 1_000},
		tdlambda.Config{LearningRate: 0.01, Discount: discount,
			Lambda: 0.9, NIter: 1_000},
	}

	for _, conf := range configs {
		env, _, err := tabular.NewChain(states, 1_000, discount, seed)
		if err != nil {
			panic(err)
		}

		p := policy.NewRandom(env, seed)
		evaluator, err := conf.CreateEvaluator(env, p, seed)
		if err != nil {
			panic(err)
		}

		e := experiment.NewEvaluation(env, evaluator, conf.Episodes())
		e.ShowProgress()
		if err := e.Run(); err != nil {
			panic(err)
		}

		fmt.Printf("%v:\n%v\n\n", conf.Type(),
			matutils.Format(evaluator.Values().T()))
	}
}
