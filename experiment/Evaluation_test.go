package experiment

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/gomdp/agent"
	"github.com/samuelfneumann/gomdp/agent/policy"
	"github.com/samuelfneumann/gomdp/agent/tabular/montecarlo"
	"github.com/samuelfneumann/gomdp/agent/tabular/td"
	"github.com/samuelfneumann/gomdp/environment/envconfig"
	"github.com/samuelfneumann/gomdp/environment/tabular"
	"github.com/samuelfneumann/gomdp/experiment/tracker"
)

// TestEvaluationCorridor runs Monte Carlo and TD evaluation of the
// uniform random policy on the 7-state chain. Under the random policy
// the chain is a random walk, so the probability of ending an episode
// at the rewarding right end, and with it the undiscounted true value,
// is s/6 for state s. Both evaluators should land near the true
// values and close to each other.
func TestEvaluationCorridor(t *testing.T) {
	seed := uint64(192382)

	mcChain, _, err := tabular.NewChain(7, 1_000, 0.999, seed)
	if err != nil {
		t.Fatal(err)
	}
	tdChain, _, err := tabular.NewChain(7, 1_000, 0.999, seed)
	if err != nil {
		t.Fatal(err)
	}

	mcEval, err := montecarlo.New(mcChain, policy.NewRandom(mcChain, seed),
		montecarlo.Config{
			LearningRate: 0.01,
			Discount:     0.999,
			NIter:        1_000,
		})
	if err != nil {
		t.Fatal(err)
	}
	tdEval, err := td.New(tdChain, policy.NewRandom(tdChain, seed),
		td.Config{
			LearningRate: 0.01,
			Discount:     0.999,
			NIter:        1_000,
		})
	if err != nil {
		t.Fatal(err)
	}

	if err := NewEvaluation(mcChain, mcEval, 1_000).Run(); err != nil {
		t.Fatal(err)
	}
	if err := NewEvaluation(tdChain, tdEval, 1_000).Run(); err != nil {
		t.Fatal(err)
	}

	mcValues, tdValues := mcEval.Values(), tdEval.Values()

	for _, state := range []int{0, 6} {
		if mcValues.AtVec(state) != 0.0 || tdValues.AtVec(state) != 0.0 {
			t.Errorf("expected terminal state %v to keep value 0, got %v "+
				"(MC) and %v (TD)", state, mcValues.AtVec(state),
				tdValues.AtVec(state))
		}
	}

	for state := 1; state <= 5; state++ {
		want := float64(state) / 6.0
		if math.Abs(mcValues.AtVec(state)-want) > 0.15 {
			t.Errorf("expected the MC value of state %v to be near %v, "+
				"got %v", state, want, mcValues.AtVec(state))
		}
		if math.Abs(tdValues.AtVec(state)-want) > 0.15 {
			t.Errorf("expected the TD value of state %v to be near %v, "+
				"got %v", state, want, tdValues.AtVec(state))
		}
		if diff := mcValues.AtVec(state) - tdValues.AtVec(state); math.Abs(
			diff) > 0.1 {
			t.Errorf("MC and TD values of state %v differ by %v", state,
				diff)
		}
	}

	// Values should increase toward the rewarding end of the chain
	for state := 1; state < 5; state++ {
		if mcValues.AtVec(state+1) < mcValues.AtVec(state)-0.05 {
			t.Errorf("expected MC values to increase along the chain, got "+
				"%v at state %v and %v at state %v",
				mcValues.AtVec(state), state, mcValues.AtVec(state+1), state+1)
		}
		if tdValues.AtVec(state+1) < tdValues.AtVec(state)-0.05 {
			t.Errorf("expected TD values to increase along the chain, got "+
				"%v at state %v and %v at state %v",
				tdValues.AtVec(state), state, tdValues.AtVec(state+1), state+1)
		}
	}
}

// TestEvaluationZeroEpisodes checks that an experiment over zero
// episodes leaves the value estimates untouched
func TestEvaluationZeroEpisodes(t *testing.T) {
	c, _, err := tabular.NewChain(5, 0, 1.0, 3)
	if err != nil {
		t.Fatal(err)
	}

	mc, err := montecarlo.New(c, policy.NewRandom(c, 3), montecarlo.Config{
		LearningRate: 0.1,
		Discount:     1.0,
		NIter:        0,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := NewEvaluation(c, mc, 0).Run(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if mc.Values().AtVec(i) != 0.0 {
			t.Errorf("expected state %v to keep value 0 after zero "+
				"episodes, got %v", i, mc.Values().AtVec(i))
		}
	}
}

// TestEvaluationTracks runs an experiment with registered Trackers and
// checks the data they save
func TestEvaluationTracks(t *testing.T) {
	dir := t.TempDir()
	returnFile := filepath.Join(dir, "returns.bin")
	lengthFile := filepath.Join(dir, "lengths.bin")
	valueFile := filepath.Join(dir, "values.bin")

	c, _, err := tabular.NewChain(5, 0, 1.0, 21)
	if err != nil {
		t.Fatal(err)
	}
	mc, err := montecarlo.New(c, policy.NewRandom(c, 21), montecarlo.Config{
		LearningRate: 0.01,
		Discount:     1.0,
		NIter:        20,
	})
	if err != nil {
		t.Fatal(err)
	}

	e := NewEvaluation(c, mc, 20, tracker.NewReturn(returnFile),
		tracker.NewEpisodeLength(lengthFile))
	e.Register(tracker.NewValueFunction(mc, 5, valueFile))

	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	e.Save()

	returns := tracker.LoadData(returnFile)
	if len(returns) != 20 {
		t.Fatalf("expected 20 episodic returns, got %v", len(returns))
	}
	for i, ret := range returns {
		// Chain episodes earn reward 1 at the right end and 0 elsewhere
		if ret != 0.0 && ret != tabular.ChainGoalReward {
			t.Errorf("expected episode %v to have return 0 or %v, got %v",
				i, tabular.ChainGoalReward, ret)
		}
	}

	lengths := tracker.LoadData(lengthFile)
	if len(lengths) != 20 {
		t.Fatalf("expected 20 episode lengths, got %v", len(lengths))
	}
	for i, length := range lengths {
		if length < 1 {
			t.Errorf("expected episode %v to last at least 1 step, got %v",
				i, length)
		}
	}

	snapshots := tracker.LoadValueFunction(valueFile)
	if len(snapshots) != 4 {
		t.Fatalf("expected 4 value function snapshots, got %v",
			len(snapshots))
	}
	for i, snapshot := range snapshots {
		if len(snapshot) != 5 {
			t.Errorf("expected snapshot %v to cover 5 states, got %v", i,
				len(snapshot))
		}
	}
}

// TestCreateExp creates and runs an experiment for every evaluator
// configuration in a Config's list
func TestCreateExp(t *testing.T) {
	conf := Config{
		Type:    EvaluationExp,
		EnvConf: envconfig.NewConfig(envconfig.Chain, 5, 100, 0.9),
		EvaluatorConf: montecarlo.NewConfigList(
			[]float64{0.1, 0.01},
			[]float64{0.9},
			[]int{5},
			[]int{0},
		),
		Policy: agent.Random,
	}

	for i := 0; i < conf.EvaluatorConf.Len(); i++ {
		e, err := conf.CreateExp(i, 14, nil)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := e.(*Evaluation); !ok {
			t.Fatalf("expected an *Evaluation experiment, got %T", e)
		}
		if err := e.Run(); err != nil {
			t.Error(err)
		}
	}

	bad := conf
	bad.Type = "NoSuchExperiment"
	if _, err := bad.CreateExp(0, 14, nil); err == nil {
		t.Error("expected an error for an unknown experiment type")
	}
}

func TestNewPolicyUnknown(t *testing.T) {
	c, _, err := tabular.NewChain(3, 0, 1.0, 1)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewPolicy("NoSuchPolicy", c, 1); err == nil {
		t.Error("expected an error for an unknown policy type")
	}
}
