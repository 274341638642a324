package montecarlo

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gomdp/agent"
	"github.com/samuelfneumann/gomdp/agent/policy"
	env "github.com/samuelfneumann/gomdp/environment"
	"github.com/samuelfneumann/gomdp/environment/tabular"
)

// fixedStarter always starts episodes in the same state
type fixedStarter struct {
	states int
	state  int
}

func (f fixedStarter) Start() *mat.VecDense {
	obs := mat.NewVecDense(f.states, nil)
	obs.SetVec(f.state, 1.0)
	return obs
}

// newWalk returns a single-action corridor where every step moves one
// state right. States 0 and states-1 are terminal, stepping onto state
// states-1 earns reward 1, and episodes always start in state start.
func newWalk(t *testing.T, states, start int, discount float64) env.Environment {
	dynamics, err := tabular.NewFunctional(states, 1, func(s, a int) int {
		if s == states-1 {
			return s
		}
		return s + 1
	})
	if err != nil {
		t.Fatal(err)
	}

	rewards := mat.NewDense(states, 1, nil)
	rewards.Set(states-2, 0, 1.0)

	task, err := tabular.NewGoal(fixedStarter{states, start}, rewards,
		[]int{0, states - 1}, 0)
	if err != nil {
		t.Fatal(err)
	}

	w, _, err := tabular.New(task, dynamics, discount)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

// runEpisode runs a single episode of e under the evaluator's policy,
// feeding every timestep to the evaluator
func runEpisode(t *testing.T, e env.Environment, ev agent.Evaluator) {
	step, err := e.Reset()
	if err != nil {
		t.Fatal(err)
	}
	if err := ev.ObserveFirst(step); err != nil {
		t.Fatal(err)
	}

	for !step.Last() {
		action := ev.SelectAction(step)
		step, _, err = e.Step(action)
		if err != nil {
			t.Fatal(err)
		}

		if err := ev.Observe(action, step); err != nil {
			t.Fatal(err)
		}
		if err := ev.Step(); err != nil {
			t.Fatal(err)
		}
	}
	ev.EndEpisode()
}

// TestMonteCarloUpdate checks the value estimates after a single
// episode against hand-computed returns. On the 4-state walk the
// episode visits states 1, 2, 3 and earns reward 1 on the final
// transition, so with discount 0.5 the returns are G(1) = 0.5 and
// G(2) = 1.
func TestMonteCarloUpdate(t *testing.T) {
	w := newWalk(t, 4, 1, 0.5)
	p := policy.NewRandom(w, 1)

	mc, err := New(w, p, Config{
		LearningRate: 0.1,
		Discount:     0.5,
		NIter:        1,
	})
	if err != nil {
		t.Fatal(err)
	}

	runEpisode(t, w, mc)

	values := mc.Values()
	wantValues := []float64{0.0, 0.05, 0.1, 0.0}
	for i, want := range wantValues {
		if math.Abs(values.AtVec(i)-want) > 1e-12 {
			t.Errorf("expected state %v to have value %v, got %v", i, want,
				values.AtVec(i))
		}
	}
}

// TestMonteCarloEveryVisit checks that a state visited many times in
// one episode is updated once per visit. The environment has a single
// self-looping state with reward 1 and episodes cut off after 3 steps,
// so state 1 is visited 3 times and with discount 0.5 the returns
// following the visits are 1.75, 1.5, and 1.
func TestMonteCarloEveryVisit(t *testing.T) {
	dynamics, err := tabular.NewFunctional(3, 1, func(s, a int) int {
		if s == 1 {
			return 1
		}
		return s
	})
	if err != nil {
		t.Fatal(err)
	}

	rewards := mat.NewDense(3, 1, nil)
	rewards.Set(1, 0, 1.0)

	task, err := tabular.NewGoal(fixedStarter{3, 1}, rewards, []int{0, 2}, 3)
	if err != nil {
		t.Fatal(err)
	}

	loop, _, err := tabular.New(task, dynamics, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	mc, err := New(loop, policy.NewRandom(loop, 1), Config{
		LearningRate: 0.1,
		Discount:     0.5,
		NIter:        1,
	})
	if err != nil {
		t.Fatal(err)
	}

	runEpisode(t, loop, mc)

	// Three sequential updates of V(1) toward returns 1.75, 1.5, and 1
	want := 0.0
	for _, ret := range []float64{1.75, 1.5, 1.0} {
		want += 0.1 * (ret - want)
	}

	if got := mc.Values().AtVec(1); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected state 1 to have value %v after 3 visits, got %v",
			want, got)
	}
}

// TestMonteCarloUnvisited checks that states never visited keep value
// estimates of exactly 0, including the terminal states
func TestMonteCarloUnvisited(t *testing.T) {
	w := newWalk(t, 7, 3, 0.9)
	p := policy.NewRandom(w, 1)

	mc, err := New(w, p, Config{
		LearningRate: 0.1,
		Discount:     0.9,
		NIter:        10,
	})
	if err != nil {
		t.Fatal(err)
	}

	for ep := 0; ep < 10; ep++ {
		runEpisode(t, w, mc)
	}

	values := mc.Values()
	for _, state := range []int{0, 1, 2, 6} {
		if values.AtVec(state) != 0.0 {
			t.Errorf("expected unvisited state %v to have value 0, got %v",
				state, values.AtVec(state))
		}
	}
	for _, state := range []int{3, 4, 5} {
		if values.AtVec(state) <= 0.0 {
			t.Errorf("expected visited state %v to have a positive value, "+
				"got %v", state, values.AtVec(state))
		}
	}
}

func BenchmarkMonteCarloStep(b *testing.B) {
	seed := uint64(time.Now().UnixNano())

	c, _, err := tabular.NewChain(19, 1_000, 0.99, seed)
	if err != nil {
		b.Fatal(err)
	}
	p := policy.NewRandom(c, seed)

	mc, err := New(c, p, Config{
		LearningRate: 0.01,
		Discount:     0.99,
		NIter:        b.N,
	})
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		step, err := c.Reset()
		if err != nil {
			b.Fatal(err)
		}
		mc.ObserveFirst(step)

		for !step.Last() {
			action := mc.SelectAction(step)
			step, _, err = c.Step(action)
			if err != nil {
				b.Fatal(err)
			}
			mc.Observe(action, step)
			mc.Step()
		}
		mc.EndEpisode()
	}
}
