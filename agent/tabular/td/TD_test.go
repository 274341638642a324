package td

import (
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gomdp/agent"
	"github.com/samuelfneumann/gomdp/agent/policy"
	env "github.com/samuelfneumann/gomdp/environment"
	"github.com/samuelfneumann/gomdp/environment/tabular"
	ts "github.com/samuelfneumann/gomdp/timestep"
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

// TestTDUpdate checks the value estimates after two episodes against
// hand-computed updates. On the 4-state walk every episode makes the
// transitions (1, 2) with reward 0 and (2, 3) with reward 1, so with
// discount 0.5 and learning rate 0.1:
//
// Episode 1 leaves V(1) = 0 and sets V(2) = 0.1.
// Episode 2 sets V(1) = 0.1(0.5*0.1) = 0.005 and V(2) = 0.19.
func TestTDUpdate(t *testing.T) {
	w := newWalk(t, 4, 1, 0.5)
	p := policy.NewRandom(w, 1)

	td, err := New(w, p, Config{
		LearningRate: 0.1,
		Discount:     0.5,
		NIter:        2,
	})
	if err != nil {
		t.Fatal(err)
	}

	runEpisode(t, w, td)
	runEpisode(t, w, td)

	values := td.Values()
	wantValues := []float64{0.0, 0.005, 0.19, 0.0}
	for i, want := range wantValues {
		if math.Abs(values.AtVec(i)-want) > 1e-12 {
			t.Errorf("expected state %v to have value %v, got %v", i, want,
				values.AtVec(i))
		}
	}

	// The TD error of a transition from state 1 to state 2 with reward
	// 0 under the current estimates
	transition := ts.Transition{
		State:     mat.NewVecDense(4, []float64{0, 1, 0, 0}),
		Reward:    0.0,
		Discount:  0.5,
		NextState: mat.NewVecDense(4, []float64{0, 0, 1, 0}),
	}
	want := 0.5*0.19 - 0.005
	if got := td.TdError(transition); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected TD error %v, got %v", want, got)
	}
}

// TestTDConvergence checks that the value estimates converge to the
// true value function on a deterministic corridor. Walking right from
// state 1 of the 7-state walk earns reward 1 on the final transition,
// so the true values are V(s) = discount^(5-s) for states 1 through 5.
func TestTDConvergence(t *testing.T) {
	discount := 0.9
	w := newWalk(t, 7, 1, discount)
	p := policy.NewRandom(w, 1)

	td, err := New(w, p, Config{
		LearningRate: 0.1,
		Discount:     discount,
		NIter:        500,
	})
	if err != nil {
		t.Fatal(err)
	}

	for ep := 0; ep < 500; ep++ {
		runEpisode(t, w, td)
	}

	values := td.Values()
	for state := 1; state <= 5; state++ {
		want := math.Pow(discount, float64(5-state))
		if math.Abs(values.AtVec(state)-want) > 1e-3 {
			t.Errorf("expected state %v to converge to value %v, got %v",
				state, want, values.AtVec(state))
		}
	}
	for _, state := range []int{0, 6} {
		if values.AtVec(state) != 0.0 {
			t.Errorf("expected state %v to have value 0, got %v", state,
				values.AtVec(state))
		}
	}
}

func BenchmarkTDStep(b *testing.B) {
	seed := uint64(time.Now().UnixNano())

	c, _, err := tabular.NewChain(19, 1_000, 0.99, seed)
	if err != nil {
		b.Fatal(err)
	}
	p := policy.NewRandom(c, seed)

	td, err := New(c, p, Config{
		LearningRate: 0.01,
		Discount:     0.99,
		NIter:        b.N,
	})
	if err != nil {
		b.Fatal(err)
	}

	step := c.CurrentTimeStep()
	td.ObserveFirst(step)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if step.Last() {
			step, err = c.Reset()
			if err != nil {
				b.Fatal(err)
			}
			td.ObserveFirst(step)
			continue
		}

		action := td.SelectAction(step)
		step, _, err = c.Step(action)
		if err != nil {
			b.Fatal(err)
		}
		td.Observe(action, step)
		td.Step()
	}
}
