package experiment

import (
	"fmt"
	"time"

	"github.com/samuelfneumann/gomdp/agent"
	env "github.com/samuelfneumann/gomdp/environment"
	"github.com/samuelfneumann/gomdp/experiment/tracker"
	ts "github.com/samuelfneumann/gomdp/timestep"
	"github.com/samuelfneumann/gomdp/utils/progressbar"
)

// Evaluation is an Experiment that runs a fixed policy on an
// environment for a set number of episodes, while an evaluator
// estimates the policy's state values from the generated experience.
type Evaluation struct {
	env.Environment
	agent.Evaluator
	episodes       int
	currentEpisode int
	trackers       []tracker.Tracker
	bar            *progressbar.ProgressBar
}

// NewEvaluation creates and returns a new evaluation experiment on a
// given environment with a given evaluator. The episodes parameter
// determines how many episodes the experiment is run for, and the t
// parameter is a slice of tracker.Tracker which determine what data
// is saved.
func NewEvaluation(e env.Environment, evaluator agent.Evaluator,
	episodes int, t ...tracker.Tracker) *Evaluation {
	return &Evaluation{e, evaluator, episodes, 0, t, nil}
}

// Register registers a tracker.Tracker with the Experiment so that
// data generated during the experiment can be tracked and saved
func (e *Evaluation) Register(t tracker.Tracker) {
	e.trackers = append(e.trackers, t)
}

// ShowProgress displays a progress bar on standard output while the
// experiment runs
func (e *Evaluation) ShowProgress() {
	e.bar = progressbar.New(25, e.episodes, time.Second)
}

// RunEpisode runs a single episode of the experiment, returning
// whether the experiment's episode budget has been exhausted
func (e *Evaluation) RunEpisode() (bool, error) {
	step, err := e.Environment.Reset()
	if err != nil {
		return true, fmt.Errorf("runEpisode: could not reset environment: "+
			"%v", err)
	}
	if err := e.Evaluator.ObserveFirst(step); err != nil {
		return true, fmt.Errorf("runEpisode: %v", err)
	}
	e.track(step)

	for !step.Last() {
		// Select action, step in environment
		action := e.Evaluator.SelectAction(step)
		step, _, err = e.Environment.Step(action)
		if err != nil {
			return true, fmt.Errorf("runEpisode: could not step "+
				"environment: %v", err)
		}

		// Observe the timestep and step the evaluator
		if err := e.Evaluator.Observe(action, step); err != nil {
			return true, fmt.Errorf("runEpisode: %v", err)
		}
		if err := e.Evaluator.Step(); err != nil {
			return true, fmt.Errorf("runEpisode: %v", err)
		}

		// Cache the environment step in each Tracker. Tracking after
		// the evaluator's update keeps tracked value estimates current
		// with the episode's experience.
		e.track(step)
	}
	e.Evaluator.EndEpisode()

	e.currentEpisode++
	if e.bar != nil {
		e.bar.Increment()
	}

	return e.currentEpisode >= e.episodes, nil
}

// Run runs the entire experiment for all episodes
func (e *Evaluation) Run() error {
	for e.currentEpisode < e.episodes {
		if _, err := e.RunEpisode(); err != nil {
			return fmt.Errorf("run: %v", err)
		}
	}
	if e.bar != nil {
		e.bar.Close()
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (e *Evaluation) Save() {
	for _, t := range e.trackers {
		t.Save()
	}
}

// track tracks the current timestep by caching its data in each
// Tracker
func (e *Evaluation) track(step ts.TimeStep) {
	for _, t := range e.trackers {
		t.Track(step)
	}
}
