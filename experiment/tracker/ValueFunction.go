package tracker

import (
	"encoding/gob"
	"log"
	"os"

	"github.com/samuelfneumann/gomdp/agent"
	ts "github.com/samuelfneumann/gomdp/timestep"
)

// ValueFunction periodically snapshots the state value estimates of an
// evaluator during an experiment. A snapshot of the evaluator's value
// estimates is recorded every interval episodes, and all snapshots are
// saved to disk once the experiment has finished. Snapshots let the
// convergence of an evaluator be inspected after an experiment.
type ValueFunction struct {
	evaluator agent.Evaluator
	interval  int
	episodes  int
	snapshots [][]float64
	filename  string
}

// NewValueFunction returns a Tracker that snapshots the value
// estimates of evaluator every interval episodes and saves them at the
// specified location filename
func NewValueFunction(evaluator agent.Evaluator, interval int,
	filename string) Tracker {
	if interval <= 0 {
		panic("newValueFunction: interval must be positive")
	}

	return &ValueFunction{
		evaluator: evaluator,
		interval:  interval,
		filename:  filename,
	}
}

// Track counts the episodes in the experiment and snapshots the
// evaluator's value estimates on the last timestep of every interval'th
// episode
func (v *ValueFunction) Track(step ts.TimeStep) {
	if !step.Last() {
		return
	}

	v.episodes++
	if v.episodes%v.interval != 0 {
		return
	}

	values := v.evaluator.Values()
	snapshot := make([]float64, values.Len())
	copy(snapshot, values.RawVector().Data)
	v.snapshots = append(v.snapshots, snapshot)
}

// Save saves all snapshots taken by the ValueFunction Tracker to disk
func (v *ValueFunction) Save() {
	file, err := os.Create(v.filename)
	if err != nil {
		log.Fatalf("could not open save file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err = en.Encode(v.snapshots); err != nil {
		log.Fatalf("could not encode value function data: %v", err)
	}
}

// LoadValueFunction loads and returns the snapshots saved by a
// ValueFunction Tracker
func LoadValueFunction(filename string) [][]float64 {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	var data [][]float64

	err = dec.Decode(&data)
	if err != nil {
		log.Fatalf("could not decode data: %v", err)
	}

	return data
}
