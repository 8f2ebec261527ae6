package models

import (
	"fmt"

	"github.com/gitrdm/fdprop/pkg/fd"
)

// Job is an activity of a Schedule.
type Job struct {
	Name     string
	Duration int
	Demand   int
}

// ScheduleModel places jobs on one shared resource within a horizon.
type ScheduleModel struct {
	*Model
	Jobs   []Job
	Starts []*fd.IntVar
}

// Schedule starts every job in [0, horizon-duration] so that the summed
// demand of the jobs running at any time stays within capacity.
func Schedule(jobs []Job, capacity, horizon int, opts ...fd.StoreOption) (*ScheduleModel, error) {
	s := fd.NewStore(opts...)
	starts := make([]*fd.IntVar, len(jobs))
	tasks := make([]fd.Task, len(jobs))
	for i, j := range jobs {
		if j.Duration > horizon {
			return nil, fmt.Errorf("schedule: job %s lasts %d, longer than the horizon %d", j.Name, j.Duration, horizon)
		}
		starts[i] = s.NewIntVar(j.Name, 0, horizon-j.Duration)
		tasks[i] = fd.Task{Start: starts[i], Duration: j.Duration, Resource: j.Demand}
	}
	limit := s.NewIntVar("capacity", 0, capacity)
	c, err := fd.NewCumulative(tasks, limit)
	if err != nil {
		return nil, err
	}
	if err := s.Impose(c); err != nil {
		return nil, err
	}
	return &ScheduleModel{Model: &Model{Store: s, Decision: starts}, Jobs: jobs, Starts: starts}, nil
}

// Load returns the summed demand at every time of [0, horizon) for the
// given start times.
func Load(jobs []Job, starts []int, horizon int) []int {
	load := make([]int, horizon)
	for i, j := range jobs {
		for t := starts[i]; t < starts[i]+j.Duration && t < horizon; t++ {
			load[t] += j.Demand
		}
	}
	return load
}
