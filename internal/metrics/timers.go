// Package metrics provides run-phase timers surfaced in the summary
// document's runtime section.
package metrics

import "time"

type Timers struct {
	Timers map[string]*Timer `json:"timers,omitempty"`
	last   string
}

func NewTimers() *Timers {
	return &Timers{Timers: make(map[string]*Timer)}
}

// set starts a timer, or stops it when already running.
func (ts *Timers) set(k string) {
	if _, ok := ts.Timers[k]; !ok {
		ts.Timers[k] = &Timer{start: time.Now()}
	} else {
		ts.Timers[k].Total = time.Since(ts.Timers[k].start).Seconds()
	}
}

// Set stops the previous timer and starts a new one (lap).
func (ts *Timers) Set(k string) {
	if ts.last != "" {
		ts.set(ts.last)
	}
	ts.set(k)
	ts.last = k
}

// Add starts a new timer, or stops it on the second call with the same key.
func (ts *Timers) Add(k string) {
	ts.set(k)
}

type Timer struct {
	start time.Time

	// Total elapsed time in seconds.
	Total float64 `json:"seconds"`
}
