package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary of a run.
type PhaseEvent struct {
	Module  string
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration // set on PhaseEnd
	Note    string
}

// PhaseObserver receives phase events; batch runs call it from several
// goroutines.
type PhaseObserver func(PhaseEvent)
