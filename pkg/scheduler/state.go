package scheduler

// State is a phase of a scheduling run.
type State string

const (
	StateInitialized   State = "initialized"
	StateSeeding       State = "seeding"
	StateDraining      State = "draining"
	StateCompleted     State = "completed"
	StateCycleDetected State = "cycle_detected"
)

func (s State) String() string { return string(s) }
