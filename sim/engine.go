package sim

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}

// EventScheduler can be used to schedule future events.
type EventScheduler interface {
	Schedule(e Event)
}

// An Engine is a unit that keeps a discrete event simulation running.
type Engine interface {
	TimeTeller
	EventScheduler

	// Run processes all the events until no event is left or until a handler
	// returns an error. The error, if any, is returned to the caller.
	Run() error

	// RunUntil behaves like Run, but stops after all the events no later than
	// time t are processed. Events scheduled after t remain in the queue, so
	// that a later RunUntil or Run call can continue the simulation.
	RunUntil(t VTimeInSec) error
}
