package sim

import (
	"log"
	"math"
	"reflect"
)

// A SerialEngine is an Engine that always runs events one after another.
type SerialEngine struct {
	time  VTimeInSec
	queue *eventQueue
}

// NewSerialEngine creates a SerialEngine.
func NewSerialEngine() *SerialEngine {
	e := new(SerialEngine)
	e.queue = newEventQueue()

	return e
}

// Schedule registers an event to happen in the future.
func (e *SerialEngine) Schedule(evt Event) {
	if evt.Time() < e.time {
		log.Panicf(
			"cannot schedule event in the past, evt %s @ %.10f, now %.10f",
			reflect.TypeOf(evt), evt.Time(), e.time,
		)
	}

	e.queue.Push(evt)
}

// Run processes all the events scheduled in the SerialEngine. It terminates
// when the event queue drains, or when an event handler reports an error.
func (e *SerialEngine) Run() error {
	return e.RunUntil(VTimeInSec(math.Inf(1)))
}

// RunUntil processes events in time order until all the events no later than
// t are handled.
func (e *SerialEngine) RunUntil(t VTimeInSec) error {
	for e.queue.Len() > 0 {
		if e.queue.Peek().Time() > t {
			return nil
		}

		evt := e.queue.Pop()
		e.time = evt.Time()

		if err := evt.Handler().Handle(evt); err != nil {
			return err
		}
	}

	return nil
}

// CurrentTime returns the time of the most recently triggered event.
func (e *SerialEngine) CurrentTime() VTimeInSec {
	return e.time
}
