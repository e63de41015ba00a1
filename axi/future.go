package axi

import "log"

type futureState int

const (
	futureUnresolved futureState = iota
	futureOkay
	futureError
)

// A Future is a single-assignment cell that carries a command's eventual
// result. It is resolved exactly once; resolving it twice is a programming
// error and panics.
type Future struct {
	state  futureState
	result any
	err    error
}

// NewFuture creates an unresolved Future.
func NewFuture() *Future {
	return &Future{}
}

// Resolve stores the outcome. A non-nil err resolves the future to the error
// state; otherwise the result is stored.
func (f *Future) Resolve(result any, err error) {
	if f.state != futureUnresolved {
		log.Panic("future resolved twice")
	}

	if err != nil {
		f.state = futureError
		f.err = err
		return
	}

	f.state = futureOkay
	f.result = result
}

// Resolved returns true once the future carries an outcome.
func (f *Future) Resolved() bool {
	return f.state != futureUnresolved
}

// Result returns the stored outcome. Reading an unresolved future is a
// programming error and panics.
func (f *Future) Result() (any, error) {
	switch f.state {
	case futureError:
		return nil, f.err
	case futureOkay:
		return f.result, nil
	default:
		log.Panic("future is unresolved")
		return nil, nil
	}
}
