// Package hw models the wire-level view of the simulated hardware: named
// signals that one side drives and the other side samples, plus the bundle of
// signals that makes up an AXI4-Lite port.
package hw

import (
	"fmt"

	"github.com/sarchlab/axilite/sim"
)

// HookPosSigDrive marks when a new value is driven on a signal. Components
// that react to peer activity (e.g., a slave watching for awvalid) register
// hooks here to wake up.
var HookPosSigDrive = &sim.HookPos{Name: "Signal Drive"}

// A Signal is a named wire. One component drives it, any component can sample
// it. Sampling a signal that has never been driven is an error, mirroring an
// unresolvable value in a logic simulator.
type Signal interface {
	sim.Named
	sim.Hookable

	Drive(value uint64)
	Sample() (uint64, error)
}

// Reg is an in-process Signal that latches the last driven value.
type Reg struct {
	sim.HookableBase

	name   string
	value  uint64
	driven bool
}

// NewReg creates a named in-memory signal.
func NewReg(name string) *Reg {
	return &Reg{name: name}
}

// Name returns the name of the signal.
func (r *Reg) Name() string {
	return r.name
}

// Drive latches a value on the signal. The value persists until the next
// Drive call. Hooks fire only when the value changes, so that wake-up hooks
// do not loop on idle re-drives.
func (r *Reg) Drive(value uint64) {
	changed := !r.driven || r.value != value
	r.value = value
	r.driven = true

	if changed && r.NumHooks() > 0 {
		r.InvokeHook(sim.HookCtx{
			Domain: r,
			Pos:    HookPosSigDrive,
			Item:   value,
		})
	}
}

// Sample returns the currently latched value.
func (r *Reg) Sample() (uint64, error) {
	if !r.driven {
		return 0, fmt.Errorf("signal %s sampled but never driven", r.name)
	}

	return r.value, nil
}
