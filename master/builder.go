package master

import (
	"log"

	"github.com/sarchlab/axilite/axi"
	"github.com/sarchlab/axilite/hw"
	"github.com/sarchlab/axilite/sim"
)

// Builder can build dispatchers.
type Builder struct {
	engine        sim.Engine
	freq          sim.Freq
	bus           *hw.Bus
	prob          float64
	seed          int64
	timeoutCycles int
}

// MakeBuilder creates a builder with default parameters: 1GHz clock, a
// throttle probability of 0.8, seed 1, and no timeout.
func MakeBuilder() Builder {
	return Builder{
		freq: 1 * sim.GHz,
		prob: 0.8,
		seed: 1,
	}
}

// WithEngine sets the engine that drives the dispatcher.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithBus sets the bus the dispatcher masters.
func (b Builder) WithBus(bus *hw.Bus) Builder {
	b.bus = bus
	return b
}

// WithThrottleProbability sets the per-cycle probability that each channel
// asserts its handshake signal.
func (b Builder) WithThrottleProbability(prob float64) Builder {
	b.prob = prob
	return b
}

// WithSeed sets the base seed for the per-channel throttles.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithTimeoutCycles bounds how many cycles a Send may run before it reports
// a stall. Zero means no bound.
func (b Builder) WithTimeoutCycles(cycles int) Builder {
	b.timeoutCycles = cycles
	return b
}

// Build creates the dispatcher and drives the master-owned handshake signals
// to their idle values.
func (b Builder) Build(name string) *Dispatcher {
	if b.engine == nil {
		log.Panic("dispatcher must have an engine")
	}
	if b.bus == nil {
		log.Panic("dispatcher must have a bus")
	}

	d := &Dispatcher{
		name:    name,
		bus:     b.bus,
		ops:     sim.NewBuffer[axi.Op](name+".OpQueue", 0),
		opOwner: make(map[*axi.BusCommand]*inflightCommand),

		timeoutCycles: b.timeoutCycles,
	}
	d.TickScheduler = sim.NewTickScheduler(d, b.engine, b.freq)

	d.aw = newOutChannel("AW",
		b.bus.AWValid, b.bus.AWAddr, b.bus.AWReady,
		NewThrottle(b.prob, b.seed+seedOffsetAW))
	d.w = newOutChannel("W",
		b.bus.WValid, b.bus.WData, b.bus.WReady,
		NewThrottle(b.prob, b.seed+seedOffsetW))
	d.ar = newOutChannel("AR",
		b.bus.ARValid, b.bus.ARAddr, b.bus.ARReady,
		NewThrottle(b.prob, b.seed+seedOffsetAR))
	d.b = newInChannel("B",
		b.bus.BValid, b.bus.BResp, nil, b.bus.BReady,
		NewThrottle(b.prob, b.seed+seedOffsetB))
	d.r = newInChannel("R",
		b.bus.RValid, b.bus.RResp, b.bus.RData, b.bus.RReady,
		NewThrottle(b.prob, b.seed+seedOffsetR))

	b.bus.AWValid.Drive(0)
	b.bus.WValid.Drive(0)
	b.bus.ARValid.Drive(0)
	b.bus.BReady.Drive(0)
	b.bus.RReady.Drive(0)

	return d
}
