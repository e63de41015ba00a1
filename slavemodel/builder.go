package slavemodel

import (
	"log"

	"github.com/sarchlab/axilite/axi"
	"github.com/sarchlab/axilite/hw"
	"github.com/sarchlab/axilite/master"
	"github.com/sarchlab/axilite/sim"
)

// A wakeHook ticks the slave when a master valid signal changes, so that an
// idle slave does not need to poll the bus.
type wakeHook struct {
	comp *Comp
}

func (h wakeHook) Func(_ sim.HookCtx) {
	h.comp.TickNow()
}

// Builder can build slave components.
type Builder struct {
	engine  sim.Engine
	freq    sim.Freq
	bus     *hw.Bus
	device  Device
	latency int
	prob    float64
	seed    int64
}

// MakeBuilder creates a builder with default parameters: 1GHz clock, a
// throttle probability of 0.8, seed 1, and single-cycle device access.
func MakeBuilder() Builder {
	return Builder{
		freq:    1 * sim.GHz,
		latency: 1,
		prob:    0.8,
		seed:    1,
	}
}

// WithEngine sets the engine that drives the component.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithBus sets the bus the component serves.
func (b Builder) WithBus(bus *hw.Bus) Builder {
	b.bus = bus
	return b
}

// WithDevice sets the behavioral model behind the port.
func (b Builder) WithDevice(device Device) Builder {
	b.device = device
	return b
}

// WithLatency sets the number of cycles between accepting a request and
// offering its response.
func (b Builder) WithLatency(cycles int) Builder {
	b.latency = cycles
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

// Build creates the slave, drives the slave-owned signals to their idle
// values, and hooks the master valid signals for wake-up.
func (b Builder) Build(name string) *Comp {
	if b.engine == nil {
		log.Panic("slave must have an engine")
	}
	if b.bus == nil {
		log.Panic("slave must have a bus")
	}
	if b.device == nil {
		log.Panic("slave must have a device")
	}

	c := &Comp{
		name:    name,
		bus:     b.bus,
		device:  b.device,
		latency: b.latency,

		awQueue: sim.NewBuffer[uint32](name+".AWQueue", 0),
		wQueue:  sim.NewBuffer[uint32](name+".WQueue", 0),
		arQueue: sim.NewBuffer[uint32](name+".ARQueue", 0),
		bQueue:  sim.NewBuffer[axi.RespCode](name+".BQueue", 0),
		rQueue:  sim.NewBuffer[readResult](name+".RQueue", 0),
	}
	c.TickScheduler = sim.NewTickScheduler(c, b.engine, b.freq)

	for i := 0; i < numChannels; i++ {
		c.throttles[i] = master.NewThrottle(b.prob, b.seed+int64(i))
	}

	b.bus.AWReady.Drive(0)
	b.bus.WReady.Drive(0)
	b.bus.ARReady.Drive(0)
	b.bus.BValid.Drive(0)
	b.bus.RValid.Drive(0)

	b.bus.AWValid.AcceptHook(wakeHook{comp: c})
	b.bus.WValid.AcceptHook(wakeHook{comp: c})
	b.bus.ARValid.AcceptHook(wakeHook{comp: c})

	return c
}
