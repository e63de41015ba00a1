// Package slavemodel implements a cycle-level AXI4-Lite slave port in front
// of a behavioral Device. The Comp runs the slave half of the five channel
// handshakes with its own throttles, queues accepted requests, and completes
// them on the Device after a configurable latency.
package slavemodel

import (
	"log"

	"github.com/sarchlab/axilite/axi"
	"github.com/sarchlab/axilite/hw"
	"github.com/sarchlab/axilite/master"
	"github.com/sarchlab/axilite/sim"
)

const (
	chanAW = iota
	chanW
	chanB
	chanAR
	chanR

	numChannels
)

type sampleEvent struct {
	*sim.EventBase
}

// A deviceEvent completes one queued access on the Device once its latency
// has elapsed.
type deviceEvent struct {
	*sim.EventBase

	direction axi.Direction
	addr      uint32
	data      uint32
}

type readResult struct {
	value uint32
	code  axi.RespCode
}

// A Comp is the wire-level slave port. It sleeps when the bus is idle and is
// woken by value changes on the master's valid signals.
type Comp struct {
	*sim.TickScheduler

	name    string
	bus     *hw.Bus
	device  Device
	latency int

	throttles [numChannels]*master.Throttle

	awReady, wReady, arReady bool

	awQueue *sim.Buffer[uint32]
	wQueue  *sim.Buffer[uint32]
	arQueue *sim.Buffer[uint32]

	bQueue    *sim.Buffer[axi.RespCode]
	bAsserted bool
	bCurrent  axi.RespCode

	rQueue    *sim.Buffer[readResult]
	rAsserted bool
	rCurrent  readResult

	dirty bool
}

// Name returns the name of the component.
func (c *Comp) Name() string {
	return c.name
}

// Handle processes tick, sampling, and device completion events.
func (c *Comp) Handle(e sim.Event) error {
	switch evt := e.(type) {
	case sim.TickEvent:
		c.drive(evt.Time())
		return nil
	case sampleEvent:
		return c.sample()
	case deviceEvent:
		c.completeAccess(evt)
		return nil
	default:
		log.Panicf("slave %s cannot handle event %T", c.name, e)
		return nil
	}
}

func (c *Comp) drive(now sim.VTimeInSec) {
	c.driveReady(&c.awReady, c.bus.AWReady, c.throttles[chanAW])
	c.driveReady(&c.wReady, c.bus.WReady, c.throttles[chanW])
	c.driveReady(&c.arReady, c.bus.ARReady, c.throttles[chanAR])

	c.driveBChannel()
	c.driveRChannel()

	c.dirty = false

	c.Engine.Schedule(sampleEvent{
		EventBase: sim.NewEventBase(c.Freq.HalfTick(now), c),
	})
}

func (c *Comp) driveReady(state *bool, sig hw.Signal, t *master.Throttle) {
	if !*state && t.Allow() {
		*state = true
	}

	if *state {
		sig.Drive(1)
	} else {
		sig.Drive(0)
	}
}

func (c *Comp) driveBChannel() {
	if !c.bAsserted {
		code, ok := c.bQueue.Peek()
		if ok && c.throttles[chanB].Allow() {
			c.bQueue.Pop()
			c.bCurrent = code
			c.bAsserted = true
		}
	}

	if c.bAsserted {
		c.bus.BResp.Drive(uint64(c.bCurrent))
		c.bus.BValid.Drive(1)
	} else {
		c.bus.BValid.Drive(0)
	}
}

func (c *Comp) driveRChannel() {
	if !c.rAsserted {
		result, ok := c.rQueue.Peek()
		if ok && c.throttles[chanR].Allow() {
			c.rQueue.Pop()
			c.rCurrent = result
			c.rAsserted = true
		}
	}

	if c.rAsserted {
		c.bus.RData.Drive(uint64(c.rCurrent.value))
		c.bus.RResp.Drive(uint64(c.rCurrent.code))
		c.bus.RValid.Drive(1)
	} else {
		c.bus.RValid.Drive(0)
	}
}

func (c *Comp) sample() error {
	anyValid, err := c.sampleRequests()
	if err != nil {
		return err
	}

	if err := c.sampleResponses(); err != nil {
		return err
	}

	c.scheduleAccesses()

	if c.busy(anyValid) {
		c.TickLater()
	}

	return nil
}

func (c *Comp) sampleRequests() (anyValid bool, err error) {
	awValid, err := c.sampleRequest(
		&c.awReady, c.bus.AWValid, c.bus.AWAddr, c.awQueue)
	if err != nil {
		return false, err
	}

	wValid, err := c.sampleRequest(
		&c.wReady, c.bus.WValid, c.bus.WData, c.wQueue)
	if err != nil {
		return false, err
	}

	arValid, err := c.sampleRequest(
		&c.arReady, c.bus.ARValid, c.bus.ARAddr, c.arQueue)
	if err != nil {
		return false, err
	}

	return awValid || wValid || arValid, nil
}

func (c *Comp) sampleRequest(
	ready *bool,
	valid, payload hw.Signal,
	queue *sim.Buffer[uint32],
) (validHigh bool, err error) {
	v, err := valid.Sample()
	if err != nil {
		return false, &axi.ProtocolViolationError{Reason: err.Error()}
	}

	if v == 0 {
		return false, nil
	}

	if !*ready {
		return true, nil
	}

	value, err := payload.Sample()
	if err != nil {
		return true, &axi.ProtocolViolationError{Reason: err.Error()}
	}

	queue.Push(uint32(value))
	*ready = false
	c.dirty = true

	return true, nil
}

func (c *Comp) sampleResponses() error {
	if c.bAsserted {
		delivered, err := c.sampleResponseReady(c.bus.BReady)
		if err != nil {
			return err
		}
		if delivered {
			c.bAsserted = false
			c.dirty = true
		}
	}

	if c.rAsserted {
		delivered, err := c.sampleResponseReady(c.bus.RReady)
		if err != nil {
			return err
		}
		if delivered {
			c.rAsserted = false
			c.dirty = true
		}
	}

	return nil
}

func (c *Comp) sampleResponseReady(ready hw.Signal) (bool, error) {
	r, err := ready.Sample()
	if err != nil {
		return false, &axi.ProtocolViolationError{Reason: err.Error()}
	}

	return r == 1, nil
}

// scheduleAccesses dispatches accepted requests to the Device. A write
// reaches the Device only when both its address and its data are in; the two
// arrive on independent channels and in any order.
func (c *Comp) scheduleAccesses() {
	for c.awQueue.Size() > 0 && c.wQueue.Size() > 0 {
		addr, _ := c.awQueue.Pop()
		data, _ := c.wQueue.Pop()
		c.scheduleAccess(axi.Write, addr, data)
	}

	for {
		addr, ok := c.arQueue.Pop()
		if !ok {
			break
		}
		c.scheduleAccess(axi.Read, addr, 0)
	}
}

func (c *Comp) scheduleAccess(dir axi.Direction, addr, data uint32) {
	t := c.Freq.NCyclesLater(c.latency, c.CurrentTime())
	c.Engine.Schedule(deviceEvent{
		EventBase: sim.NewEventBase(t, c),
		direction: dir,
		addr:      addr,
		data:      data,
	})
}

func (c *Comp) completeAccess(evt deviceEvent) {
	if evt.direction == axi.Write {
		code := c.device.Write(evt.addr, evt.data)
		c.bQueue.Push(code)
	} else {
		value, code := c.device.Read(evt.addr)
		c.rQueue.Push(readResult{value: value, code: code})
	}

	c.TickNow()
}

func (c *Comp) busy(anyValid bool) bool {
	return anyValid || c.dirty ||
		c.bAsserted || c.rAsserted ||
		c.awQueue.Size() > 0 || c.wQueue.Size() > 0 ||
		c.arQueue.Size() > 0 ||
		c.bQueue.Size() > 0 || c.rQueue.Size() > 0
}
