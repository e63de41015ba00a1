package master

import (
	"fmt"

	"github.com/sarchlab/axilite/axi"
	"github.com/sarchlab/axilite/hw"
	"github.com/sarchlab/axilite/sim"
)

// An outChannel runs the master half of one request channel (AW, W, or AR).
// It drives valid and one payload signal during the drive phase and samples
// ready during the sampling phase. Once valid is asserted, the payload is
// held stable until the transfer completes; the throttle is only consulted
// while valid is low.
type outChannel struct {
	name     string
	valid    hw.Signal
	payload  hw.Signal
	ready    hw.Signal
	throttle *Throttle

	queue    *sim.Buffer[uint64]
	asserted bool
	current  uint64
	dirty    bool
}

func newOutChannel(
	name string,
	valid, payload, ready hw.Signal,
	throttle *Throttle,
) *outChannel {
	return &outChannel{
		name:     name,
		valid:    valid,
		payload:  payload,
		ready:    ready,
		throttle: throttle,
		queue:    sim.NewBuffer[uint64](name+".Queue", 0),
	}
}

func (c *outChannel) enqueue(value uint64) {
	c.queue.Push(value)
}

func (c *outChannel) drive() {
	if !c.asserted {
		v, ok := c.queue.Peek()
		if ok && c.throttle.Allow() {
			c.current = v
			c.asserted = true
		}
	}

	if c.asserted {
		c.payload.Drive(c.current)
		c.valid.Drive(1)
	} else {
		c.valid.Drive(0)
	}

	c.dirty = false
}

func (c *outChannel) sample() (transferred bool, value uint64, err error) {
	if !c.asserted {
		return false, 0, nil
	}

	r, err := c.ready.Sample()
	if err != nil {
		return false, 0, &axi.ProtocolViolationError{Reason: err.Error()}
	}

	if r == 0 {
		return false, 0, nil
	}

	c.queue.Pop()
	c.asserted = false
	c.dirty = true

	return true, c.current, nil
}

// busy reports whether the channel still needs clock cycles, either to move
// queued beats or to bring its signals back to idle.
func (c *outChannel) busy() bool {
	return c.dirty || c.asserted || c.queue.Size() > 0
}

func (c *outChannel) String() string {
	return fmt.Sprintf("%s[queued %d, valid %t]",
		c.name, c.queue.Size(), c.asserted)
}

// An inChannel runs the master half of one response channel (B or R). It
// asserts ready only while responses are expected, throttled per cycle, and
// fills the oldest pending completion on each handshake.
type inChannel struct {
	name     string
	valid    hw.Signal
	resp     hw.Signal
	data     hw.Signal // nil on the B channel
	ready    hw.Signal
	throttle *Throttle

	pending       *sim.Buffer[*completion]
	readyAsserted bool
	dirty         bool
}

func newInChannel(
	name string,
	valid, resp, data, ready hw.Signal,
	throttle *Throttle,
) *inChannel {
	return &inChannel{
		name:     name,
		valid:    valid,
		resp:     resp,
		data:     data,
		ready:    ready,
		throttle: throttle,
		pending:  sim.NewBuffer[*completion](name+".Pending", 0),
	}
}

func (c *inChannel) expect(comp *completion) {
	c.pending.Push(comp)
}

func (c *inChannel) drive() {
	if c.pending.Size() == 0 {
		c.readyAsserted = false
	} else if !c.readyAsserted && c.throttle.Allow() {
		c.readyAsserted = true
	}

	if c.readyAsserted {
		c.ready.Drive(1)
	} else {
		c.ready.Drive(0)
	}

	c.dirty = false
}

func (c *inChannel) sample() (
	transferred bool,
	value uint64,
	code axi.RespCode,
	err error,
) {
	if !c.readyAsserted {
		return false, 0, 0, c.checkUnexpectedOffer()
	}

	v, err := c.valid.Sample()
	if err != nil {
		return false, 0, 0, &axi.ProtocolViolationError{Reason: err.Error()}
	}

	if v == 0 {
		return false, 0, 0, nil
	}

	respValue, err := c.resp.Sample()
	if err != nil {
		return false, 0, 0, &axi.ProtocolViolationError{Reason: err.Error()}
	}
	code = axi.RespCode(respValue)

	var response axi.Response
	if c.data != nil {
		value, err = c.data.Sample()
		if err != nil {
			return false, 0, 0,
				&axi.ProtocolViolationError{Reason: err.Error()}
		}
		response = axi.NewReadResponse(code, axi.Word(uint32(value)))
	} else {
		response = axi.NewWriteResponse(code)
	}

	comp, ok := c.pending.Pop()
	if !ok {
		return false, 0, 0, &axi.ProtocolViolationError{
			Reason: fmt.Sprintf("transfer on %s with no beat expecting it",
				c.name),
		}
	}
	comp.complete(response)

	c.readyAsserted = false
	c.dirty = true

	return true, value, code, nil
}

// checkUnexpectedOffer catches a slave asserting valid while no beat expects
// a response on this channel. A valid that was never driven reads as quiet,
// so a bus with nothing attached to this channel does not trip it.
func (c *inChannel) checkUnexpectedOffer() error {
	if c.pending.Size() > 0 {
		return nil
	}

	v, err := c.valid.Sample()
	if err != nil || v == 0 {
		return nil
	}

	return &axi.ProtocolViolationError{
		Reason: fmt.Sprintf("response offered on %s with no beat expecting it",
			c.name),
	}
}

func (c *inChannel) busy() bool {
	return c.dirty || c.pending.Size() > 0
}

func (c *inChannel) String() string {
	return fmt.Sprintf("%s[pending %d, ready %t]",
		c.name, c.pending.Size(), c.readyAsserted)
}
