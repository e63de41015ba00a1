// Package master implements an AXI4-Lite bus master. A Dispatcher decomposes
// commands into per-channel beats, plays them against a hw.Bus through five
// throttled channel processors, and aggregates the response streams back into
// command results.
//
// Each clock cycle has two phases. On the tick, every channel drives its
// outputs. Half a period later, every channel samples the opposing side, and
// a handshake where both valid and ready read 1 moves one beat.
package master

import (
	"fmt"
	"log"
	"strings"

	"github.com/sarchlab/axilite/axi"
	"github.com/sarchlab/axilite/hw"
	"github.com/sarchlab/axilite/sim"
)

// HookPosTransfer marks a completed handshake on any of the five channels.
// The HookCtx Item is a Transfer.
var HookPosTransfer = &sim.HookPos{Name: "Channel Transfer"}

// A Transfer describes one completed handshake for hooks and tracers. Value
// carries the address on AW and AR, the data on W and R, and 0 on B. Resp is
// only meaningful on B and R.
type Transfer struct {
	Channel string
	Time    sim.VTimeInSec
	Value   uint64
	Resp    axi.RespCode
}

type sampleEvent struct {
	*sim.EventBase
}

// An inflightCommand tracks one submitted command until all the completions
// of its beats are filled. Completions are only created when the beats are
// issued to the channels, so the expected counts guard against retiring a
// command whose beats are still queued.
type inflightCommand struct {
	command axi.Command

	expectedWrites int
	expectedReads  int
	writes         []*completion
	reads          []*completion
}

func (c *inflightCommand) retired() bool {
	if len(c.writes) < c.expectedWrites || len(c.reads) < c.expectedReads {
		return false
	}

	for _, comp := range c.writes {
		if !comp.done {
			return false
		}
	}
	for _, comp := range c.reads {
		if !comp.done {
			return false
		}
	}

	return true
}

// A Dispatcher is the command-level view of a bus master. Commands are
// submitted in order; their beats are pipelined onto the channels, and their
// futures resolve in submission order as the responses return.
type Dispatcher struct {
	*sim.TickScheduler
	sim.HookableBase

	name string
	bus  *hw.Bus

	aw, w, ar *outChannel
	b, r      *inChannel

	ops           *sim.Buffer[axi.Op]
	opOwner       map[*axi.BusCommand]*inflightCommand
	waitRemaining int
	inflight      []*inflightCommand

	timeoutCycles int
}

// Name returns the name of the dispatcher.
func (d *Dispatcher) Name() string {
	return d.name
}

// Submit queues a command for execution without advancing the simulation.
// The command's Future resolves once a later Run or Send drains its beats.
func (d *Dispatcher) Submit(cmd axi.Command) {
	record := &inflightCommand{command: cmd}

	for _, op := range cmd.Ops() {
		d.ops.Push(op)

		bus, ok := op.(*axi.BusCommand)
		if !ok {
			continue
		}

		d.opOwner[bus] = record
		if bus.Direction == axi.Write {
			record.expectedWrites += bus.Length
		} else {
			record.expectedReads += bus.Length
		}
	}

	d.inflight = append(d.inflight, record)
	d.TickNow()
}

// Send submits a command and runs the simulation until its Future resolves,
// returning the command's result.
func (d *Dispatcher) Send(cmd axi.Command) (any, error) {
	d.Submit(cmd)

	if err := d.drain(); err != nil {
		return nil, err
	}

	if !cmd.Future().Resolved() {
		return nil, d.stallError(cmd)
	}

	return cmd.Future().Result()
}

// SubmitWrite queues a write of consecutive words starting at addr and
// returns the command so the caller can inspect its Future later.
func (d *Dispatcher) SubmitWrite(
	addr uint32,
	data []uint32,
	description string,
) *axi.BusCommand {
	cmd := axi.SetUnsigneds(addr, data, description)
	d.Submit(cmd)

	return cmd
}

// SubmitRead queues a read of length consecutive words starting at addr and
// returns the command so the caller can inspect its Future later.
func (d *Dispatcher) SubmitRead(
	addr uint32,
	length int,
	description string,
) *axi.BusCommand {
	cmd := axi.BusCommandBuilder{}.
		WithStartAddress(addr).
		WithLength(length).
		WithDirection(axi.Read).
		WithDescription(description).
		Build()
	d.Submit(cmd)

	return cmd
}

// Write sends a blocking write of consecutive words starting at addr.
func (d *Dispatcher) Write(
	addr uint32,
	data []uint32,
	description string,
) error {
	cmd := axi.SetUnsigneds(addr, data, description)
	_, err := d.Send(cmd)

	return err
}

// Read sends a blocking read of length consecutive words starting at addr.
func (d *Dispatcher) Read(
	addr uint32,
	length int,
	description string,
) ([]uint32, error) {
	cmd := axi.BusCommandBuilder{}.
		WithStartAddress(addr).
		WithLength(length).
		WithDirection(axi.Read).
		WithDescription(description).
		Build()

	result, err := d.Send(cmd)
	if err != nil {
		return nil, err
	}

	raw := result.([]*uint32)
	values := make([]uint32, len(raw))
	for i, v := range raw {
		values[i] = *v
	}

	return values, nil
}

// Handle processes the dispatcher's tick and sampling events.
func (d *Dispatcher) Handle(e sim.Event) error {
	switch evt := e.(type) {
	case sim.TickEvent:
		d.tick(evt.Time())
		return nil
	case sampleEvent:
		return d.sample(evt.Time())
	default:
		log.Panicf("dispatcher %s cannot handle event %T", d.name, e)
		return nil
	}
}

func (d *Dispatcher) tick(now sim.VTimeInSec) {
	d.issueOps()

	d.aw.drive()
	d.w.drive()
	d.ar.drive()
	d.b.drive()
	d.r.drive()

	d.Engine.Schedule(sampleEvent{
		EventBase: sim.NewEventBase(d.Freq.HalfTick(now), d),
	})
}

// issueOps moves beats from the operation queue into the channel queues.
// Beats are pipelined until a wait operation is reached; a wait holds the
// queue for its number of cycles. A command that changes direction is held
// back until the outstanding beats of the other direction have completed,
// so that a read observes the writes submitted before it.
func (d *Dispatcher) issueOps() {
	for {
		if d.waitRemaining > 0 {
			d.waitRemaining--
			return
		}

		op, ok := d.ops.Peek()
		if !ok {
			return
		}

		switch op := op.(type) {
		case *axi.WaitCommand:
			d.ops.Pop()
			d.waitRemaining = op.Cycles
		case *axi.BusCommand:
			if !d.canIssue(op) {
				return
			}
			d.ops.Pop()
			d.issueBeats(op)
		}
	}
}

func (d *Dispatcher) canIssue(cmd *axi.BusCommand) bool {
	if cmd.Direction == axi.Write {
		return d.r.pending.Size() == 0
	}

	return d.b.pending.Size() == 0
}

func (d *Dispatcher) issueBeats(cmd *axi.BusCommand) {
	record := d.opOwner[cmd]
	delete(d.opOwner, cmd)

	for _, beat := range cmd.Beats() {
		comp := &completion{}

		if beat.Direction == axi.Write {
			d.aw.enqueue(uint64(beat.Addr))
			d.w.enqueue(uint64(beat.Data))
			record.writes = append(record.writes, comp)
			d.b.expect(comp)
		} else {
			d.ar.enqueue(uint64(beat.Addr))
			record.reads = append(record.reads, comp)
			d.r.expect(comp)
		}
	}
}

func (d *Dispatcher) sample(now sim.VTimeInSec) error {
	for _, c := range []*outChannel{d.aw, d.w, d.ar} {
		transferred, value, err := c.sample()
		if err != nil {
			return err
		}
		if transferred {
			d.hookTransfer(c.name, now, value, axi.RespOkay)
		}
	}

	for _, c := range []*inChannel{d.b, d.r} {
		transferred, value, code, err := c.sample()
		if err != nil {
			return err
		}
		if transferred {
			d.hookTransfer(c.name, now, value, code)
		}
	}

	d.retire()

	if d.busy() {
		d.TickLater()
	}

	return nil
}

// retire resolves the futures of completed commands, oldest first. A command
// behind an incomplete one stays inflight so that results resolve in
// submission order.
func (d *Dispatcher) retire() {
	for len(d.inflight) > 0 {
		record := d.inflight[0]
		if !record.retired() {
			return
		}
		d.inflight = d.inflight[1:]

		read := axi.NewResponseFIFO()
		for _, comp := range record.reads {
			read.Push(comp.response)
		}

		write := axi.NewResponseFIFO()
		for _, comp := range record.writes {
			write.Push(comp.response)
		}

		// Errors surface through the command's Future.
		_, _ = record.command.ProcessResponses(read, write)
	}
}

func (d *Dispatcher) busy() bool {
	return d.aw.busy() || d.w.busy() || d.ar.busy() ||
		d.b.busy() || d.r.busy() ||
		d.ops.Size() > 0 || d.waitRemaining > 0
}

func (d *Dispatcher) hookTransfer(
	channel string,
	now sim.VTimeInSec,
	value uint64,
	code axi.RespCode,
) {
	if d.NumHooks() == 0 {
		return
	}

	d.InvokeHook(sim.HookCtx{
		Domain: d,
		Pos:    HookPosTransfer,
		Item: Transfer{
			Channel: channel,
			Time:    now,
			Value:   value,
			Resp:    code,
		},
	})
}

// drain advances the simulation until it quiesces, or until the configured
// timeout elapses. After a full quiesce, a response channel still offering a
// transfer means the slave produced a response no beat asked for.
func (d *Dispatcher) drain() error {
	if d.timeoutCycles > 0 {
		deadline := d.Freq.NCyclesLater(d.timeoutCycles, d.CurrentTime())
		return d.Engine.RunUntil(deadline)
	}

	if err := d.Engine.Run(); err != nil {
		return err
	}

	return d.checkQuiescent()
}

func (d *Dispatcher) checkQuiescent() error {
	for _, c := range []*inChannel{d.b, d.r} {
		v, err := c.valid.Sample()
		if err != nil {
			// Never driven means no slave activity at all.
			continue
		}

		if v == 1 && c.pending.Size() == 0 {
			return &axi.ProtocolViolationError{
				Reason: fmt.Sprintf(
					"response offered on %s after all beats completed",
					c.name),
			}
		}
	}

	return nil
}

func (d *Dispatcher) stallError(cmd axi.Command) error {
	states := []string{
		d.aw.String(), d.w.String(), d.ar.String(),
		d.b.String(), d.r.String(),
	}

	return fmt.Errorf(
		"command %q did not complete within %d cycles: %s",
		cmd.Description(), d.timeoutCycles, strings.Join(states, ", "))
}
