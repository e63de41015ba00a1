package axi

import (
	"fmt"
	"log"
)

// A Command is a logical bus operation. It decomposes into a flat sequence of
// atomic operations for a handler to execute, and aggregates the returned
// response streams back into a single result that resolves its Future.
type Command interface {
	Description() string
	Future() *Future

	// Ops returns the ordered atomic operations the command consists of.
	Ops() []Op

	// ProcessResponses consumes this command's responses from the front of
	// the shared response FIFOs, resolves the command's Future, and returns
	// the outcome. It must be called exactly once per command.
	ProcessResponses(read, write *ResponseFIFO) (any, error)
}

// An Op is one atomic operation produced by decomposing a command: either a
// contiguous single-direction burst (*BusCommand) or a number of idle clock
// cycles (*WaitCommand).
type Op interface {
	isOp()
}

// A Beat is a single address+data pair transferred in one clock cycle.
type Beat struct {
	Addr      uint32
	Data      uint32
	Direction Direction
}

// A BusCommand is a series of AXI4-Lite master-to-slave transfers in one
// direction, one beat per address.
type BusCommand struct {
	StartAddress    uint32
	Length          int
	Direction       Direction
	Data            []uint32
	ConstantAddress bool

	// ByteAddressing selects an address stride of 4 between beats, for
	// slaves whose addresses index bytes rather than 32-bit words.
	ByteAddressing bool

	description string
	future      *Future
}

// BusCommandBuilder can build bus commands.
type BusCommandBuilder struct {
	startAddress    uint32
	length          int
	direction       Direction
	data            []uint32
	constantAddress bool
	byteAddressing  bool
	description     string
}

// WithStartAddress sets the address the first beat operates on.
func (b BusCommandBuilder) WithStartAddress(addr uint32) BusCommandBuilder {
	b.startAddress = addr
	return b
}

// WithLength sets the number of beats.
func (b BusCommandBuilder) WithLength(length int) BusCommandBuilder {
	b.length = length
	return b
}

// WithDirection sets whether the command reads or writes.
func (b BusCommandBuilder) WithDirection(d Direction) BusCommandBuilder {
	b.direction = d
	return b
}

// WithData sets the values to send. Only write commands carry data.
func (b BusCommandBuilder) WithData(data []uint32) BusCommandBuilder {
	b.data = data
	return b
}

// WithConstantAddress makes every beat operate on the start address.
func (b BusCommandBuilder) WithConstantAddress() BusCommandBuilder {
	b.constantAddress = true
	return b
}

// WithByteAddressing selects a stride of 4 between beat addresses.
func (b BusCommandBuilder) WithByteAddressing() BusCommandBuilder {
	b.byteAddressing = true
	return b
}

// WithDescription attaches a human-readable description for debugging.
func (b BusCommandBuilder) WithDescription(desc string) BusCommandBuilder {
	b.description = desc
	return b
}

// Build creates the command, panicking on invariant violations as these are
// programming errors in the caller.
func (b BusCommandBuilder) Build() *BusCommand {
	c := &BusCommand{
		StartAddress:    b.startAddress,
		Length:          b.length,
		Direction:       b.direction,
		Data:            b.data,
		ConstantAddress: b.constantAddress,
		ByteAddressing:  b.byteAddressing,
		description:     b.description,
		future:          NewFuture(),
	}

	c.mustBeValid()

	return c
}

func (c *BusCommand) mustBeValid() {
	if c.description == "" {
		log.Panic("bus command must carry a description")
	}

	if c.Length <= 0 {
		log.Panic("bus command must have a positive length")
	}

	if c.Direction == Read && c.Data != nil {
		log.Panic("read command must not carry data")
	}

	if c.Direction == Write && len(c.Data) != c.Length {
		log.Panicf("write command %q carries %d data values for %d beats",
			c.description, len(c.Data), c.Length)
	}

	if !c.ConstantAddress {
		lastAddr := uint64(c.StartAddress) +
			uint64(c.Length-1)*uint64(c.stride())
		if lastAddr > MaxAddress {
			log.Panicf("command %q runs past the top of the address space",
				c.description)
		}
	}
}

func (c *BusCommand) stride() uint32 {
	if c.ByteAddressing {
		return 4
	}
	return 1
}

// Description returns the human-readable description of the command.
func (c *BusCommand) Description() string {
	return c.description
}

// Future returns the cell that will carry the command's result.
func (c *BusCommand) Future() *Future {
	return c.future
}

// Ops returns the command itself: a bus command is already atomic.
func (c *BusCommand) Ops() []Op {
	return []Op{c}
}

func (c *BusCommand) isOp() {}

// Beats expands the command into per-cycle transfers in address order.
func (c *BusCommand) Beats() []Beat {
	beats := make([]Beat, 0, c.Length)
	for i := 0; i < c.Length; i++ {
		addr := c.StartAddress
		if !c.ConstantAddress {
			addr += uint32(i) * c.stride()
		}

		beat := Beat{Addr: addr, Direction: c.Direction}
		if c.Direction == Write {
			beat.Data = c.Data[i]
		}

		beats = append(beats, beat)
	}

	return beats
}

// consume takes this command's share of responses from the front of the
// relevant FIFO. The first error wins, but consumption continues so that the
// FIFOs stay aligned for the commands behind this one. The returned data is
// trimmed to exactly the commanded length, so that an overrun does not mask
// the true cause of a failure.
func (c *BusCommand) consume(read, write *ResponseFIFO) ([]*uint32, error) {
	relevant := write
	if c.Direction == Read {
		relevant = read
	}

	var data []*uint32
	var err error
	total := 0

	for total < c.Length {
		rsp, ok := relevant.Pop()
		if !ok {
			if err == nil {
				err = &ExhaustedResponsesError{Description: c.description}
			}
			break
		}

		total += rsp.Length
		data = append(data, rsp.Data...)

		if total > c.Length {
			if err == nil {
				err = &ProtocolViolationError{
					Reason: fmt.Sprintf(
						"response lengths do not match the length of %q",
						c.description),
				}
			}
		} else if rsp.Resp != RespOkay && err == nil {
			err = &BadResponseError{
				Description: c.description,
				Resp:        rsp.Resp,
			}
		}
	}

	if len(data) > c.Length {
		data = data[:c.Length]
	}

	return data, err
}

// ProcessResponses aggregates the command's responses and resolves its
// Future with the collected data.
func (c *BusCommand) ProcessResponses(
	read, write *ResponseFIFO,
) (any, error) {
	data, err := c.consume(read, write)
	c.future.Resolve(data, err)

	return data, err
}

// A WaitCommand advances the clock by a number of cycles without any bus
// traffic. It is used to flush a sequence through a simulation without
// needing a response.
type WaitCommand struct {
	Cycles int

	description string
	future      *Future
}

// NewWaitCommand creates a command that idles for the given clock cycles.
func NewWaitCommand(cycles int) *WaitCommand {
	return &WaitCommand{
		Cycles:      cycles,
		description: fmt.Sprintf("wait for %d clock cycles", cycles),
		future:      NewFuture(),
	}
}

// Description returns the human-readable description of the command.
func (c *WaitCommand) Description() string {
	return c.description
}

// Future returns the cell that resolves once the wait elapsed.
func (c *WaitCommand) Future() *Future {
	return c.future
}

// Ops returns the command itself.
func (c *WaitCommand) Ops() []Op {
	return []Op{c}
}

func (c *WaitCommand) isOp() {}

// ProcessResponses consumes nothing: a wait produces no bus traffic.
func (c *WaitCommand) ProcessResponses(_, _ *ResponseFIFO) (any, error) {
	c.future.Resolve(nil, nil)
	return nil, nil
}

// A CombinedCommand runs an ordered list of sub-commands as one unit. The
// sub-commands consume disjoint prefixes of the same response FIFOs; the
// combined result carries every sub-result, and the first sub-error if any.
type CombinedCommand struct {
	commands    []Command
	description string
	future      *Future
}

// NewCombinedCommand creates a combined command.
func NewCombinedCommand(description string, commands ...Command) *CombinedCommand {
	return &CombinedCommand{
		commands:    commands,
		description: description,
		future:      NewFuture(),
	}
}

// Description returns the human-readable description of the command.
func (c *CombinedCommand) Description() string {
	return c.description
}

// Future returns the cell that will carry the list of sub-results.
func (c *CombinedCommand) Future() *Future {
	return c.future
}

// Commands returns the sub-commands in order.
func (c *CombinedCommand) Commands() []Command {
	return c.commands
}

// Ops concatenates the atomic operations of all sub-commands in order.
func (c *CombinedCommand) Ops() []Op {
	var ops []Op
	for _, command := range c.commands {
		ops = append(ops, command.Ops()...)
	}

	return ops
}

// Process applies each sub-command's aggregation in order against the shared
// FIFOs and resolves the sub-commands' futures, without resolving the
// combined command's own future. Wrapping commands use it to derive their own
// result from the sub-results.
func (c *CombinedCommand) Process(
	read, write *ResponseFIFO,
) ([]any, error) {
	var firstErr error
	results := make([]any, 0, len(c.commands))

	for _, command := range c.commands {
		result, err := command.ProcessResponses(read, write)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		results = append(results, result)
	}

	return results, firstErr
}

// ProcessResponses aggregates all sub-commands and resolves the combined
// future with the full list of sub-results.
func (c *CombinedCommand) ProcessResponses(
	read, write *ResponseFIFO,
) (any, error) {
	results, err := c.Process(read, write)
	c.future.Resolve(results, err)

	return results, err
}
