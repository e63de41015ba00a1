package batch

import (
	"encoding/json"
	"io"

	"github.com/sarchlab/axilite/axi"
	"github.com/sarchlab/axilite/slavemodel"
)

// A Handler collects commands and processes them in batch mode: all the
// master-to-slave cycles are emitted at once, and the responses come back as
// one list of slave-to-master cycles.
type Handler struct {
	commands []axi.Command
}

// NewHandler creates an empty batch handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Submit queues a command. Its Future resolves in ConsumeResponses.
func (h *Handler) Submit(cmd axi.Command) {
	h.commands = append(h.commands, cmd)
}

// CommandCycles flattens every queued command into master-to-slave cycles,
// in submission order.
func (h *Handler) CommandCycles() []Cycle {
	var ops []axi.Op
	for _, cmd := range h.commands {
		ops = append(ops, cmd.Ops()...)
	}

	return OpsToCycles(ops)
}

// ConsumeResponses aggregates the returned cycles into the queued commands
// and resolves their futures. The first command-level error is returned;
// later commands still resolve.
func (h *Handler) ConsumeResponses(cycles []Cycle) error {
	read, write := CyclesToResponses(cycles)

	var firstErr error
	for _, cmd := range h.commands {
		_, err := cmd.ProcessResponses(read, write)
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	h.commands = nil

	return firstErr
}

// ApplyCycles plays master-to-slave cycles against a Device as an ideal
// slave: always ready, responding on the same cycle. It returns the
// slave-to-master cycles an external simulation would have produced.
func ApplyCycles(cycles []Cycle, device slavemodel.Device) []Cycle {
	out := make([]Cycle, 0, len(cycles))

	for _, c := range cycles {
		s2m := IdleS2M()

		if c[SigAWValid] == 1 && c[SigWValid] == 1 {
			code := device.Write(c[SigAWAddr], c[SigWData])
			s2m[SigBValid] = 1
			s2m[SigBResp] = uint32(code)
		}

		if c[SigARValid] == 1 {
			value, code := device.Read(c[SigARAddr])
			s2m[SigRValid] = 1
			s2m[SigRResp] = uint32(code)
			s2m[SigRData] = value
		}

		out = append(out, s2m)
	}

	return out
}

// WriteCycles serializes cycles as a JSON array, one object per cycle.
func WriteCycles(w io.Writer, cycles []Cycle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(cycles)
}

// ReadCycles parses cycles written by WriteCycles.
func ReadCycles(r io.Reader) ([]Cycle, error) {
	var cycles []Cycle
	if err := json.NewDecoder(r).Decode(&cycles); err != nil {
		return nil, err
	}

	return cycles, nil
}
