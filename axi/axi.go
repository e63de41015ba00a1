// Package axi defines the logical view of AXI4-Lite traffic: commands that a
// bus master executes, the responses the bus returns, and the aggregation
// rules that turn a stream of single-beat responses back into per-command
// results.
package axi

// RespCode is the 2-bit response code of the AXI protocol.
type RespCode int

// The response codes defined by AXI4-Lite.
const (
	RespOkay RespCode = iota
	RespExOkay
	RespSlvErr
	RespDecErr
)

func (r RespCode) String() string {
	switch r {
	case RespOkay:
		return "OKAY"
	case RespExOkay:
		return "EXOKAY"
	case RespSlvErr:
		return "SLVERR"
	case RespDecErr:
		return "DECERR"
	default:
		return "UNKNOWN"
	}
}

// Direction defines whether a command reads from or writes to the bus.
type Direction int

// The two transfer directions.
const (
	Read Direction = iota
	Write
)

func (d Direction) String() string {
	if d == Read {
		return "READ"
	}
	return "WRITE"
}

// MaxAddress is the highest address reachable on the 32-bit address channels.
const MaxAddress = uint64(1)<<32 - 1

// Word is a convenience for building optional data values.
func Word(v uint32) *uint32 {
	return &v
}
