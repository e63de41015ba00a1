// Package batch converts commands to and from flat per-cycle signal maps.
// The maps can be serialized, replayed against an external simulation, or
// applied to a behavioral Device directly, with the responses fed back to
// resolve the commands without any event simulation.
package batch

import (
	"github.com/sarchlab/axilite/axi"
)

// Master-to-slave signal names, one map key per wire.
const (
	SigAWValid = "awvalid"
	SigAWAddr  = "awaddr"
	SigWValid  = "wvalid"
	SigWData   = "wdata"
	SigWStrb   = "wstrb"
	SigBReady  = "bready"
	SigARValid = "arvalid"
	SigARAddr  = "araddr"
	SigRReady  = "rready"
)

// Slave-to-master signal names.
const (
	SigAWReady = "awready"
	SigWReady  = "wready"
	SigBValid  = "bvalid"
	SigBResp   = "bresp"
	SigARReady = "arready"
	SigRValid  = "rvalid"
	SigRResp   = "rresp"
	SigRData   = "rdata"
)

// A Cycle is the value of every signal of one bus direction during one
// clock cycle.
type Cycle map[string]uint32

// IdleM2S returns the master-to-slave values of a cycle with no activity:
// no valid request, full write strobe, and both response channels ready.
func IdleM2S() Cycle {
	return Cycle{
		SigAWValid: 0,
		SigAWAddr:  0,
		SigWValid:  0,
		SigWData:   0,
		SigWStrb:   15,
		SigBReady:  1,
		SigARValid: 0,
		SigARAddr:  0,
		SigRReady:  1,
	}
}

// IdleS2M returns the slave-to-master values of a cycle with no activity:
// every request channel ready, no response offered.
func IdleS2M() Cycle {
	return Cycle{
		SigAWReady: 1,
		SigWReady:  1,
		SigBValid:  0,
		SigBResp:   0,
		SigARReady: 1,
		SigRValid:  0,
		SigRResp:   0,
		SigRData:   0,
	}
}

// OpsToCycles flattens a list of operations into one master-to-slave Cycle
// per clock. Each beat takes one cycle; a wait operation contributes its
// number of idle cycles. Every channel is assumed ready, so the conversion
// needs no feedback from the slave side.
func OpsToCycles(ops []axi.Op) []Cycle {
	var cycles []Cycle

	for _, op := range ops {
		switch op := op.(type) {
		case *axi.WaitCommand:
			for i := 0; i < op.Cycles; i++ {
				cycles = append(cycles, IdleM2S())
			}
		case *axi.BusCommand:
			for _, beat := range op.Beats() {
				c := IdleM2S()
				if beat.Direction == axi.Write {
					c[SigAWValid] = 1
					c[SigAWAddr] = beat.Addr
					c[SigWValid] = 1
					c[SigWData] = beat.Data
				} else {
					c[SigARValid] = 1
					c[SigARAddr] = beat.Addr
				}
				cycles = append(cycles, c)
			}
		}
	}

	return cycles
}

// CyclesToResponses extracts the response streams from a list of
// slave-to-master cycles. A cycle with bvalid high contributes one write
// response; a cycle with rvalid high contributes one read response.
func CyclesToResponses(cycles []Cycle) (read, write *axi.ResponseFIFO) {
	read = axi.NewResponseFIFO()
	write = axi.NewResponseFIFO()

	for _, c := range cycles {
		if c[SigBValid] == 1 {
			write.Push(axi.NewWriteResponse(axi.RespCode(c[SigBResp])))
		}
		if c[SigRValid] == 1 {
			read.Push(axi.NewReadResponse(
				axi.RespCode(c[SigRResp]), axi.Word(c[SigRData])))
		}
	}

	return read, write
}
