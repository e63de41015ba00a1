package hw

import "fmt"

// SignalLookup resolves a flat signal name to a Signal, the way a simulator
// exposes the ports of the design under test.
type SignalLookup func(name string) (Signal, bool)

// A Bus bundles the sixteen signals of one AXI4-Lite master port. The
// master-to-slave signals are driven by the bus master; the slave-to-master
// signals are driven by the peer.
type Bus struct {
	// Write address channel (AW).
	AWValid Signal
	AWAddr  Signal
	AWReady Signal

	// Write data channel (W).
	WValid Signal
	WData  Signal
	WReady Signal

	// Write response channel (B).
	BValid Signal
	BReady Signal
	BResp  Signal

	// Read address channel (AR).
	ARValid Signal
	ARAddr  Signal
	ARReady Signal

	// Read data channel (R).
	RValid Signal
	RReady Signal
	RResp  Signal
	RData  Signal
}

// NewBus creates a bus with fresh in-memory signals, named with the given
// prefix. This is the bus used when master and slave live in the same
// process.
func NewBus(prefix string) *Bus {
	return &Bus{
		AWValid: NewReg(prefix + "awvalid"),
		AWAddr:  NewReg(prefix + "awaddr"),
		AWReady: NewReg(prefix + "awready"),
		WValid:  NewReg(prefix + "wvalid"),
		WData:   NewReg(prefix + "wdata"),
		WReady:  NewReg(prefix + "wready"),
		BValid:  NewReg(prefix + "bvalid"),
		BReady:  NewReg(prefix + "bready"),
		BResp:   NewReg(prefix + "bresp"),
		ARValid: NewReg(prefix + "arvalid"),
		ARAddr:  NewReg(prefix + "araddr"),
		ARReady: NewReg(prefix + "arready"),
		RValid:  NewReg(prefix + "rvalid"),
		RReady:  NewReg(prefix + "rready"),
		RResp:   NewReg(prefix + "rresp"),
		RData:   NewReg(prefix + "rdata"),
	}
}

// BindBus builds a bus from a signal lookup and the name prefixes of the
// master-to-slave and slave-to-master signal groups.
func BindBus(lookup SignalLookup, m2sPrefix, s2mPrefix string) (*Bus, error) {
	b := &Bus{}

	bindings := []struct {
		target *Signal
		name   string
	}{
		{&b.AWValid, m2sPrefix + "awvalid"},
		{&b.AWAddr, m2sPrefix + "awaddr"},
		{&b.AWReady, s2mPrefix + "awready"},
		{&b.WValid, m2sPrefix + "wvalid"},
		{&b.WData, m2sPrefix + "wdata"},
		{&b.WReady, s2mPrefix + "wready"},
		{&b.BValid, s2mPrefix + "bvalid"},
		{&b.BReady, m2sPrefix + "bready"},
		{&b.BResp, s2mPrefix + "bresp"},
		{&b.ARValid, m2sPrefix + "arvalid"},
		{&b.ARAddr, m2sPrefix + "araddr"},
		{&b.ARReady, s2mPrefix + "arready"},
		{&b.RValid, s2mPrefix + "rvalid"},
		{&b.RReady, m2sPrefix + "rready"},
		{&b.RResp, s2mPrefix + "rresp"},
		{&b.RData, s2mPrefix + "rdata"},
	}

	for _, binding := range bindings {
		sig, found := lookup(binding.name)
		if !found {
			return nil, fmt.Errorf("signal %s not found", binding.name)
		}
		*binding.target = sig
	}

	return b, nil
}
