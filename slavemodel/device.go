package slavemodel

import "github.com/sarchlab/axilite/axi"

// A Device is the behavioral model behind a slave port. It sees one word
// access at a time, after the handshakes and the access latency have already
// been simulated by the Comp.
type Device interface {
	Read(addr uint32) (uint32, axi.RespCode)
	Write(addr uint32, value uint32) axi.RespCode
}

// A MemDevice is a word-addressed memory. Accesses outside the memory return
// DECERR; addresses marked as failing return SLVERR.
type MemDevice struct {
	storage []uint32
	failing map[uint32]bool
}

// NewMemDevice creates a memory holding numWords 32-bit words.
func NewMemDevice(numWords int) *MemDevice {
	return &MemDevice{
		storage: make([]uint32, numWords),
		failing: make(map[uint32]bool),
	}
}

// FailAddress makes every access to addr complete with SLVERR.
func (d *MemDevice) FailAddress(addr uint32) {
	d.failing[addr] = true
}

// Read returns the word at addr.
func (d *MemDevice) Read(addr uint32) (uint32, axi.RespCode) {
	if int(addr) >= len(d.storage) {
		return 0, axi.RespDecErr
	}
	if d.failing[addr] {
		return 0, axi.RespSlvErr
	}

	return d.storage[addr], axi.RespOkay
}

// Write stores value at addr.
func (d *MemDevice) Write(addr uint32, value uint32) axi.RespCode {
	if int(addr) >= len(d.storage) {
		return axi.RespDecErr
	}
	if d.failing[addr] {
		return axi.RespSlvErr
	}

	d.storage[addr] = value

	return axi.RespOkay
}

// Peek reads a word without going through the bus. It is meant for test
// setup and assertions.
func (d *MemDevice) Peek(addr uint32) uint32 {
	return d.storage[addr]
}

// Poke writes a word without going through the bus.
func (d *MemDevice) Poke(addr uint32, value uint32) {
	d.storage[addr] = value
}
