package axi

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BusCommand", func() {
	It("should expand write beats with incrementing addresses", func() {
		cmd := BusCommandBuilder{}.
			WithStartAddress(0x10).
			WithLength(3).
			WithDirection(Write).
			WithData([]uint32{1, 2, 3}).
			WithDescription("write three words").
			Build()

		beats := cmd.Beats()

		Expect(beats).To(HaveLen(3))
		Expect(beats[0]).To(Equal(Beat{Addr: 0x10, Data: 1, Direction: Write}))
		Expect(beats[1]).To(Equal(Beat{Addr: 0x11, Data: 2, Direction: Write}))
		Expect(beats[2]).To(Equal(Beat{Addr: 0x12, Data: 3, Direction: Write}))
	})

	It("should stride by 4 under byte addressing", func() {
		cmd := BusCommandBuilder{}.
			WithStartAddress(0x100).
			WithLength(2).
			WithDirection(Read).
			WithByteAddressing().
			WithDescription("read two words").
			Build()

		beats := cmd.Beats()

		Expect(beats[0].Addr).To(Equal(uint32(0x100)))
		Expect(beats[1].Addr).To(Equal(uint32(0x104)))
	})

	It("should keep the address constant when asked to", func() {
		cmd := BusCommandBuilder{}.
			WithStartAddress(0x8).
			WithLength(3).
			WithDirection(Read).
			WithConstantAddress().
			WithDescription("drain fifo").
			Build()

		for _, beat := range cmd.Beats() {
			Expect(beat.Addr).To(Equal(uint32(0x8)))
		}
	})

	It("should panic when write data does not match the length", func() {
		Expect(func() {
			BusCommandBuilder{}.
				WithStartAddress(0).
				WithLength(3).
				WithDirection(Write).
				WithData([]uint32{1}).
				WithDescription("short write").
				Build()
		}).To(Panic())
	})

	It("should panic when the command has no description", func() {
		Expect(func() {
			BusCommandBuilder{}.
				WithLength(1).
				WithDirection(Read).
				Build()
		}).To(Panic())
	})

	It("should panic when the beats run past the address space", func() {
		Expect(func() {
			BusCommandBuilder{}.
				WithStartAddress(0xFFFFFFFF).
				WithLength(2).
				WithDirection(Read).
				WithDescription("overflowing read").
				Build()
		}).To(Panic())
	})
})

var _ = Describe("BusCommand response aggregation", func() {
	It("should collect read data in order", func() {
		cmd := BusCommandBuilder{}.
			WithStartAddress(0).
			WithLength(3).
			WithDirection(Read).
			WithDescription("read three words").
			Build()

		read := NewResponseFIFO(
			NewReadResponse(RespOkay, Word(10)),
			NewReadResponse(RespOkay, Word(20)),
			NewReadResponse(RespOkay, Word(30)),
		)
		write := NewResponseFIFO()

		result, err := cmd.ProcessResponses(read, write)

		Expect(err).ToNot(HaveOccurred())
		data := result.([]*uint32)
		Expect(data).To(HaveLen(3))
		Expect(*data[0]).To(Equal(uint32(10)))
		Expect(*data[2]).To(Equal(uint32(30)))
		Expect(cmd.Future().Resolved()).To(BeTrue())
	})

	It("should report the first bad response but keep consuming", func() {
		cmd := BusCommandBuilder{}.
			WithStartAddress(0).
			WithLength(3).
			WithDirection(Read).
			WithDescription("read with a failing beat").
			Build()

		read := NewResponseFIFO(
			NewReadResponse(RespOkay, Word(10)),
			NewReadResponse(RespSlvErr, Word(0)),
			NewReadResponse(RespOkay, Word(30)),
			NewReadResponse(RespOkay, Word(40)),
		)

		_, err := cmd.ProcessResponses(read, NewResponseFIFO())

		Expect(err).To(MatchError(ContainSubstring("SLVERR")))
		Expect(read.Len()).To(Equal(1))
	})

	It("should report exhaustion when responses run short", func() {
		cmd := BusCommandBuilder{}.
			WithStartAddress(0).
			WithLength(2).
			WithDirection(Write).
			WithData([]uint32{1, 2}).
			WithDescription("write two words").
			Build()

		write := NewResponseFIFO(NewWriteResponse(RespOkay))

		_, err := cmd.ProcessResponses(NewResponseFIFO(), write)

		var exhausted *ExhaustedResponsesError
		Expect(err).To(BeAssignableToTypeOf(exhausted))
	})

	It("should flag a response overrun as a protocol violation", func() {
		cmd := BusCommandBuilder{}.
			WithStartAddress(0).
			WithLength(1).
			WithDirection(Read).
			WithDescription("read one word").
			Build()

		long := Response{
			Length: 2,
			Data:   []*uint32{Word(1), Word(2)},
			Resp:   RespOkay,
		}
		read := NewResponseFIFO(long)

		result, err := cmd.ProcessResponses(read, NewResponseFIFO())

		var violation *ProtocolViolationError
		Expect(err).To(BeAssignableToTypeOf(violation))
		Expect(result.([]*uint32)).To(HaveLen(1))
	})
})

var _ = Describe("CombinedCommand", func() {
	It("should flatten the ops of its sub-commands in order", func() {
		w := SetUnsigned(0, 7, "write input")
		idle := NewWaitCommand(3)
		r := GetUnsigned(2, "read output")
		cmd := NewCombinedCommand("round trip", w, idle, r)

		ops := cmd.Ops()

		Expect(ops).To(HaveLen(3))
		Expect(ops[0]).To(BeIdenticalTo(w))
		Expect(ops[1]).To(BeIdenticalTo(idle))
		Expect(ops[2]).To(BeIdenticalTo(r.BusCommand))
	})

	It("should hand each sub-command its own prefix of the FIFOs", func() {
		first := GetUnsigneds(0, 2, "read pair")
		second := GetUnsigned(4, "read single")
		cmd := NewCombinedCommand("two reads", first, second)

		read := NewResponseFIFO(
			NewReadResponse(RespOkay, Word(1)),
			NewReadResponse(RespOkay, Word(2)),
			NewReadResponse(RespOkay, Word(3)),
		)

		result, err := cmd.ProcessResponses(read, NewResponseFIFO())

		Expect(err).ToNot(HaveOccurred())
		results := result.([]any)
		Expect(results[0]).To(Equal([]uint32{1, 2}))
		Expect(results[1]).To(Equal(uint32(3)))

		firstResult, _ := first.Future().Result()
		Expect(firstResult).To(Equal([]uint32{1, 2}))
	})

	It("should surface the first sub-error", func() {
		first := GetUnsigned(0, "failing read")
		second := SetUnsigned(4, 9, "following write")
		cmd := NewCombinedCommand("mixed", first, second)

		read := NewResponseFIFO(NewReadResponse(RespDecErr, Word(0)))
		write := NewResponseFIFO(NewWriteResponse(RespOkay))

		_, err := cmd.ProcessResponses(read, write)

		Expect(err).To(MatchError(ContainSubstring("DECERR")))

		_, secondErr := second.Future().Result()
		Expect(secondErr).ToNot(HaveOccurred())
	})
})

var _ = Describe("Convenience commands", func() {
	It("should fold signed values into two's complement", func() {
		cmd := SetSigned(0, -1, "write minus one")

		Expect(cmd.Data).To(Equal([]uint32{0xFFFFFFFF}))
	})

	It("should read signed values back out", func() {
		cmd := GetSigned(0, "read minus two")
		read := NewResponseFIFO(NewReadResponse(RespOkay, Word(0xFFFFFFFE)))

		result, err := cmd.ProcessResponses(read, NewResponseFIFO())

		Expect(err).ToNot(HaveOccurred())
		Expect(result).To(Equal(int32(-2)))
	})

	It("should accept 0 and 1 as booleans", func() {
		cmd := GetBoolean(0, "read flag")
		read := NewResponseFIFO(NewReadResponse(RespOkay, Word(1)))

		result, err := cmd.ProcessResponses(read, NewResponseFIFO())

		Expect(err).ToNot(HaveOccurred())
		Expect(result).To(Equal(true))
	})

	It("should reject other values as booleans", func() {
		cmd := GetBoolean(0, "read flag")
		read := NewResponseFIFO(NewReadResponse(RespOkay, Word(7)))

		_, err := cmd.ProcessResponses(read, NewResponseFIFO())

		Expect(err).To(MatchError(ContainSubstring("boolean")))
	})

	It("should write 0 for a trigger", func() {
		cmd := Trigger(0x1C, "start conversion")

		Expect(cmd.Direction).To(Equal(Write))
		Expect(cmd.Data).To(Equal([]uint32{0}))
	})
})
