package slavemodel_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/axilite/axi"
	"github.com/sarchlab/axilite/slavemodel"
)

var _ = Describe("MemDevice", func() {
	var mem *slavemodel.MemDevice

	BeforeEach(func() {
		mem = slavemodel.NewMemDevice(16)
	})

	It("should store and load words", func() {
		Expect(mem.Write(3, 77)).To(Equal(axi.RespOkay))

		value, code := mem.Read(3)
		Expect(code).To(Equal(axi.RespOkay))
		Expect(value).To(Equal(uint32(77)))
	})

	It("should decode-error outside the memory", func() {
		Expect(mem.Write(16, 1)).To(Equal(axi.RespDecErr))

		_, code := mem.Read(100)
		Expect(code).To(Equal(axi.RespDecErr))
	})

	It("should slave-error on failing addresses", func() {
		mem.FailAddress(4)

		Expect(mem.Write(4, 1)).To(Equal(axi.RespSlvErr))

		_, code := mem.Read(4)
		Expect(code).To(Equal(axi.RespSlvErr))
	})

	It("should expose a backdoor for tests", func() {
		mem.Poke(5, 42)

		Expect(mem.Peek(5)).To(Equal(uint32(42)))
	})
})
