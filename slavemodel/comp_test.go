package slavemodel_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/axilite/hw"
	"github.com/sarchlab/axilite/master"
	"github.com/sarchlab/axilite/sim"
	"github.com/sarchlab/axilite/slavemodel"
)

var _ = Describe("Comp", func() {
	build := func(latency int, prob float64) (
		*sim.SerialEngine, *master.Dispatcher, *slavemodel.MemDevice,
	) {
		engine := sim.NewSerialEngine()
		bus := hw.NewBus("DUT")
		mem := slavemodel.NewMemDevice(256)

		slavemodel.MakeBuilder().
			WithEngine(engine).
			WithBus(bus).
			WithDevice(mem).
			WithLatency(latency).
			WithThrottleProbability(prob).
			Build("Slave")

		dispatcher := master.MakeBuilder().
			WithEngine(engine).
			WithBus(bus).
			WithThrottleProbability(1).
			Build("Master")

		return engine, dispatcher, mem
	}

	It("should serve a write and a read round trip", func() {
		_, dispatcher, mem := build(1, 1)

		Expect(dispatcher.Write(7, []uint32{123}, "store")).To(Succeed())
		Expect(mem.Peek(7)).To(Equal(uint32(123)))

		values, err := dispatcher.Read(7, 1, "load")
		Expect(err).ToNot(HaveOccurred())
		Expect(values).To(Equal([]uint32{123}))
	})

	It("should keep pipelined reads in request order", func() {
		_, dispatcher, mem := build(2, 1)
		for i := uint32(0); i < 8; i++ {
			mem.Poke(i, i*100)
		}

		values, err := dispatcher.Read(0, 8, "load block")

		Expect(err).ToNot(HaveOccurred())
		for i, v := range values {
			Expect(v).To(Equal(uint32(i * 100)))
		}
	})

	It("should take longer with a larger access latency", func() {
		fastEngine, fastDispatcher, _ := build(1, 1)
		Expect(fastDispatcher.Write(0, []uint32{1}, "store")).To(Succeed())

		slowEngine, slowDispatcher, _ := build(20, 1)
		Expect(slowDispatcher.Write(0, []uint32{1}, "store")).To(Succeed())

		Expect(slowEngine.CurrentTime()).
			To(BeNumerically(">", fastEngine.CurrentTime()))
	})

	It("should complete under a stalling throttle", func() {
		_, dispatcher, mem := build(1, 0.3)

		Expect(dispatcher.Write(3, []uint32{9, 8, 7}, "store")).To(Succeed())
		Expect(mem.Peek(3)).To(Equal(uint32(9)))

		values, err := dispatcher.Read(3, 3, "load")
		Expect(err).ToNot(HaveOccurred())
		Expect(values).To(Equal([]uint32{9, 8, 7}))
	})
})
