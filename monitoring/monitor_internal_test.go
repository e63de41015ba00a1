package monitoring

import (
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/axilite/sim"
)

type namedComponent struct {
	name string
}

func (c *namedComponent) Name() string {
	return c.name
}

var _ = Describe("Monitor", func() {
	var m *Monitor

	BeforeEach(func() {
		m = NewMonitor()
	})

	It("should list registered components", func() {
		m.RegisterComponent(&namedComponent{name: "Master"})
		m.RegisterComponent(&namedComponent{name: "Slave"})

		rec := httptest.NewRecorder()
		m.listComponents(rec, nil)

		Expect(rec.Body.String()).To(Equal(`["Master","Slave"]`))
	})

	It("should report the current simulated time", func() {
		engine := sim.NewSerialEngine()
		m.RegisterEngine(engine)

		rec := httptest.NewRecorder()
		m.now(rec, nil)

		Expect(rec.Body.String()).To(ContainSubstring(`"now":0.0`))
	})

	It("should track commands and cycles on progress bars", func() {
		bar := m.CreateProgressBar("stress", 1*sim.GHz, 100)
		bar.CommandsFinished(4, sim.VTimeInSec(20e-9))

		Expect(bar.FinishedCommands).To(Equal(uint64(4)))
		Expect(bar.Cycles).To(Equal(uint64(20)))
		Expect(bar.CyclesPerCommand()).To(Equal(5.0))

		m.CompleteProgressBar(bar)
		Expect(m.progressBars).To(BeEmpty())
	})

	It("should report 0 cycles per command before the first completion", func() {
		bar := m.CreateProgressBar("stress", 1*sim.GHz, 100)

		Expect(bar.CyclesPerCommand()).To(BeZero())
	})
})
