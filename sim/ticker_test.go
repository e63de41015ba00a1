package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("TickScheduler", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *SerialEngine
		handler  *MockHandler
		ticker   *TickScheduler
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewSerialEngine()
		handler = NewMockHandler(mockCtrl)
		ticker = NewTickScheduler(handler, engine, 1*Hz)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should tick once per cycle at most", func() {
		handler.EXPECT().Handle(gomock.Any()).Return(nil).Times(1)

		ticker.TickLater()
		ticker.TickLater()
		ticker.TickNow()

		Expect(engine.Run()).To(Succeed())
	})

	It("should keep ticking while rescheduled", func() {
		count := 0
		handler.EXPECT().Handle(gomock.Any()).
			Do(func(e Event) {
				count++
				if count < 3 {
					ticker.TickLater()
				}
			}).
			Return(nil).Times(3)

		ticker.TickLater()

		Expect(engine.Run()).To(Succeed())
		Expect(engine.CurrentTime()).To(BeNumerically("~", 3.0, 1e-12))
	})
})
