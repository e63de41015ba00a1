package master_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/axilite/master"
)

var _ = Describe("Throttle", func() {
	It("should always allow with probability 1", func() {
		t := master.NewThrottle(1, 7)

		for i := 0; i < 1000; i++ {
			Expect(t.Allow()).To(BeTrue())
		}
	})

	It("should never allow with probability 0", func() {
		t := master.NewThrottle(0, 7)

		for i := 0; i < 1000; i++ {
			Expect(t.Allow()).To(BeFalse())
		}
	})

	It("should repeat the same decisions for the same seed", func() {
		a := master.NewThrottle(0.5, 42)
		b := master.NewThrottle(0.5, 42)

		for i := 0; i < 1000; i++ {
			Expect(a.Allow()).To(Equal(b.Allow()))
		}
	})

	It("should roughly match the configured rate", func() {
		t := master.NewThrottle(0.8, 42)

		allowed := 0
		for i := 0; i < 10000; i++ {
			if t.Allow() {
				allowed++
			}
		}

		Expect(allowed).To(BeNumerically("~", 8000, 200))
	})

	It("should panic on a probability out of range", func() {
		Expect(func() { master.NewThrottle(1.5, 1) }).To(Panic())
	})
})
