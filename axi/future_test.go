package axi

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Future", func() {
	var f *Future

	BeforeEach(func() {
		f = NewFuture()
	})

	It("should start unresolved", func() {
		Expect(f.Resolved()).To(BeFalse())
	})

	It("should carry the resolved result", func() {
		f.Resolve(uint32(42), nil)

		Expect(f.Resolved()).To(BeTrue())

		result, err := f.Result()
		Expect(err).ToNot(HaveOccurred())
		Expect(result).To(Equal(uint32(42)))
	})

	It("should carry the resolved error", func() {
		f.Resolve(nil, &BadResponseError{
			Description: "read status",
			Resp:        RespSlvErr,
		})

		_, err := f.Result()
		Expect(err).To(MatchError(ContainSubstring("SLVERR")))
	})

	It("should panic when resolved twice", func() {
		f.Resolve(nil, nil)

		Expect(func() { f.Resolve(nil, nil) }).To(Panic())
	})

	It("should panic when an unresolved result is read", func() {
		Expect(func() { f.Result() }).To(Panic())
	})
})
