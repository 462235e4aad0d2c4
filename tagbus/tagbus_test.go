package tagbus_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomasim/tagbus"
)

func TestTagBus(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "TagBus Suite")
}

var _ = Describe("Bus", func() {
	var bus *tagbus.Bus

	BeforeEach(func() {
		bus = tagbus.New()
	})

	It("reads nothing before any commit", func() {
		_, _, ok := bus.Read()
		Expect(ok).To(BeFalse())
	})

	It("does not reveal a staged commit until Latch", func() {
		bus.Stage("F6", 3)
		_, _, ok := bus.Read()
		Expect(ok).To(BeFalse())

		bus.Latch()
		reg, robIndex, ok := bus.Read()
		Expect(ok).To(BeTrue())
		Expect(reg).To(Equal("F6"))
		Expect(robIndex).To(Equal(3))
	})

	It("clears on a dry latch", func() {
		bus.Stage("F1", 1)
		bus.Latch()
		bus.Latch()
		_, _, ok := bus.Read()
		Expect(ok).To(BeFalse())
	})
})
