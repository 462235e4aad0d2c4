package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomasim/insts"
)

var _ = Describe("Decoder", func() {
	var d *insts.Decoder

	BeforeEach(func() {
		d = insts.NewDecoder()
	})

	It("parses an LD line, stripping the trailing + on src1", func() {
		in, err := d.Decode("LD F6 34+ R2")
		Expect(err).NotTo(HaveOccurred())
		Expect(in).To(Equal(insts.Instruction{Op: insts.OpLD, Destination: "F6", Src1: "34", Src2: "R2"}))
	})

	It("parses an SD line", func() {
		in, err := d.Decode("SD F8 56 R3")
		Expect(err).NotTo(HaveOccurred())
		Expect(in).To(Equal(insts.Instruction{Op: insts.OpSD, Destination: "F8", Src1: "56", Src2: "R3"}))
	})

	It("parses an ADDD line", func() {
		in, err := d.Decode("ADDD F0 F6 F4")
		Expect(err).NotTo(HaveOccurred())
		Expect(in).To(Equal(insts.Instruction{Op: insts.OpADDD, Destination: "F0", Src1: "F6", Src2: "F4"}))
	})

	It("rejects an unknown opcode", func() {
		_, err := d.Decode("FOO F0 F1 F2")
		Expect(err).To(HaveOccurred())
	})

	It("rejects a malformed line", func() {
		_, err := d.Decode("ADDD F0 F1")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ParseOperandIndex", func() {
	It("parses an FP register operand", func() {
		idx, err := insts.ParseOperandIndex("F6")
		Expect(err).NotTo(HaveOccurred())
		Expect(idx).To(Equal(6))
	})

	It("parses a base register operand", func() {
		idx, err := insts.ParseOperandIndex("R10")
		Expect(err).NotTo(HaveOccurred())
		Expect(idx).To(Equal(10))
	})

	It("rejects an operand with neither F nor R prefix", func() {
		_, err := insts.ParseOperandIndex("X3")
		Expect(err).To(HaveOccurred())
	})

	It("rejects an operand with a non-numeric suffix", func() {
		_, err := insts.ParseOperandIndex("Fx")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("IsFPRegister and IsBaseRegister", func() {
	It("recognizes FP registers", func() {
		Expect(insts.IsFPRegister("F0")).To(BeTrue())
		Expect(insts.IsFPRegister("F12")).To(BeTrue())
		Expect(insts.IsFPRegister("R0")).To(BeFalse())
	})

	It("recognizes base registers", func() {
		Expect(insts.IsBaseRegister("R2")).To(BeTrue())
		Expect(insts.IsBaseRegister("F2")).To(BeFalse())
	})
})
