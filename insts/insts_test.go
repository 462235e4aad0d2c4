package insts_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomasim/insts"
)

func TestInsts(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Insts Suite")
}

var _ = Describe("Opcode", func() {
	It("renders its mnemonic via String", func() {
		Expect(insts.OpLD.String()).To(Equal("LD"))
		Expect(insts.OpSD.String()).To(Equal("SD"))
		Expect(insts.OpADDD.String()).To(Equal("ADDD"))
		Expect(insts.OpSUBD.String()).To(Equal("SUBD"))
		Expect(insts.OpMULTD.String()).To(Equal("MULTD"))
		Expect(insts.OpDIVD.String()).To(Equal("DIVD"))
	})

	It("classifies arithmetic opcodes", func() {
		Expect(insts.OpADDD.IsArithmetic()).To(BeTrue())
		Expect(insts.OpDIVD.IsArithmetic()).To(BeTrue())
		Expect(insts.OpLD.IsArithmetic()).To(BeFalse())
		Expect(insts.OpSD.IsArithmetic()).To(BeFalse())
	})

	It("routes ADDD/SUBD to the Add unit and MULTD/DIVD to the Mult unit", func() {
		Expect(insts.OpADDD.IsAddOp()).To(BeTrue())
		Expect(insts.OpSUBD.IsAddOp()).To(BeTrue())
		Expect(insts.OpMULTD.IsAddOp()).To(BeFalse())

		Expect(insts.OpMULTD.IsMultOp()).To(BeTrue())
		Expect(insts.OpDIVD.IsMultOp()).To(BeTrue())
		Expect(insts.OpADDD.IsMultOp()).To(BeFalse())
	})
})

var _ = Describe("Translate", func() {
	It("renders LD as fld dest src1(src2)", func() {
		in := insts.Instruction{Op: insts.OpLD, Destination: "F6", Src1: "34", Src2: "R2"}
		Expect(insts.Translate(in)).To(Equal("fld F6 34(R2)"))
	})

	It("renders SD as fsd dest src1(src2)", func() {
		in := insts.Instruction{Op: insts.OpSD, Destination: "F8", Src1: "56", Src2: "R3"}
		Expect(insts.Translate(in)).To(Equal("fsd F8 56(R3)"))
	})

	It("renders ADDD as fadd.d dest,src1,src2", func() {
		in := insts.Instruction{Op: insts.OpADDD, Destination: "F0", Src1: "F6", Src2: "F4"}
		Expect(insts.Translate(in)).To(Equal("fadd.d F0,F6,F4"))
	})

	It("renders DIVD as fdiv.d dest,src1,src2", func() {
		in := insts.Instruction{Op: insts.OpDIVD, Destination: "F10", Src1: "F0", Src2: "F6"}
		Expect(insts.Translate(in)).To(Equal("fdiv.d F10,F0,F6"))
	})
})
