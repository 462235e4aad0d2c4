package trace_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomasim/insts"
	"github.com/sarchlab/tomasim/regfile"
	"github.com/sarchlab/tomasim/rob"
	"github.com/sarchlab/tomasim/rs"
	"github.com/sarchlab/tomasim/trace"
)

func TestTrace(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Trace Suite")
}

var _ = Describe("FormatBlock", func() {
	It("renders an all-idle snapshot", func() {
		snap := trace.Snapshot{
			ROB:  []rob.View{{Index: 1}},
			Load: []rs.View{{Name: "Load1"}},
			Add:  []rs.View{{Name: "Add1"}},
			Mult: []rs.View{{Name: "Mult1"}},
			Regs: []regfile.View{{}, {}},
		}

		block := trace.FormatBlock(snap)
		Expect(block).To(ContainSubstring("entry1 : No,,,,;\n"))
		Expect(block).To(ContainSubstring("Load1 : No,,,,,,;\n"))
		Expect(block).To(ContainSubstring("Reorder:F0:;F1:;\n"))
		Expect(block).To(ContainSubstring("Busy:F0:No;F1:No;\n"))
		Expect(block).To(ContainSubstring(trace.Separator))
	})

	It("renders a busy register in the Reorder and Busy lines", func() {
		snap := trace.Snapshot{Regs: []regfile.View{{Busy: true, Tag: 3}}}
		block := trace.FormatBlock(snap)
		Expect(block).To(ContainSubstring("Reorder:F0: 3;\n"))
		Expect(block).To(ContainSubstring("Busy:F0:Yes;\n"))
	})
})

var _ = Describe("Recorder", func() {
	It("compresses a run of identical cycles into a range", func() {
		r := trace.New()
		r.Record(1, "A\n")
		r.Record(2, "A\n")
		r.Record(3, "B\n")

		out := r.Render()
		Expect(out).To(Equal("cycle_1-2;\nA\ncycle_3;\nB\n"))
	})

	It("emits a singleton header when no run forms", func() {
		r := trace.New()
		r.Record(1, "A\n")
		r.Record(2, "B\n")

		out := r.Render()
		Expect(out).To(Equal("cycle_1;\nA\ncycle_2;\nB\n"))
	})
})

var _ = Describe("FormatRetirementLog", func() {
	It("formats an arithmetic entry with four stage cycles", func() {
		log := []rob.RetiredEntry{{
			Instruction: insts.Instruction{Op: insts.OpADDD, Destination: "F0", Src1: "F6", Src2: "F4"},
			ROBIndex:    1,
			StateCycle:  []int{1, 2, 4, 5},
		}}
		Expect(trace.FormatRetirementLog(log)).To(Equal("ADDD F0 F6 F4: 1,2,4,5\n"))
	})

	It("formats an SD entry with three stage cycles", func() {
		log := []rob.RetiredEntry{{
			Instruction: insts.Instruction{Op: insts.OpSD, Destination: "F6", Src1: "30", Src2: "R1"},
			ROBIndex:    2,
			StateCycle:  []int{3, 4, 4},
		}}
		Expect(trace.FormatRetirementLog(log)).To(Equal("SD F6 30 R1: 3,4,4\n"))
	})
})
