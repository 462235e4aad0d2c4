package trace

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sarchlab/tomasim/rob"
)

// Recorder accumulates one formatted state block per cycle and renders them
// as the run-length-compressed dump: a maximal run of consecutive cycles
// sharing identical state text is written once, headed by `cycle_<n>;` for a
// single cycle or `cycle_<a>-<b>;` for a range.
type Recorder struct {
	cycles []int
	blocks []string
}

// New creates an empty Recorder.
func New() *Recorder {
	return &Recorder{}
}

// Record appends the formatted block for the given cycle.
func (r *Recorder) Record(cycle int, block string) {
	r.cycles = append(r.cycles, cycle)
	r.blocks = append(r.blocks, block)
}

// Render produces the full compressed dump over every recorded cycle.
func (r *Recorder) Render() string {
	var b strings.Builder

	i := 0
	for i < len(r.blocks) {
		j := i
		for j+1 < len(r.blocks) && r.blocks[j+1] == r.blocks[i] {
			j++
		}

		if j == i {
			fmt.Fprintf(&b, "cycle_%d;\n", r.cycles[i])
		} else {
			fmt.Fprintf(&b, "cycle_%d-%d;\n", r.cycles[i], r.cycles[j])
		}
		b.WriteString(r.blocks[i])

		i = j + 1
	}

	return b.String()
}

// FormatRetirementLog renders the deferred dump printed after termination:
// one line per committed instruction, in commit order, showing its
// recorded stage cycles.
func FormatRetirementLog(log []rob.RetiredEntry) string {
	var b strings.Builder
	for _, e := range log {
		b.WriteString(formatRetiredLine(e))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatRetiredLine(e rob.RetiredEntry) string {
	cycles := make([]string, len(e.StateCycle))
	for i, c := range e.StateCycle {
		cycles[i] = strconv.Itoa(c)
	}
	inst := e.Instruction
	return fmt.Sprintf("%s %s %s %s: %s", inst.Op, inst.Destination, inst.Src1, inst.Src2, strings.Join(cycles, ","))
}
