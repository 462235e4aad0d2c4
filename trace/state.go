// Package trace renders per-cycle simulator state into the run-length-
// compressed dump format, and formats the deferred Retirement Log once the
// simulation halts.
package trace

import (
	"fmt"
	"strings"

	"github.com/sarchlab/tomasim/regfile"
	"github.com/sarchlab/tomasim/rob"
	"github.com/sarchlab/tomasim/rs"
)

// Separator is the fixed rule printed after every state block.
const Separator = "------------------------------------------"

// Snapshot is a single cycle's rendering of every architectural structure.
type Snapshot struct {
	ROB  []rob.View
	Load []rs.View
	Add  []rs.View
	Mult []rs.View
	Regs []regfile.View
}

// FormatBlock renders a Snapshot as the state block described by the
// output format: ROB entries, then load/Add/Mult stations, then the
// Reorder: and Busy: register lines, then the separator rule.
func FormatBlock(s Snapshot) string {
	var b strings.Builder

	for _, v := range s.ROB {
		b.WriteString(v.Format())
		b.WriteByte('\n')
	}
	for _, v := range s.Load {
		b.WriteString(v.Format())
		b.WriteByte('\n')
	}
	for _, v := range s.Add {
		b.WriteString(v.Format())
		b.WriteByte('\n')
	}
	for _, v := range s.Mult {
		b.WriteString(v.Format())
		b.WriteByte('\n')
	}

	b.WriteString(formatReorderLine(s.Regs))
	b.WriteByte('\n')
	b.WriteString(formatBusyLine(s.Regs))
	b.WriteByte('\n')
	b.WriteString(Separator)
	b.WriteByte('\n')

	return b.String()
}

func formatReorderLine(regs []regfile.View) string {
	var b strings.Builder
	b.WriteString("Reorder:")
	for i, r := range regs {
		if r.Busy {
			fmt.Fprintf(&b, "F%d: %d;", i, r.Tag)
		} else {
			fmt.Fprintf(&b, "F%d:;", i)
		}
	}
	return b.String()
}

func formatBusyLine(regs []regfile.View) string {
	var b strings.Builder
	b.WriteString("Busy:")
	for i, r := range regs {
		if r.Busy {
			fmt.Fprintf(&b, "F%d:Yes;", i)
		} else {
			fmt.Fprintf(&b, "F%d:No;", i)
		}
	}
	return b.String()
}
