package rs

import (
	"fmt"

	"github.com/sarchlab/tomasim/insts"
)

// Station is a single reservation-station slot, shared by the Add unit, the
// Mult unit, and the load buffer (the load buffer uses Address instead of
// Vk). It tracks the operands (values or producer tags), the remaining
// execution latency, and the ROB tag that names its result on the CDB.
type Station struct {
	Name string
	Busy bool
	Op   insts.Op

	Vj, Vk Operand

	Dest string

	// Address holds the load unit's address expression; it starts as the
	// raw offset literal from the instruction and is progressively
	// rewritten as the effective address resolves. Unused by the Add and
	// Mult units.
	Address string

	RemainTime      int
	ROBIndex        int
	IssuedThisCycle bool
}

// Ready reports whether both operands are available, i.e. the station may
// begin (or continue) executing this cycle.
func (s *Station) Ready() bool {
	return s.Vj.Ready() && s.Vk.Ready()
}

// Release clears the station back to its idle state.
func (s *Station) Release() {
	name := s.Name
	*s = Station{Name: name}
}

// ResultExpression renders the symbolic result text for an arithmetic
// station whose execution has just completed, combining Vj and Vk with the
// operator for Op.
func (s *Station) ResultExpression() string {
	var operator string
	switch s.Op {
	case insts.OpADDD:
		operator = "+"
	case insts.OpSUBD:
		operator = "-"
	case insts.OpMULTD:
		operator = "*"
	case insts.OpDIVD:
		operator = "/"
	default:
		operator = "?"
	}
	return fmt.Sprintf("%s %s %s", s.Vj.formatValue("Reg[F"), operator, s.Vk.formatValue("Reg[F"))
}

// View is the read-only rendering of a station's fields for the trace
// output, one line per station in the form:
//
//	<name> : <Yes|No>, <op>, <vj>, <vk>, <qj>, <qk>, #<rob_index>;
type View struct {
	Name     string
	Busy     bool
	Op       string
	Vj       string
	Vk       string
	Qj       string
	Qk       string
	ROBIndex int
}

// Format renders the View as the exact trace line for this station.
func (v View) Format() string {
	if !v.Busy {
		return fmt.Sprintf("%s : No,,,,,,;", v.Name)
	}
	return fmt.Sprintf("%s : Yes, %s, %s, %s, %s, %s, #%d;",
		v.Name, v.Op, v.Vj, v.Vk, v.Qj, v.Qk, v.ROBIndex)
}

// View renders the station's current state for the trace. isLoad selects
// the "Regs[R" register-value prefix used by the load unit's base-register
// operand instead of the arithmetic units' "Reg[F" prefix.
func (s *Station) View(isLoad bool) View {
	prefix := "Reg[F"
	if isLoad {
		prefix = "Regs[R"
	}

	v := View{Name: s.Name, Busy: s.Busy, ROBIndex: s.ROBIndex}
	if !s.Busy {
		return v
	}

	v.Op = s.Op.String()
	v.Vj = s.Vj.formatValue(prefix)
	v.Vk = s.Vk.formatValue(prefix)
	v.Qj = s.Vj.formatTag()
	v.Qk = s.Vk.formatTag()
	return v
}
