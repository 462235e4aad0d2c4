// Package rob implements the Reorder Buffer: a circular queue of in-flight
// instructions that commits results to the architectural register file (and
// to memory, for stores) strictly in program order, while allowing them to
// execute out of order.
package rob

import (
	"fmt"

	"github.com/sarchlab/tomasim/insts"
)

// State is a ROB entry's position in its per-instruction state machine.
type State int

const (
	// StateIssue is the entry's state from allocation until its producing
	// station begins executing.
	StateIssue State = iota
	// StateExec is the entry's state while its producing station is
	// running (arithmetic/LD) or, for an SD, from the cycle after issue
	// until it commits.
	StateExec
	// StateWriteResult is the entry's state once the CDB has broadcast its
	// result, until it reaches the head of the buffer. SD entries never
	// visit this state — see Entry.IsStore.
	StateWriteResult
	// StateCommit is the entry's terminal state: retired, not busy.
	StateCommit
)

// String renders the state using the vocabulary used in the trace output.
func (s State) String() string {
	switch s {
	case StateIssue:
		return "Issue"
	case StateExec:
		return "Exec"
	case StateWriteResult:
		return "WriteResult"
	case StateCommit:
		return "Commit"
	default:
		return "???"
	}
}

// StoreOperand is the SD entry's store-source-register operand: the value
// destined for memory, tracked the same way a reservation station tracks
// vj/qj.
type StoreOperand struct {
	Resolved bool
	Value    string // e.g. "#<tag>" once resolved
	Tag      int    // producing ROB tag, while unresolved
}

// Entry is one Reorder Buffer slot.
type Entry struct {
	Busy            bool
	Instruction     insts.Instruction
	State           State
	Destination     string // register name, or "Mem[<addr>]" for SD once resolved
	Value           string
	ROBIndex        int
	Store           StoreOperand // only meaningful when Instruction.Op == insts.OpSD
	StateCycle      []int        // cycle at which each recorded state was entered, in order
	IssuedThisCycle bool
}

// IsStore reports whether this entry is a store, which follows the
// three-state Issue/Exec/Commit machine (4.1.1) instead of the four-state
// Issue/Exec/WriteResult/Commit machine used by every other opcode.
func (e *Entry) IsStore() bool {
	return e.Instruction.Op == insts.OpSD
}

// recordCycle appends cycle to the entry's state-cycle history.
func (e *Entry) recordCycle(cycle int) {
	e.StateCycle = append(e.StateCycle, cycle)
}

// View is the read-only rendering of an entry for the trace output, one
// line per ROB slot in the form:
//
//	entry<n> : <Yes|No>, <instruction>, <state>, <destination>, <value>;
type View struct {
	Index       int
	Busy        bool
	Instruction string
	State       string
	Destination string
	Value       string
}

// Format renders the View as the exact trace line for this entry.
func (v View) Format() string {
	if !v.Busy {
		return fmt.Sprintf("entry%d : No,,,,;", v.Index)
	}
	return fmt.Sprintf("entry%d : Yes, %s, %s, %s, %s;",
		v.Index, v.Instruction, v.State, v.Destination, v.Value)
}

// View renders the entry's current state for the trace, using logicalIndex
// as its 1-based display position (head-to-tail order), independent of its
// underlying circular-buffer slot.
func (e *Entry) View(logicalIndex int) View {
	v := View{Index: logicalIndex, Busy: e.Busy}
	if !e.Busy {
		return v
	}
	v.Instruction = insts.Translate(e.Instruction)
	v.State = e.State.String()
	v.Destination = e.Destination
	v.Value = e.Value
	return v
}

// RetiredEntry is the immutable record pushed onto the Retirement Log when
// an entry commits.
type RetiredEntry struct {
	Instruction insts.Instruction
	ROBIndex    int
	StateCycle  []int
}
