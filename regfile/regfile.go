// Package regfile implements the architectural floating-point register
// file: for each register, whether it is busy, which ROB entry will
// produce its value, and the tag-bus-observed value once that entry
// commits.
package regfile

import (
	"fmt"

	"github.com/sarchlab/tomasim/insts"
	"github.com/sarchlab/tomasim/rs"
	"github.com/sarchlab/tomasim/tagbus"
)

// Register holds one architectural register's renaming state.
type Register struct {
	Busy  bool
	Tag   int
	Value string
}

// File is the register file: busy/tag/value for each FP register.
type File struct {
	registers []Register
}

// New creates a register file with n registers, all initially free.
func New(n int) *File {
	return &File{registers: make([]Register, n)}
}

// Read resolves an operand name against the current renaming state.
//
// It first consults the tag bus: if the committing register matches
// operand, the just-retired value is forwarded as a resolved literal (the
// "issue-time commit forward" rule — see the design notes). Otherwise, an
// "F<digits>" operand resolves to a pending tag if the register is busy, or
// to its register index if free; an "R<digits>" (base/address) operand
// always resolves to its register index, since base registers are treated
// as always-ready.
func (f *File) Read(operand string, bus *tagbus.Bus) (rs.Operand, error) {
	if reg, robIndex, ok := bus.Read(); ok && reg == operand {
		return rs.Forwarded(robIndex), nil
	}

	if insts.IsFPRegister(operand) {
		index, err := insts.ParseOperandIndex(operand)
		if err != nil {
			return rs.Operand{}, err
		}
		if index < 0 || index >= len(f.registers) {
			return rs.Operand{}, fmt.Errorf("regfile: register index %d out of range", index)
		}
		if f.registers[index].Busy {
			return rs.Pending(f.registers[index].Tag), nil
		}
		return rs.Reg(index), nil
	}

	if insts.IsBaseRegister(operand) {
		index, err := insts.ParseOperandIndex(operand)
		if err != nil {
			return rs.Operand{}, err
		}
		return rs.Reg(index), nil
	}

	return rs.Operand{}, fmt.Errorf("regfile: invalid operand %q, want F<digits> or R<digits>", operand)
}

// Write marks operand's register busy, naming robIndex as its producer.
// In-order issue guarantees a newer tag always supersedes an older one for
// the same register.
func (f *File) Write(operand string, robIndex int) error {
	index, err := insts.ParseOperandIndex(operand)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(f.registers) {
		return fmt.Errorf("regfile: register index %d out of range", index)
	}
	f.registers[index].Busy = true
	f.registers[index].Tag = robIndex
	return nil
}

// Update observes the current tag bus and, on a commit, clears the
// committing register's busy/tag state and records the committed value.
// Called exactly once per cycle, after the ROB's update and before the CDB
// and tag bus latch, so it observes the commit notification latched on the
// previous cycle (spec's Open Question on RegisterGroup.update's double call: resolved to
// call once, since calling it twice with no intervening tag-bus change is
// behaviorally redundant).
func (f *File) Update(bus *tagbus.Bus) error {
	reg, robIndex, ok := bus.Read()
	if !ok {
		return nil
	}
	index, err := insts.ParseOperandIndex(reg)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(f.registers) {
		return fmt.Errorf("regfile: register index %d out of range", index)
	}
	// Only clear if this register is still waiting on this exact producer;
	// a register reissued to a newer tag before the old one committed must
	// not be cleared by the stale commit.
	if f.registers[index].Tag != robIndex {
		return nil
	}
	f.registers[index].Busy = false
	f.registers[index].Tag = 0
	f.registers[index].Value = fmt.Sprintf("#%d", robIndex)
	return nil
}

// View is a read-only snapshot of one register's renaming state, used for
// the trace output's Reorder:/Busy: lines.
type View struct {
	Busy bool
	Tag  int
}

// Snapshot returns a View of every register, in register order.
func (f *File) Snapshot() []View {
	views := make([]View, len(f.registers))
	for i, r := range f.registers {
		views[i] = View{Busy: r.Busy, Tag: r.Tag}
	}
	return views
}

// Len returns the number of registers in the file.
func (f *File) Len() int {
	return len(f.registers)
}
