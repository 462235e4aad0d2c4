package rob

import (
	"fmt"

	"github.com/sarchlab/tomasim/cdb"
	"github.com/sarchlab/tomasim/insts"
	"github.com/sarchlab/tomasim/tagbus"
)

// ReorderBuffer is a circular queue of size+1 slots (one wasted slot
// distinguishes full from empty) committing results to the architectural
// register file, in program order, as entries reach the head.
type ReorderBuffer struct {
	entries []Entry
	head    int
	tail    int

	nextIndex int
	log       []RetiredEntry
}

// New creates a ReorderBuffer holding up to size in-flight entries.
func New(size int) *ReorderBuffer {
	return &ReorderBuffer{
		entries:   make([]Entry, size+1),
		nextIndex: 1,
	}
}

func (r *ReorderBuffer) next(i int) int {
	return (i + 1) % len(r.entries)
}

// full reports whether the buffer has no free slot.
func (r *ReorderBuffer) full() bool {
	return r.next(r.tail) == r.head
}

// Allocate reserves the next free slot for inst, returning its assigned
// rob_index and true on success, or false if the buffer is full. store
// carries the SD store-source operand (vj/qj); it is ignored for every
// other opcode.
func (r *ReorderBuffer) Allocate(inst insts.Instruction, cycle int, store StoreOperand) (int, bool) {
	if r.full() {
		return 0, false
	}

	index := r.tail
	robIndex := r.nextIndex
	r.nextIndex++

	e := &r.entries[index]
	*e = Entry{
		Busy:            true,
		Instruction:     inst,
		State:           StateIssue,
		ROBIndex:        robIndex,
		IssuedThisCycle: true,
	}
	e.recordCycle(cycle)

	if inst.Op == insts.OpSD {
		e.Store = store
	} else {
		e.Destination = inst.Destination
	}

	r.tail = r.next(r.tail)
	return robIndex, true
}

// Rollback reclaims the most recently allocated slot. The Pipeline Driver
// calls this when ROB allocation succeeded but the accompanying station
// allocation failed, so the instruction was never actually issued.
func (r *ReorderBuffer) Rollback() {
	r.tail = (r.tail - 1 + len(r.entries)) % len(r.entries)
	r.entries[r.tail] = Entry{}
}

// Update walks every busy entry from head to tail, advancing arithmetic/LD
// entries through their four-state machine and SD entries through their
// three-state variant (4.1.1). Only the entry at the head of the buffer may
// commit; the transition order within each entry (Issue→Exec check before
// the head-commit check, before the CDB-match check) guarantees a single
// cycle carries an entry no further than one stage, and that a just-written
// head retires on the cycle after it writes, not the same cycle.
func (r *ReorderBuffer) Update(cycle int, bus *cdb.Bus, tbus *tagbus.Bus) {
	newHead := r.head

	for i := r.head; i != r.tail; i = r.next(i) {
		e := &r.entries[i]
		if !e.Busy {
			continue
		}
		isHead := i == r.head

		if e.IsStore() {
			r.updateStore(e, i, isHead, cycle, bus, &newHead)
		} else {
			r.updateArithmetic(e, i, isHead, cycle, bus, tbus, &newHead)
		}
	}

	r.head = newHead
}

// updateArithmetic advances a non-SD entry. On its allocation cycle
// (issued_this_cycle set) the entry only clears that flag and makes no
// transition, so it stays in Issue for at least one cycle. The WriteResult
// transition records two cycles, (cycle−1) and cycle, standing in for the
// otherwise-untracked Exec cycle and the WriteResult cycle itself — the
// source of the "4 recorded cycles" for arithmetic/LD entries.
func (r *ReorderBuffer) updateArithmetic(e *Entry, idx int, isHead bool, cycle int, bus *cdb.Bus, tbus *tagbus.Bus, newHead *int) {
	if e.IssuedThisCycle {
		e.IssuedThisCycle = false
		return
	}

	if e.State == StateIssue && bus.IsExecuting(e.ROBIndex) {
		e.State = StateExec
	}

	if isHead && e.State == StateWriteResult {
		e.recordCycle(cycle)
		r.commit(e, idx, newHead)
		return
	}

	tag, value, ok := bus.Read()
	if ok && tag == e.ROBIndex {
		e.Value = value
		e.State = StateWriteResult
		e.recordCycle(cycle - 1)
		e.recordCycle(cycle)
		tbus.Stage(e.Destination, e.ROBIndex)
	}
}

// updateStore advances an SD entry through its three-state variant
// (4.1.1). The Issue→Exec transition always returns without checking for
// commit that same cycle, so commit is deferred by at least one cycle from
// it; like the arithmetic path, the Commit transition alone records two
// cycles, (cycle−1) standing in for Exec and cycle for Commit itself — the
// "3 recorded cycles" for SD entries.
func (r *ReorderBuffer) updateStore(e *Entry, idx int, isHead bool, cycle int, bus *cdb.Bus, newHead *int) {
	tag, _, ok := bus.Read()
	if !e.Store.Resolved && ok && tag == e.Store.Tag {
		e.Store.Resolved = true
		e.Store.Value = fmt.Sprintf("#%d", tag)
	}

	if e.State == StateIssue {
		if e.IssuedThisCycle {
			e.IssuedThisCycle = false
		} else {
			e.State = StateExec
			e.Destination = fmt.Sprintf("Mem[%s+%s]", e.Instruction.Src1, e.Instruction.Src2)
		}
		return
	}

	if isHead && e.State == StateExec && e.Store.Resolved {
		e.recordCycle(cycle - 1)
		e.recordCycle(cycle)
		r.commit(e, idx, newHead)
	}
}

func (r *ReorderBuffer) commit(e *Entry, idx int, newHead *int) {
	e.State = StateCommit
	e.Busy = false
	r.log = append(r.log, RetiredEntry{
		Instruction: e.Instruction,
		ROBIndex:    e.ROBIndex,
		StateCycle:  append([]int(nil), e.StateCycle...),
	})
	*newHead = r.next(idx)
}

// Finish reports whether every entry in the buffer is idle.
func (r *ReorderBuffer) Finish() bool {
	return r.head == r.tail
}

// RetirementLog returns every entry committed so far, in commit order.
func (r *ReorderBuffer) RetirementLog() []RetiredEntry {
	return r.log
}

// Views returns the trace-ready View of every slot, in logical head-to-tail
// order (not the underlying circular-buffer slot order), followed by the
// remaining idle slots.
func (r *ReorderBuffer) Views() []View {
	views := make([]View, 0, len(r.entries)-1)
	logical := 1
	for i := r.head; i != r.tail; i = r.next(i) {
		views = append(views, r.entries[i].View(logical))
		logical++
	}
	for len(views) < len(r.entries)-1 {
		views = append(views, (&Entry{}).View(logical))
		logical++
	}
	return views
}
