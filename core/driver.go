// Package core implements the Pipeline Driver: the per-cycle orchestrator
// that ties the ROB, the Add/Mult functional units, the load buffer, the
// register file, and the CDB/tag bus together, following the Issue ->
// Update -> Latch phase discipline.
package core

import (
	"fmt"

	"github.com/sarchlab/tomasim/cdb"
	"github.com/sarchlab/tomasim/config"
	"github.com/sarchlab/tomasim/fu"
	"github.com/sarchlab/tomasim/insts"
	"github.com/sarchlab/tomasim/loadbuf"
	"github.com/sarchlab/tomasim/regfile"
	"github.com/sarchlab/tomasim/rob"
	"github.com/sarchlab/tomasim/rs"
	"github.com/sarchlab/tomasim/tagbus"
	"github.com/sarchlab/tomasim/trace"
)

// StallEvent records a cycle on which the Issue phase could not place an
// instruction due to structural backpressure (ROB full, or no free
// reservation station) — an informational replacement for the source's
// stdout prints, not an error; the instruction simply retries next cycle.
type StallEvent struct {
	Cycle     int
	Reason    string
	Structure string
}

// Driver drives the simulation one cycle at a time.
type Driver struct {
	program []insts.Instruction
	pc      int

	regs     *regfile.File
	robuf    *rob.ReorderBuffer
	addUnit  *fu.Unit
	multUnit *fu.Unit
	loadBuf  *loadbuf.Buffer
	bus      *cdb.Bus
	tbus     *tagbus.Bus

	cycle    int
	recorder *trace.Recorder
	stalls   []StallEvent
	err      error
}

// New constructs a Driver for program, sized and timed per cfg.
func New(cfg *config.Config, program []insts.Instruction) *Driver {
	return &Driver{
		program:  program,
		regs:     regfile.New(cfg.NumRegisters),
		robuf:    rob.New(cfg.NumROBEntries),
		addUnit:  fu.New("Add", cfg.NumAddStations, cfg.AddUnitLatencies()),
		multUnit: fu.New("Mult", cfg.NumMultStations, cfg.MultUnitLatencies()),
		loadBuf:  loadbuf.New(cfg.NumLoadBuffers, cfg.LoadLatency),
		bus:      cdb.New(),
		tbus:     tagbus.New(),
		recorder: trace.New(),
	}
}

// Tick advances the simulation by one cycle: issue, update (load, add,
// mult, ROB, register file, in that order), latch, then snapshot the
// resulting state into the trace. It returns false once the simulation has
// halted (the input queue is empty and every structure is idle) or a fatal
// error has occurred; Err reports which.
func (d *Driver) Tick() bool {
	if d.err != nil || d.Halted() {
		return false
	}

	d.cycle++

	d.issue()
	if d.err != nil {
		return false
	}

	d.loadBuf.Update(d.bus)
	d.addUnit.Update(d.bus)
	d.multUnit.Update(d.bus)
	d.robuf.Update(d.cycle, d.bus, d.tbus)
	if err := d.regs.Update(d.tbus); err != nil {
		d.err = err
		return false
	}

	d.bus.Latch()
	d.tbus.Latch()

	d.recorder.Record(d.cycle, trace.FormatBlock(d.snapshot()))

	return true
}

// Run ticks the simulation to completion and returns the full output: the
// compressed trace followed by the deferred Retirement Log.
func (d *Driver) Run() string {
	for d.Tick() {
	}
	return d.Output()
}

// Halted reports whether the input queue is exhausted and every structure
// (load buffer, both FP units, ROB) is idle.
func (d *Driver) Halted() bool {
	return d.pc >= len(d.program) &&
		d.loadBuf.Finish() && d.addUnit.Finish() && d.multUnit.Finish() && d.robuf.Finish()
}

// Err returns the first fatal parse/issue error encountered, or nil.
func (d *Driver) Err() error {
	return d.err
}

// Stalls returns every structural-stall event recorded so far, in cycle
// order.
func (d *Driver) Stalls() []StallEvent {
	return d.stalls
}

// RetirementLog returns every committed ROB entry, in commit order.
func (d *Driver) RetirementLog() []rob.RetiredEntry {
	return d.robuf.RetirementLog()
}

// Output renders the compressed trace followed by the Retirement Log, the
// complete contents of the simulator's output file.
func (d *Driver) Output() string {
	return d.recorder.Render() + trace.FormatRetirementLog(d.robuf.RetirementLog())
}

// issue attempts to place the instruction at the head of the input queue:
// read its operands' readiness from the register file, allocate a ROB
// slot, then attempt station allocation. Either allocation failing rolls
// back and records a stall; the instruction is retried next cycle.
func (d *Driver) issue() {
	if d.pc >= len(d.program) {
		return
	}
	inst := d.program[d.pc]

	vj, vk, store, err := d.readOperands(inst)
	if err != nil {
		d.err = err
		return
	}

	robIndex, ok := d.robuf.Allocate(inst, d.cycle, store)
	if !ok {
		d.recordStall("reorder buffer is full", "rob")
		return
	}

	if !d.issueStation(inst, vj, vk, robIndex) {
		d.robuf.Rollback()
		d.recordStall(stallReason(inst.Op), stallStructure(inst.Op))
		return
	}

	d.pc++

	if inst.Op != insts.OpSD {
		if err := d.regs.Write(inst.Destination, robIndex); err != nil {
			d.err = err
		}
	}
}

// readOperands resolves the operands an instruction needs at issue time.
// ADDD/SUBD/MULTD/DIVD read Src1/Src2 as vj/vk. LD reads only Src2 (its
// base register); Src1 is a raw offset literal, not a register operand,
// and is carried through to the load buffer unresolved. SD reads
// destination (the store-source register) into the ROB's store operand;
// its address components (Src1/Src2) are never read here, since the ROB
// formats "Mem[<src1>+<src2>]" directly from the instruction text.
func (d *Driver) readOperands(inst insts.Instruction) (vj, vk rs.Operand, store rob.StoreOperand, err error) {
	switch inst.Op {
	case insts.OpSD:
		var op rs.Operand
		op, err = d.regs.Read(inst.Destination, d.tbus)
		if err == nil {
			store = toStoreOperand(op)
		}
	case insts.OpLD:
		vj, err = d.regs.Read(inst.Src2, d.tbus)
	default:
		vj, err = d.regs.Read(inst.Src1, d.tbus)
		if err == nil {
			vk, err = d.regs.Read(inst.Src2, d.tbus)
		}
	}
	return vj, vk, store, err
}

func toStoreOperand(op rs.Operand) rob.StoreOperand {
	if !op.Ready() {
		return rob.StoreOperand{Tag: op.Tag}
	}
	return rob.StoreOperand{Resolved: true, Value: op.RenderValue("Reg[F")}
}

// issueStation routes the instruction to its station pool. SD needs no
// station of its own — the ROB entry allocated above is its station — so
// it always succeeds here.
func (d *Driver) issueStation(inst insts.Instruction, vj, vk rs.Operand, robIndex int) bool {
	switch {
	case inst.Op.IsAddOp():
		return d.addUnit.Issue(inst, vj, vk, robIndex)
	case inst.Op.IsMultOp():
		return d.multUnit.Issue(inst, vj, vk, robIndex)
	case inst.Op == insts.OpLD:
		return d.loadBuf.Issue(inst, vj, inst.Src1, robIndex)
	default:
		return true
	}
}

func (d *Driver) recordStall(reason, structure string) {
	d.stalls = append(d.stalls, StallEvent{Cycle: d.cycle, Reason: reason, Structure: structure})
}

func stallReason(op insts.Op) string {
	switch {
	case op.IsAddOp():
		return "no free Add reservation station"
	case op.IsMultOp():
		return "no free Mult reservation station"
	case op == insts.OpLD:
		return "no free load buffer"
	default:
		return fmt.Sprintf("no free station for %s", op)
	}
}

func stallStructure(op insts.Op) string {
	switch {
	case op.IsAddOp():
		return "add"
	case op.IsMultOp():
		return "mult"
	case op == insts.OpLD:
		return "load"
	default:
		return ""
	}
}

func (d *Driver) snapshot() trace.Snapshot {
	return trace.Snapshot{
		ROB:  d.robuf.Views(),
		Load: d.loadBuf.Views(),
		Add:  d.addUnit.Views(),
		Mult: d.multUnit.Views(),
		Regs: d.regs.Snapshot(),
	}
}
