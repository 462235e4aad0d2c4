// Package loadbuf implements the load buffer: a small pool of reservation
// stations computing an effective address and then reading symbolic memory,
// the two-tick sequence described by the core's load-unit update rule.
package loadbuf

import (
	"fmt"

	"github.com/sarchlab/tomasim/cdb"
	"github.com/sarchlab/tomasim/insts"
	"github.com/sarchlab/tomasim/rs"
)

// Buffer is the pool of load stations.
type Buffer struct {
	stations []*rs.Station
	latency  int
}

// New creates a Buffer with numStations stations named Load1, Load2, ...,
// each taking latency cycles (effective-address tick + memory-read tick).
func New(numStations int, latency int) *Buffer {
	stations := make([]*rs.Station, numStations)
	for i := range stations {
		stations[i] = &rs.Station{Name: fmt.Sprintf("Load%d", i+1)}
	}
	return &Buffer{stations: stations, latency: latency}
}

// Issue allocates the first free station for an LD instruction. vj is the
// base register operand (Src2); offset is the raw literal offset (Src1),
// which seeds Address until the effective address resolves.
func (b *Buffer) Issue(inst insts.Instruction, vj rs.Operand, offset string, robIndex int) bool {
	for _, s := range b.stations {
		if s.Busy {
			continue
		}
		s.Busy = true
		s.Op = inst.Op
		s.Vj = vj
		s.Address = offset
		s.ROBIndex = robIndex
		s.RemainTime = b.latency
		s.IssuedThisCycle = true
		return true
	}
	return false
}

// Update advances every busy station through the two-tick sequence:
// remain_time 2 resolves the effective address (or forwards the base
// register from the CDB) and marks the station executing; remain_time 1
// stages a CDB broadcast of the symbolic memory read; remain_time 0
// releases the station.
func (b *Buffer) Update(bus *cdb.Bus) {
	tag, _, ok := bus.Read()

	for _, s := range b.stations {
		if !s.Busy {
			continue
		}

		if s.IssuedThisCycle {
			s.IssuedThisCycle = false
			continue
		}

		switch s.RemainTime {
		case 2:
			if s.Vj.Ready() {
				s.Address = fmt.Sprintf("%s+%s", s.Address, s.Vj.RenderValue("Regs[R"))
				s.RemainTime--
				bus.MarkExecuting(s.ROBIndex)
			} else if resolved, changed := s.Vj.ResolveFromCDB(tag, ok); changed {
				s.Vj = resolved
			}
		case 1:
			s.RemainTime--
			result := fmt.Sprintf("Mem[%s]", s.Address)
			if !bus.Write(s.ROBIndex, result) {
				s.RemainTime = 1
			}
		default:
			s.Release()
		}
	}
}

// Finish reports whether every station in the buffer is idle.
func (b *Buffer) Finish() bool {
	for _, s := range b.stations {
		if s.Busy {
			return false
		}
	}
	return true
}

// Views returns the trace-ready View of every station, in pool order.
func (b *Buffer) Views() []rs.View {
	views := make([]rs.View, len(b.stations))
	for i, s := range b.stations {
		views[i] = s.View(true)
	}
	return views
}
