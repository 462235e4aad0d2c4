// Package fu implements the FP functional units (Add and Mult): a fixed
// pool of reservation stations, issued in pool order, each counting down a
// per-opcode execution latency before broadcasting its symbolic result on
// the CDB.
package fu

import (
	"fmt"

	"github.com/sarchlab/tomasim/cdb"
	"github.com/sarchlab/tomasim/insts"
	"github.com/sarchlab/tomasim/rs"
)

// Unit is a pool of reservation stations feeding one functional unit (Add
// or Mult).
type Unit struct {
	stations  []*rs.Station
	latencies map[insts.Op]int
}

// New creates a Unit with numStations stations named namePrefix1,
// namePrefix2, ..., using latencies to look up each opcode's execution
// time.
func New(namePrefix string, numStations int, latencies map[insts.Op]int) *Unit {
	stations := make([]*rs.Station, numStations)
	for i := range stations {
		stations[i] = &rs.Station{Name: fmt.Sprintf("%s%d", namePrefix, i+1)}
	}
	return &Unit{stations: stations, latencies: latencies}
}

// Issue allocates the first free station to inst, returning false if every
// station in the pool is busy.
func (u *Unit) Issue(inst insts.Instruction, vj, vk rs.Operand, robIndex int) bool {
	for _, s := range u.stations {
		if s.Busy {
			continue
		}
		s.Busy = true
		s.Op = inst.Op
		s.Vj = vj
		s.Vk = vk
		s.Dest = inst.Destination
		s.ROBIndex = robIndex
		s.RemainTime = u.latencies[inst.Op]
		s.IssuedThisCycle = true
		return true
	}
	return false
}

// Update advances every busy station by one cycle: forwarding CDB values
// into waiting operands, ticking down remaining execution time, and
// staging a CDB broadcast when a station finishes.
func (u *Unit) Update(bus *cdb.Bus) {
	tag, _, ok := bus.Read()

	for _, s := range u.stations {
		if !s.Busy {
			continue
		}

		if s.IssuedThisCycle {
			s.IssuedThisCycle = false
			// Capture a broadcast visible on the issue cycle itself; the
			// register file still named its producer as pending at issue.
			s.Vj, _ = s.Vj.ResolveFromCDB(tag, ok)
			s.Vk, _ = s.Vk.ResolveFromCDB(tag, ok)
			continue
		}

		if !s.Ready() {
			if resolved, changed := s.Vj.ResolveFromCDB(tag, ok); changed {
				s.Vj = resolved
			}
			if resolved, changed := s.Vk.ResolveFromCDB(tag, ok); changed {
				s.Vk = resolved
			}
			continue
		}

		if s.RemainTime > 0 {
			bus.MarkExecuting(s.ROBIndex)
			s.RemainTime--
			if s.RemainTime == 0 {
				result := s.ResultExpression()
				if !bus.Write(s.ROBIndex, result) {
					s.RemainTime = 1
				}
			}
			continue
		}

		s.Release()
	}
}

// Finish reports whether every station in the pool is idle.
func (u *Unit) Finish() bool {
	for _, s := range u.stations {
		if s.Busy {
			return false
		}
	}
	return true
}

// Views returns the trace-ready View of every station, in pool order.
func (u *Unit) Views() []rs.View {
	views := make([]rs.View, len(u.stations))
	for i, s := range u.stations {
		views[i] = s.View(false)
	}
	return views
}
