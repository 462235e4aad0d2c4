// Package tagbus implements the double-buffered channel carrying ROB commit
// notifications to the register file: a (register name, rob_index) pair,
// staged when a ROB entry writes its result and latched for the register
// file to observe on the following read/update.
package tagbus

// Bus is the ROB-to-register-file commit channel.
type Bus struct {
	haveCurrent bool
	reg         string
	robIndex    int

	haveStaged bool
	stagedReg  string
	stagedTag  int
}

// New creates an empty tag bus.
func New() *Bus {
	return &Bus{}
}

// Read returns the current cycle's commit notification, if any.
func (b *Bus) Read() (reg string, robIndex int, ok bool) {
	return b.reg, b.robIndex, b.haveCurrent
}

// Stage records a commit notification to become visible next cycle. The ROB
// guarantees at most one entry writes a given register per cycle (in-order
// issue means only the most recent producer ever writes), so unlike the
// CDB, Stage never fails.
func (b *Bus) Stage(reg string, robIndex int) {
	b.haveStaged = true
	b.stagedReg = reg
	b.stagedTag = robIndex
}

// Latch promotes the staged notification (if any) to current.
func (b *Bus) Latch() {
	if b.haveStaged {
		b.reg = b.stagedReg
		b.robIndex = b.stagedTag
		b.haveCurrent = true
	} else {
		b.reg = ""
		b.robIndex = 0
		b.haveCurrent = false
	}
	b.haveStaged = false
	b.stagedReg = ""
	b.stagedTag = 0
}
