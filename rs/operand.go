// Package rs defines the reservation-station storage shared by the Add and
// Mult functional units and the load buffer, plus the tagged operand
// representation used for vj/vk/qj/qk slots throughout the core.
package rs

import "fmt"

// OperandKind discriminates the payload an Operand carries.
type OperandKind int

const (
	// OperandEmpty means the slot holds no operand at all (e.g. vk on a
	// load station, which never uses it).
	OperandEmpty OperandKind = iota
	// OperandPending means the operand is not yet available; Tag names
	// the producing ROB entry (this is qj/qk in the spec's vocabulary).
	OperandPending
	// OperandReg means the operand is a resolved register index, to be
	// rendered as "Reg[F<i>]" (or "Regs[R<i>]" for a load's base
	// register).
	OperandReg
	// OperandForwarded means the operand is a value forwarded from the
	// CDB, rendered literally as "#<tag>".
	OperandForwarded
)

// Operand is the tagged variant used for every vj/vk (and the SD store
// unit's sd_data.vj) slot in the core: either a register index, a value
// forwarded from the CDB by tag, or a still-pending producing tag.
type Operand struct {
	Kind OperandKind
	Reg  int
	Tag  int
}

// Pending constructs an Operand waiting on the given producing ROB tag.
func Pending(tag int) Operand {
	return Operand{Kind: OperandPending, Tag: tag}
}

// Reg constructs a resolved Operand holding a register index.
func Reg(index int) Operand {
	return Operand{Kind: OperandReg, Reg: index}
}

// Forwarded constructs a resolved Operand holding a CDB-forwarded value,
// identified by the tag that produced it.
func Forwarded(tag int) Operand {
	return Operand{Kind: OperandForwarded, Tag: tag}
}

// Ready reports whether the operand holds a usable value (i.e. is not still
// waiting on a producing tag). A station is ready to execute iff both its
// operands are Ready.
func (o Operand) Ready() bool {
	return o.Kind != OperandPending
}

// ResolveFromCDB returns the Operand that results from observing a CDB
// broadcast of the given tag, if this operand is pending on exactly that
// tag. It returns the original operand and false otherwise.
func (o Operand) ResolveFromCDB(broadcastTag int, ok bool) (Operand, bool) {
	if !ok || o.Kind != OperandPending || o.Tag != broadcastTag {
		return o, false
	}
	return Forwarded(broadcastTag), true
}

// RenderValue renders the operand's resolved-value text using regPrefix
// (e.g. "Reg[F" for arithmetic operands, "Regs[R" for the load unit's base
// register), for use outside the package's own View formatting — notably
// the load unit's effective-address expression.
func (o Operand) RenderValue(regPrefix string) string {
	return o.formatValue(regPrefix)
}

// formatValue renders the resolved-value column (vj/vk) using the register
// kind prefix appropriate to the station ("Regs[R" for the load unit's base
// register, "Reg[F" for every other operand).
func (o Operand) formatValue(regPrefix string) string {
	switch o.Kind {
	case OperandReg:
		return fmt.Sprintf("%s%d]", regPrefix, o.Reg)
	case OperandForwarded:
		return fmt.Sprintf("#%d", o.Tag)
	default:
		return ""
	}
}

// formatTag renders the pending-tag column (qj/qk).
func (o Operand) formatTag() string {
	if o.Kind == OperandPending {
		return fmt.Sprintf("#%d", o.Tag)
	}
	return ""
}
