// Package cpu implements the RV32IMF execution engine and CPU facade: the
// register file, program counter, machine CSRs, decoded-instruction
// cache, and bus handle, plus the per-variant semantics for every
// instruction form the decoder produces.
//
// A CPU is not safe to drive from multiple goroutines simultaneously — it
// runs on a single thread, synchronously, with no internal concurrency.
package cpu

import (
	"fmt"

	"github.com/bassosimone/rv32core/pkg/bus"
	"github.com/bassosimone/rv32core/pkg/icache"
	"github.com/bassosimone/rv32core/pkg/trap"
)

// NumIntRegs is the number of general-purpose integer registers.
const NumIntRegs = 32

// NumFloatRegs is the number of single-precision floating-point registers.
const NumFloatRegs = 32

// CPU is a single RV32IMF hart running in machine mode only. It owns its
// register files and decoded-instruction cache outright; the Bus is
// borrowed from the caller.
type CPU struct {
	// Xreg holds the 32 integer registers. Xreg[0] always reads as
	// zero: every write is followed by forcing it back to zero.
	Xreg [NumIntRegs]uint32

	// Freg holds the 32 single-precision floating-point registers, as
	// raw IEEE-754 bit patterns (so FMV.X.W/FMV.W.X are plain copies).
	Freg [NumFloatRegs]uint32

	// Fcsr is the floating-point control/status word. The core stores
	// it but never consults it: rounding mode is decoded per
	// instruction (Rm) but not enforced — the host FPU's default
	// rounding is used for every operation.
	Fcsr uint32

	// PC is the program counter.
	PC uint32

	// Mepc, Mcause, Mtval are the three machine-mode trap CSRs this
	// core exposes. No CSR address space is modeled; hosts read these
	// fields directly.
	Mepc, Mcause, Mtval uint32

	// LastResult is the outcome of the most recently executed
	// instruction.
	LastResult trap.Result

	// LastFault is the bus fault code from the most recent bus
	// operation, ok otherwise.
	LastFault bus.Fault

	// Retired counts instructions retired during the most recent Run
	// call (reset to zero at the start of each Run).
	Retired uint64

	// Bus is the memory/device handle this CPU issues loads, stores,
	// and instruction fetches through. It is borrowed, not owned.
	Bus bus.Bus

	// Token is the opaque value threaded through every Bus call.
	Token interface{}

	// Cache is the decoded-instruction cache in front of the decoder
	// and this engine. It is a plain embedded value, not a pointer:
	// owned outright by the CPU.
	Cache icache.Cache
}

// New constructs a CPU wired to bus b, already reset.
func New(b bus.Bus) *CPU {
	c := &CPU{Bus: b}
	c.Reset()
	return c
}

// Reset restores all architectural state to its power-on values and
// invalidates the decoded-instruction cache.
func (c *CPU) Reset() {
	c.Xreg = [NumIntRegs]uint32{}
	c.Freg = [NumFloatRegs]uint32{}
	c.Fcsr = 0
	c.PC = 0
	c.Mepc, c.Mcause, c.Mtval = 0, 0, 0
	c.LastResult = trap.Ok()
	c.LastFault = bus.FaultOK
	c.Retired = 0
	c.Cache.Reset()
}

// ReadXreg reads integer register idx. Index 0 always reads as zero.
func (c *CPU) ReadXreg(idx uint32) uint32 {
	return c.Xreg[idx&0x1f]
}

// WriteXreg writes integer register idx. A write to index 0 is silently
// discarded.
func (c *CPU) WriteXreg(idx, v uint32) {
	idx &= 0x1f
	c.Xreg[idx] = v
	c.Xreg[0] = 0
}

// ReadFreg reads the raw bit pattern of floating-point register idx.
func (c *CPU) ReadFreg(idx uint32) uint32 {
	return c.Freg[idx&0x1f]
}

// WriteFreg writes the raw bit pattern of floating-point register idx.
func (c *CPU) WriteFreg(idx, v uint32) {
	c.Freg[idx&0x1f] = v
}

// String renders a compact snapshot of the CPU's architectural state.
func (c *CPU) String() string {
	return fmt.Sprintf(
		"{PC:%#08x Xreg:%+v Mepc:%#08x Mcause:%d Mtval:%#08x result:%s}",
		c.PC, c.Xreg, c.Mepc, c.Mcause, c.Mtval, c.LastResult,
	)
}

// raise snapshots PC into Mepc, kind into Mcause, and value into Mtval
// before the caller has a chance to mutate PC further, then returns the
// trap.Result the handler should return. Centralizing this here keeps
// the CSR snapshot logic in one place instead of repeating it in every
// handler.
func (c *CPU) raise(kind trap.Kind, value uint32) trap.Result {
	c.Mepc = c.PC
	c.Mcause = uint32(kind)
	c.Mtval = value
	return trap.Raise(kind, value)
}
