// Package trap defines the sum-typed outcome of a CPU operation.
//
// A Trap is a synchronous exception caused by the instruction currently
// executing. It halts the run loop and carries enough information for the
// host to snapshot mepc/mcause/mtval and decide whether to service it.
//
// The core never uses Go errors or panics to signal a trap: a trap is data,
// returned by value, so a host can service it (e.g. emulate an ECALL
// syscall) and resume the guest with mret.
package trap

import "fmt"

// Kind enumerates the reasons a CPU operation can trap. Values below
// match the RISC-V privileged-spec mcause exception codes so that a host
// reading CPU.Mcause sees the architectural number, not an arbitrary one.
type Kind uint32

// interruptBit marks the kinds reserved for interrupt causes. This core
// never raises an interrupt trap; the bit is reserved for future use.
const interruptBit = uint32(1) << 31

// The following kinds are the exception causes. The core raises only
// InstructionAccessFault, IllegalInstruction, Breakpoint, LoadAccessFault,
// StoreAccessFault, EnvironmentCallFromMMode, and NotImplementedYet; the
// others are defined so Mcause values have names.
const (
	InstructionMisaligned Kind = 0
	InstructionAccessFault Kind = 1
	IllegalInstruction Kind = 2
	Breakpoint Kind = 3
	LoadAddressMisaligned Kind = 4
	LoadAccessFault Kind = 5
	StoreAddressMisaligned Kind = 6
	StoreAccessFault Kind = 7
	EnvironmentCallFromUMode Kind = 8
	EnvironmentCallFromSMode Kind = 9
	EnvironmentCallFromMMode Kind = 11
	InstructionPageFault Kind = 12
	StorePageFault Kind = 15

	// NotImplementedYet is raised by recognized-but-unimplemented
	// opcodes (FENCE, FENCE.I, URET, SRET). It uses a code in the
	// range the privileged spec reserves for custom use.
	NotImplementedYet Kind = 24
)

// The following kinds mirror the exception causes above but as interrupt
// causes (bit 31 set). The core never raises them; they exist so hosts
// that inspect Mcause numerically see the same bit convention the RISC-V
// privileged spec defines.
const (
	InterruptSoftwareM Kind = Kind(3) | Kind(interruptBit)
	InterruptTimerM    Kind = Kind(7) | Kind(interruptBit)
	InterruptExternalM Kind = Kind(11) | Kind(interruptBit)
)

// IsInterrupt reports whether k is an interrupt cause (bit 31 set).
func (k Kind) IsInterrupt() bool {
	return uint32(k)&interruptBit != 0
}

// String renders the kind using its architectural name.
func (k Kind) String() string {
	switch k {
	case InstructionMisaligned:
		return "instruction-address-misaligned"
	case InstructionAccessFault:
		return "instruction-access-fault"
	case IllegalInstruction:
		return "illegal-instruction"
	case Breakpoint:
		return "breakpoint"
	case LoadAddressMisaligned:
		return "load-address-misaligned"
	case LoadAccessFault:
		return "load-access-fault"
	case StoreAddressMisaligned:
		return "store-address-misaligned"
	case StoreAccessFault:
		return "store-access-fault"
	case EnvironmentCallFromUMode:
		return "environment-call-from-u-mode"
	case EnvironmentCallFromSMode:
		return "environment-call-from-s-mode"
	case EnvironmentCallFromMMode:
		return "environment-call-from-m-mode"
	case InstructionPageFault:
		return "instruction-page-fault"
	case StorePageFault:
		return "store-page-fault"
	case NotImplementedYet:
		return "not-implemented-yet"
	default:
		return fmt.Sprintf("trap-kind(%#x)", uint32(k))
	}
}

// Trap carries the kind of exception and its associated 32-bit value: the
// faulting address for access/misaligned faults, the raw encoding for
// illegal-instruction, zero otherwise.
type Trap struct {
	Kind  Kind
	Value uint32
}

func (t Trap) String() string {
	return fmt.Sprintf("%s(%#x)", t.Kind, t.Value)
}

// Result is the two-variant sum type every CPU operation returns: either
// ok, or a trap. The zero value of Result is ok.
type Result struct {
	Trap    Trap
	IsTrap  bool
}

// Ok constructs the ok variant.
func Ok() Result {
	return Result{}
}

// Raise constructs the trap variant.
func Raise(kind Kind, value uint32) Result {
	return Result{Trap: Trap{Kind: kind, Value: value}, IsTrap: true}
}

func (r Result) String() string {
	if !r.IsTrap {
		return "ok"
	}
	return r.Trap.String()
}
