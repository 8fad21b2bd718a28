// Package bus defines the contract through which a cpu.CPU reaches memory
// and memory-mapped devices, plus a small set of concrete implementations
// (a flat RAM, a memory-mapped console, and a multiplexer tying them
// together) that host programs can use without writing their own.
//
// The core only ever consumes the Bus interface below: alignment is the
// bus's problem, not the CPU's, and endianness is always little-endian.
package bus

// Fault is the three-valued fault code every bus call writes in addition
// to returning a value. Callers must check it before trusting the value.
type Fault uint8

// The following are the only faults a Bus implementation may report.
const (
	FaultOK Fault = iota
	FaultLoadAccess
	FaultStoreAccess
)

func (f Fault) String() string {
	switch f {
	case FaultOK:
		return "ok"
	case FaultLoadAccess:
		return "load-access-fault"
	case FaultStoreAccess:
		return "store-access-fault"
	default:
		return "unknown-fault"
	}
}

// Bus is the capability object a cpu.CPU is constructed with. Token is an
// opaque value threaded through every call — the core never inspects it —
// that a bus implementation may use to distinguish callers (e.g. separate
// guest address spaces) or may ignore entirely.
type Bus interface {
	Read8(token interface{}, addr uint32) (uint8, Fault)
	Read16(token interface{}, addr uint32) (uint16, Fault)
	Read32(token interface{}, addr uint32) (uint32, Fault)
	Write8(token interface{}, addr uint32, v uint8) Fault
	Write16(token interface{}, addr uint32, v uint16) Fault
	Write32(token interface{}, addr uint32, v uint32) Fault
}
