// Package icache implements the decoded-instruction cache: a PC-indexed
// memoization layer in front of the decoder and the execution engine.
// The cache is a plain embedded array field, not a map or a slice of
// pointers, so reseating a line never allocates.
package icache

import "github.com/bassosimone/rv32core/pkg/decode"

// LineLen is the number of decoded instructions (L) held per cache line.
const LineLen = 32

// NumLines is the number of cache lines (N).
const NumLines = 64

// Line holds the decoded instructions for one aligned 4*LineLen-byte
// span of guest code ("owner"). A line is either invalid, or owned by
// exactly one owner.
type Line struct {
	Owner uint32
	Valid bool
	Slots [LineLen]decode.Instruction
}

// Cache is the full set of cache lines belonging to one CPU. The zero
// value is a fully invalid cache, equivalent to calling Reset.
type Cache struct {
	Lines [NumLines]Line
}

// Reset invalidates every line. Owner values are left indeterminate: a
// subsequent Lookup always reseats an invalid line before returning a
// slot from it.
func (c *Cache) Reset() {
	for i := range c.Lines {
		c.Lines[i].Valid = false
	}
}

// Lookup returns a pointer to the decoded-instruction slot for the
// instruction at address pc, along with the line and index coordinates
// that identify that slot (needed by the caller to reconstruct the
// fetch address when the slot turns out to be a fetch-decode-replace
// sentinel). If the line that would hold pc is invalid or owned by a
// different address group, it is reseated first: every one of its
// LineLen slots is filled with a fetch-decode-replace sentinel.
func (c *Cache) Lookup(pc uint32) (slot *decode.Instruction, line uint32, index uint32) {
	wordIndex := pc / 4
	owner := wordIndex / LineLen
	lineSlot := owner % NumLines
	idx := wordIndex % LineLen

	ln := &c.Lines[lineSlot]
	if !ln.Valid || ln.Owner != owner {
		ln.Owner = owner
		ln.Valid = true
		for i := range ln.Slots {
			ln.Slots[i] = decode.Instruction{
				Kind:      decode.FetchDecodeReplace,
				CacheLine: lineSlot,
				CacheIndex: uint32(i),
			}
		}
	}
	return &ln.Slots[idx], lineSlot, idx
}

// Owner returns the current owner of the given line slot, used by the
// fetch-decode-replace handler to reconstruct the fetch address.
func (c *Cache) Owner(lineSlot uint32) uint32 {
	return c.Lines[lineSlot].Owner
}
