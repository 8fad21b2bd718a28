// Package image loads host-side memory images into a byte slice suitable
// for bus.Memory.Load. ELF loading is out of scope: image only ever
// produces a flat byte slice from a flat text or binary representation.
package image

import (
	"bufio"
	"encoding/binary"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadHex reads a text memory image, one 32-bit instruction word per
// line as a 0x-prefixed hex literal with an optional #-introduced
// trailing comment, and packs the words little-endian into a byte
// slice suitable for a byte-addressed bus.
func LoadHex(r io.Reader) ([]byte, error) {
	var out []byte
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		value, err := strconv.ParseUint(line, 0, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "image: invalid word at line %d", lineno)
		}
		var word [4]byte
		binary.LittleEndian.PutUint32(word[:], uint32(value))
		out = append(out, word[:]...)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "image: cannot read hex image")
	}
	return out, nil
}

// LoadRaw reads a flat binary memory image verbatim.
func LoadRaw(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "image: cannot read raw image")
	}
	return data, nil
}
