package bus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bassosimone/rv32core/pkg/bus"
)

func TestMemoryLoadAndReadRoundTrip(t *testing.T) {
	m := bus.NewMemory(64)
	require.NoError(t, m.Load(4, []byte{0xef, 0xbe, 0xad, 0xde}))

	v, fault := m.Read32(nil, 4)
	require.Equal(t, bus.FaultOK, fault)
	assert.Equal(t, uint32(0xdeadbeef), v)
}

func TestMemoryLoadOutOfRange(t *testing.T) {
	m := bus.NewMemory(4)
	err := m.Load(2, []byte{1, 2, 3})
	assert.Error(t, err)
}

func TestMemoryReadWriteFaultsPastEnd(t *testing.T) {
	m := bus.NewMemory(4)

	_, fault := m.Read32(nil, 2)
	assert.Equal(t, bus.FaultLoadAccess, fault)

	fault = m.Write32(nil, 2, 0xffffffff)
	assert.Equal(t, bus.FaultStoreAccess, fault)

	_, fault = m.Read8(nil, 4)
	assert.Equal(t, bus.FaultLoadAccess, fault)
}

func TestMemoryLittleEndianWidths(t *testing.T) {
	m := bus.NewMemory(16)
	require.Equal(t, bus.FaultOK, m.Write16(nil, 0, 0x1234))
	b0, _ := m.Read8(nil, 0)
	b1, _ := m.Read8(nil, 1)
	assert.Equal(t, uint8(0x34), b0)
	assert.Equal(t, uint8(0x12), b1)

	v, _ := m.Read16(nil, 0)
	assert.Equal(t, uint16(0x1234), v)
}
