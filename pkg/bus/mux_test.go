package bus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bassosimone/rv32core/pkg/bus"
)

type fakeDevice struct {
	base   uint32
	status uint32
}

func (d *fakeDevice) Contains(addr uint32) bool { return addr == d.base }

func (d *fakeDevice) Read32(addr uint32) (uint32, bus.Fault) {
	return d.status, bus.FaultOK
}

func (d *fakeDevice) Write32(addr uint32, v uint32) bus.Fault {
	d.status = v
	return bus.FaultOK
}

func TestMuxRoutesDeviceAddressesAwayFromMemory(t *testing.T) {
	mem := bus.NewMemory(16)
	require.NoError(t, mem.Load(0, []byte{1, 2, 3, 4}))

	mux := bus.NewMux(mem)
	dev := &fakeDevice{base: 0x1000, status: 0xaa}
	mux.Attach(dev)

	v, fault := mux.Read32(nil, 0x1000)
	require.Equal(t, bus.FaultOK, fault)
	assert.Equal(t, uint32(0xaa), v)

	require.Equal(t, bus.FaultOK, mux.Write32(nil, 0x1000, 0x55))
	assert.Equal(t, uint32(0x55), dev.status)

	v, fault = mux.Read32(nil, 0)
	require.Equal(t, bus.FaultOK, fault)
	assert.Equal(t, uint32(0x04030201), v)
}

func TestMuxFallsBackToMemoryWhenNoDeviceClaimsAddress(t *testing.T) {
	mem := bus.NewMemory(16)
	mux := bus.NewMux(mem)
	mux.Attach(&fakeDevice{base: 0x1000})

	require.Equal(t, bus.FaultOK, mux.Write8(nil, 0, 0x42))
	v, fault := mux.Read8(nil, 0)
	require.Equal(t, bus.FaultOK, fault)
	assert.Equal(t, uint8(0x42), v)
}

var _ bus.Device = &fakeDevice{}
