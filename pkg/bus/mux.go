package bus

// Device is a memory-mapped peripheral attached to a Mux. Unlike Bus it
// is only ever accessed word-at-a-time: Console is the only Device this
// package ships, and guests are expected to access its status/data
// registers with 32-bit loads/stores.
type Device interface {
	Contains(addr uint32) bool
	Read32(addr uint32) (uint32, Fault)
	Write32(addr uint32, v uint32) Fault
}

// Mux routes an address to one of several backing devices based on
// the address ranges of the devices attached to it, falling back to a base
// Memory for everything no device claims. It implements Bus itself, so
// cpu.CPU never needs to know devices exist — it just sees one Bus.
type Mux struct {
	Memory  *Memory
	Devices []Device
}

// NewMux constructs a Mux over mem with no devices attached.
func NewMux(mem *Memory) *Mux {
	return &Mux{Memory: mem}
}

// Attach adds d to the set of devices the Mux checks before falling back
// to Memory.
func (m *Mux) Attach(d Device) {
	m.Devices = append(m.Devices, d)
}

func (m *Mux) deviceFor(addr uint32) Device {
	for _, d := range m.Devices {
		if d.Contains(addr) {
			return d
		}
	}
	return nil
}

func (m *Mux) Read8(token interface{}, addr uint32) (uint8, Fault) {
	if d := m.deviceFor(addr); d != nil {
		v, fault := d.Read32(addr)
		return uint8(v), fault
	}
	return m.Memory.Read8(token, addr)
}

func (m *Mux) Read16(token interface{}, addr uint32) (uint16, Fault) {
	if d := m.deviceFor(addr); d != nil {
		v, fault := d.Read32(addr)
		return uint16(v), fault
	}
	return m.Memory.Read16(token, addr)
}

func (m *Mux) Read32(token interface{}, addr uint32) (uint32, Fault) {
	if d := m.deviceFor(addr); d != nil {
		return d.Read32(addr)
	}
	return m.Memory.Read32(token, addr)
}

func (m *Mux) Write8(token interface{}, addr uint32, v uint8) Fault {
	if d := m.deviceFor(addr); d != nil {
		return d.Write32(addr, uint32(v))
	}
	return m.Memory.Write8(token, addr, v)
}

func (m *Mux) Write16(token interface{}, addr uint32, v uint16) Fault {
	if d := m.deviceFor(addr); d != nil {
		return d.Write32(addr, uint32(v))
	}
	return m.Memory.Write16(token, addr, v)
}

func (m *Mux) Write32(token interface{}, addr uint32, v uint32) Fault {
	if d := m.deviceFor(addr); d != nil {
		return d.Write32(addr, v)
	}
	return m.Memory.Write32(token, addr, v)
}

var _ Bus = &Mux{}
