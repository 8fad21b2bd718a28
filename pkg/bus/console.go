package bus

import (
	"net"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// The following constants define the bits of Console's status register.
const (
	ConsoleRxReady = 1 << iota // a byte is available to read from DataReg
	ConsoleTxIdle              // the last written byte has been drained
)

// ErrConsoleDetach indicates that the controlling connection went away.
var ErrConsoleDetach = errors.New("bus: console detached")

// Console is a memory-mapped, byte-at-a-time UART-like device. It holds
// a controlling net.Conn and is polled with a short deadline so it never
// blocks the run loop. It is expressed as a Device the host attaches to
// a Mux rather than a field baked into the CPU itself — the core has no
// notion of devices, only of the Bus it is handed.
//
// Console occupies two 32-bit registers at Base: the status register at
// Base+0 and the data register at Base+4. A guest polls the status
// register, then reads/writes the data register when the corresponding
// bit is set.
type Console struct {
	Base uint32

	conn   net.Conn
	status uint32
	data   uint32
}

// ConsoleAcceptConn waits for a controlling TCP connection to attach, then
// returns a Console ready to be installed on a Mux at base.
func ConsoleAcceptConn(base uint32) (*Console, error) {
	nl, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, errors.Wrap(err, "bus: cannot listen for console")
	}
	conn, err := nl.Accept()
	if err != nil {
		return nil, errors.Wrap(err, "bus: cannot accept console connection")
	}
	return &Console{Base: base, conn: conn, status: ConsoleTxIdle}, nil
}

// Close closes the underlying connection.
func (c *Console) Close() error {
	return c.conn.Close()
}

// LocalAddr returns the address the console accepted its connection on.
func (c *Console) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// Poll drains a pending output byte and fills a pending input byte,
// without ever blocking the CPU's run loop for more than a millisecond.
// The core never calls this itself — FENCE/interrupts are out of scope —
// so the host must call it between Run invocations if it wants I/O to
// make progress.
func (c *Console) Poll() error {
	c.conn.SetDeadline(time.Now().Add(time.Millisecond))
	if c.status&ConsoleTxIdle == 0 {
		var b [1]byte
		b[0] = byte(c.data)
		if _, err := c.conn.Write(b[:]); err != nil {
			if strings.HasSuffix(err.Error(), "i/o timeout") {
				return nil
			}
			return errors.Wrap(ErrConsoleDetach, err.Error())
		}
		c.status |= ConsoleTxIdle
	}
	if c.status&ConsoleRxReady == 0 {
		var b [1]byte
		if _, err := c.conn.Read(b[:]); err != nil {
			if strings.HasSuffix(err.Error(), "i/o timeout") {
				return nil
			}
			return errors.Wrap(ErrConsoleDetach, err.Error())
		}
		c.data = uint32(b[0])
		c.status |= ConsoleRxReady
	}
	return nil
}

// Contains reports whether addr falls within the console's two registers.
func (c *Console) Contains(addr uint32) bool {
	return addr == c.Base || addr == c.Base+4
}

func (c *Console) Read32(addr uint32) (uint32, Fault) {
	switch addr {
	case c.Base:
		return c.status, FaultOK
	case c.Base + 4:
		v := c.data
		c.status &^= ConsoleRxReady
		return v, FaultOK
	default:
		return 0, FaultLoadAccess
	}
}

func (c *Console) Write32(addr uint32, v uint32) Fault {
	switch addr {
	case c.Base + 4:
		c.data = v
		c.status &^= ConsoleTxIdle
		return FaultOK
	default:
		return FaultStoreAccess
	}
}
