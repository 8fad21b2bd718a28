package cpu

import (
	"github.com/bassosimone/rv32core/pkg/bus"
	"github.com/bassosimone/rv32core/pkg/decode"
	"github.com/bassosimone/rv32core/pkg/trap"
)

func (c *CPU) execLoad(ins *decode.Instruction) trap.Result {
	addr := c.ReadXreg(ins.Rs1) + uint32(ins.Imm)
	var value uint32
	var fault bus.Fault
	switch ins.Kind {
	case decode.LB:
		var b uint8
		b, fault = c.Bus.Read8(c.Token, addr)
		value = uint32(int32(int8(b)))
	case decode.LBU:
		var b uint8
		b, fault = c.Bus.Read8(c.Token, addr)
		value = uint32(b)
	case decode.LH:
		var h uint16
		h, fault = c.Bus.Read16(c.Token, addr)
		value = uint32(int32(int16(h)))
	case decode.LHU:
		var h uint16
		h, fault = c.Bus.Read16(c.Token, addr)
		value = uint32(h)
	case decode.LW:
		value, fault = c.Bus.Read32(c.Token, addr)
	}
	c.LastFault = fault
	if fault != bus.FaultOK {
		return c.raise(trap.LoadAccessFault, addr)
	}
	c.WriteXreg(ins.Rd, value)
	c.PC += 4
	return trap.Ok()
}

func (c *CPU) execStore(ins *decode.Instruction) trap.Result {
	addr := c.ReadXreg(ins.Rs1) + uint32(ins.Imm)
	v := c.ReadXreg(ins.Rs2)
	var fault bus.Fault
	switch ins.Kind {
	case decode.SB:
		fault = c.Bus.Write8(c.Token, addr, uint8(v))
	case decode.SH:
		fault = c.Bus.Write16(c.Token, addr, uint16(v))
	case decode.SW:
		fault = c.Bus.Write32(c.Token, addr, v)
	}
	c.LastFault = fault
	if fault != bus.FaultOK {
		return c.raise(trap.StoreAccessFault, addr)
	}
	c.PC += 4
	return trap.Ok()
}
