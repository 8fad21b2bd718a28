package cpu

import (
	"github.com/bassosimone/rv32core/pkg/decode"
	"github.com/bassosimone/rv32core/pkg/trap"
)

func (c *CPU) execLUI(ins *decode.Instruction) trap.Result {
	c.WriteXreg(ins.Rd, uint32(ins.Imm))
	c.PC += 4
	return trap.Ok()
}

func (c *CPU) execAUIPC(ins *decode.Instruction) trap.Result {
	c.WriteXreg(ins.Rd, c.PC+uint32(ins.Imm))
	c.PC += 4
	return trap.Ok()
}

func (c *CPU) execJAL(ins *decode.Instruction) trap.Result {
	c.WriteXreg(ins.Rd, c.PC+4)
	c.PC += uint32(ins.Imm)
	return trap.Ok()
}

func (c *CPU) execJALR(ins *decode.Instruction) trap.Result {
	// Capture rs1 first: rd may equal rs1.
	t := c.ReadXreg(ins.Rs1)
	c.WriteXreg(ins.Rd, c.PC+4)
	c.PC = (t + uint32(ins.Imm)) &^ 1
	return trap.Ok()
}

func (c *CPU) execBranch(ins *decode.Instruction) trap.Result {
	a, b := c.ReadXreg(ins.Rs1), c.ReadXreg(ins.Rs2)
	var taken bool
	switch ins.Kind {
	case decode.BEQ:
		taken = a == b
	case decode.BNE:
		taken = a != b
	case decode.BLT:
		taken = int32(a) < int32(b)
	case decode.BGE:
		taken = int32(a) >= int32(b)
	case decode.BLTU:
		taken = a < b
	case decode.BGEU:
		taken = a >= b
	}
	if taken {
		c.PC += uint32(ins.Imm)
	} else {
		c.PC += 4
	}
	return trap.Ok()
}

func (c *CPU) execALUImm(ins *decode.Instruction) trap.Result {
	a := c.ReadXreg(ins.Rs1)
	imm := uint32(ins.Imm)
	var r uint32
	switch ins.Kind {
	case decode.ADDI:
		r = a + imm
	case decode.SLTI:
		r = boolToU32(int32(a) < ins.Imm)
	case decode.SLTIU:
		// The immediate is sign-extended to 32 bits and then compared
		// as unsigned: imm = -1 becomes 0xFFFFFFFF, the maximum
		// unsigned value, not -1.
		r = boolToU32(a < imm)
	case decode.XORI:
		r = a ^ imm
	case decode.ORI:
		r = a | imm
	case decode.ANDI:
		r = a & imm
	}
	c.WriteXreg(ins.Rd, r)
	c.PC += 4
	return trap.Ok()
}

func (c *CPU) execShiftImm(ins *decode.Instruction) trap.Result {
	a := c.ReadXreg(ins.Rs1)
	shamt := uint32(ins.Imm) & 0x1f
	var r uint32
	switch ins.Kind {
	case decode.SLLI:
		r = a << shamt
	case decode.SRLI:
		r = a >> shamt
	case decode.SRAI:
		r = uint32(int32(a) >> shamt)
	}
	c.WriteXreg(ins.Rd, r)
	c.PC += 4
	return trap.Ok()
}

func (c *CPU) execALUReg(ins *decode.Instruction) trap.Result {
	a, b := c.ReadXreg(ins.Rs1), c.ReadXreg(ins.Rs2)
	shamt := b & 0x1f
	var r uint32
	switch ins.Kind {
	case decode.ADD:
		r = a + b
	case decode.SUB:
		r = a - b
	case decode.SLL:
		r = a << shamt
	case decode.SLT:
		r = boolToU32(int32(a) < int32(b))
	case decode.SLTU:
		r = boolToU32(a < b)
	case decode.XOR:
		r = a ^ b
	case decode.SRL:
		r = a >> shamt
	case decode.SRA:
		r = uint32(int32(a) >> shamt)
	case decode.OR:
		r = a | b
	case decode.AND:
		r = a & b
	}
	c.WriteXreg(ins.Rd, r)
	c.PC += 4
	return trap.Ok()
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
