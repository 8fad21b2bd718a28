package cpu

import (
	"math"

	"github.com/bassosimone/rv32core/pkg/decode"
	"github.com/bassosimone/rv32core/pkg/trap"
)

func (c *CPU) execMExt(ins *decode.Instruction) trap.Result {
	a, b := c.ReadXreg(ins.Rs1), c.ReadXreg(ins.Rs2)
	var r uint32
	switch ins.Kind {
	case decode.MUL:
		// Low 32 bits of a signed*signed product are identical to
		// the low 32 bits of the unsigned product.
		r = a * b
	case decode.MULH:
		r = uint32(uint64(int64(int32(a)) * int64(int32(b)) >> 32))
	case decode.MULHSU:
		r = uint32(uint64(int64(int32(a))*int64(uint64(b))) >> 32)
	case decode.MULHU:
		r = uint32((uint64(a) * uint64(b)) >> 32)
	case decode.DIV:
		r = sdiv(a, b)
	case decode.DIVU:
		if b == 0 {
			r = 0xFFFFFFFF
		} else {
			r = a / b
		}
	case decode.REM:
		r = srem(a, b)
	case decode.REMU:
		if b == 0 {
			r = a
		} else {
			r = a % b
		}
	}
	c.WriteXreg(ins.Rd, r)
	c.PC += 4
	return trap.Ok()
}

func sdiv(a, b uint32) uint32 {
	dividend, divisor := int32(a), int32(b)
	if divisor == 0 {
		return 0xFFFFFFFF
	}
	if dividend == math.MinInt32 && divisor == -1 {
		return a // overflow: result is the dividend
	}
	return uint32(dividend / divisor)
}

func srem(a, b uint32) uint32 {
	dividend, divisor := int32(a), int32(b)
	if divisor == 0 {
		return a
	}
	if dividend == math.MinInt32 && divisor == -1 {
		return 0 // overflow: result is zero
	}
	return uint32(dividend % divisor)
}
