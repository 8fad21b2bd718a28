package cpu

import (
	"math"

	"github.com/bassosimone/rv32core/pkg/bus"
	"github.com/bassosimone/rv32core/pkg/decode"
	"github.com/bassosimone/rv32core/pkg/trap"
)

// Rounding mode is decoded into Instruction.Rm but never enforced: this
// core relies on the host FPU's default (round-to-nearest-even) behavior
// for every rounded operation.

func f32(bits uint32) float32 { return math.Float32frombits(bits) }
func bits32(f float32) uint32 { return math.Float32bits(f) }

func (c *CPU) execFLW(ins *decode.Instruction) trap.Result {
	addr := c.ReadXreg(ins.Rs1) + uint32(ins.Imm)
	word, fault := c.Bus.Read32(c.Token, addr)
	c.LastFault = fault
	if fault != bus.FaultOK {
		return c.raise(trap.LoadAccessFault, addr)
	}
	c.WriteFreg(ins.Rd, word)
	c.PC += 4
	return trap.Ok()
}

func (c *CPU) execFSW(ins *decode.Instruction) trap.Result {
	addr := c.ReadXreg(ins.Rs1) + uint32(ins.Imm)
	fault := c.Bus.Write32(c.Token, addr, c.ReadFreg(ins.Rs2))
	c.LastFault = fault
	if fault != bus.FaultOK {
		return c.raise(trap.StoreAccessFault, addr)
	}
	c.PC += 4
	return trap.Ok()
}

func (c *CPU) execFMA(ins *decode.Instruction) trap.Result {
	a := f32(c.ReadFreg(ins.Rs1))
	b := f32(c.ReadFreg(ins.Rs2))
	d := f32(c.ReadFreg(ins.Rs3))
	var r float32
	switch ins.Kind {
	case decode.FMADDS:
		r = a*b + d
	case decode.FMSUBS:
		r = a*b - d
	case decode.FNMSUBS:
		r = -(a * b) + d
	case decode.FNMADDS:
		r = -(a * b) - d
	}
	c.WriteFreg(ins.Rd, bits32(r))
	c.PC += 4
	return trap.Ok()
}

func (c *CPU) execFBinary(ins *decode.Instruction) trap.Result {
	a, b := f32(c.ReadFreg(ins.Rs1)), f32(c.ReadFreg(ins.Rs2))
	var r float32
	switch ins.Kind {
	case decode.FADDS:
		r = a + b
	case decode.FSUBS:
		r = a - b
	case decode.FMULS:
		r = a * b
	case decode.FDIVS:
		r = a / b
	}
	c.WriteFreg(ins.Rd, bits32(r))
	c.PC += 4
	return trap.Ok()
}

func (c *CPU) execFSqrt(ins *decode.Instruction) trap.Result {
	a := f32(c.ReadFreg(ins.Rs1))
	r := float32(math.Sqrt(float64(a)))
	c.WriteFreg(ins.Rd, bits32(r))
	c.PC += 4
	return trap.Ok()
}

// execFSign implements FSGNJ.S/FSGNJN.S/FSGNJX.S as bit-level sign-bit
// manipulation, equivalent to the abs(x)*sign(y) formulation for every
// finite, non-NaN input.
func (c *CPU) execFSign(ins *decode.Instruction) trap.Result {
	const signBit = uint32(1) << 31
	x, y := c.ReadFreg(ins.Rs1), c.ReadFreg(ins.Rs2)
	var r uint32
	switch ins.Kind {
	case decode.FSGNJS:
		r = (x &^ signBit) | (y & signBit)
	case decode.FSGNJNS:
		r = (x &^ signBit) | (^y & signBit)
	case decode.FSGNJXS:
		r = x ^ (y & signBit)
	}
	c.WriteFreg(ins.Rd, r)
	c.PC += 4
	return trap.Ok()
}

const canonicalQNaN = 0x7fc00000

func (c *CPU) execFMinMax(ins *decode.Instruction) trap.Result {
	a, b := f32(c.ReadFreg(ins.Rs1)), f32(c.ReadFreg(ins.Rs2))
	aNaN, bNaN := isNaN32(a), isNaN32(b)
	var r uint32
	switch {
	case aNaN && bNaN:
		r = canonicalQNaN
	case aNaN:
		r = bits32(b)
	case bNaN:
		r = bits32(a)
	case ins.Kind == decode.FMINS:
		r = bits32(minFloat32(a, b))
	default:
		r = bits32(maxFloat32(a, b))
	}
	c.WriteFreg(ins.Rd, r)
	c.PC += 4
	return trap.Ok()
}

func isNaN32(f float32) bool { return f != f }

func minFloat32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxFloat32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func (c *CPU) execFConvert(ins *decode.Instruction) trap.Result {
	switch ins.Kind {
	case decode.FCVTWS:
		c.WriteXreg(ins.Rd, float32ToInt32(f32(c.ReadFreg(ins.Rs1))))
	case decode.FCVTWUS:
		c.WriteXreg(ins.Rd, float32ToUint32(f32(c.ReadFreg(ins.Rs1))))
	case decode.FCVTSW:
		c.WriteFreg(ins.Rd, bits32(float32(int32(c.ReadXreg(ins.Rs1)))))
	case decode.FCVTSWU:
		c.WriteFreg(ins.Rd, bits32(float32(c.ReadXreg(ins.Rs1))))
	}
	c.PC += 4
	return trap.Ok()
}

func float32ToInt32(f float32) uint32 {
	switch {
	case isNaN32(f), f >= 2147483648.0:
		return 0x7fffffff
	case f < -2147483648.0:
		return 0x80000000
	default:
		return uint32(int32(f))
	}
}

func float32ToUint32(f float32) uint32 {
	switch {
	case isNaN32(f), f < 0:
		return 0
	case f >= 4294967296.0:
		return 0xffffffff
	default:
		return uint32(f)
	}
}

func (c *CPU) execFCompare(ins *decode.Instruction) trap.Result {
	a, b := f32(c.ReadFreg(ins.Rs1)), f32(c.ReadFreg(ins.Rs2))
	var r bool
	switch ins.Kind {
	case decode.FEQS:
		r = a == b
	case decode.FLTS:
		r = a < b
	case decode.FLES:
		r = a <= b
	}
	c.WriteXreg(ins.Rd, boolToU32(r))
	c.PC += 4
	return trap.Ok()
}

// The following bit positions match the RV32F FCLASS.S result encoding.
const (
	classNegInf = 1 << iota
	classNegNormal
	classNegSubnormal
	classNegZero
	classPosZero
	classPosSubnormal
	classPosNormal
	classPosInf
	classSignalingNaN
	classQuietNaN
)

func (c *CPU) execFClass(ins *decode.Instruction) trap.Result {
	bits := c.ReadFreg(ins.Rs1)
	sign := bits&0x80000000 != 0
	exp := (bits >> 23) & 0xff
	frac := bits & 0x7fffff

	var r uint32
	switch {
	case exp == 0xff && frac == 0:
		if sign {
			r = classNegInf
		} else {
			r = classPosInf
		}
	case exp == 0xff:
		if frac&0x400000 != 0 {
			r = classQuietNaN
		} else {
			r = classSignalingNaN
		}
	case exp == 0 && frac == 0:
		if bits == 0x80000000 {
			r = classNegZero
		} else {
			r = classPosZero
		}
	case exp == 0:
		if sign {
			r = classNegSubnormal
		} else {
			r = classPosSubnormal
		}
	default:
		if sign {
			r = classNegNormal
		} else {
			r = classPosNormal
		}
	}
	c.WriteXreg(ins.Rd, r)
	c.PC += 4
	return trap.Ok()
}
