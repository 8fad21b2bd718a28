package cpu

import (
	"github.com/bassosimone/rv32core/pkg/bus"
	"github.com/bassosimone/rv32core/pkg/decode"
	"github.com/bassosimone/rv32core/pkg/icache"
	"github.com/bassosimone/rv32core/pkg/trap"
)

// Execute decodes word once, bypassing the decoded-instruction cache
// entirely, executes it once, and returns the result. It is the engine's
// bypass entry point: useful for single-stepping an instruction that did
// not come from the guest's own memory image (e.g. a host-synthesized
// instruction), and for tests that want to exercise a handler without
// going through Lookup/reseat.
func (c *CPU) Execute(word uint32) trap.Result {
	defer func() { c.Xreg[0] = 0 }()
	ins := decode.Decode(word)
	result := c.dispatch(&ins, 0, 0)
	c.LastResult = result
	return result
}

// Run resets the last result to ok, then repeats {fetch via cache;
// execute} up to budget times, stopping early on the first trap. It
// records how many instructions retired in c.Retired and clears the last
// bus fault so the next Run starts fresh.
func (c *CPU) Run(budget uint64) trap.Result {
	c.LastResult = trap.Ok()
	c.LastFault = bus.FaultOK
	c.Retired = 0
	for i := uint64(0); i < budget; i++ {
		slot, lineSlot, idx := c.Cache.Lookup(c.PC)
		func() {
			defer func() { c.Xreg[0] = 0 }()
			c.LastResult = c.dispatch(slot, lineSlot, idx)
		}()
		c.Retired++
		if c.LastResult.IsTrap {
			break
		}
	}
	return c.LastResult
}

// Mret restores PC from Mepc+4: "resume at the instruction after the one
// that trapped." This core exposes exactly one mret entry point; see
// DESIGN.md for why no second "return-to-current" variant is offered.
func (c *CPU) Mret() {
	c.doMret()
}

func (c *CPU) doMret() {
	c.PC = c.Mepc + 4
}

// dispatch is the single-pass dispatch over a decoded instruction's Kind.
// lineSlot/idx identify the cache slot ins came from (both zero and
// meaningless when called from Execute's bypass path); they are only
// used by the FetchDecodeReplace branch to reconstruct the fetch address
// and to store the freshly decoded instruction back in place.
func (c *CPU) dispatch(ins *decode.Instruction, lineSlot, idx uint32) trap.Result {
	switch ins.Kind {
	case decode.FetchDecodeReplace:
		return c.execFetchDecodeReplace(lineSlot, idx)
	case decode.Illegal:
		return c.raise(trap.IllegalInstruction, ins.Raw)

	case decode.LUI:
		return c.execLUI(ins)
	case decode.AUIPC:
		return c.execAUIPC(ins)
	case decode.JAL:
		return c.execJAL(ins)
	case decode.JALR:
		return c.execJALR(ins)

	case decode.BEQ, decode.BNE, decode.BLT, decode.BGE, decode.BLTU, decode.BGEU:
		return c.execBranch(ins)

	case decode.LB, decode.LH, decode.LW, decode.LBU, decode.LHU:
		return c.execLoad(ins)
	case decode.SB, decode.SH, decode.SW:
		return c.execStore(ins)

	case decode.ADDI, decode.SLTI, decode.SLTIU, decode.XORI, decode.ORI, decode.ANDI:
		return c.execALUImm(ins)
	case decode.SLLI, decode.SRLI, decode.SRAI:
		return c.execShiftImm(ins)
	case decode.ADD, decode.SUB, decode.SLL, decode.SLT, decode.SLTU,
		decode.XOR, decode.SRL, decode.SRA, decode.OR, decode.AND:
		return c.execALUReg(ins)

	case decode.MUL, decode.MULH, decode.MULHSU, decode.MULHU,
		decode.DIV, decode.DIVU, decode.REM, decode.REMU:
		return c.execMExt(ins)

	case decode.FENCE, decode.FENCEI, decode.URET, decode.SRET:
		return c.raise(trap.NotImplementedYet, 0)
	case decode.ECALL:
		return c.raise(trap.EnvironmentCallFromMMode, 0)
	case decode.EBREAK:
		return c.raise(trap.Breakpoint, 0)
	case decode.MRET:
		c.doMret()
		return trap.Ok()

	case decode.FLW:
		return c.execFLW(ins)
	case decode.FSW:
		return c.execFSW(ins)
	case decode.FMADDS, decode.FMSUBS, decode.FNMSUBS, decode.FNMADDS:
		return c.execFMA(ins)
	case decode.FADDS, decode.FSUBS, decode.FMULS, decode.FDIVS:
		return c.execFBinary(ins)
	case decode.FSQRTS:
		return c.execFSqrt(ins)
	case decode.FSGNJS, decode.FSGNJNS, decode.FSGNJXS:
		return c.execFSign(ins)
	case decode.FMINS, decode.FMAXS:
		return c.execFMinMax(ins)
	case decode.FCVTWS, decode.FCVTWUS, decode.FCVTSW, decode.FCVTSWU:
		return c.execFConvert(ins)
	case decode.FMVXW:
		c.WriteXreg(ins.Rd, c.ReadFreg(ins.Rs1))
		c.PC += 4
		return trap.Ok()
	case decode.FMVWX:
		c.WriteFreg(ins.Rd, c.ReadXreg(ins.Rs1))
		c.PC += 4
		return trap.Ok()
	case decode.FEQS, decode.FLTS, decode.FLES:
		return c.execFCompare(ins)
	case decode.FCLASSS:
		return c.execFClass(ins)

	default:
		return c.raise(trap.IllegalInstruction, ins.Raw)
	}
}

// execFetchDecodeReplace reconstitutes the source address from the
// cache's (lineSlot, idx) coordinates and the line's current owner,
// fetches the raw word via the bus, decodes it, stores the decoded
// record back into the same cache slot (overwriting the sentinel), and
// immediately executes it. This is the only place decoded records are
// written into the cache: the cache never calls the decoder or the bus
// itself.
func (c *CPU) execFetchDecodeReplace(lineSlot, idx uint32) trap.Result {
	owner := c.Cache.Owner(lineSlot)
	addr := owner*4*icache.LineLen + idx*4
	word, fault := c.Bus.Read32(c.Token, addr)
	if fault != bus.FaultOK {
		c.LastFault = fault
		return c.raise(trap.InstructionAccessFault, addr)
	}
	c.LastFault = fault
	decoded := decode.Decode(word)
	slot := &c.Cache.Lines[lineSlot].Slots[idx]
	*slot = decoded
	return c.dispatch(slot, lineSlot, idx)
}
