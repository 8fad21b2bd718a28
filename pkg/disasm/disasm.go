// Package disasm renders a decoded RV32IMF instruction as RISC-V
// assembly text, one switch case per opcode variant.
package disasm

import (
	"fmt"

	"github.com/bassosimone/rv32core/pkg/decode"
)

// Format decodes word and renders it as assembly text.
func Format(word uint32) string {
	return FormatInstruction(decode.Decode(word))
}

// FormatInstruction renders an already-decoded instruction as assembly
// text.
func FormatInstruction(ins decode.Instruction) string {
	switch ins.Kind {
	case decode.Illegal:
		return fmt.Sprintf("<illegal: %#08x>", ins.Raw)
	case decode.FetchDecodeReplace:
		return "<fetch-decode-replace>"

	case decode.LUI:
		return fmt.Sprintf("lui x%d, %d", ins.Rd, ins.Imm>>12)
	case decode.AUIPC:
		return fmt.Sprintf("auipc x%d, %d", ins.Rd, ins.Imm>>12)
	case decode.JAL:
		return fmt.Sprintf("jal x%d, %d", ins.Rd, ins.Imm)
	case decode.JALR:
		return fmt.Sprintf("jalr x%d, x%d, %d", ins.Rd, ins.Rs1, ins.Imm)

	case decode.BEQ, decode.BNE, decode.BLT, decode.BGE, decode.BLTU, decode.BGEU:
		return fmt.Sprintf("%s x%d, x%d, %d", ins.Kind, ins.Rs1, ins.Rs2, ins.Imm)

	case decode.LB, decode.LH, decode.LW, decode.LBU, decode.LHU:
		return fmt.Sprintf("%s x%d, %d(x%d)", ins.Kind, ins.Rd, ins.Imm, ins.Rs1)
	case decode.SB, decode.SH, decode.SW:
		return fmt.Sprintf("%s x%d, %d(x%d)", ins.Kind, ins.Rs2, ins.Imm, ins.Rs1)

	case decode.ADDI, decode.SLTI, decode.SLTIU, decode.XORI, decode.ORI, decode.ANDI:
		return fmt.Sprintf("%s x%d, x%d, %d", ins.Kind, ins.Rd, ins.Rs1, ins.Imm)
	case decode.SLLI, decode.SRLI, decode.SRAI:
		return fmt.Sprintf("%s x%d, x%d, %d", ins.Kind, ins.Rd, ins.Rs1, ins.Imm)
	case decode.ADD, decode.SUB, decode.SLL, decode.SLT, decode.SLTU,
		decode.XOR, decode.SRL, decode.SRA, decode.OR, decode.AND,
		decode.MUL, decode.MULH, decode.MULHSU, decode.MULHU,
		decode.DIV, decode.DIVU, decode.REM, decode.REMU:
		return fmt.Sprintf("%s x%d, x%d, x%d", ins.Kind, ins.Rd, ins.Rs1, ins.Rs2)

	case decode.FENCE:
		return "fence"
	case decode.FENCEI:
		return "fence.i"
	case decode.ECALL:
		return "ecall"
	case decode.EBREAK:
		return "ebreak"
	case decode.URET:
		return "uret"
	case decode.SRET:
		return "sret"
	case decode.MRET:
		return "mret"

	case decode.FLW:
		return fmt.Sprintf("flw f%d, %d(x%d)", ins.Rd, ins.Imm, ins.Rs1)
	case decode.FSW:
		return fmt.Sprintf("fsw f%d, %d(x%d)", ins.Rs2, ins.Imm, ins.Rs1)

	case decode.FMADDS, decode.FMSUBS, decode.FNMSUBS, decode.FNMADDS:
		return fmt.Sprintf("%s f%d, f%d, f%d, f%d", ins.Kind, ins.Rd, ins.Rs1, ins.Rs2, ins.Rs3)

	case decode.FADDS, decode.FSUBS, decode.FMULS, decode.FDIVS,
		decode.FSGNJS, decode.FSGNJNS, decode.FSGNJXS,
		decode.FMINS, decode.FMAXS:
		return fmt.Sprintf("%s f%d, f%d, f%d", ins.Kind, ins.Rd, ins.Rs1, ins.Rs2)

	case decode.FSQRTS:
		return fmt.Sprintf("fsqrt.s f%d, f%d", ins.Rd, ins.Rs1)

	case decode.FCVTWS, decode.FCVTWUS:
		return fmt.Sprintf("%s x%d, f%d", ins.Kind, ins.Rd, ins.Rs1)
	case decode.FCVTSW, decode.FCVTSWU:
		return fmt.Sprintf("%s f%d, x%d", ins.Kind, ins.Rd, ins.Rs1)
	case decode.FMVXW:
		return fmt.Sprintf("fmv.x.w x%d, f%d", ins.Rd, ins.Rs1)
	case decode.FMVWX:
		return fmt.Sprintf("fmv.w.x f%d, x%d", ins.Rd, ins.Rs1)

	case decode.FEQS, decode.FLTS, decode.FLES:
		return fmt.Sprintf("%s x%d, f%d, f%d", ins.Kind, ins.Rd, ins.Rs1, ins.Rs2)
	case decode.FCLASSS:
		return fmt.Sprintf("fclass.s x%d, f%d", ins.Rd, ins.Rs1)

	default:
		return fmt.Sprintf("<unknown: %#08x>", ins.Raw)
	}
}
