// Package decode implements the RV32IMF instruction decoder: a pure,
// side-effect-free, constant-time function from a 32-bit encoding to a
// decoded instruction record, dispatched over the RV32IMF opcode/funct3/
// funct7 field hierarchy.
package decode

// Kind discriminates the roughly eighty semantic forms a 32-bit RV32IMF
// encoding can take, plus the two sentinels (Illegal and
// FetchDecodeReplace) the cache and decoder use internally.
type Kind int

// The following are the sentinel variants.
const (
	Illegal Kind = iota
	FetchDecodeReplace

	// Upper-immediate and jumps.
	LUI
	AUIPC
	JAL
	JALR

	// Conditional branches.
	BEQ
	BNE
	BLT
	BGE
	BLTU
	BGEU

	// Loads.
	LB
	LH
	LW
	LBU
	LHU

	// Stores.
	SB
	SH
	SW

	// Integer ALU immediate.
	ADDI
	SLTI
	SLTIU
	XORI
	ORI
	ANDI
	SLLI
	SRLI
	SRAI

	// Integer ALU register.
	ADD
	SUB
	SLL
	SLT
	SLTU
	XOR
	SRL
	SRA
	OR
	AND

	// RV32M.
	MUL
	MULH
	MULHSU
	MULHU
	DIV
	DIVU
	REM
	REMU

	// Memory ordering / system.
	FENCE
	FENCEI
	ECALL
	EBREAK
	URET
	SRET
	MRET

	// RV32F transfers.
	FLW
	FSW

	// RV32F fused multiply-add.
	FMADDS
	FMSUBS
	FNMSUBS
	FNMADDS

	// RV32F binary/unary with rounding.
	FADDS
	FSUBS
	FMULS
	FDIVS
	FSQRTS

	// RV32F sign manipulation.
	FSGNJS
	FSGNJNS
	FSGNJXS

	// RV32F min/max.
	FMINS
	FMAXS

	// RV32F conversions.
	FCVTWS
	FCVTWUS
	FCVTSW
	FCVTSWU

	// RV32F bit-move.
	FMVXW
	FMVWX

	// RV32F compares.
	FEQS
	FLTS
	FLES

	// RV32F classify.
	FCLASSS
)

var kindNames = map[Kind]string{
	Illegal: "illegal", FetchDecodeReplace: "fetch-decode-replace",
	LUI: "lui", AUIPC: "auipc", JAL: "jal", JALR: "jalr",
	BEQ: "beq", BNE: "bne", BLT: "blt", BGE: "bge", BLTU: "bltu", BGEU: "bgeu",
	LB: "lb", LH: "lh", LW: "lw", LBU: "lbu", LHU: "lhu",
	SB: "sb", SH: "sh", SW: "sw",
	ADDI: "addi", SLTI: "slti", SLTIU: "sltiu", XORI: "xori", ORI: "ori",
	ANDI: "andi", SLLI: "slli", SRLI: "srli", SRAI: "srai",
	ADD: "add", SUB: "sub", SLL: "sll", SLT: "slt", SLTU: "sltu",
	XOR: "xor", SRL: "srl", SRA: "sra", OR: "or", AND: "and",
	MUL: "mul", MULH: "mulh", MULHSU: "mulhsu", MULHU: "mulhu",
	DIV: "div", DIVU: "divu", REM: "rem", REMU: "remu",
	FENCE: "fence", FENCEI: "fence.i", ECALL: "ecall", EBREAK: "ebreak",
	URET: "uret", SRET: "sret", MRET: "mret",
	FLW: "flw", FSW: "fsw",
	FMADDS: "fmadd.s", FMSUBS: "fmsub.s", FNMSUBS: "fnmsub.s", FNMADDS: "fnmadd.s",
	FADDS: "fadd.s", FSUBS: "fsub.s", FMULS: "fmul.s", FDIVS: "fdiv.s", FSQRTS: "fsqrt.s",
	FSGNJS: "fsgnj.s", FSGNJNS: "fsgnjn.s", FSGNJXS: "fsgnjx.s",
	FMINS: "fmin.s", FMAXS: "fmax.s",
	FCVTWS: "fcvt.w.s", FCVTWUS: "fcvt.wu.s", FCVTSW: "fcvt.s.w", FCVTSWU: "fcvt.s.wu",
	FMVXW: "fmv.x.w", FMVWX: "fmv.w.x",
	FEQS: "feq.s", FLTS: "flt.s", FLES: "fle.s",
	FCLASSS: "fclass.s",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Instruction is a decoded instruction record. It is a single flat struct
// rather than a sealed union of operand-shape types: Go has no sum types,
// and a struct with a Kind discriminator plus every possible operand field
// is the idiomatic rendition — the field set used by a given Kind is
// fixed by convention and enforced by each execution handler reading
// only the fields its Kind defines.
//
// Register indices (Rd, Rs1, Rs2, Rs3) are 5-bit (0-31). Rm is the 3-bit
// rounding-mode field. Imm is already sign-extended to a full int32 in
// the form its Kind requires. Raw holds the original 32-bit encoding, set
// only for Illegal (so it can be reported as mtval). CacheLine/CacheIndex
// are set only for FetchDecodeReplace.
type Instruction struct {
	Kind Kind

	Rd, Rs1, Rs2, Rs3 uint32
	Imm               int32
	Rm                uint32

	Raw uint32

	CacheLine, CacheIndex uint32
}
