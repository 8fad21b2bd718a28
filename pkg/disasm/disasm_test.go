package disasm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bassosimone/rv32core/pkg/decode"
	"github.com/bassosimone/rv32core/pkg/disasm"
)

func TestFormatInstructionRendersMnemonicAndOperands(t *testing.T) {
	cases := []struct {
		name string
		ins  decode.Instruction
		want string
	}{
		{"lui", decode.Instruction{Kind: decode.LUI, Rd: 5, Imm: 0x1000 << 12}, "lui x5, 4096"},
		{"addi", decode.Instruction{Kind: decode.ADDI, Rd: 1, Rs1: 2, Imm: -3}, "addi x1, x2, -3"},
		{"add", decode.Instruction{Kind: decode.ADD, Rd: 1, Rs1: 2, Rs2: 3}, "add x1, x2, x3"},
		{"ebreak", decode.Instruction{Kind: decode.EBREAK}, "ebreak"},
		{"illegal", decode.Instruction{Kind: decode.Illegal, Raw: 0x1}, "<illegal: 0x00000001>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, disasm.FormatInstruction(tc.ins))
		})
	}
}

func TestFormatDecodesThenRenders(t *testing.T) {
	// addi x1, x0, 5: imm=5, rs1=0, rd=1, opcode=0b00100
	word := uint32(5)<<20 | 0<<15 | 0<<12 | 1<<7 | 0b00100<<2 | 0b11
	assert.Equal(t, "addi x1, x0, 5", disasm.Format(word))
}

func TestFormatFetchDecodeReplaceSentinelRendersPlaceholder(t *testing.T) {
	ins := decode.Instruction{Kind: decode.FetchDecodeReplace}
	assert.Equal(t, "<fetch-decode-replace>", disasm.FormatInstruction(ins))
}
