package decode

// The following functions extract the five sign-extended RV32 immediate
// forms from a 32-bit encoding: I, S, B, U, and J.

// immI extracts the I-type immediate: bits[31:20] sign-extended.
func immI(word uint32) int32 {
	return int32(word) >> 20
}

// immS extracts the S-type immediate: bits[31:25]:bits[11:7], sign-extended.
func immS(word uint32) int32 {
	hi := (word >> 25) & 0x7f
	lo := (word >> 7) & 0x1f
	v := (hi << 5) | lo
	return signExtend(v, 12)
}

// immB extracts the B-type immediate: bit[31]:bit[7]:bits[30:25]:bits[11:8]:0,
// sign-extended.
func immB(word uint32) int32 {
	b12 := (word >> 31) & 0x1
	b11 := (word >> 7) & 0x1
	b10_5 := (word >> 25) & 0x3f
	b4_1 := (word >> 8) & 0xf
	v := (b12 << 12) | (b11 << 11) | (b10_5 << 5) | (b4_1 << 1)
	return signExtend(v, 13)
}

// immU extracts the U-type immediate: bits[31:12] shifted into place, low
// 12 bits zero.
func immU(word uint32) int32 {
	return int32(word & 0xfffff000)
}

// immJ extracts the J-type immediate: bit[31]:bits[19:12]:bit[20]:bits[30:21]:0,
// sign-extended.
func immJ(word uint32) int32 {
	b20 := (word >> 31) & 0x1
	b19_12 := (word >> 12) & 0xff
	b11 := (word >> 20) & 0x1
	b10_1 := (word >> 21) & 0x3ff
	v := (b20 << 20) | (b19_12 << 12) | (b11 << 11) | (b10_1 << 1)
	return signExtend(v, 21)
}

// signExtend sign-extends the low `bits` bits of v to a full int32.
func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}
