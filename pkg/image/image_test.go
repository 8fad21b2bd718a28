package image_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bassosimone/rv32core/pkg/image"
)

func TestLoadHexParsesWordsAndStripsComments(t *testing.T) {
	r := strings.NewReader(`
0x00000013 # nop (addi x0, x0, 0)

0xdeadbeef
`)
	data, err := image.LoadHex(r)
	require.NoError(t, err)
	require.Len(t, data, 8)

	assert.Equal(t, []byte{0x13, 0x00, 0x00, 0x00}, data[0:4])
	assert.Equal(t, []byte{0xef, 0xbe, 0xad, 0xde}, data[4:8])
}

func TestLoadHexRejectsInvalidWord(t *testing.T) {
	r := strings.NewReader("not-a-number\n")
	_, err := image.LoadHex(r)
	assert.Error(t, err)
}

func TestLoadRawPassesBytesThrough(t *testing.T) {
	r := strings.NewReader("\x01\x02\x03\x04")
	data, err := image.LoadRaw(r)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, data)
}
