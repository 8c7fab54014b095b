package intcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProgram(t *testing.T) {
	words, err := ParseProgram("1,0,0,0,99\n")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 0, 0, 0, 99}, words)

	words, err = ParseProgram(" 1101, 100 ,-1,4,0 ")
	require.NoError(t, err)
	assert.Equal(t, []int64{1101, 100, -1, 4, 0}, words)

	words, err = ParseProgram("9223372036854775807,-9223372036854775808")
	require.NoError(t, err)
	assert.Equal(t, []int64{9223372036854775807, -9223372036854775808}, words)
}

func TestParseProgram_Malformed(t *testing.T) {
	for _, text := range []string{"", "   \n", "1,,2", "1,a,2", "1;2", "99,", "9223372036854775808"} {
		_, err := ParseProgram(text)
		assert.ErrorIs(t, err, ErrMalformedProgram, "text %q", text)
	}
}

func TestFormatProgram(t *testing.T) {
	text := "3,9,8,9,10,9,4,9,99,-1,8"
	words, err := ParseProgram(text)
	require.NoError(t, err)
	assert.Equal(t, text, FormatProgram(words))
	assert.Equal(t, "", FormatProgram(nil))
}
