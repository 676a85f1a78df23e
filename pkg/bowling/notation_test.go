package bowling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	f, err := ParseLine("X 7/ 9- X -8 8/ -6 X X X81")
	require.NoError(t, err)
	assert.Equal(t, KindStrike, f.Ball(1, 1).Kind)
	assert.Equal(t, KindSpare, f.Ball(2, 2).Kind)
	assert.Equal(t, KindMiss, f.Ball(3, 2).Kind)
	assert.Equal(t, 8, f.Ball(10, 2).Count)
	assert.Equal(t, 1, f.Ball(10, 3).Count)

	_, err = ParseLine("X X X X X X X X X X X")
	assert.ErrorIs(t, err, ErrTooManyFrames)

	_, err = ParseLine("123")
	assert.ErrorIs(t, err, ErrTooManyBalls)
}
