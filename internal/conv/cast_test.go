package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint64ToInt(t *testing.T) {
	got, err := Uint64ToInt(123)
	require.NoError(t, err)
	assert.Equal(t, 123, got)

	got, err = Uint64ToInt(math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, got)

	_, err = Uint64ToInt(math.MaxUint64)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestIntToUint32(t *testing.T) {
	got, err := IntToUint32(math.MaxUint32)
	require.NoError(t, err)
	assert.Equal(t, uint32(math.MaxUint32), got)

	_, err = IntToUint32(-1)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = IntToUint32(math.MaxUint32 + 1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestIntToUint8(t *testing.T) {
	got, err := IntToUint8(7)
	require.NoError(t, err)
	assert.Equal(t, uint8(7), got)

	for _, v := range []int{-1, 256} {
		_, err := IntToUint8(v)
		assert.ErrorIs(t, err, ErrOverflow, "%d", v)
	}
}
