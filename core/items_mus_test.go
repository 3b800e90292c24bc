package core

import (
	"testing"

	"github.com/mus-format/mus-go/varint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringsMUS_Skip(t *testing.T) {
	v := []string{"Action", "Adventure", "Martial Arts"}
	bs := make([]byte, stringSliceMUS.Size(v))
	stringSliceMUS.Marshal(v, bs)

	n, err := stringSliceMUS.Skip(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), n)
}

func TestStringsMUS_InvalidLength(t *testing.T) {
	for _, length := range []int{-1, 1000} {
		bs := make([]byte, varint.Int.Size(length))
		varint.Int.Marshal(length, bs)

		_, err := stringSliceMUS.Skip(bs)
		assert.ErrorIs(t, err, ErrInvalidLength, "skip length %d", length)

		_, _, err = stringSliceMUS.Unmarshal(bs)
		assert.ErrorIs(t, err, ErrInvalidLength, "unmarshal length %d", length)
	}
}
