package voxel

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRLERoundTrip(t *testing.T) {
	data := []byte{0, 0, 0, 1, 1, 2, 0, 0, 0, 0}
	encoded := EncodeRLE(data)
	decoded, err := DecodeRLE(encoded, len(data))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, decoded))
}

func TestEncodeRLESplitsLongRuns(t *testing.T) {
	data := make([]byte, 600)
	encoded := EncodeRLE(data)
	// 600 == 255 + 255 + 90, so three pairs are needed for one run.
	assert.Equal(t, 6, len(encoded))

	decoded, err := DecodeRLE(encoded, len(data))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, decoded))
}

func TestEncodeRLEEmpty(t *testing.T) {
	assert.Nil(t, EncodeRLE(nil))
	decoded, err := DecodeRLE(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodeRLELengthMismatch(t *testing.T) {
	encoded := EncodeRLE([]byte{1, 1, 1})
	_, err := DecodeRLE(encoded, 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPayloadLengthMismatch))
}

func TestEncodeRLEAllAir(t *testing.T) {
	data := make([]byte, 4096)
	encoded := EncodeRLE(data)
	// 4096 air bytes: 16 pairs of (0, 255) plus one of (0, 16).
	assert.Equal(t, 34, len(encoded))
}
