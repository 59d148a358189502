package starred

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZstdCompressor_RoundTrip(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	defer comp.Close()

	input := bytes.Repeat([]byte(`{"stationuuid":"abc","name":"Radio"}`), 100)
	compressed, err := comp.Compress(input)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(input))

	out, err := comp.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestZstdCompressor_DecompressGarbage(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	defer comp.Close()

	_, err = comp.Decompress([]byte("not zstd"))
	assert.Error(t, err)
}
