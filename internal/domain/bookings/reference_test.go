package bookings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceRoundTrip(t *testing.T) {
	codec, err := NewReferenceCodec("test-salt")
	require.NoError(t, err)

	for _, id := range []int64{1, 42, 99999, 1<<40 + 7} {
		ref, err := codec.Encode(id)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ref, "BK-"), "got %q", ref)

		got, err := codec.Decode(ref)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestReferenceDecodeTolerant(t *testing.T) {
	codec, err := NewReferenceCodec("test-salt")
	require.NoError(t, err)

	ref, err := codec.Encode(123)
	require.NoError(t, err)

	// Whitespace and lowercase input still decode.
	got, err := codec.Decode("  " + strings.ToLower(ref) + " ")
	require.NoError(t, err)
	assert.Equal(t, int64(123), got)
}

func TestReferenceDecodeRejectsGarbage(t *testing.T) {
	codec, err := NewReferenceCodec("test-salt")
	require.NoError(t, err)

	_, err = codec.Decode("BK-!!!!")
	assert.Error(t, err)
}

func TestReferenceSaltMatters(t *testing.T) {
	a, err := NewReferenceCodec("salt-a")
	require.NoError(t, err)
	b, err := NewReferenceCodec("salt-b")
	require.NoError(t, err)

	refA, err := a.Encode(500)
	require.NoError(t, err)
	refB, err := b.Encode(500)
	require.NoError(t, err)

	assert.NotEqual(t, refA, refB)
}
