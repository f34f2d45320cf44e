package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	digest := sha256.Sum256([]byte("left-pad"))

	c := FromString("left-pad")
	assert.Equal(t, hex.EncodeToString(digest[:]), c.String())
	assert.Equal(t, digest[:], c.Bytes())
	assert.False(t, c.IsZero())
	assert.True(t, c.Equal(FromBytes([]byte("left-pad"))))
}

func TestCombine(t *testing.T) {
	a := FromString("Toaster for Dentists")
	b := FromString("Drone for Farmers")
	c := FromString("Robot for Bakers")

	t.Run("identity", func(t *testing.T) {
		var zero Checksum
		assert.True(t, zero.IsZero())
		assert.Equal(t, "", zero.String())
		assert.True(t, a.Combine(zero).Equal(a))
		assert.True(t, zero.Combine(a).Equal(a))
		assert.True(t, zero.Combine(zero).IsZero())
	})

	t.Run("commutative", func(t *testing.T) {
		assert.True(t, a.Combine(b).Equal(b.Combine(a)))
	})

	t.Run("associative", func(t *testing.T) {
		left := a.Combine(b).Combine(c)
		right := a.Combine(b.Combine(c))
		assert.True(t, left.Equal(right))
	})

	t.Run("self inverse", func(t *testing.T) {
		// x ^ x is an all-zero digest, not the identity
		assert.Equal(t, make([]byte, sha256.Size), a.Combine(a).Bytes())
	})

	t.Run("does not mutate operands", func(t *testing.T) {
		before := a.String()
		_ = a.Combine(b)
		assert.Equal(t, before, a.String())
	})

	t.Run("length mismatch panics", func(t *testing.T) {
		short := Checksum{sum: []byte{1, 2, 3}}
		assert.Panics(t, func() { a.Combine(short) })
	})
}

func TestAccumulator(t *testing.T) {
	names := []string{"serde", "tokio", "rand", "regex", "serde", "log"}

	var want Checksum
	for _, n := range names {
		want = want.Combine(FromString(n))
	}

	t.Run("sequential", func(t *testing.T) {
		var acc Accumulator
		for _, n := range names {
			acc.Add(n)
		}
		assert.True(t, want.Equal(acc.Sum()))
	})

	t.Run("concurrent order does not matter", func(t *testing.T) {
		var acc Accumulator
		var wg sync.WaitGroup
		for i := len(names) - 1; i >= 0; i-- {
			wg.Add(1)
			go func(n string) {
				defer wg.Done()
				acc.Add(n)
			}(names[i])
		}
		wg.Wait()
		require.False(t, acc.Sum().IsZero())
		assert.True(t, want.Equal(acc.Sum()))
	})
}
