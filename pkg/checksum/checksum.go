// Package checksum provides the order-independent hash aggregate used as the
// hackathon correctness oracle.
//
// A Checksum folds a multiset of strings into a single value: every item is
// hashed with SHA-256 and the digests are XORed together. XOR is commutative
// and associative and the zero value acts as the identity, so the final value
// depends only on which items were folded in, never on the order or on the
// goroutine that folded them.
package checksum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
)

// Checksum is an immutable aggregate hash. The zero value is the identity.
type Checksum struct {
	sum []byte
}

// FromBytes returns the SHA-256 checksum of b.
func FromBytes(b []byte) Checksum {
	digest := sha256.Sum256(b)
	return Checksum{sum: digest[:]}
}

// FromString returns the SHA-256 checksum of s.
func FromString(s string) Checksum {
	return FromBytes([]byte(s))
}

// Combine returns the XOR of c and other.
// If either operand is the identity the other one is returned unchanged.
// Combining digests of different lengths is a programming error and panics.
func (c Checksum) Combine(other Checksum) Checksum {
	if c.IsZero() {
		return other
	}
	if other.IsZero() {
		return c
	}
	if len(c.sum) != len(other.sum) {
		panic(fmt.Sprintf("checksum: length mismatch (%d != %d)", len(c.sum), len(other.sum)))
	}

	out := make([]byte, len(c.sum))
	for i := range c.sum {
		out[i] = c.sum[i] ^ other.sum[i]
	}
	return Checksum{sum: out}
}

// IsZero reports whether c is the identity.
func (c Checksum) IsZero() bool {
	return len(c.sum) == 0
}

// Equal reports whether c and other hold the same aggregate.
func (c Checksum) Equal(other Checksum) bool {
	return bytes.Equal(c.sum, other.sum)
}

// Bytes returns a copy of the raw digest.
func (c Checksum) Bytes() []byte {
	return bytes.Clone(c.sum)
}

// String renders the checksum as lower-case hex. The identity renders as "".
func (c Checksum) String() string {
	return hex.EncodeToString(c.sum)
}

// Accumulator is a Checksum shared between goroutines.
// All mutation happens under the accumulator's own lock.
type Accumulator struct {
	mu  sync.Mutex
	sum Checksum
}

// Add folds the hash of s into the accumulator.
func (a *Accumulator) Add(s string) {
	h := FromString(s)

	a.mu.Lock()
	a.sum = a.sum.Combine(h)
	a.mu.Unlock()
}

// Sum returns the current aggregate.
func (a *Accumulator) Sum() Checksum {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sum
}
