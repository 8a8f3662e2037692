package rng

import (
	"crypto/rand"
	"math/big"
)

// Crypto draws from crypto/rand, it is the generator every live deck is shuffled with
// It is safe for concurrent use.
type Crypto struct{}

// Intn returns a uniform random number from 0 <= x < n, it panics if n <= 0
func (Crypto) Intn(n int) int {
	if n <= 0 {
		panic("rng: invalid argument to Intn")
	}

	b, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// the system entropy source is gone, no deck can be dealt fairly
		panic(err)
	}

	return int(b.Int64())
}
