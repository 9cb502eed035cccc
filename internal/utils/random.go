package utils

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
)

// Intn returns a uniform integer in [0, n). Game code takes one of these so
// tests can make rolls deterministic.
type Intn func(n int) int

// CryptoIntn draws from crypto/rand, falling back to math/rand if the system
// source fails
func CryptoIntn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return rand.Intn(n) //nolint:gosec // fallback only, game randomness
	}
	return int(v.Int64())
}

// SeededIntn returns a deterministic source, for tests and replays
func SeededIntn(seed int64) Intn {
	r := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic by intent
	return r.Intn
}
