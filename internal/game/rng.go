package game

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
)

// Source supplies uniform integers in [0, n). Implementations need not be safe for
// concurrent use; the engine calls it once per round.
type Source interface {
	IntN(n int) int
}

// CryptoSource draws from crypto/rand. It is the default Source.
type CryptoSource struct{}

// IntN returns a uniform value in [0, n). It panics if n <= 0.
func (CryptoSource) IntN(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		panic("game: crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}

// SeededSource is a deterministic PCG-backed Source for reproducible rounds.
type SeededSource struct {
	r *mrand.Rand
}

// NewSeededSource creates a deterministic Source from seed.
func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{r: mrand.New(mrand.NewPCG(seed, 0))}
}

// IntN returns a uniform value in [0, n).
func (s *SeededSource) IntN(n int) int { return s.r.IntN(n) }

// drawSecret maps a Source onto [MinValue, MaxValue].
func drawSecret(src Source) int {
	return src.IntN(MaxValue-MinValue+1) + MinValue
}
