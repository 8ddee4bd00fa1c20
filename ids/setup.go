package ids

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
)

const (
	// TraceIDLength is the width of a canonical trace id.
	TraceIDLength = 32

	// SpanIDLength is the width of a canonical span id.
	SpanIDLength = 16
)

// RandomGenerator builds identifiers by concatenating 32-bit random draws,
// each rendered as eight lowercase hex digits.
//
// Cryptographic strength is not required for telemetry ids; collision
// probability over 2^128 / 2^64 values is negligible for device volumes.
type RandomGenerator struct {
	src Source
}

// NewGenerator returns a RandomGenerator drawing from the runtime's
// auto-seeded PRNG.
func NewGenerator() *RandomGenerator {
	return &RandomGenerator{src: runtimeSource{}}
}

// NewGeneratorWithSource returns a RandomGenerator drawing from src.
// A nil src falls back to the runtime PRNG.
func NewGeneratorWithSource(src Source) *RandomGenerator {
	if src == nil {
		src = runtimeSource{}
	}
	return &RandomGenerator{src: src}
}

// NewSeededSource returns a deterministic Source, useful for reproducible
// tests. It is safe for concurrent use.
func NewSeededSource(seed1, seed2 uint64) Source {
	return &lockedSource{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) Uint32() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Uint32()
}

// NewTraceID implements Generator.
func (g *RandomGenerator) NewTraceID() string {
	return g.hex(4)
}

// NewSpanID implements Generator.
func (g *RandomGenerator) NewSpanID() string {
	return g.hex(2)
}

func (g *RandomGenerator) hex(words int) string {
	var b strings.Builder
	b.Grow(words * 8)
	for i := 0; i < words; i++ {
		s := strconv.FormatUint(uint64(g.src.Uint32()), 16)
		for pad := len(s); pad < 8; pad++ {
			b.WriteByte('0')
		}
		b.WriteString(s)
	}
	return b.String()
}

// runtimeSource adapts the package-level math/rand/v2 functions.
type runtimeSource struct{}

func (runtimeSource) Uint32() uint32 { return rand.Uint32() }
