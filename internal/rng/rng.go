package rng

import (
	"crypto/rand"
	mathrand "math/rand/v2"
	"sync"
)

// Source yields random bytes one at a time.
type Source interface {
	NextByte() byte
}

// Hardware draws from the operating system's entropy pool.
// It stands in for the radio transceiver's true random number generator.
type Hardware struct{}

func (Hardware) NextByte() byte {
	var b [1]byte
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(b[:])
	return b[0]
}

// Pseudo is a seedable generator for values that only need to differ between
// restarts, such as initial frame sequence numbers.
type Pseudo struct {
	mu  sync.Mutex
	gen *mathrand.Rand
}

func NewPseudo() *Pseudo {
	return &Pseudo{gen: mathrand.New(mathrand.NewPCG(0, 0))}
}

// Seed restarts the sequence from seed.
func (p *Pseudo) Seed(seed byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen = mathrand.New(mathrand.NewPCG(uint64(seed), uint64(seed)<<32|0x9E3779B9))
}

func (p *Pseudo) NextByte() byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return byte(p.gen.Uint32())
}

// Intn returns a value in [0, n).
func (p *Pseudo) Intn(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen.IntN(n)
}

// Fixed replays a byte sequence, then repeats its last byte. Used by tests.
type Fixed struct {
	Bytes []byte
	next  int
}

func (f *Fixed) NextByte() byte {
	if len(f.Bytes) == 0 {
		return 0
	}
	if f.next >= len(f.Bytes) {
		return f.Bytes[len(f.Bytes)-1]
	}
	b := f.Bytes[f.next]
	f.next++
	return b
}
