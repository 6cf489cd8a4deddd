// Package rng reproduces the game's pseudo-random streams exactly.
//
// A Random is a xorshift128+ generator seeded through the murmur3 finalizer,
// wrapped with the game's counting helpers. Every counted call increments
// Counter by one, which lets tests compare how much randomness each stream
// consumed. A JavaRandom is the 48-bit LCG the game uses for list shuffles.
package rng

import "fmt"

const (
	normDouble = 1.0 / float64(uint64(1)<<53)
	normFloat  = 1.0 / float64(uint64(1)<<24)

	oneInMostSignificant = uint64(1) << 63
)

// Random is a seeded, counted game RNG stream. The zero value is not usable;
// construct with New or Restore. Random is a plain value: copying it forks
// the stream.
type Random struct {
	Counter int32
	seed0   uint64
	seed1   uint64
}

func murmurHash3(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

// New creates a stream from a 64-bit seed.
func New(seed uint64) Random {
	var r Random
	r.SetSeed(seed)
	return r
}

// Restore creates a stream and advances it by counter calls to Random(999),
// reproducing how the game restores a stream from a save.
func Restore(seed uint64, counter int) Random {
	r := New(seed)
	for i := 0; i < counter; i++ {
		r.Random(999)
	}
	return r
}

// SetSeed reseeds the stream and resets its counter.
func (r *Random) SetSeed(seed uint64) {
	if seed == 0 {
		seed = oneInMostSignificant
	}
	r.seed0 = murmurHash3(seed)
	r.seed1 = murmurHash3(r.seed0)
	r.Counter = 0
}

// NextLong returns the next raw 64 bits. It does not touch Counter.
func (r *Random) NextLong() uint64 {
	s1 := r.seed0
	s0 := r.seed1
	r.seed0 = s0
	s1 ^= s1 << 23
	r.seed1 = s1 ^ s0 ^ (s1 >> 17) ^ (s0 >> 26)
	return r.seed1 + s0
}

// NextLongN returns a value in [0, n) with the generator's rejection loop.
func (r *Random) NextLongN(n uint64) uint64 {
	if n == 0 {
		panic("rng: NextLongN bound must be positive")
	}
	for {
		bits := r.NextLong() >> 1
		value := bits % n
		if int64(bits-value+(n-1)) >= 0 {
			return value
		}
	}
}

// NextInt returns a value in [0, n).
func (r *Random) NextInt(n int32) int32 {
	if n <= 0 {
		panic(fmt.Sprintf("rng: NextInt bound must be positive, got %d", n))
	}
	return int32(r.NextLongN(uint64(n)))
}

// NextDouble returns a value in [0, 1) with 53 bits of precision.
func (r *Random) NextDouble() float64 {
	return float64(r.NextLong()>>11) * normDouble
}

// NextFloat returns a value in [0, 1) with 24 bits of precision.
func (r *Random) NextFloat() float32 {
	return float32(float64(r.NextLong()>>40) * normFloat)
}

// NextBoolean returns the low bit of the next raw value.
func (r *Random) NextBoolean() bool {
	return r.NextLong()&1 != 0
}

// Random returns a value in [0, rng] inclusive.
func (r *Random) Random(rng int) int {
	r.Counter++
	return int(r.NextInt(int32(rng + 1)))
}

// RandomRange returns a value in [start, end] inclusive.
func (r *Random) RandomRange(start, end int) int {
	r.Counter++
	return start + int(r.NextInt(int32(end-start+1)))
}

// RandomLong returns raw 64 bits as a counted draw.
func (r *Random) RandomLong() uint64 {
	r.Counter++
	return r.NextLong()
}

// RandomBoolean returns a fair coin flip.
func (r *Random) RandomBoolean() bool {
	r.Counter++
	return r.NextBoolean()
}

// RandomBooleanChance returns true with probability chance.
func (r *Random) RandomBooleanChance(chance float32) bool {
	r.Counter++
	return r.NextFloat() < chance
}

// RandomFloat returns a value in [0, 1).
func (r *Random) RandomFloat() float32 {
	r.Counter++
	return r.NextFloat()
}

// RandomFloatRange returns a value in [start, end).
func (r *Random) RandomFloatRange(start, end float32) float32 {
	r.Counter++
	return start + r.NextFloat()*(end-start)
}
