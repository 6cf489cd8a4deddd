package rng

import "fmt"

const (
	javaMultiplier = 0x5DEECE66D
	javaAddend     = 0xB
	javaMask       = (uint64(1) << 48) - 1
)

// JavaRandom reproduces java.util.Random, which the game hands to
// Collections.shuffle.
type JavaRandom struct {
	seed uint64
}

// NewJava scrambles seed the way the java.util.Random constructor does.
func NewJava(seed uint64) JavaRandom {
	return JavaRandom{seed: (seed ^ javaMultiplier) & javaMask}
}

func (j *JavaRandom) next(bits uint) int32 {
	j.seed = (j.seed*javaMultiplier + javaAddend) & javaMask
	return int32(int64(j.seed >> (48 - bits)))
}

// NextInt returns a value in [0, bound).
func (j *JavaRandom) NextInt(bound int32) int32 {
	if bound <= 0 {
		panic(fmt.Sprintf("rng: JavaRandom bound must be positive, got %d", bound))
	}
	if bound&-bound == bound {
		return int32((int64(bound) * int64(j.next(31))) >> 31)
	}
	for {
		bits := j.next(31)
		val := bits % bound
		if bits-val+(bound-1) >= 0 {
			return val
		}
	}
}

// NextLong returns the next 64-bit value.
func (j *JavaRandom) NextLong() int64 {
	hi := int64(j.next(32))
	lo := int64(j.next(32))
	return (hi << 32) + lo
}

// Shuffle permutes s in place exactly like java.util.Collections.shuffle:
// walking from the last element down, swapping each with a random earlier
// position.
func Shuffle[T any](s []T, r *JavaRandom) {
	for i := len(s); i > 1; i-- {
		k := r.NextInt(int32(i))
		s[i-1], s[k] = s[k], s[i-1]
	}
}

// ShuffleWith shuffles s using a JavaRandom seeded from one counted draw of
// stream.
func ShuffleWith[T any](s []T, stream *Random) {
	j := NewJava(stream.RandomLong())
	Shuffle(s, &j)
}
