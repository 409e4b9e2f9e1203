package arbor

import (
	"math"
	"math/rand/v2"
)

const (
	noiseLatticeSize = 4096
	noiseOctaves     = 4
	noiseFalloff     = 0.5

	// sum of octave amplitudes, used to stretch the output back onto [0, 1)
	noiseAmplitude = 0.5 + 0.25 + 0.125 + 0.0625
)

// NoiseSpace selects one of the independent lattices a Noise holds. Equal
// keys in different spaces read unrelated values.
type NoiseSpace uint8

const (
	NoiseStructure NoiseSpace = iota // bare branch lengths, keyed by instruction index
	NoiseRotation                    // rotation variance, keyed by trunk counter
	NoiseStem                        // fruit stem lengths, keyed by fruit index

	noiseSpaces
)

// Noise is a seeded 1D value-noise source in the style of Processing's noise().
// Identical keys return identical values until the next Seed call with a
// different seed. Output lies in [0, 1).
type Noise struct {
	seed     uint64
	seeded   bool
	lattices [noiseSpaces][noiseLatticeSize]float64
}

// NewNoise returns a noise source seeded with seed.
func NewNoise(seed uint64) *Noise {
	n := &Noise{}
	n.Seed(seed)
	return n
}

// Seed refills every lattice from seed. Reseeding with the current seed is a
// no-op, so callers may reseed at the start of every pass.
func (n *Noise) Seed(seed uint64) {
	if n.seeded && n.seed == seed {
		return
	}
	for sp := range n.lattices {
		rng := rand.New(rand.NewPCG(seed, (seed^0x9e3779b97f4a7c15)+uint64(sp)))
		for i := range n.lattices[sp] {
			n.lattices[sp][i] = rng.Float64()
		}
	}
	n.seed = seed
	n.seeded = true
}

// At returns the noise value at key in the structure space.
func (n *Noise) At(key float64) float64 {
	return n.AtIn(NoiseStructure, key)
}

// AtIn returns the noise value at key in space. Negative keys mirror
// positive ones.
func (n *Noise) AtIn(space NoiseSpace, key float64) float64 {
	if !n.seeded {
		n.Seed(0)
	}
	if space >= noiseSpaces {
		space = NoiseStructure
	}
	if math.IsNaN(key) || math.IsInf(key, 0) {
		key = 0
	}
	if key < 0 {
		key = -key
	}
	lattice := &n.lattices[space]

	xi := int(key)
	xf := key - float64(xi)

	var r float64
	ampl := 0.5
	for o := 0; o < noiseOctaves; o++ {
		t := cosineEase(xf)
		a := lattice[xi&(noiseLatticeSize-1)]
		b := lattice[(xi+1)&(noiseLatticeSize-1)]
		r += (a + t*(b-a)) * ampl

		ampl *= noiseFalloff
		xi <<= 1
		xf *= 2
		if xf >= 1 {
			xi++
			xf--
		}
	}
	v := r / noiseAmplitude
	if v >= 1 {
		v = math.Nextafter(1, 0)
	}
	return v
}

// Range maps the noise at key onto [lo, hi).
func (n *Noise) Range(key, lo, hi float64) float64 {
	return n.RangeIn(NoiseStructure, key, lo, hi)
}

// RangeIn maps the noise at key in space onto [lo, hi).
func (n *Noise) RangeIn(space NoiseSpace, key, lo, hi float64) float64 {
	return lo + n.AtIn(space, key)*(hi-lo)
}

func cosineEase(t float64) float64 {
	return 0.5 * (1 - math.Cos(t*math.Pi))
}
