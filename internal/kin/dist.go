package kin

import (
	"math"
	"math/rand"
)

// Distribution describes how a species or parameter value is sampled during
// uncertainty sweeps. Mean is also the deterministic substitute for an unset
// parameter.
type Distribution interface {
	Mean() float64
	Sample(rng *rand.Rand) float64
}

type Normal struct {
	Mu    float64
	Sigma float64
}

func (n Normal) Mean() float64 { return n.Mu }

func (n Normal) Sample(rng *rand.Rand) float64 {
	return n.Mu + n.Sigma*rng.NormFloat64()
}

type Uniform struct {
	Low  float64
	High float64
}

func (u Uniform) Mean() float64 { return (u.Low + u.High) / 2 }

func (u Uniform) Sample(rng *rand.Rand) float64 {
	return u.Low + (u.High-u.Low)*rng.Float64()
}

// LogNormal is parameterized by the log-space mean and deviation.
type LogNormal struct {
	Mu    float64
	Sigma float64
}

func (l LogNormal) Mean() float64 {
	return math.Exp(l.Mu + l.Sigma*l.Sigma/2)
}

func (l LogNormal) Sample(rng *rand.Rand) float64 {
	return math.Exp(l.Mu + l.Sigma*rng.NormFloat64())
}
