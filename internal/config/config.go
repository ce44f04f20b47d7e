package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/enzymekit/kinsim/internal/kin"
	"github.com/enzymekit/kinsim/internal/metrics"
)

const (
	DefaultStart    = 0.0
	DefaultEnd      = 100.0
	DefaultSteps    = 101
	DefaultMaxSteps = 10000
	DefaultRuns     = 100
	DefaultQLow     = 0.05
	DefaultQHigh    = 0.95
)

type Config struct {
	Name       string                   `yaml:"name"`
	Integrator string                   `yaml:"integrator"`
	Time       TimeConfig               `yaml:"time"`
	Species    map[string]SpeciesConfig `yaml:"species"`
	Reactions  []ReactionConfig         `yaml:"reactions"`
	Metrics    MetricsConfig            `yaml:"metrics"`
	Sampling   SamplingConfig           `yaml:"sampling"`
}

type TimeConfig struct {
	Start    float64 `yaml:"start"`
	End      float64 `yaml:"end"`
	Steps    int     `yaml:"steps"`
	MaxSteps int     `yaml:"max_steps"`
}

type SpeciesConfig struct {
	Value  float64       `yaml:"value"`
	Dist   *DistConfig   `yaml:"dist,omitempty"`
	Bounds *BoundsConfig `yaml:"bounds,omitempty"`
}

type ParamConfig struct {
	Value  *float64      `yaml:"value,omitempty"`
	Dist   *DistConfig   `yaml:"dist,omitempty"`
	Bounds *BoundsConfig `yaml:"bounds,omitempty"`
}

type DistConfig struct {
	Kind string  `yaml:"kind"` // normal, uniform, lognormal
	Mean float64 `yaml:"mean,omitempty"`
	SD   float64 `yaml:"sd,omitempty"`
	Low  float64 `yaml:"low,omitempty"`
	High float64 `yaml:"high,omitempty"`
}

type BoundsConfig struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

type ReactionConfig struct {
	Name       string                 `yaml:"name"`
	Mechanism  string                 `yaml:"mechanism"`
	Enzyme     string                 `yaml:"enzyme"`
	Substrates []string               `yaml:"substrates"`
	Products   []string               `yaml:"products"`
	Inhibitor  string                 `yaml:"inhibitor,omitempty"`
	Params     map[string]ParamConfig `yaml:"params"`
}

type MetricsConfig struct {
	Product      string             `yaml:"product"`
	Substrate    string             `yaml:"substrate"`
	Enzyme       string             `yaml:"enzyme"`
	MolWeights   map[string]float64 `yaml:"mol_weights,omitempty"`
	VolumeL      float64            `yaml:"volume_l,omitempty"`
	HoursPerUnit float64            `yaml:"hours_per_unit,omitempty"`
}

type SamplingConfig struct {
	Runs     int     `yaml:"runs"`
	Seed     int64   `yaml:"seed"`
	MaxDraws int     `yaml:"max_draws,omitempty"`
	QLow     float64 `yaml:"q_low"`
	QHigh    float64 `yaml:"q_high"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "untitled",
		Integrator: "rk45",
		Time: TimeConfig{
			Start:    DefaultStart,
			End:      DefaultEnd,
			Steps:    DefaultSteps,
			MaxSteps: DefaultMaxSteps,
		},
		Sampling: SamplingConfig{
			Runs:  DefaultRuns,
			QLow:  DefaultQLow,
			QHigh: DefaultQHigh,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Meta() metrics.Meta {
	return metrics.Meta{
		MolWeights:   c.Metrics.MolWeights,
		VolumeL:      c.Metrics.VolumeL,
		HoursPerUnit: c.Metrics.HoursPerUnit,
	}
}

func (d *DistConfig) Build() (kin.Distribution, error) {
	switch d.Kind {
	case "normal":
		return kin.Normal{Mu: d.Mean, Sigma: d.SD}, nil
	case "uniform":
		return kin.Uniform{Low: d.Low, High: d.High}, nil
	case "lognormal":
		return kin.LogNormal{Mu: d.Mean, Sigma: d.SD}, nil
	default:
		return nil, fmt.Errorf("unknown distribution kind: %s", d.Kind)
	}
}

func (b *BoundsConfig) Build() *kin.Bounds {
	return &kin.Bounds{Low: b.Low, High: b.High}
}

func (s SpeciesConfig) Build() (kin.Species, error) {
	sp := kin.Species{Value: s.Value}
	if s.Dist != nil {
		dist, err := s.Dist.Build()
		if err != nil {
			return kin.Species{}, err
		}
		sp.Dist = dist
	}
	if s.Bounds != nil {
		sp.Bounds = s.Bounds.Build()
	}
	return sp, nil
}

func (p ParamConfig) Build() (kin.Parameter, error) {
	param := kin.Parameter{}
	if p.Value != nil {
		param.Value = *p.Value
		param.Set = true
	}
	if p.Dist != nil {
		dist, err := p.Dist.Build()
		if err != nil {
			return kin.Parameter{}, err
		}
		param.Dist = dist
	}
	if p.Bounds != nil {
		param.Bounds = p.Bounds.Build()
	}
	return param, nil
}
