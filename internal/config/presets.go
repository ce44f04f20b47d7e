package config

import "sort"

func f(v float64) *float64 { return &v }

var Presets = map[string]*Config{
	// single Michaelis-Menten conversion with an uncertain kcat
	"mm": {
		Name:       "mm",
		Integrator: "rk45",
		Time:       TimeConfig{Start: 0, End: 60, Steps: 121, MaxSteps: 10000},
		Species: map[string]SpeciesConfig{
			"S":  {Value: 10, Dist: &DistConfig{Kind: "normal", Mean: 10, SD: 0.5}},
			"P":  {Value: 0},
			"E1": {Value: 0.05},
		},
		Reactions: []ReactionConfig{
			{
				Name:       "conversion",
				Mechanism:  "uni_uni",
				Enzyme:     "E1",
				Substrates: []string{"S"},
				Products:   []string{"P"},
				Params: map[string]ParamConfig{
					"kcat": {Value: f(120), Dist: &DistConfig{Kind: "normal", Mean: 120, SD: 10},
						Bounds: &BoundsConfig{Low: 0, High: 500}},
					"km": {Value: f(2.5)},
				},
			},
		},
		Metrics: MetricsConfig{
			Product: "P", Substrate: "S", Enzyme: "E1",
			MolWeights: map[string]float64{"S": 146.14, "P": 148.16, "E1": 33000},
			VolumeL:    1,
		},
		Sampling: SamplingConfig{Runs: 200, Seed: 1, QLow: 0.05, QHigh: 0.95},
	},

	// two-enzyme cascade through a transient intermediate
	"cascade": {
		Name:       "cascade",
		Integrator: "rk45",
		Time:       TimeConfig{Start: 0, End: 240, Steps: 241, MaxSteps: 20000},
		Species: map[string]SpeciesConfig{
			"A":  {Value: 20, Dist: &DistConfig{Kind: "normal", Mean: 20, SD: 1}},
			"B":  {Value: 0},
			"C":  {Value: 0},
			"E1": {Value: 0.1},
			"E2": {Value: 0.08},
		},
		Reactions: []ReactionConfig{
			{
				Name:       "oxidation",
				Mechanism:  "uni_uni",
				Enzyme:     "E1",
				Substrates: []string{"A"},
				Products:   []string{"B"},
				Params: map[string]ParamConfig{
					"kcat": {Value: f(45)},
					"km":   {Value: f(5), Dist: &DistConfig{Kind: "lognormal", Mean: 1.6, SD: 0.2}},
				},
			},
			{
				Name:       "amination",
				Mechanism:  "uni_uni",
				Enzyme:     "E2",
				Substrates: []string{"B"},
				Products:   []string{"C"},
				Params: map[string]ParamConfig{
					"kcat": {Value: f(30)},
					"km":   {Value: f(8)},
				},
			},
		},
		Metrics: MetricsConfig{
			Product: "C", Substrate: "A", Enzyme: "E1",
			MolWeights: map[string]float64{"A": 120.1, "B": 118.1, "C": 119.2, "E1": 28000, "E2": 50000},
			VolumeL:    2,
		},
		Sampling: SamplingConfig{Runs: 100, Seed: 7, QLow: 0.05, QHigh: 0.95},
	},

	// reversible transaminase, substituted-enzyme mechanism
	"pingpong": {
		Name:       "pingpong",
		Integrator: "rk45",
		Time:       TimeConfig{Start: 0, End: 480, Steps: 193, MaxSteps: 50000},
		Species: map[string]SpeciesConfig{
			"ketone":   {Value: 50},
			"donor":    {Value: 100, Dist: &DistConfig{Kind: "uniform", Low: 80, High: 120}},
			"amine":    {Value: 0},
			"ketoacid": {Value: 0},
			"TA":       {Value: 0.2},
		},
		Reactions: []ReactionConfig{
			{
				Name:       "transamination",
				Mechanism:  "ping_pong_bi_bi_rev",
				Enzyme:     "TA",
				Substrates: []string{"ketone", "donor"},
				Products:   []string{"amine", "ketoacid"},
				Params: map[string]ParamConfig{
					"kcatf": {Value: f(8)},
					"kcatr": {Value: f(2)},
					"kma":   {Value: f(12)},
					"kmb":   {Value: f(25)},
					"kmp":   {Value: f(15)},
					"kmq":   {Value: f(30)},
					"kia":   {Value: f(40)},
					"kib":   {Value: f(60)},
					"kip":   {Value: f(45)},
					"kiq":   {Value: f(55)},
				},
			},
		},
		Metrics: MetricsConfig{
			Product: "amine", Substrate: "ketone", Enzyme: "TA",
			MolWeights: map[string]float64{"ketone": 134.2, "amine": 135.2, "TA": 47000},
			VolumeL:    0.5,
		},
		Sampling: SamplingConfig{Runs: 150, Seed: 3, QLow: 0.05, QHigh: 0.95},
	},

	// competitive product inhibition on a single conversion
	"inhibited": {
		Name:       "inhibited",
		Integrator: "rk45",
		Time:       TimeConfig{Start: 0, End: 120, Steps: 121, MaxSteps: 20000},
		Species: map[string]SpeciesConfig{
			"S":  {Value: 15},
			"P":  {Value: 0},
			"E1": {Value: 0.1},
		},
		Reactions: []ReactionConfig{
			{
				Name:       "conversion",
				Mechanism:  "uni_uni_competitive",
				Enzyme:     "E1",
				Substrates: []string{"S"},
				Products:   []string{"P"},
				Inhibitor:  "P",
				Params: map[string]ParamConfig{
					"kcat": {Value: f(60)},
					"km":   {Value: f(3)},
					"ki":   {Value: f(4)},
				},
			},
		},
		Metrics: MetricsConfig{
			Product: "P", Substrate: "S", Enzyme: "E1",
			MolWeights: map[string]float64{"S": 150.1, "P": 152.1, "E1": 40000},
			VolumeL:    1,
		},
		Sampling: SamplingConfig{Runs: 100, Seed: 11, QLow: 0.05, QHigh: 0.95},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
