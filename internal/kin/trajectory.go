package kin

import "fmt"

// Trajectory is the output of one integration run: concentrations of every
// model species at every grid time, in registry order. It is immutable once
// produced and replaced wholesale by the next run.
type Trajectory struct {
	names  []string
	index  Index
	times  []float64
	values [][]float64
}

// NewTrajectory copies its inputs so callers cannot alias run-scoped buffers.
func NewTrajectory(names []string, times []float64, values [][]float64) *Trajectory {
	t := &Trajectory{
		names:  append([]string(nil), names...),
		index:  make(Index, len(names)),
		times:  append([]float64(nil), times...),
		values: make([][]float64, len(values)),
	}
	for i, name := range t.names {
		t.index[name] = i
	}
	for i, row := range values {
		t.values[i] = append([]float64(nil), row...)
	}
	return t
}

func (t *Trajectory) Len() int { return len(t.times) }

func (t *Trajectory) Times() []float64 {
	return append([]float64(nil), t.times...)
}

func (t *Trajectory) SpeciesNames() []string {
	return append([]string(nil), t.names...)
}

// At returns the full species snapshot at grid position i.
func (t *Trajectory) At(i int) State {
	return State(t.values[i]).Clone()
}

// Series returns the time series of one species.
func (t *Trajectory) Series(name string) ([]float64, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("trajectory: unknown species %q", name)
	}
	out := make([]float64, len(t.values))
	for j, row := range t.values {
		out[j] = row[i]
	}
	return out, nil
}

func (t *Trajectory) Initial(name string) (float64, error) {
	return t.at(0, name)
}

func (t *Trajectory) Final(name string) (float64, error) {
	return t.at(len(t.values)-1, name)
}

func (t *Trajectory) at(row int, name string) (float64, error) {
	if len(t.values) == 0 {
		return 0, fmt.Errorf("trajectory: empty")
	}
	i, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("trajectory: unknown species %q", name)
	}
	return t.values[row][i], nil
}
