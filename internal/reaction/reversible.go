package reaction

import (
	"github.com/enzymekit/kinsim/internal/kin"
	"github.com/enzymekit/kinsim/internal/rates"
)

// revBiBi carries the bindings common to the reversible two-substrate
// two-product mechanisms: A + B <-> P + Q.
type revBiBi struct {
	base
	Enzyme     string
	A, B, P, Q string
	KcatF      string
	KcatR      string
	KmB        string
	KmP        string
	KiA        string
	KiB        string
	KiP        string
	KiQ        string
}

func newRevBiBi(name, enzyme, a, b, p, q string, kcatf, kcatr, kmb, kmp, kia, kib, kip, kiq kin.Parameter) revBiBi {
	r := revBiBi{
		Enzyme: enzyme,
		A:      a,
		B:      b,
		P:      p,
		Q:      q,
		KcatF:  Key(name, "kcatf"),
		KcatR:  Key(name, "kcatr"),
		KmB:    Key(name, "kmb"),
		KmP:    Key(name, "kmp"),
		KiA:    Key(name, "kia"),
		KiB:    Key(name, "kib"),
		KiP:    Key(name, "kip"),
		KiQ:    Key(name, "kiq"),
	}
	r.base = newBase(name, []string{a, b}, []string{p, q}, []string{enzyme}, map[string]kin.Parameter{
		r.KcatF: kcatf,
		r.KcatR: kcatr,
		r.KmB:   kmb,
		r.KmP:   kmp,
		r.KiA:   kia,
		r.KiB:   kib,
		r.KiP:   kip,
		r.KiQ:   kiq,
	})
	return r
}

func (r *revBiBi) Validate() error {
	return r.validate(r.KcatF, r.KcatR, r.KmB, r.KmP, r.KiA, r.KiB, r.KiP, r.KiQ)
}

// OrderedBiBiRev is the reversible ordered bi-bi mechanism.
type OrderedBiBiRev struct {
	revBiBi
}

func NewOrderedBiBiRev(name, enzyme, a, b, p, q string, kcatf, kcatr, kmb, kmp, kia, kib, kip, kiq kin.Parameter) *OrderedBiBiRev {
	return &OrderedBiBiRev{newRevBiBi(name, enzyme, a, b, p, q, kcatf, kcatr, kmb, kmp, kia, kib, kip, kiq)}
}

func (r *OrderedBiBiRev) Contribution(y kin.State, idx kin.Index, p kin.Params) kin.State {
	v := rates.OrderedBiBiRev(p[r.KcatF], p[r.KcatR], p[r.KmB], p[r.KmP],
		p[r.KiA], p[r.KiB], p[r.KiP], p[r.KiQ],
		y[idx[r.Enzyme]], y[idx[r.A]], y[idx[r.B]], y[idx[r.P]], y[idx[r.Q]])
	return r.delta(y, idx, v)
}

// RandomBiBiRev is the reversible random-order bi-bi mechanism.
type RandomBiBiRev struct {
	revBiBi
}

func NewRandomBiBiRev(name, enzyme, a, b, p, q string, kcatf, kcatr, kmb, kmp, kia, kib, kip, kiq kin.Parameter) *RandomBiBiRev {
	return &RandomBiBiRev{newRevBiBi(name, enzyme, a, b, p, q, kcatf, kcatr, kmb, kmp, kia, kib, kip, kiq)}
}

func (r *RandomBiBiRev) Contribution(y kin.State, idx kin.Index, p kin.Params) kin.State {
	v := rates.RandomBiBiRev(p[r.KcatF], p[r.KcatR], p[r.KmB], p[r.KmP],
		p[r.KiA], p[r.KiB], p[r.KiP], p[r.KiQ],
		y[idx[r.Enzyme]], y[idx[r.A]], y[idx[r.B]], y[idx[r.P]], y[idx[r.Q]])
	return r.delta(y, idx, v)
}

// PingPongBiBiRev is the reversible substituted-enzyme (ping-pong bi-bi)
// mechanism. It needs the full set of Michaelis constants for both
// directions.
type PingPongBiBiRev struct {
	revBiBi
	KmA string
	KmQ string
}

func NewPingPongBiBiRev(name, enzyme, a, b, p, q string, kcatf, kcatr, kma, kmb, kmp, kmq, kia, kib, kip, kiq kin.Parameter) *PingPongBiBiRev {
	r := &PingPongBiBiRev{
		revBiBi: newRevBiBi(name, enzyme, a, b, p, q, kcatf, kcatr, kmb, kmp, kia, kib, kip, kiq),
		KmA:     Key(name, "kma"),
		KmQ:     Key(name, "kmq"),
	}
	r.params[r.KmA] = kma
	r.params[r.KmQ] = kmq
	return r
}

func (r *PingPongBiBiRev) Contribution(y kin.State, idx kin.Index, p kin.Params) kin.State {
	v := rates.PingPongBiBiRev(p[r.KcatF], p[r.KcatR], p[r.KmA], p[r.KmB], p[r.KmP], p[r.KmQ],
		p[r.KiA], p[r.KiB], p[r.KiP], p[r.KiQ],
		y[idx[r.Enzyme]], y[idx[r.A]], y[idx[r.B]], y[idx[r.P]], y[idx[r.Q]])
	return r.delta(y, idx, v)
}

func (r *PingPongBiBiRev) Validate() error {
	if err := r.revBiBi.Validate(); err != nil {
		return err
	}
	return r.validate(r.KmA, r.KmQ)
}
