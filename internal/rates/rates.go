// Package rates holds the closed-form rate laws used by reaction mechanisms.
// Every function is a pure computation over named kinetic constants and
// current concentrations, returning an instantaneous velocity. Integrators
// routinely probe boundary states, so laws whose denominators vanish at zero
// concentration return zero instead of dividing.
package rates

// MichaelisMenten is the single-substrate saturation law
// v = kcat*enz*a/(km+a).
func MichaelisMenten(kcat, km, enz, a float64) float64 {
	if a == 0 {
		return 0
	}
	return kcat * enz * a / (km + a)
}

// IndependentBi treats two substrates as independently saturating:
// v = kcat*enz * a/(kma+a) * b/(kmb+b).
func IndependentBi(kcat, kma, kmb, enz, a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	return kcat * enz * (a / (kma + a)) * (b / (kmb + b))
}

// OrderedBi is the irreversible ordered two-substrate mechanism.
func OrderedBi(kcat, kma, kmb, kia, enz, a, b float64) float64 {
	num := kcat * enz * a * b
	den := kia*kmb + kmb*a + kma*b + a*b
	if den == 0 {
		return 0
	}
	return num / den
}

// PingPongBi is the irreversible ping-pong two-substrate mechanism. Both
// substrates at exactly zero is defined as zero rate, not an indeterminate
// form.
func PingPongBi(kcat, kma, kmb, enz, a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	return kcat * enz * a * b / (kmb*a + kma*b + a*b)
}

// TerOrdered is the irreversible ordered three-substrate (ter) mechanism.
func TerOrdered(kcat, kma, kmb, kmc, kia, enz, a, b, c float64) float64 {
	num := kcat * enz * a * b * c
	den := kia*c + kmc*a*b + kmb*a*c + kma*b*c + a*b*c
	if den == 0 {
		return 0
	}
	return num / den
}

// OrderedBiBiRev computes the net forward-minus-reverse velocity of the
// reversible ordered bi-bi mechanism.
func OrderedBiBiRev(kcatf, kcatr, kmb, kmp, kia, kib, kip, kiq, enz, a, b, p, q float64) float64 {
	num := (enz*kcatf*a*b)/(kia*kmb) - (enz*kcatr*p*q)/(kmp*kiq)
	den := 1 + a/kia + b/kib + q/kiq + p/kip + (a*b)/(kia*kmb) + (p*q)/(kmp*kiq)
	return num / den
}

// RandomBiBiRev computes the net velocity of the reversible random-order
// bi-bi mechanism. Identical functional form to the ordered case with the
// rapid-equilibrium assumption folded into the constants.
func RandomBiBiRev(kcatf, kcatr, kmb, kmp, kia, kib, kip, kiq, enz, a, b, p, q float64) float64 {
	num := (kcatf*enz*a*b)/(kia*kmb) - (kcatr*enz*p*q)/(kmp*kiq)
	den := 1 + a/kia + b/kib + p/kip + q/kiq + (a*b)/(kia*kmb) + (p*q)/(kmp*kiq)
	return num / den
}

// PingPongBiBiRev computes the net velocity of the reversible
// substituted-enzyme (ping-pong bi-bi) mechanism. The reverse numerator term
// divides by the product kip*kmq, matching the grouped inhibition ratios in
// the denominator.
func PingPongBiBiRev(kcatf, kcatr, kma, kmb, kmp, kmq, kia, kib, kip, kiq, enz, a, b, p, q float64) float64 {
	num := (kcatf*enz*a*b)/(kia*kmb) - (kcatr*enz*p*q)/(kip*kmq)
	den := a/kia + (kma*b)/(kia*kmb) + p/kip + (kmp*q)/(kip*kmq) +
		(a*b)/(kia*kmb) + (a*p)/(kia*kip) + (kma*b*q)/(kia*kmb*kiq) + (p*q)/(kip*kmq)
	if den == 0 {
		return 0
	}
	return num / den
}

// CompetitiveKmApp scales an apparent Km for a competitive inhibitor at
// concentration i with inhibition constant ki.
func CompetitiveKmApp(km, ki, i float64) float64 {
	return km * (1 + i/ki)
}

// MixedApp returns the apparent kcat and Km under mixed-model inhibition.
func MixedApp(kcat, km, ki, alpha, i float64) (kcatApp, kmApp float64) {
	kcatApp = kcat / (1 + i/(alpha*ki))
	kmApp = km * (1 + i/ki) / (1 + i/(alpha*ki))
	return kcatApp, kmApp
}
