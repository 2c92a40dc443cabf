package proj

import (
	"strconv"
	"strings"
)

// Mode selects how much of two representations Equivalent compares.
type Mode int

const (
	// Full compares projection, ellipsoid, datum, units and all
	// projection parameters.
	Full Mode = iota

	// Geographic compares only datum, ellipsoid and units; projection
	// parameters are ignored. Used when the source system is angular.
	Geographic
)

// EquivFunc is the signature of the equivalence test. The resolver
// takes it as a dependency so tests can count or stub comparisons.
type EquivFunc func(a, b *SR, mode Mode) bool

// ignoredParams are proj4 flags that carry no semantic weight for
// equivalence.
var ignoredParams = map[string]bool{
	"no_defs": true,
	"wktext":  true,
	"type":    true,
}

// Equivalent reports whether two structured representations denote the
// same reference system under the given mode.
func Equivalent(a, b *SR, mode Mode) bool {
	if a == nil || b == nil {
		return false
	}

	if !sameEllipsoid(a, b) {
		return false
	}
	if !sameDatum(a, b) {
		return false
	}

	if mode == Geographic {
		return sameUnits(a.Units, b.Units)
	}

	if a.Name != b.Name {
		return false
	}
	if !sameUnits(a.Units, b.Units) {
		return false
	}
	return sameParams(a.Params, b.Params)
}

func sameEllipsoid(a, b *SR) bool {
	if a.Ellps != "" && b.Ellps != "" {
		return a.Ellps == b.Ellps
	}
	// one side declares only raw axes
	return numEqual(a.Params["a"], b.Params["a"]) &&
		numEqual(a.Params["rf"], b.Params["rf"])
}

func sameDatum(a, b *SR) bool {
	da, db := strings.ToLower(a.Datum), strings.ToLower(b.Datum)
	if da != "" && db != "" {
		return da == db
	}
	// a declared datum implies its towgs84 shift; compare shifts when
	// either side lacks the datum name
	return sameShift(a, b)
}

// sameShift compares WGS84 shift parameters, treating an absent shift
// and a zero shift as equal.
func sameShift(a, b *SR) bool {
	sa := shiftOf(a)
	sb := shiftOf(b)
	if len(sa) < len(sb) {
		sa, sb = sb, sa
	}
	for i := range sa {
		var other float64
		if i < len(sb) {
			other = sb[i]
		}
		if !floatEqual(sa[i], other) {
			return false
		}
	}
	return true
}

func shiftOf(sr *SR) []float64 {
	if v, ok := sr.Params["towgs84"]; ok {
		parts := strings.Split(v, ",")
		res := make([]float64, 0, len(parts))
		for _, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil
			}
			res = append(res, f)
		}
		return res
	}
	if dd, ok := datumDefs[strings.ToLower(sr.Datum)]; ok {
		return dd.towgs84
	}
	return nil
}

func sameUnits(a, b string) bool {
	norm := func(u string) string {
		switch strings.ToLower(u) {
		case "meter", "metre", "m", "":
			return "m"
		case "degree", "degrees", "deg":
			return "degrees"
		default:
			return strings.ToLower(u)
		}
	}
	return norm(a) == norm(b)
}

func sameParams(a, b map[string]string) bool {
	keys := make(map[string]bool, len(a)+len(b))
	for k := range a {
		keys[k] = true
	}
	for k := range b {
		keys[k] = true
	}
	for k := range keys {
		if ignoredParams[k] || k == "datum" || k == "units" ||
			k == "towgs84" {
			continue
		}
		va, okA := a[k]
		vb, okB := b[k]
		if okA != okB {
			// a missing numeric parameter equals an explicit zero
			if numericZero(va) && numericZero(vb) {
				continue
			}
			return false
		}
		if va == vb {
			continue
		}
		if !numEqual(va, vb) {
			return false
		}
	}
	return true
}

func numericZero(s string) bool {
	if s == "" {
		return true
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f == 0
}

// numEqual compares two values numerically when both parse as floats,
// falling back to case-insensitive string comparison.
func numEqual(a, b string) bool {
	if a == b {
		return true
	}
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return floatEqual(fa, fb)
	}
	return strings.EqualFold(a, b)
}

func floatEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-8
}
