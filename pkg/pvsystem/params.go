package pvsystem

// Parameters is an opaque coefficient set keyed by the names the underlying
// model publications use. Which models a set can drive is determined by key
// inspection, not by type.
type Parameters map[string]float64

// ModuleParameters holds module coefficients, e.g. the Sandia performance
// model set or a single-diode reference set.
type ModuleParameters = Parameters

// InverterParameters holds inverter coefficients, e.g. the Sandia grid
// inverter set.
type InverterParameters = Parameters

// Get returns the value for key and whether it is present.
func (p Parameters) Get(key string) (float64, bool) {
	v, ok := p[key]
	return v, ok
}

// Value returns the value for key, or fallback when absent.
func (p Parameters) Value(key string, fallback float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return fallback
}

// Has reports whether every listed key is present.
func (p Parameters) Has(keys ...string) bool {
	for _, key := range keys {
		if _, ok := p[key]; !ok {
			return false
		}
	}
	return true
}

// Missing returns the subset of keys not present, in the given order.
func (p Parameters) Missing(keys ...string) []string {
	var missing []string
	for _, key := range keys {
		if _, ok := p[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// Clone returns an independent copy. Cloning nil yields nil.
func (p Parameters) Clone() Parameters {
	if p == nil {
		return nil
	}
	out := make(Parameters, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
