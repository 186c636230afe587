// Package scenario loads YAML run descriptions: a location block, a system
// block (inline coefficients or database references), a chain block naming
// stage models, and a times block. Parsing applies struct-tag defaults and
// declarative range validation, then Build resolves everything into the
// constructed location, system, chain options and run index.
//
// Range violations surface as *pverr.InputRangeError and offset-less time
// strings in a scenario without a timezone as *pverr.NaiveTimestampError, so
// callers handle file input failures with the same taxonomy as programmatic
// ones.
package scenario
