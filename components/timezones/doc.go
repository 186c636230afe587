// Package timezones provides a deterministic catalog of IANA timezone names
// with prefix-ranked search, backed by an embedded copy of the zone list.
//
// Scenario files and the interactive CLI use the catalog for autocomplete and
// "did you mean" hints. Whether a name actually resolves is still decided by
// time.LoadLocation against the host tzdata; the catalog only ranks
// suggestions.
package timezones
