// Package moduledb ships a small embedded database of module and inverter
// parameter sets keyed by name, plus a loader for user-supplied YAML tables.
//
// Records are plain coefficient maps. Which performance models a record can
// drive is decided by key inspection at system-configuration time, exactly as
// for inline scenario parameters, so the database never names models. The
// embedded excerpts cover one representative entry per coefficient family so
// every registered model has hardware to run against.
package moduledb
