package pvsim

import (
	pkgscenario "github.com/goliatone/go-pvsim/pkg/scenario"
)

// Scenario is a data-driven run description, loadable from YAML.
type Scenario = pkgscenario.Scenario

// LoadScenario reads and validates the named scenario file while keeping the
// scenario package out of caller imports.
func LoadScenario(path string) (*pkgscenario.Scenario, error) {
	return pkgscenario.LoadFile(path)
}

// ParseScenario unmarshals, defaults and validates a scenario document.
func ParseScenario(data []byte) (*pkgscenario.Scenario, error) {
	return pkgscenario.Parse(data)
}
