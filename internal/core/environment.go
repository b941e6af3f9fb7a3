package core

import "strings"

// Environment represents the deployment environment of the action server.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// String returns the string representation of the environment.
func (e Environment) String() string {
	return string(e)
}

// IsProduction reports whether the environment corresponds to production.
func (e Environment) IsProduction() bool {
	return e == Production
}

// ServerMode maps the environment onto the HTTP framework mode names
// ("release", "test", "debug").
func (e Environment) ServerMode() string {
	switch e {
	case Production, Staging:
		return "release"
	case Testing:
		return "test"
	default:
		return "debug"
	}
}

// ParseEnvironment normalises the provided value into one of the known environments.
// Unknown values fall back to Development so the server can still start
// with sensible defaults.
func ParseEnvironment(v string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(v))) {
	case Production:
		return Production
	case Staging:
		return Staging
	case Testing:
		return Testing
	default:
		return Development
	}
}
