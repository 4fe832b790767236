package brew

// Formula represents a Homebrew formula as reported by brew info.
type Formula struct {
	Name         string
	Versions     Versions
	Dependencies []string
}

// Versions holds the version channels brew reports for a formula. Only the
// stable channel is consumed by the migration.
type Versions struct {
	Stable string
}

// PythonPackage is a formula that depends on a Brew-managed Python runtime.
// Dependencies carries the formula's full dependency list, not just the
// python@ entries.
type PythonPackage struct {
	Name         string
	Version      string
	Dependencies []string
}
