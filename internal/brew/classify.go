package brew

import "strings"

// PythonDepPrefix marks a dependency on a Brew-managed Python runtime,
// e.g. "python@3.9".
const PythonDepPrefix = "python@"

// IdentifyPythonPackages filters formulae down to those with at least one
// python@ dependency, projecting each to a PythonPackage. Input order is
// preserved.
func IdentifyPythonPackages(formulae []*Formula) []*PythonPackage {
	var packages []*PythonPackage
	for _, formula := range formulae {
		if !hasPythonDep(formula.Dependencies) {
			continue
		}
		packages = append(packages, &PythonPackage{
			Name:         formula.Name,
			Version:      formula.Versions.Stable,
			Dependencies: formula.Dependencies,
		})
	}
	return packages
}

// ExtractPythonVersions collects the distinct python@ version identifiers
// across all packages, in order of first appearance.
func ExtractPythonVersions(packages []*PythonPackage) []string {
	seen := make(map[string]struct{})
	var versions []string
	for _, pkg := range packages {
		for _, dep := range pkg.Dependencies {
			if !strings.HasPrefix(dep, PythonDepPrefix) {
				continue
			}
			if _, ok := seen[dep]; ok {
				continue
			}
			seen[dep] = struct{}{}
			versions = append(versions, dep)
		}
	}
	return versions
}

func hasPythonDep(deps []string) bool {
	for _, dep := range deps {
		if strings.HasPrefix(dep, PythonDepPrefix) {
			return true
		}
	}
	return false
}
