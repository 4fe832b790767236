package pyenv

import (
	"path/filepath"

	"github.com/kballard/go-shellquote"
)

// GenerateSymlinkCommands builds one ln command per Brew Python directory,
// linking it into pyenv's versions directory under a "-brew" suffixed name
// so migrated interpreters stay distinguishable from pyenv-built ones.
// Pure string construction: inputs are not checked against the filesystem,
// one command per input, input order kept.
func GenerateSymlinkCommands(pythonDirs []string, pyenvRoot string) []string {
	var commands []string
	for _, versionPath := range pythonDirs {
		versionName := filepath.Base(versionPath)
		target := filepath.Join(pyenvRoot, "versions", versionName+"-brew")
		commands = append(commands, shellquote.Join("ln", "-s", "-f", versionPath, target))
	}
	return commands
}
