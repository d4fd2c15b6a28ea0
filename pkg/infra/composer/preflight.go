package composer

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// Preflight verifies the run prerequisites before anything is mutated: the
// manifest/lock file pair must exist in dir, and the executable that will
// actually be spawned (the prefix head when a prefix is set, otherwise the
// composer binary) must be resolvable.
func Preflight(dir, bin string, prefix []string) error {
	if dir == "" {
		dir = "."
	}
	if bin == "" {
		bin = defaultBin
	}

	for _, name := range []string{manifestFile, lockFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return goerr.Wrap(err, "required project file is missing",
				goerr.V("file", name), goerr.V("dir", dir))
		}
	}

	exe := bin
	if len(prefix) > 0 {
		exe = prefix[0]
	}
	if _, err := exec.LookPath(exe); err != nil {
		return goerr.Wrap(err, "required executable is not available",
			goerr.V("executable", exe))
	}

	return nil
}
