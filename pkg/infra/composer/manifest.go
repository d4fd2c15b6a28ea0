package composer

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"

	"github.com/NickStees/drupal-update/pkg/domain/model"
)

// LoadManifest reads composer.json from the project directory and resolves the
// composer-patches configuration. An external patches file is consulted only
// when no inline extra.patches list exists, matching composer-patches itself.
func LoadManifest(dir string) (*model.Manifest, error) {
	if dir == "" {
		dir = "."
	}

	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read composer.json", goerr.V("dir", dir))
	}

	m, err := model.ParseManifest(data)
	if err != nil {
		return nil, err
	}

	if len(m.Patches) == 0 && m.PatchesFile != "" {
		fileData, err := os.ReadFile(filepath.Join(dir, m.PatchesFile))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read patches file",
				goerr.V("file", m.PatchesFile))
		}
		patches, err := model.ParsePatchesFile(fileData)
		if err != nil {
			return nil, err
		}
		m.Patches = patches
	}

	return m, nil
}
