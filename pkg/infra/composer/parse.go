package composer

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"

	"github.com/NickStees/drupal-update/pkg/domain/model"
)

// ParseOutdated parses the JSON document produced by
// `composer outdated --locked --format=json`.
func ParseOutdated(data []byte) ([]model.Package, error) {
	var list model.OutdatedList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, goerr.Wrap(err, "failed to parse outdated listing")
	}
	return list.Locked, nil
}
