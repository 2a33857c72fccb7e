package snapshots

import (
	"fmt"
	"path/filepath"
)

const kindCatalog = "catalog"

// CatalogSnapshotPath builds the path to a catalog snapshot for a given date.
func CatalogSnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, kindCatalog, fmt.Sprintf("%s.json", date))
}
