package table

import "github.com/sigilaris/sigilaris-sub000/pathenc"

// Path is the mount path a schema's tables are bound to. Aliased from
// pathenc so callers assembling blueprints don't need a second import.
type Path = pathenc.Path

// TablePrefix returns the full key prefix for table name mounted at path.
func TablePrefix(path Path, name string) []byte {
	return pathenc.TablePrefix(path, name)
}
