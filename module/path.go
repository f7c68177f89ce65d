package module

import "github.com/sigilaris/sigilaris-sub000/table"

// Path is a module mount path, aliased from table (itself aliased from
// pathenc) so callers assembling blueprints see one consistent type.
type Path = table.Path
