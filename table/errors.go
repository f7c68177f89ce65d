package table

import "fmt"

// EvidenceFailure reports a build-time (assembly) check that failed:
// Requires, UniqueNames, PrefixFreePath, Lookup, DisjointSchemas, or
// TablesProjection could not be derived from the schemas given. It is
// always produced at mount/compose time, never during execution.
type EvidenceFailure struct {
	Kind   string
	Detail string
}

func (e *EvidenceFailure) Error() string {
	return fmt.Sprintf("table: evidence failure (%s): %s", e.Kind, e.Detail)
}

// CoreKind reports this error's CoreFailure kind. Named CoreKind rather
// than Kind because the struct already has a Kind field naming the specific
// evidence check that failed (Requires, UniqueNames, ...).
func (e *EvidenceFailure) CoreKind() string { return "EvidenceFailure" }

func newEvidenceFailure(kind, detail string) error {
	return &EvidenceFailure{Kind: kind, Detail: detail}
}
