package module

import (
	"github.com/sigilaris/sigilaris-sub000/store"
	"github.com/sigilaris/sigilaris-sub000/table"
)

// Tx is one decoded transaction payload. Reads/Writes describe the tables
// it may touch (checked against a module's owns∪needs when the blueprint is
// built by NewModuleBlueprint, never at execution); Apply is the reducer body for this variant, given the
// module's owned tables and whatever TablesProvider.Tables it needs.
type Tx interface {
	Reads() table.Schema
	Writes() table.Schema
	Apply(owned, needed *table.Tables, s *store.StoreState) (Result, error)
}

// Result is the application-defined outcome of a transaction: an opaque
// return value plus the events it emitted. Both are left as `any`/raw
// values because the engine itself is generic over the application's
// result and event types.
type Result struct {
	Value  any
	Events []any
}

// TxKind registers one Tx variant under a wire discriminator: Decode turns
// a raw payload into a Tx this variant knows how to Apply. Reads/Writes are
// duplicated from the decoded Tx's own accessors so the evidence checking
// in NewModuleBlueprint does not need to decode a sample payload to find them — they
// are declared once, up front, per variant.
type TxKind struct {
	Discriminator string
	Reads         table.Schema
	Writes        table.Schema
	Decode        func(payload []byte) (Tx, error)
}
