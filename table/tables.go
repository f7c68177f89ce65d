package table

import "reflect"

// Tables is an erased tuple of StateTables, one per Entry of some Schema.
// The type parameter of each entry's StateTable is only recovered by the
// generic Table[K,V] accessor below, which re-derives it from the schema
// the caller already proved Requires/Lookup against.
type Tables struct {
	schema Schema
	byName map[string]any
}

// Mount builds the live Tables for schema at the given path, constructing
// one StateTable per Entry at its prefix. Mounting is the only place an
// Entry's newTable closure is invoked.
func Mount(path Path, schema Schema) (*Tables, error) {
	if err := PrefixFreePath(schema); err != nil {
		return nil, err
	}
	byName := make(map[string]any, len(schema))
	for _, e := range schema {
		prefix := TablePrefix(path, e.Name)
		byName[e.Name] = e.newTable(prefix)
	}
	return &Tables{schema: schema, byName: byName}, nil
}

// Empty returns a Tables holding the empty schema, used by providers that
// supply no tables.
func Empty() *Tables {
	return &Tables{schema: Schema{}, byName: map[string]any{}}
}

// Schema returns the schema Tables was mounted with.
func (t *Tables) Schema() Schema { return t.schema }

// Table recovers the *StateTable[K,V] registered under name, failing with
// an EvidenceFailure if no such table exists or if K/V don't match its
// declared types — this is Lookup(Schema, name, K, V) made concrete.
func Table[K, V any](t *Tables, name string) (*StateTable[K, V], error) {
	entry, err := Lookup(t.schema, name)
	if err != nil {
		return nil, err
	}
	wantK := reflect.TypeOf((*K)(nil)).Elem()
	wantV := reflect.TypeOf((*V)(nil)).Elem()
	if entry.KeyType != wantK || entry.ValType != wantV {
		return nil, newEvidenceFailure("Lookup", "table "+name+" has a different key/value type than requested")
	}
	boxed, ok := t.byName[name]
	if !ok {
		return nil, newEvidenceFailure("Lookup", "no such table: "+name)
	}
	st, ok := boxed.(*StateTable[K, V])
	if !ok {
		return nil, newEvidenceFailure("Lookup", "table "+name+" has an unexpected concrete type")
	}
	return st, nil
}

// Narrow builds the projection of t onto sub: a new Tables holding exactly
// the StateTable instances sub names, looked up by name from t (never
// cast). TablesProjection(sub, t.schema) must hold.
func Narrow(t *Tables, sub Schema) (*Tables, error) {
	if err := Requires(sub, t.schema); err != nil {
		return nil, err
	}
	byName := make(map[string]any, len(sub))
	for _, e := range sub {
		byName[e.Name] = t.byName[e.Name]
	}
	return &Tables{schema: sub, byName: byName}, nil
}

// Merge combines two disjoint Tables into one covering the concatenation of
// their schemas.
func Merge(a, b *Tables) (*Tables, error) {
	if err := DisjointSchemas(a.schema, b.schema); err != nil {
		return nil, err
	}
	byName := make(map[string]any, len(a.byName)+len(b.byName))
	for k, v := range a.byName {
		byName[k] = v
	}
	for k, v := range b.byName {
		byName[k] = v
	}
	return &Tables{schema: Concat(a.schema, b.schema), byName: byName}, nil
}
