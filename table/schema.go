package table

// Schema is an ordered list of Entries. Ordering is preserved through
// composition (owns/needs concatenation) but never load-bearing for
// lookups, which go by name.
type Schema []Entry

// UniqueNames proves every table name in the schema is distinct.
func UniqueNames(schema Schema) error {
	seen := make(map[string]struct{}, len(schema))
	for _, e := range schema {
		if _, ok := seen[e.Name]; ok {
			return newEvidenceFailure("UniqueNames", "duplicate table name: "+e.Name)
		}
		seen[e.Name] = struct{}{}
	}
	return nil
}

// Requires proves every Entry in needs appears in schema with the same
// name, key type, and value type.
func Requires(needs, schema Schema) error {
	for _, want := range needs {
		if err := Contains(want, schema); err != nil {
			return err
		}
	}
	return nil
}

// Contains proves a single Entry is present in schema with matching shape.
func Contains(e Entry, schema Schema) error {
	for _, have := range schema {
		if have.Name == e.Name {
			if have.sameShape(e) {
				return nil
			}
			return newEvidenceFailure("Requires", "table "+e.Name+" has a conflicting key/value type")
		}
	}
	return newEvidenceFailure("Requires", "missing table: "+e.Name)
}

// PrefixFreePath proves every pair of distinct entries in schema yields
// prefix-free key prefixes once mounted at path. Given pathenc's
// construction (a length-prefixed segment list followed by a
// length-prefixed, sentinel-terminated name), this reduces to UniqueNames.
func PrefixFreePath(schema Schema) error {
	if err := UniqueNames(schema); err != nil {
		return newEvidenceFailure("PrefixFreePath", err.Error())
	}
	return nil
}

// DisjointSchemas proves no table name appears in both a and b.
func DisjointSchemas(a, b Schema) error {
	names := make(map[string]struct{}, len(a))
	for _, e := range a {
		names[e.Name] = struct{}{}
	}
	for _, e := range b {
		if _, ok := names[e.Name]; ok {
			return newEvidenceFailure("DisjointSchemas", "table present in both schemas: "+e.Name)
		}
	}
	return nil
}

// Lookup locates the Entry named name within schema, matching by name only.
// It does not check key or value types; Table[K,V] calls it and then
// compares K and V against the returned Entry's declared types.
func Lookup(schema Schema, name string) (Entry, error) {
	for _, e := range schema {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, newEvidenceFailure("Lookup", "no such table: "+name)
}

// Concat returns the concatenation of two schemas in order, the operation
// composeBlueprint uses to build a combined owns/needs schema. It does not
// itself check UniqueNames/DisjointSchemas; callers run those separately so
// the failure kind matches what actually went wrong.
func Concat(a, b Schema) Schema {
	out := make(Schema, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// Names returns the table names in schema, in order.
func (s Schema) Names() []string {
	out := make([]string, len(s))
	for i, e := range s {
		out[i] = e.Name
	}
	return out
}
