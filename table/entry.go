package table

import "reflect"

// Entry is a schema row: a table name plus the key and value types that
// table holds. It is a static descriptor — it becomes a live StateTable
// only once a mount assigns it a prefix. KeyType/ValType let the evidence
// checks in schema.go compare two Entries for "same name, same K, V"
// without requiring the caller to supply generic type parameters at every
// call site; the generic accessor in table.go is what recovers type safety
// for callers that do supply K and V.
type Entry struct {
	Name    string
	KeyType reflect.Type
	ValType reflect.Type

	// newTable builds the concrete *StateTable[K,V] for this entry once a
	// prefix is known. It is set by NewEntry, which closes over the real
	// K, V type parameters, and returns the table boxed as `any`.
	newTable func(prefix []byte) any
}

// NewEntry declares a schema row for a table named name, holding keys of
// type K encoded by keyCodec and values of type V encoded by valCodec.
func NewEntry[K, V any](name string, keyCodec Codec[K], valCodec Codec[V]) Entry {
	return Entry{
		Name:    name,
		KeyType: reflect.TypeOf((*K)(nil)).Elem(),
		ValType: reflect.TypeOf((*V)(nil)).Elem(),
		newTable: func(prefix []byte) any {
			return newStateTable(name, prefix, keyCodec, valCodec)
		},
	}
}

// sameShape reports whether two entries share a name, key type, and value
// type — the notion of "matching entry" used throughout schema evidence.
func (e Entry) sameShape(other Entry) bool {
	return e.Name == other.Name && e.KeyType == other.KeyType && e.ValType == other.ValType
}
