package table

import (
	"github.com/sigilaris/sigilaris-sub000/store"
)

// identity is the brand every Key[K] produced by a given StateTable
// carries. Keys are only ever constructed by that table's Brand method, so
// comparing the pointer is enough to detect (and reject) a key that wandered
// in from a different table of the same K.
type identity struct {
	name string
}

// Key is a branded key: a value of type K tagged with the identity of the
// StateTable that produced it, so it cannot be presented to a different
// table accidentally. In a language with zero-cost phantom types the brand
// would be erased at compile time; here it is carried at runtime and
// checked on every use.
type Key[K any] struct {
	owner *identity
	value K
}

// StateTable is a live, path-bound view over one schema Entry: it holds the
// table's full key prefix and records every access into the StoreState's
// AccessLog.
type StateTable[K, V any] struct {
	id        *identity
	prefix    []byte
	keyCodec  Codec[K]
	valCodec  Codec[V]
}

func newStateTable[K, V any](name string, prefix []byte, keyCodec Codec[K], valCodec Codec[V]) *StateTable[K, V] {
	return &StateTable[K, V]{
		id:       &identity{name: name},
		prefix:   prefix,
		keyCodec: keyCodec,
		valCodec: valCodec,
	}
}

// Brand tags k as belonging to t, producing the only kind of Key t's
// Get/Put/Remove will accept.
func (t *StateTable[K, V]) Brand(k K) Key[K] {
	return Key[K]{owner: t.id, value: k}
}

// Prefix returns the table's full key prefix.
func (t *StateTable[K, V]) Prefix() []byte {
	out := make([]byte, len(t.prefix))
	copy(out, t.prefix)
	return out
}

func (t *StateTable[K, V]) fullKey(k Key[K]) ([]byte, error) {
	if k.owner != t.id {
		return nil, newEvidenceFailure("Brand", "key was not branded by this table")
	}
	out := make([]byte, len(t.prefix))
	copy(out, t.prefix)
	return append(out, t.keyCodec.Encode(k.value)...), nil
}

// Get decodes the value stored at k, recording the read in s's AccessLog
// regardless of whether the key was present.
func (t *StateTable[K, V]) Get(s *store.StoreState, k Key[K]) (*V, error) {
	fullKey, err := t.fullKey(k)
	if err != nil {
		return nil, err
	}
	s.Log.RecordRead(t.prefix, fullKey)
	raw, err := s.Trie.Get(fullKey)
	if err != nil {
		return nil, nil //nolint:nilerr // absence is Option[V]=None, not a failure
	}
	v, _, err := t.valCodec.Decode(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Put encodes and stores v under k, recording the write.
func (t *StateTable[K, V]) Put(s *store.StoreState, k Key[K], v V) error {
	fullKey, err := t.fullKey(k)
	if err != nil {
		return err
	}
	s.Log.RecordWrite(t.prefix, fullKey)
	return s.Trie.Put(fullKey, t.valCodec.Encode(v))
}

// Remove deletes k, recording the write, and reports whether the key was
// previously present.
func (t *StateTable[K, V]) Remove(s *store.StoreState, k Key[K]) (bool, error) {
	fullKey, err := t.fullKey(k)
	if err != nil {
		return false, err
	}
	s.Log.RecordWrite(t.prefix, fullKey)
	_, getErr := s.Trie.Get(fullKey)
	existed := getErr == nil
	if err := s.Trie.Remove(fullKey); err != nil {
		return false, err
	}
	return existed, nil
}
