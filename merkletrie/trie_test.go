package merkletrie

import "testing"

func TestGetPutRemove(t *testing.T) {
	tr := New()
	if _, err := tr.Get([]byte("missing")); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := tr.Put([]byte("alice"), []byte("100")); err != nil {
		t.Fatalf("put: %v", err)
	}
	v, err := tr.Get([]byte("alice"))
	if err != nil || string(v) != "100" {
		t.Fatalf("get: got %q err %v", v, err)
	}
	if err := tr.Remove([]byte("alice")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := tr.Get([]byte("alice")); err != ErrNotFound {
		t.Fatalf("expected removed key to be absent, got %v", err)
	}
}

func TestHashDeterministicRegardlessOfInsertOrder(t *testing.T) {
	a := New()
	a.Put([]byte("alice"), []byte("100"))
	a.Put([]byte("bob"), []byte("200"))

	b := New()
	b.Put([]byte("bob"), []byte("200"))
	b.Put([]byte("alice"), []byte("100"))

	if a.Hash() != b.Hash() {
		t.Fatal("hash should not depend on insertion order")
	}
}

func TestHashChangesOnMutation(t *testing.T) {
	tr := New()
	empty := tr.Hash()
	tr.Put([]byte("k"), []byte("v"))
	if tr.Hash() == empty {
		t.Fatal("hash should change after a put")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tr := New()
	tr.Put([]byte("k"), []byte("v1"))
	clone := tr.Clone()
	tr.Put([]byte("k"), []byte("v2"))

	v, err := clone.Get([]byte("k"))
	if err != nil || string(v) != "v1" {
		t.Fatalf("clone should retain old value, got %q err %v", v, err)
	}
	v, err = tr.Get([]byte("k"))
	if err != nil || string(v) != "v2" {
		t.Fatalf("original should see new value, got %q err %v", v, err)
	}
}

func TestStateSnapshotRestoreRollback(t *testing.T) {
	s := NewState()
	s.Put([]byte("k"), []byte("v1"))
	snap := s.Snapshot()
	s.Put([]byte("k"), []byte("v2"))
	s.Restore(snap)

	v, err := s.Get([]byte("k"))
	if err != nil || string(v) != "v1" {
		t.Fatalf("expected rollback to v1, got %q err %v", v, err)
	}
}

func TestLen(t *testing.T) {
	tr := New()
	if tr.Len() != 0 {
		t.Fatalf("expected empty trie to have len 0")
	}
	tr.Put([]byte("a"), []byte("1"))
	tr.Put([]byte("b"), []byte("2"))
	tr.Put([]byte("ab"), []byte("3"))
	if tr.Len() != 3 {
		t.Fatalf("expected len 3, got %d", tr.Len())
	}
}
