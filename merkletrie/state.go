package merkletrie

import "github.com/sigilaris/sigilaris-sub000/ids"

// State is the MerkleTrieState collaborator: the authenticated key/value
// store a StoreState is built on. Snapshot/Restore give callers rollback
// without needing the trie to understand what a transaction or a reducer
// is — they just hold onto an old *Trie value, which Put/Remove never
// mutate in place.
type State struct {
	trie *Trie
}

// NewState returns an empty state.
func NewState() *State {
	return &State{trie: New()}
}

func (s *State) Get(key []byte) ([]byte, error) {
	return s.trie.Get(key)
}

func (s *State) Put(key, value []byte) error {
	return s.trie.Put(key, value)
}

func (s *State) Remove(key []byte) error {
	return s.trie.Remove(key)
}

// Hash returns the current authentication root.
func (s *State) Hash() ids.Hash {
	return s.trie.Hash()
}

// Snapshot captures the current trie so it can later be restored. Because
// every mutation copies rather than overwrites trie nodes, the returned
// snapshot is unaffected by mutations made to s after Snapshot returns.
func (s *State) Snapshot() *Trie {
	return s.trie.Clone()
}

// Restore rolls s back to a previously captured snapshot, discarding any
// mutations made since it was taken.
func (s *State) Restore(snapshot *Trie) {
	s.trie = snapshot.Clone()
}
