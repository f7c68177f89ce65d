package store

import (
	"github.com/sigilaris/sigilaris-sub000/ids"
	"github.com/sigilaris/sigilaris-sub000/merkletrie"
)

// StoreState is the single piece of state a reducer threads through a
// transaction: the authenticated trie and the access log recorded against
// it. A fresh StoreState is created empty at the start of each transaction
// (or block) and discarded on failure, never partially applied.
type StoreState struct {
	Trie *merkletrie.State
	Log  *AccessLog
}

// New returns an empty StoreState over a fresh trie.
func New() *StoreState {
	return &StoreState{Trie: merkletrie.NewState(), Log: NewAccessLog()}
}

// Root returns the authentication root of the underlying trie.
func (s *StoreState) Root() ids.Hash {
	return s.Trie.Hash()
}

// snapshot is what Begin/Rollback use to restore the pre-transaction
// state on failure: the trie's prior root and a copy of the log taken
// before the transaction started.
type snapshot struct {
	trieSnapshot *merkletrie.Trie
	log          *AccessLog
}

// Begin captures the state StoreState is in right now, so a failed
// transaction can be rolled back to exactly this point.
func (s *StoreState) Begin() *snapshot {
	return &snapshot{trieSnapshot: s.Trie.Snapshot(), log: s.Log.Clone()}
}

// Rollback restores s to what it was when snap was captured, discarding
// any reads/writes recorded since.
func (s *StoreState) Rollback(snap *snapshot) {
	s.Trie.Restore(snap.trieSnapshot)
	s.Log = snap.log
}
