package merkletrie

import (
	"errors"

	"github.com/sigilaris/sigilaris-sub000/ids"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("merkletrie: key not found")

var emptyRoot = ids.BytesToHash(keccak256([]byte{0x00}))

// Trie is an authenticated key/value store: every Put/Remove that changes
// its contents changes the root returned by Hash, and any two tries holding the same key/value pairs
// hash to the same root regardless of insertion order.
type Trie struct {
	root node
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{}
}

// Get returns the value stored under key, or ErrNotFound.
func (t *Trie) Get(key []byte) ([]byte, error) {
	v, ok := get(t.root, keybytesToHex(key), 0)
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func get(n node, key []byte, pos int) ([]byte, bool) {
	switch n := n.(type) {
	case nil:
		return nil, false
	case valueNode:
		return []byte(n), true
	case *shortNode:
		if len(key)-pos < len(n.Key) || !equalBytes(n.Key, key[pos:pos+len(n.Key)]) {
			return nil, false
		}
		return get(n.Val, key, pos+len(n.Key))
	case *fullNode:
		if pos >= len(key) {
			return get(n.Children[16], key, pos)
		}
		return get(n.Children[key[pos]], key, pos+1)
	case hashNode:
		return nil, false
	default:
		return nil, false
	}
}

// Put inserts or overwrites key with value. An empty value removes the key.
func (t *Trie) Put(key, value []byte) error {
	if len(value) == 0 {
		return t.Remove(key)
	}
	n, err := insert(t.root, keybytesToHex(key), valueNode(value))
	if err != nil {
		return err
	}
	t.root = n
	return nil
}

func insert(n node, key []byte, value node) (node, error) {
	if len(key) == 0 {
		if v, ok := n.(valueNode); ok && equalBytes(v, value.(valueNode)) {
			return v, nil
		}
		return value, nil
	}
	switch n := n.(type) {
	case nil:
		return &shortNode{Key: key, Val: value, flags: nodeFlag{dirty: true}}, nil

	case *shortNode:
		match := prefixLen(key, n.Key)
		if match == len(n.Key) {
			nn, err := insert(n.Val, key[match:], value)
			if err != nil {
				return nil, err
			}
			return &shortNode{Key: n.Key, Val: nn, flags: nodeFlag{dirty: true}}, nil
		}
		branch := &fullNode{flags: nodeFlag{dirty: true}}
		existing, err := insert(nil, n.Key[match+1:], n.Val)
		if err != nil {
			return nil, err
		}
		branch.Children[n.Key[match]] = existing
		fresh, err := insert(nil, key[match+1:], value)
		if err != nil {
			return nil, err
		}
		branch.Children[key[match]] = fresh
		if match > 0 {
			return &shortNode{Key: key[:match], Val: branch, flags: nodeFlag{dirty: true}}, nil
		}
		return branch, nil

	case *fullNode:
		nn := n.copy()
		nn.flags = nodeFlag{dirty: true}
		child, err := insert(n.Children[key[0]], key[1:], value)
		if err != nil {
			return nil, err
		}
		nn.Children[key[0]] = child
		return nn, nil

	case hashNode:
		return nil, errors.New("merkletrie: cannot insert below an unresolved hash node")

	default:
		return nil, errors.New("merkletrie: unknown node type")
	}
}

// Remove deletes key. Removing an absent key is a no-op.
func (t *Trie) Remove(key []byte) error {
	n, err := remove(t.root, keybytesToHex(key))
	if err != nil {
		return err
	}
	t.root = n
	return nil
}

func remove(n node, key []byte) (node, error) {
	switch n := n.(type) {
	case nil:
		return nil, nil

	case *shortNode:
		match := prefixLen(key, n.Key)
		if match < len(n.Key) {
			return n, nil
		}
		if match == len(key) {
			return nil, nil
		}
		child, err := remove(n.Val, key[len(n.Key):])
		if err != nil {
			return nil, err
		}
		switch child := child.(type) {
		case nil:
			return nil, nil
		case *shortNode:
			return &shortNode{Key: concatNibbles(n.Key, child.Key), Val: child.Val, flags: nodeFlag{dirty: true}}, nil
		default:
			return &shortNode{Key: n.Key, Val: child, flags: nodeFlag{dirty: true}}, nil
		}

	case *fullNode:
		nn := n.copy()
		nn.flags = nodeFlag{dirty: true}
		child, err := remove(n.Children[key[0]], key[1:])
		if err != nil {
			return nil, err
		}
		nn.Children[key[0]] = child

		remaining := -1
		for i := 0; i < 17; i++ {
			if nn.Children[i] != nil {
				if remaining >= 0 {
					return nn, nil
				}
				remaining = i
			}
		}
		if remaining < 0 {
			return nil, nil
		}
		if remaining == 16 {
			return &shortNode{Key: []byte{terminator}, Val: nn.Children[16], flags: nodeFlag{dirty: true}}, nil
		}
		if cn, ok := nn.Children[remaining].(*shortNode); ok {
			return &shortNode{Key: concatNibbles([]byte{byte(remaining)}, cn.Key), Val: cn.Val, flags: nodeFlag{dirty: true}}, nil
		}
		return &shortNode{Key: []byte{byte(remaining)}, Val: nn.Children[remaining], flags: nodeFlag{dirty: true}}, nil

	case valueNode:
		if len(key) == 0 {
			return nil, nil
		}
		return n, nil

	case hashNode:
		return nil, errors.New("merkletrie: cannot remove below an unresolved hash node")

	default:
		return nil, errors.New("merkletrie: unknown node type")
	}
}

// Hash returns the authentication root of the trie's current contents.
func (t *Trie) Hash() ids.Hash {
	if t.root == nil {
		return emptyRoot
	}
	h := newHasher()
	hashed, cached := h.hash(t.root, true)
	t.root = cached
	if hn, ok := hashed.(hashNode); ok {
		return ids.BytesToHash(hn)
	}
	return ids.BytesToHash(keccak256(encodeNode(hashed)))
}

// Len reports the number of stored key/value pairs. It walks the full tree.
func (t *Trie) Len() int {
	return countValues(t.root)
}

func countValues(n node) int {
	switch n := n.(type) {
	case nil:
		return 0
	case valueNode:
		return 1
	case *shortNode:
		return countValues(n.Val)
	case *fullNode:
		total := 0
		for i := 0; i < 17; i++ {
			total += countValues(n.Children[i])
		}
		return total
	default:
		return 0
	}
}

// Clone returns an independent copy of the trie's current root. Mutating
// the clone never affects t, and vice versa, since every insert/remove
// already copies the nodes it touches rather than mutating shared ones.
func (t *Trie) Clone() *Trie {
	return &Trie{root: t.root}
}
