package module

import "github.com/sigilaris/sigilaris-sub000/ids"

// Account identifies a transaction's signer: either a Named account (a
// utf-8 name resolved against an on-chain key registry) or an Unnamed
// account (the KeyId20 itself, with no registry indirection).
type Account struct {
	named   string
	unnamed ids.KeyID
	isNamed bool
}

// NamedAccount builds a Named account.
func NamedAccount(name string) Account {
	return Account{named: name, isNamed: true}
}

// UnnamedAccount builds an Unnamed account pinned to a specific KeyId20.
func UnnamedAccount(id ids.KeyID) Account {
	return Account{unnamed: id}
}

// IsNamed reports whether the account is Named.
func (a Account) IsNamed() bool { return a.isNamed }

// Name returns the account's name; only meaningful when IsNamed() is true.
func (a Account) Name() string { return a.named }

// KeyID returns the account's fixed KeyId20; only meaningful when
// IsNamed() is false.
func (a Account) KeyID() ids.KeyID { return a.unnamed }

// KeyRegistry resolves a Named account's currently-valid signing key. Named
// accounts may rotate keys over time; Lookup must only return a key that is
// registered and not expired as of at.
type KeyRegistry interface {
	Lookup(name string, at uint64) (ids.KeyID, bool)
}

// ModuleId is a module's relative identity: its mount path's first segment
// names the module, and the id is never rewritten when the module is
// remounted elsewhere.
type ModuleId struct {
	Path Path
}

// Head returns the first segment of the module id's path, the value
// ComposedBlueprint routes on. The empty string is returned for an empty
// path.
func (m ModuleId) Head() string {
	if len(m.Path) == 0 {
		return ""
	}
	return m.Path[0]
}
