package module

import (
	"github.com/sigilaris/sigilaris-sub000/corefail"
	"github.com/sigilaris/sigilaris-sub000/log"
	"github.com/sigilaris/sigilaris-sub000/store"
	"github.com/sigilaris/sigilaris-sub000/table"
)

var moduleLog = log.Default().Module("module")

// ModuleBlueprint is a path-free description of a module: its owned
// schema, the schema it needs from elsewhere, the transaction variants it
// registers, and the provider supplying Needs. It carries UniqueNames(owns)
// as a precondition checked by NewModuleBlueprint.
type ModuleBlueprint struct {
	Name     string
	Owns     table.Schema
	Needs    table.Schema
	TxKinds  []TxKind
	Provider *TablesProvider
}

// NewModuleBlueprint builds a blueprint, proving UniqueNames(owns) and that
// every registered TxKind's Reads/Writes are satisfiable from owns∪needs —
// the §9 runtime substitute for the source's compile-time Requires clause.
// A missing entry is an EvidenceFailure raised here, at assembly, never
// during execution.
func NewModuleBlueprint(name string, owns, needs table.Schema, provider *TablesProvider, txKinds ...TxKind) (*ModuleBlueprint, error) {
	if err := table.UniqueNames(owns); err != nil {
		return nil, err
	}
	if provider == nil {
		provider = EmptyProvider()
	}
	available := table.Concat(owns, needs)
	for _, kind := range txKinds {
		if err := table.Requires(kind.Reads, available); err != nil {
			return nil, err
		}
		if err := table.Requires(kind.Writes, available); err != nil {
			return nil, err
		}
	}
	return &ModuleBlueprint{Name: name, Owns: owns, Needs: needs, TxKinds: txKinds, Provider: provider}, nil
}

// Reducer is a path-bound transaction executor produced by Mount: it
// decodes an envelope's payload by discriminator and applies it against
// the module's owned tables and provided Needs.
type Reducer func(s *store.StoreState, env *Envelope) (Result, error)

// StateModule is a ModuleBlueprint bound to a mount path: tables built, a
// path-bound Reducer ready to run, sealed against further mutation.
type StateModule struct {
	Name    string
	Path    Path
	Owns    table.Schema
	Needs   table.Schema
	Tables  *table.Tables
	TxKinds []TxKind
	Reducer Reducer
}

// Mount binds bp to path:
//  1. builds the owned Tables, one StateTable per owned entry at its
//     tablePrefix(path, name);
//  2. re-checks PrefixFreePath(path, owns) (reduces to UniqueNames, already
//     proven at blueprint construction, but mount is where a path exists to
//     check it against);
//  3. wraps the TxKinds into a path-bound Reducer that dispatches by
//     discriminator against the owned tables and bp.Provider.Tables().
func Mount(path Path, bp *ModuleBlueprint) (*StateModule, error) {
	owned, err := table.Mount(path, bp.Owns)
	if err != nil {
		return nil, err
	}
	needed := bp.Provider.Tables()

	byDiscriminator := make(map[string]TxKind, len(bp.TxKinds))
	for _, kind := range bp.TxKinds {
		byDiscriminator[kind.Discriminator] = kind
	}

	reducer := func(s *store.StoreState, env *Envelope) (Result, error) {
		kind, ok := byDiscriminator[env.Discriminator]
		if !ok {
			moduleLog.Warn("unmatched discriminator", "module", bp.Name, "discriminator", env.Discriminator)
			return Result{}, corefail.NewRoutingFailure(env.Discriminator, discriminatorNames(bp.TxKinds))
		}
		tx, err := kind.Decode(env.Payload)
		if err != nil {
			return Result{}, err
		}
		return applyTransactionally(tx, owned, needed, s)
	}

	moduleLog.Info("mounted", "module", bp.Name, "path", path)
	return &StateModule{
		Name:    bp.Name,
		Path:    path,
		Owns:    bp.Owns,
		Needs:   bp.Needs,
		Tables:  owned,
		TxKinds: bp.TxKinds,
		Reducer: reducer,
	}, nil
}

// applyTransactionally runs tx.Apply under a StoreState snapshot, rolling
// back the trie and access-log writes a failing Apply may have already made
// before returning its error — §4.10's "the reducer discards pending writes
// on failure" holds for every Tx, not only for Extend's fallback branch.
func applyTransactionally(tx Tx, owned, needed *table.Tables, s *store.StoreState) (Result, error) {
	snap := s.Begin()
	result, err := tx.Apply(owned, needed, s)
	if err != nil {
		s.Rollback(snap)
		return Result{}, err
	}
	return result, nil
}

func discriminatorNames(kinds []TxKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.Discriminator
	}
	return out
}
