package module

import (
	"github.com/sigilaris/sigilaris-sub000/corefail"
	"github.com/sigilaris/sigilaris-sub000/store"
	"github.com/sigilaris/sigilaris-sub000/table"
)

// route is one of composeBlueprint's two branches: a source module's name
// and the TxKinds registered against it.
type route struct {
	name    string
	txKinds []TxKind
}

// ComposedBlueprint is like ModuleBlueprint but its reducer requires every
// envelope to carry a non-empty ModuleID and dispatches on its path's head
// segment to the matching source blueprint before dispatching by
// discriminator within that source's own TxKinds.
type ComposedBlueprint struct {
	Name     string
	Owns     table.Schema
	Needs    table.Schema
	Provider *TablesProvider
	routes   []route
}

// ComposeBlueprint concatenates a and b into a single routed blueprint
// named outName:
//   - owns = a.Owns ++ b.Owns, requiring UniqueNames(owns);
//   - needs = a.Needs ++ b.Needs, requiring DisjointSchemas(a.Needs, b.Needs),
//     with the merged provider;
//   - a ModuleRoutedTx whose ModuleID head matches a.Name dispatches into
//     a's TxKinds, b.Name into b's, anything else fails RoutingFailure.
func ComposeBlueprint(outName string, a, b *ModuleBlueprint) (*ComposedBlueprint, error) {
	owns := table.Concat(a.Owns, b.Owns)
	if err := table.UniqueNames(owns); err != nil {
		return nil, err
	}
	if err := table.DisjointSchemas(a.Needs, b.Needs); err != nil {
		return nil, err
	}
	provider, err := MergeProviders(a.Provider, b.Provider)
	if err != nil {
		return nil, err
	}
	return &ComposedBlueprint{
		Name:     outName,
		Owns:     owns,
		Needs:    table.Concat(a.Needs, b.Needs),
		Provider: provider,
		routes:   []route{{a.Name, a.TxKinds}, {b.Name, b.TxKinds}},
	}, nil
}

// ComposeAll folds ComposeBlueprint across bps left to right. Because
// ComposedBlueprint only ever requires ModuleRoutedTx envelopes, composing
// composed blueprints remains safe: each fold step wraps the composed result
// back into the form ComposeBlueprint takes, then keeps every source
// blueprint's own route, so a tx is still routed by its source module's name.
func ComposeAll(outName string, bps ...*ModuleBlueprint) (*ComposedBlueprint, error) {
	if len(bps) < 2 {
		return nil, corefail.NewPreconditionFailure("composeAll requires at least two blueprints")
	}
	composed, err := ComposeBlueprint(outName, bps[0], bps[1])
	if err != nil {
		return nil, err
	}
	for _, next := range bps[2:] {
		prev := composed
		asBlueprint := prev.asModuleBlueprint()
		composed, err = ComposeBlueprint(outName, asBlueprint, next)
		if err != nil {
			return nil, err
		}
		composed.routes = append(append([]route{}, prev.routes...), route{next.Name, next.TxKinds})
	}
	return composed, nil
}

// asModuleBlueprint lets an already-composed result feed back into another
// ComposeBlueprint call, carrying its owns, needs and provider forward. Its
// TxKinds are all routes' kinds flattened under its own Name; ComposeAll
// replaces that single route with the original per-module routes.
func (c *ComposedBlueprint) asModuleBlueprint() *ModuleBlueprint {
	var allKinds []TxKind
	for _, r := range c.routes {
		allKinds = append(allKinds, r.txKinds...)
	}
	return &ModuleBlueprint{Name: c.Name, Owns: c.Owns, Needs: c.Needs, Provider: c.Provider, TxKinds: allKinds}
}

// MountComposed binds a ComposedBlueprint to path, as Mount does for a
// plain ModuleBlueprint, but the resulting Reducer requires env.ModuleID to
// be non-empty and routes on its head segment before dispatching by
// discriminator.
func MountComposed(path Path, bp *ComposedBlueprint) (*StateModule, error) {
	owned, err := table.Mount(path, bp.Owns)
	if err != nil {
		return nil, err
	}
	needed := bp.Provider.Tables()

	routeNames := make([]string, len(bp.routes))
	byName := make(map[string]map[string]TxKind, len(bp.routes))
	for i, r := range bp.routes {
		routeNames[i] = r.name
		kinds := make(map[string]TxKind, len(r.txKinds))
		for _, k := range r.txKinds {
			kinds[k.Discriminator] = k
		}
		byName[r.name] = kinds
	}

	reducer := func(s *store.StoreState, env *Envelope) (Result, error) {
		head := env.ModuleID.Head()
		kinds, ok := byName[head]
		if !ok {
			moduleLog.Warn("unmatched route", "composed", bp.Name, "head", head)
			return Result{}, corefail.NewRoutingFailure(head, routeNames)
		}
		kind, ok := kinds[env.Discriminator]
		if !ok {
			moduleLog.Warn("unmatched discriminator", "composed", bp.Name, "head", head, "discriminator", env.Discriminator)
			return Result{}, corefail.NewRoutingFailure(env.Discriminator, discriminatorNamesFromMap(kinds))
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
		Reducer: reducer,
	}, nil
}

func discriminatorNamesFromMap(kinds map[string]TxKind) []string {
	out := make([]string, 0, len(kinds))
	for name := range kinds {
		out = append(out, name)
	}
	return out
}

// Extend combines mA and mB, already mounted at the same path, into one
// StateModule via the error-based fallback rule: a signed tx is tried
// against mA's reducer first; only a failure (not a success with zero
// events) falls through to mB's. Production composition should prefer
// ComposeBlueprint/MountComposed; Extend is a convenience for
// self-contained stacks that don't need explicit per-module routing.
func Extend(mA, mB *StateModule) (*StateModule, error) {
	if !samePath(mA.Path, mB.Path) {
		return nil, corefail.NewRoutingFailure("", []string{"extend requires equal mount paths"})
	}
	owns := table.Concat(mA.Owns, mB.Owns)
	if err := table.UniqueNames(owns); err != nil {
		return nil, err
	}
	if err := table.PrefixFreePath(owns); err != nil {
		return nil, err
	}
	if err := table.DisjointSchemas(mA.Needs, mB.Needs); err != nil {
		return nil, err
	}
	tables, err := table.Merge(mA.Tables, mB.Tables)
	if err != nil {
		return nil, err
	}

	reducer := func(s *store.StoreState, env *Envelope) (Result, error) {
		snapA := s.Begin()
		result, err := mA.Reducer(s, env)
		if err == nil {
			return result, nil
		}
		moduleLog.Debug("falling through to extend's second reducer", "first", mA.Name, "reason", err)
		s.Rollback(snapA)

		snapB := s.Begin()
		result, err = mB.Reducer(s, env)
		if err != nil {
			s.Rollback(snapB)
			return Result{}, err
		}
		return result, nil
	}

	return &StateModule{
		Name:    mA.Name + "+" + mB.Name,
		Path:    mA.Path,
		Owns:    owns,
		Needs:   table.Concat(mA.Needs, mB.Needs),
		Tables:  tables,
		TxKinds: append(append([]TxKind{}, mA.TxKinds...), mB.TxKinds...),
		Reducer: reducer,
	}, nil
}

func samePath(a, b Path) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
