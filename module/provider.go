package module

import "github.com/sigilaris/sigilaris-sub000/table"

// TablesProvider supplies a module's Needs: a fixed set of tables owned by
// some other, already-mounted module. A provider is built once, before the
// module that needs it is mounted, and mount never re-instantiates it.
type TablesProvider struct {
	provides table.Schema
	tables   *table.Tables
}

// EmptyProvider supplies the empty tuple, for a blueprint whose Needs is
// empty.
func EmptyProvider() *TablesProvider {
	return &TablesProvider{provides: table.Schema{}, tables: table.Empty()}
}

// ProviderFromModule exposes m's owned tables as a provider of schema
// m.Owns.
func ProviderFromModule(m *StateModule) *TablesProvider {
	return &TablesProvider{provides: m.Owns, tables: m.Tables}
}

// Provides returns the schema this provider satisfies.
func (p *TablesProvider) Provides() table.Schema { return p.provides }

// Tables returns the tuple of tables this provider holds.
func (p *TablesProvider) Tables() *table.Tables { return p.tables }

// Narrow returns a provider for sub, built by looking up each of sub's
// entries by name in p (never by casting), so TablesProjection(sub,
// p.Provides()) actually holds.
func (p *TablesProvider) Narrow(sub table.Schema) (*TablesProvider, error) {
	narrowed, err := table.Narrow(p.tables, sub)
	if err != nil {
		return nil, err
	}
	return &TablesProvider{provides: sub, tables: narrowed}, nil
}

// MergeProviders returns a provider for p1.Provides() ++ p2.Provides(),
// requiring DisjointSchemas(p1.Provides(), p2.Provides()).
func MergeProviders(p1, p2 *TablesProvider) (*TablesProvider, error) {
	merged, err := table.Merge(p1.tables, p2.tables)
	if err != nil {
		return nil, err
	}
	return &TablesProvider{provides: table.Concat(p1.provides, p2.provides), tables: merged}, nil
}
