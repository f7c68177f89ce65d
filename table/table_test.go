package table

import (
	"testing"

	"github.com/sigilaris/sigilaris-sub000/codec"
	"github.com/sigilaris/sigilaris-sub000/store"
)

func testSchema() Schema {
	return Schema{
		NewEntry[string, uint64]("accounts", codec.String, codec.Uint64.Codec),
		NewEntry[string, uint64]("balances", codec.String, codec.Uint64.Codec),
	}
}

func TestUniqueNamesRejectsDuplicates(t *testing.T) {
	schema := Schema{
		NewEntry[string, uint64]("accounts", codec.String, codec.Uint64.Codec),
		NewEntry[string, uint64]("accounts", codec.String, codec.Uint64.Codec),
	}
	if err := UniqueNames(schema); err == nil {
		t.Fatal("expected duplicate table name to fail UniqueNames")
	}
}

func TestRequiresDetectsTypeMismatch(t *testing.T) {
	schema := testSchema()
	needs := Schema{NewEntry[string, string]("accounts", codec.String, codec.String)}
	if err := Requires(needs, schema); err == nil {
		t.Fatal("expected mismatched value type to fail Requires")
	}
}

func TestMountAndGetPutRemove(t *testing.T) {
	tables, err := Mount(Path{"app", "group"}, testSchema())
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	accounts, err := Table[string, uint64](tables, "accounts")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	s := store.New()
	key := accounts.Brand("alice")
	if err := accounts.Put(s, key, 100); err != nil {
		t.Fatalf("put: %v", err)
	}
	v, err := accounts.Get(s, key)
	if err != nil || v == nil || *v != 100 {
		t.Fatalf("get: got %v err %v", v, err)
	}
	existed, err := accounts.Remove(s, key)
	if err != nil || !existed {
		t.Fatalf("remove: existed=%v err=%v", existed, err)
	}
	v, err = accounts.Get(s, key)
	if err != nil || v != nil {
		t.Fatalf("expected removed key to read as None, got %v", v)
	}
}

// TestScenarioB mounts the same schema at two distinct paths and checks
// writes to one never leak into the other.
func TestScenarioB(t *testing.T) {
	schema := Schema{NewEntry[string, uint64]("accounts", codec.String, codec.Uint64.Codec)}

	group, err := Mount(Path{"app", "group"}, schema)
	if err != nil {
		t.Fatalf("mount group: %v", err)
	}
	token, err := Mount(Path{"app", "token"}, schema)
	if err != nil {
		t.Fatalf("mount token: %v", err)
	}
	groupAccounts, _ := Table[string, uint64](group, "accounts")
	tokenAccounts, _ := Table[string, uint64](token, "accounts")

	s := store.New()
	if err := groupAccounts.Put(s, groupAccounts.Brand("alice"), 100); err != nil {
		t.Fatalf("put: %v", err)
	}
	v, err := tokenAccounts.Get(s, tokenAccounts.Brand("alice"))
	if err != nil || v != nil {
		t.Fatalf("expected isolated table to see no value, got %v", v)
	}

	if err := tokenAccounts.Put(s, tokenAccounts.Brand("alice"), 50); err != nil {
		t.Fatalf("put: %v", err)
	}
	v, err = groupAccounts.Get(s, groupAccounts.Brand("alice"))
	if err != nil || v == nil || *v != 100 {
		t.Fatalf("expected group's value to remain 100, got %v", v)
	}
}

func TestKeyBrandRejectsForeignTable(t *testing.T) {
	schema := Schema{
		NewEntry[string, uint64]("a", codec.String, codec.Uint64.Codec),
		NewEntry[string, uint64]("b", codec.String, codec.Uint64.Codec),
	}
	tables, err := Mount(Path{"app"}, schema)
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	ta, _ := Table[string, uint64](tables, "a")
	tb, _ := Table[string, uint64](tables, "b")

	s := store.New()
	foreignKey := tb.Brand("x")
	if _, err := ta.Get(s, foreignKey); err == nil {
		t.Fatal("expected foreign-table key to be rejected")
	}
}

func TestNarrowAndMerge(t *testing.T) {
	schema := testSchema()
	tables, err := Mount(Path{"app"}, schema)
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	sub := Schema{NewEntry[string, uint64]("accounts", codec.String, codec.Uint64.Codec)}
	narrowed, err := Narrow(tables, sub)
	if err != nil {
		t.Fatalf("narrow: %v", err)
	}
	narrowedAccounts, err := Table[string, uint64](narrowed, "accounts")
	if err != nil {
		t.Fatalf("lookup in narrowed: %v", err)
	}
	originalAccounts, _ := Table[string, uint64](tables, "accounts")

	s := store.New()
	originalAccounts.Put(s, originalAccounts.Brand("x"), 7)
	v, err := narrowedAccounts.Get(s, narrowedAccounts.Brand("x"))
	if err != nil || v == nil || *v != 7 {
		t.Fatal("narrowed table should be the same underlying StateTable instance")
	}

	otherSchema := Schema{NewEntry[string, uint64]("other", codec.String, codec.Uint64.Codec)}
	other, err := Mount(Path{"app2"}, otherSchema)
	if err != nil {
		t.Fatalf("mount other: %v", err)
	}
	merged, err := Merge(narrowed, other)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(merged.Schema()) != 2 {
		t.Fatalf("expected merged schema of 2 tables, got %d", len(merged.Schema()))
	}
}
