package module

import (
	"testing"

	"github.com/sigilaris/sigilaris-sub000/codec"
	"github.com/sigilaris/sigilaris-sub000/corefail"
	"github.com/sigilaris/sigilaris-sub000/crypto"
	"github.com/sigilaris/sigilaris-sub000/examples/accountgroup"
	"github.com/sigilaris/sigilaris-sub000/ids"
	"github.com/sigilaris/sigilaris-sub000/store"
)

func sign(t *testing.T, modulePath Path, env *Envelope, kp *crypto.KeyPair) {
	t.Helper()
	digest := Digest(modulePath, env)
	sig, err := crypto.Sign(digest.Bytes(), kp)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	env.Signature = sig
}

// TestScenarioC exercises routed composition: a Bump tx addressed to
// ModuleID {"m1"} executes in m1, one addressed to "m3" fails with
// RoutingFailure naming both real module names.
func TestScenarioC(t *testing.T) {
	bp1, err := accountgroup.NewModule1Blueprint()
	if err != nil {
		t.Fatalf("module1 blueprint: %v", err)
	}
	bp2, err := accountgroup.NewModule2Blueprint()
	if err != nil {
		t.Fatalf("module2 blueprint: %v", err)
	}
	composed, err := ComposeBlueprint("m1m2", bp1, bp2)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	mounted, err := MountComposed(Path{"app"}, composed)
	if err != nil {
		t.Fatalf("mount composed: %v", err)
	}

	s := store.New()
	env := &Envelope{
		ModuleID:      ModuleId{Path: Path{"m1"}},
		Discriminator: "Bump",
		Payload:       accountgroup.EncodeBumpCounter("x", 5),
	}
	result, err := mounted.Reducer(s, env)
	if err != nil {
		t.Fatalf("expected m1 dispatch to succeed: %v", err)
	}
	if result.Value.(uint64) != 5 {
		t.Fatalf("expected counter to be 5, got %v", result.Value)
	}

	badEnv := &Envelope{
		ModuleID:      ModuleId{Path: Path{"m3"}},
		Discriminator: "Bump",
		Payload:       accountgroup.EncodeBumpCounter("x", 5),
	}
	if _, err := mounted.Reducer(s, badEnv); err == nil {
		t.Fatal("expected routing failure for unknown module id")
	} else if rf, ok := err.(*corefail.RoutingFailure); !ok || rf.Head != "m3" ||
		len(rf.Expected) != 2 || rf.Expected[0] != bp1.Name || rf.Expected[1] != bp2.Name {
		t.Fatalf("expected RoutingFailure(m3, {%s, %s}), got %v", bp1.Name, bp2.Name, err)
	}
}

// TestScenarioD exercises fallback extension: CreateGroup is rejected by
// Accounts and retried on Group, emitting GroupCreated; CreateAccount is
// handled by Accounts alone and is not retried even though it emits zero
// events.
func TestScenarioD(t *testing.T) {
	accountsBP, err := accountgroup.NewAccountsBlueprint()
	if err != nil {
		t.Fatalf("accounts blueprint: %v", err)
	}
	groupBP, err := accountgroup.NewGroupBlueprint()
	if err != nil {
		t.Fatalf("group blueprint: %v", err)
	}
	path := Path{"app"}
	accountsModule, err := Mount(path, accountsBP)
	if err != nil {
		t.Fatalf("mount accounts: %v", err)
	}
	groupModule, err := Mount(path, groupBP)
	if err != nil {
		t.Fatalf("mount group: %v", err)
	}
	extended, err := Extend(accountsModule, groupModule)
	if err != nil {
		t.Fatalf("extend: %v", err)
	}

	s := store.New()

	createGroupEnv := &Envelope{Discriminator: "CreateGroup", Payload: accountgroup.EncodeCreateGroup("friends")}
	result, err := extended.Reducer(s, createGroupEnv)
	if err != nil {
		t.Fatalf("expected CreateGroup to fall through to Group: %v", err)
	}
	if len(result.Events) != 1 {
		t.Fatalf("expected GroupCreated event, got %v", result.Events)
	}

	createAccountEnv := &Envelope{Discriminator: "CreateAccount", Payload: accountgroup.EncodeCreateAccount("alice", 100)}
	result, err = extended.Reducer(s, createAccountEnv)
	if err != nil {
		t.Fatalf("expected CreateAccount to succeed on Accounts: %v", err)
	}
	if len(result.Events) != 0 {
		t.Fatalf("expected zero events from CreateAccount, got %v", result.Events)
	}
}

type fakeRegistry struct {
	name      string
	keyID     ids.KeyID
	expiresAt uint64
}

func (r fakeRegistry) Lookup(name string, at uint64) (ids.KeyID, bool) {
	if name != r.name || at > r.expiresAt {
		return ids.KeyID{}, false
	}
	return r.keyID, true
}

// TestScenarioVerify exercises §4.8's six-step verification: an envelope
// signed with a registered key verifies to that key's id, one signed by an
// unregistered key does not.
func TestScenarioVerify(t *testing.T) {
	kp, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	other, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	modulePath := Path{"app"}
	env := &Envelope{
		Signer:        NamedAccount("alice"),
		Discriminator: "CreateAccount",
		NetworkID:     7,
		CreatedAt:     1000,
		Payload:       accountgroup.EncodeCreateAccount("alice", 1),
	}
	sign(t, modulePath, env, kp)

	digest := Digest(modulePath, env)
	pub, err := crypto.Recover(digest.Bytes(), env.Signature)
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	keyID := crypto.KeyIDFromPublicKey(pub)

	cfg := VerifyConfig{
		ExpectedNetworkID: 7,
		Accounts:          fakeRegistry{name: "alice", keyID: keyID, expiresAt: 2000},
	}
	got, err := Verify(modulePath, env, cfg)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != keyID {
		t.Fatalf("expected recovered key id %x, got %x", keyID, got)
	}

	wrongEnv := *env
	sign(t, modulePath, &wrongEnv, other)
	if _, err := Verify(modulePath, &wrongEnv, cfg); err == nil {
		t.Fatal("expected verification with an unregistered key to fail")
	}

	wrongNetwork := *env
	wrongNetwork.NetworkID = 99
	sign(t, modulePath, &wrongNetwork, kp)
	if _, err := Verify(modulePath, &wrongNetwork, cfg); err == nil {
		t.Fatal("expected network id mismatch to fail")
	}
}

func TestUnnamedAccountVerifiesByDirectKeyMatch(t *testing.T) {
	kp, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	modulePath := Path{"app"}
	env := &Envelope{
		Discriminator: "CreateAccount",
		NetworkID:     1,
		Payload:       codec.String.Encode("noop"),
	}
	sign(t, modulePath, env, kp)
	digest := Digest(modulePath, env)
	pub, err := crypto.Recover(digest.Bytes(), env.Signature)
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	env.Signer = UnnamedAccount(crypto.KeyIDFromPublicKey(pub))

	cfg := VerifyConfig{ExpectedNetworkID: 1}
	if _, err := Verify(modulePath, env, cfg); err != nil {
		t.Fatalf("expected unnamed verification to succeed: %v", err)
	}
}
