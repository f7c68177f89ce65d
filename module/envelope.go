package module

import (
	"github.com/sigilaris/sigilaris-sub000/codec"
	"github.com/sigilaris/sigilaris-sub000/corefail"
	"github.com/sigilaris/sigilaris-sub000/crypto"
	"github.com/sigilaris/sigilaris-sub000/ids"
	"github.com/sigilaris/sigilaris-sub000/pathenc"
)

var verifyLog = moduleLog.With("component", "verify")

// Envelope is Signed[T]: a transaction's wire form before it has been
// decoded into a concrete Tx. Reducers take an Envelope as given and do not
// check its signature: Verify is a separate call, and a reducer runs an
// envelope whether or not Verify has been called on it.
type Envelope struct {
	Signer        Account
	Signature     crypto.Signature
	ModuleID      ModuleId // empty Path for non-routed modules
	Discriminator string
	NetworkID     uint64
	CreatedAt     uint64 // milliseconds
	Memo          *string
	Payload       []byte
}

// signBytes builds the canonical signing payload of §6, bit-exact:
//
//	encode(modulePath ++ moduleId.path)
//	encode(txDiscriminator)
//	encode(networkId)
//	encode(createdAt)
//	encode(memo)
//	encode(payload)
//
// modulePath is the path the module executing this tx is mounted at; for a
// non-routed StateModule it is that module's own Path, and moduleId.path is
// empty.
func signBytes(modulePath Path, env *Envelope) []byte {
	full := make(Path, 0, len(modulePath)+len(env.ModuleID.Path))
	full = append(full, modulePath...)
	full = append(full, env.ModuleID.Path...)

	out := pathenc.EncodePath(full)
	out = append(out, codec.String.Encode(env.Discriminator)...)
	out = append(out, codec.EncodeUint64(env.NetworkID)...)
	out = append(out, codec.EncodeUint64(env.CreatedAt)...)
	out = append(out, codec.Option(codec.String).Encode(env.Memo)...)
	out = append(out, env.Payload...)
	return out
}

// Digest returns the Keccak-256 digest Verify recovers the signer against.
func Digest(modulePath Path, env *Envelope) ids.Hash {
	return crypto.Keccak256Hash(signBytes(modulePath, env))
}

// VerifyConfig carries the pieces Verify cannot derive from the envelope
// alone: the expected network id and, for Named accounts, the registry of
// currently-valid signing keys.
type VerifyConfig struct {
	ExpectedNetworkID uint64
	Accounts          KeyRegistry
	Cache             *crypto.RecoveryCache // optional; nil disables caching
}

// Verify runs the six-step signature-verification boundary of §4.8 and
// returns the recovered KeyId20 on success. Only after Verify succeeds may
// a reducer execute the envelope's transaction.
func Verify(modulePath Path, env *Envelope, cfg VerifyConfig) (ids.KeyID, error) {
	if env.NetworkID != cfg.ExpectedNetworkID {
		verifyLog.Warn("network id mismatch", "got", env.NetworkID, "expected", cfg.ExpectedNetworkID)
		return ids.KeyID{}, corefail.NewSignatureFailure("network id mismatch")
	}

	digest := Digest(modulePath, env)

	var pub []byte
	var err error
	if cfg.Cache != nil {
		pub, err = cfg.Cache.RecoverCached(digest.Bytes(), env.Signature)
	} else {
		pub, err = crypto.Recover(digest.Bytes(), env.Signature)
	}
	if err != nil {
		verifyLog.Warn("signature recovery failed", "reason", err)
		return ids.KeyID{}, corefail.NewSignatureFailure("recovery failed: " + err.Error())
	}

	keyID := crypto.KeyIDFromPublicKey(pub)

	if !env.Signer.IsNamed() {
		if !crypto.ConstantTimeEqual(keyID[:], env.Signer.KeyID()[:]) {
			return ids.KeyID{}, corefail.NewSignatureFailure("recovered key does not match unnamed signer")
		}
		return keyID, nil
	}

	if cfg.Accounts == nil {
		return ids.KeyID{}, corefail.NewSignatureFailure("no key registry configured for named accounts")
	}
	registered, ok := cfg.Accounts.Lookup(env.Signer.Name(), env.CreatedAt)
	if !ok {
		return ids.KeyID{}, corefail.NewSignatureFailure("signer account has no key registered at createdAt")
	}
	if !crypto.ConstantTimeEqual(keyID[:], registered[:]) {
		return ids.KeyID{}, corefail.NewSignatureFailure("recovered key does not match signer's registered key")
	}
	return keyID, nil
}
