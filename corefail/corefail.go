// Package corefail defines the single sum-typed failure surface every
// component in this module reports through: signature verification,
// routing, schema evidence, byte decoding, trie access, and
// application-level preconditions all end up as a Failure with a stable
// Kind and a human-readable message, never a raised exception or a stack
// trace.
package corefail

import (
	"fmt"
	"strings"
)

// Failure is satisfied by every error this module returns from a reducer
// boundary. codec.DecodeFailure and table.EvidenceFailure implement it
// structurally (via their own CoreKind method) without importing this
// package, keeping the dependency edge one-directional.
type Failure interface {
	error
	CoreKind() string
}

// SignatureFailure covers every way §4.8 signature verification can fail:
// malformed r/s, high-S, recovery failure, an unregistered or expired
// signer key, or a network-id mismatch.
type SignatureFailure struct {
	Reason string
}

func (e *SignatureFailure) Error() string     { return "signature failure: " + e.Reason }
func (e *SignatureFailure) CoreKind() string  { return "SignatureFailure" }
func NewSignatureFailure(reason string) error { return &SignatureFailure{Reason: reason} }

// RoutingFailure reports that a composed reducer had no match for the head
// of a ModuleRoutedTx's moduleId path.
type RoutingFailure struct {
	Head     string
	Expected []string
}

func (e *RoutingFailure) Error() string {
	return fmt.Sprintf("routing failure: %q does not match any of {%s}", e.Head, strings.Join(e.Expected, ", "))
}
func (e *RoutingFailure) CoreKind() string { return "RoutingFailure" }

func NewRoutingFailure(head string, expected []string) error {
	return &RoutingFailure{Head: head, Expected: expected}
}

// TrieFailure wraps an underlying KV store error.
type TrieFailure struct {
	Msg string
}

func (e *TrieFailure) Error() string    { return "trie failure: " + e.Msg }
func (e *TrieFailure) CoreKind() string { return "TrieFailure" }
func NewTrieFailure(msg string) error   { return &TrieFailure{Msg: msg} }

// PreconditionFailure is an application-level check inside a reducer, e.g.
// insufficient balance or a nonce mismatch.
type PreconditionFailure struct {
	Msg string
}

func (e *PreconditionFailure) Error() string    { return "precondition failure: " + e.Msg }
func (e *PreconditionFailure) CoreKind() string { return "PreconditionFailure" }
func NewPreconditionFailure(msg string) error   { return &PreconditionFailure{Msg: msg} }

// Kind extracts the CoreFailure kind from any error that implements
// Failure, or "" if it does not (a bug at the reducer boundary — every
// failure a reducer returns should implement Failure).
func Kind(err error) string {
	if f, ok := err.(Failure); ok {
		return f.CoreKind()
	}
	return ""
}
