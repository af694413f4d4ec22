// Package vanity implements a brute-force search for Bitcoin key pairs
// whose derived address matches a user-supplied prefix and/or suffix.
// The search fans out over parallel workers and supports per-search
// cancellation, so independent searches never share state.
package vanity

import (
	"errors"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
)

// Encoding selects the address framing used during derivation.
type Encoding int

const (
	Legacy     Encoding = iota // P2PKH (1...)
	ScriptHash                 // P2SH (3...)
)

// Version returns the mainnet version byte prepended to the public key hash.
func (e Encoding) Version() byte {
	switch e {
	case ScriptHash:
		return chaincfg.MainNetParams.ScriptHashAddrID
	default:
		return chaincfg.MainNetParams.PubKeyHashAddrID
	}
}

// String returns the human-readable mode name.
func (e Encoding) String() string {
	switch e {
	case ScriptHash:
		return "P2SH (3...)"
	default:
		return "Legacy (1...)"
	}
}

// Encodings is the fixed fallback order searched by the orchestrator.
var Encodings = []Encoding{Legacy, ScriptHash}

// MaxPatternLen bounds prefix and suffix length at acceptance time.
const MaxPatternLen = 8

// Validation errors returned as Rejected outcomes.
var (
	ErrPrefixTooLong = errors.New("prefix too long (use shorter strings)")
	ErrSuffixTooLong = errors.New("suffix too long (use shorter strings)")
)

// Criteria holds the normalized match constraints. Both sides are trimmed
// and upper-cased once at acceptance; empty means unconstrained.
type Criteria struct {
	Prefix string
	Suffix string
}

// NormalizeCriteria trims and upper-cases the raw user input.
func NormalizeCriteria(prefix, suffix string) Criteria {
	return Criteria{
		Prefix: strings.ToUpper(strings.TrimSpace(prefix)),
		Suffix: strings.ToUpper(strings.TrimSpace(suffix)),
	}
}

// Validate reports whether the criteria are acceptable to search for.
func (c Criteria) Validate() error {
	if len(c.Prefix) > MaxPatternLen {
		return ErrPrefixTooLong
	}
	if len(c.Suffix) > MaxPatternLen {
		return ErrSuffixTooLong
	}
	return nil
}

// Empty reports whether no constraint was given on either side.
func (c Criteria) Empty() bool {
	return c.Prefix == "" && c.Suffix == ""
}

// OutcomeKind tags the variant of a search outcome.
type OutcomeKind int

const (
	Found     OutcomeKind = iota // a matching key pair was found
	Stopped                      // cancellation observed before success
	Exhausted                    // budget spent on all encodings, no match
	Rejected                     // criteria failed validation, no work done
)

// String returns the outcome kind name.
func (k OutcomeKind) String() string {
	switch k {
	case Found:
		return "Found"
	case Stopped:
		return "Stopped"
	case Exhausted:
		return "Exhausted"
	default:
		return "Rejected"
	}
}

// Outcome is the structured result of a search. Every invocation returns
// one; there is no nil/absent result variant.
type Outcome struct {
	Kind       OutcomeKind
	Address    string        // Found only
	PrivateKey string        // Found only, 32-byte key as hex
	WIF        string        // Found only, uncompressed mainnet WIF
	Encoding   Encoding      // Found only
	Tries      uint64        // winner's own tries (Found) or aggregate attempts
	Elapsed    time.Duration // wall clock since the search started
	Reason     string        // Rejected only
}

// Stats holds real-time performance statistics for a running search.
type Stats struct {
	Attempts    uint64  // total number of addresses derived
	KeysPerSec  float64 // current derivation rate
	ElapsedSecs float64 // time elapsed since the search started
}
