package vanity

import (
	"crypto/rand"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
)

// KeySource draws fresh random private keys. Implementations must be safe
// for concurrent use by multiple workers.
type KeySource interface {
	Next() (*btcec.PrivateKey, error)
}

// cryptoRandSource draws uniform 256-bit keys from crypto/rand. A failure
// to obtain randomness is reported, never papered over with a weaker
// source.
type cryptoRandSource struct{}

// NewKeySource returns the default cryptographically strong key source.
func NewKeySource() KeySource {
	return cryptoRandSource{}
}

func (cryptoRandSource) Next() (*btcec.PrivateKey, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, fmt.Errorf("read entropy: %w", err)
	}
	priv, _ := btcec.PrivKeyFromBytes(buf[:])
	return priv, nil
}
