package vanity

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"
)

// DerivedAddress is an encoded address string together with the versioned
// payload it was derived from. It has no identity of its own: it is a pure
// function of (private key, encoding).
type DerivedAddress struct {
	Encoded string
	Payload []byte // version byte || 20-byte public key hash
}

// Derive runs the fixed derivation pipeline:
//
//	uncompressed pubkey -> SHA-256 -> RIPEMD-160 -> version || hash160
//	-> double-SHA-256 checksum (4 bytes) -> base58
//
// The uncompressed public key encoding (0x04 || X || Y) is deliberate;
// changing it to compressed would change every derived address.
func Derive(priv *btcec.PrivateKey, enc Encoding) DerivedAddress {
	pubKey := priv.PubKey().SerializeUncompressed()
	h160 := hash160(pubKey)

	payload := make([]byte, 21)
	payload[0] = enc.Version()
	copy(payload[1:], h160)

	return DerivedAddress{
		Encoded: base58CheckEncode(payload),
		Payload: payload,
	}
}

// hash160 computes RIPEMD160(SHA256(data)).
func hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	ripemd := ripemd160.New()
	ripemd.Write(sha[:])
	return ripemd.Sum(nil)
}

// base58CheckEncode appends the 4-byte double-SHA256 checksum and encodes
// the 25-byte result with the standard Bitcoin alphabet.
func base58CheckEncode(payload []byte) string {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])

	full := make([]byte, 0, len(payload)+4)
	full = append(full, payload...)
	full = append(full, second[:4]...)

	return base58.Encode(full)
}

// PrivateKeyHex returns the 32-byte private key as lowercase hex, the form
// persisted alongside a found address.
func PrivateKeyHex(priv *btcec.PrivateKey) string {
	return hex.EncodeToString(priv.Serialize())
}

// PrivateKeyWIF returns the mainnet Wallet Import Format of the key.
// Uncompressed, matching the derivation pipeline above.
func PrivateKeyWIF(priv *btcec.PrivateKey) (string, error) {
	wif, err := btcutil.NewWIF(priv, &chaincfg.MainNetParams, false)
	if err != nil {
		return "", err
	}
	return wif.String(), nil
}
