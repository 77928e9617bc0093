/*
Package crypto provides the ed25519 keys principals use to sign ledger
transactions. A public key is turned into a coledger.Condition, and the
hash of that condition is the principal's Address.
*/
package crypto

import (
	"encoding/hex"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

const (
	// ExtensionName is used for the conditions we get from signatures.
	ExtensionName = "sigs"

	// DefaultDerivationPath is the bip44 path used when deriving a key
	// from a seed.
	DefaultDerivationPath = "m/44'/234'/0'"
)

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519"`
}

// Verify verifies the signature was created with this message and public
// key.
func (p PublicKey) Verify(message, sig []byte) bool {
	if len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig)
}

// Condition encodes the public key into a coledger condition.
func (p PublicKey) Condition() coledger.Condition {
	return coledger.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address of the principal owning this key.
func (p PublicKey) Address() coledger.Address {
	return p.Condition().Address()
}

// Validate ensures the key has the right size.
func (p PublicKey) Validate() error {
	if len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key size %d", len(p.Ed25519))
	}
	return nil
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte
}

// GenPrivateKey returns a random new private key.
func GenPrivateKey() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivateKeyFromSeed will deterministically generate a private key from a
// given 32 byte seed. Use for deterministic keys in test cases or when a
// seed comes from a derivation.
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed size %d", len(seed))
	}
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}, nil
}

// DeriveKey derives a private key from a master seed following given bip44
// path. All path segments must be hardened.
func DeriveKey(seed []byte, path string) (*PrivateKey, error) {
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive %q: %s", path, err)
	}
	return PrivateKeyFromSeed(k.Key)
}

// Sign returns a matching signature for this private key.
func (p *PrivateKey) Sign(message []byte) ([]byte, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrState, "invalid private key")
	}
	return ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message), nil
}

// PublicKey returns the corresponding PublicKey.
func (p *PrivateKey) PublicKey() PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return PublicKey{Ed25519: []byte(pub)}
}

// Encode stores the private key seed as a hex string that can be saved and
// later loaded with DecodePrivateKey.
func (p *PrivateKey) Encode() string {
	return hex.EncodeToString(p.Ed25519[:ed25519.SeedSize])
}

// DecodePrivateKey reads a hex string created by Encode and returns the
// original PrivateKey.
func DecodePrivateKey(hexSeed string) (*PrivateKey, error) {
	seed, err := hex.DecodeString(hexSeed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode hex: %s", err)
	}
	return PrivateKeyFromSeed(seed)
}
