// Package chancrypto wraps the Ed25519 primitives the protocol's
// signature scheme depends on: a thin, reviewable boundary around the
// curve library so the rest of the module never touches raw curve
// arithmetic.
package chancrypto

import (
	"golang.org/x/crypto/ed25519"

	"github.com/breez/paychan/chanerrors"
	"github.com/breez/paychan/channel"
)

// Verify checks that sig is key's Ed25519 signature over digest. It
// fails with an Authentication error on a malformed key/signature or a
// verification failure; the failure never identifies which of these it
// was, so an adversary cannot use error content to fingerprint the
// defect.
func Verify(key channel.ParticipantKey, sig []byte, digest channel.Hash) error {
	if len(sig) != ed25519.SignatureSize {
		return chanerrors.New(chanerrors.Authentication, "signature verification failed")
	}
	pub := ed25519.PublicKey(key.Bytes())
	if !ed25519.Verify(pub, digest.Bytes(), sig) {
		return chanerrors.New(chanerrors.Authentication, "signature verification failed")
	}
	return nil
}

// VerifyAll verifies that sigs[i] authenticates digest under keys[i] for
// every index, sequentially, aborting at the first failure without
// reporting which index failed.
func VerifyAll(keys []channel.ParticipantKey, sigs [][]byte, digest channel.Hash) error {
	if len(keys) != len(sigs) {
		return chanerrors.New(chanerrors.InvalidInput, "signature count does not match participant count")
	}
	for i := range keys {
		if err := Verify(keys[i], sigs[i], digest); err != nil {
			return err
		}
	}
	return nil
}
