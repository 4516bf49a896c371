package chancrypto

import (
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/breez/paychan/chanerrors"
	"github.com/breez/paychan/channel"
)

func TestVerifyValidSignature(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	var key channel.ParticipantKey
	copy(key[:], pub)

	digest := channel.Hash{0x01, 0x02, 0x03}
	sig := ed25519.Sign(priv, digest.Bytes())

	if err := Verify(key, sig, digest); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	otherPub, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	var wrongKey channel.ParticipantKey
	copy(wrongKey[:], otherPub)

	digest := channel.Hash{0xAA}
	sig := ed25519.Sign(priv, digest.Bytes())

	err = Verify(wrongKey, sig, digest)
	if !chanerrors.Is(err, chanerrors.Authentication) {
		t.Fatalf("expected Authentication error, got %v", err)
	}
}

func TestVerifyRejectsMalformedSignature(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	var key channel.ParticipantKey
	copy(key[:], pub)

	err = Verify(key, []byte{0x01, 0x02}, channel.Hash{})
	if !chanerrors.Is(err, chanerrors.Authentication) {
		t.Fatalf("expected Authentication error, got %v", err)
	}
}

func TestVerifyAllAbortsOnFirstFailure(t *testing.T) {
	pubA, privA, _ := ed25519.GenerateKey(nil)
	pubB, _, _ := ed25519.GenerateKey(nil)

	var keyA, keyB channel.ParticipantKey
	copy(keyA[:], pubA)
	copy(keyB[:], pubB)

	digest := channel.Hash{0x07}
	sigA := ed25519.Sign(privA, digest.Bytes())

	// The second entry reuses sigA, a signature by A's key, so
	// verification of the second entry against keyB must fail.
	err := VerifyAll([]channel.ParticipantKey{keyA, keyB}, [][]byte{sigA, sigA}, digest)
	if !chanerrors.Is(err, chanerrors.Authentication) {
		t.Fatalf("expected Authentication error, got %v", err)
	}
}

func TestVerifyAllRejectsCountMismatch(t *testing.T) {
	err := VerifyAll([]channel.ParticipantKey{{}}, nil, channel.Hash{})
	if !chanerrors.Is(err, chanerrors.InvalidInput) {
		t.Fatalf("expected InvalidInput error, got %v", err)
	}
}
