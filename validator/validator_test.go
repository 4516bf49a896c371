package validator

import (
	"testing"

	"golang.org/x/crypto/ed25519"

	"github.com/breez/paychan/chanerrors"
	"github.com/breez/paychan/channel"
)

type testParticipant struct {
	key  channel.ParticipantKey
	priv ed25519.PrivateKey
}

func newTestParticipant(t *testing.T) testParticipant {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	var key channel.ParticipantKey
	copy(key[:], pub)
	return testParticipant{key: key, priv: priv}
}

func signState(t *testing.T, parts []testParticipant, s channel.State) channel.FullySignedState {
	t.Helper()
	digest, err := channel.StateHash(s)
	if err != nil {
		t.Fatalf("StateHash: %v", err)
	}
	sigs := make([][]byte, len(parts))
	for i, p := range parts {
		sigs[i] = ed25519.Sign(p.priv, digest.Bytes())
	}
	return channel.FullySignedState{State: s, Sigs: sigs}
}

func testParams(t *testing.T, parts []testParticipant, challengeDuration uint64) channel.Params {
	t.Helper()
	keys := make([]channel.ParticipantKey, len(parts))
	for i, p := range parts {
		keys[i] = p.key
	}
	return channel.Params{
		Nonce:             channel.Nonce{0x01},
		Participants:      keys,
		ChallengeDuration: challengeDuration,
	}
}

func TestValidateAccepts(t *testing.T) {
	a, b := newTestParticipant(t), newTestParticipant(t)
	params := testParams(t, []testParticipant{a, b}, 3600)
	channelID, err := channel.ChannelIDOf(params)
	if err != nil {
		t.Fatalf("ChannelIDOf: %v", err)
	}

	state := channel.State{Channel: channelID, Version: 1, Allocation: []uint64{60, 40}}
	fss := signState(t, []testParticipant{a, b}, state)

	if err := Validate(params, fss, 100); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsChannelIDMismatch(t *testing.T) {
	a, b := newTestParticipant(t), newTestParticipant(t)
	params := testParams(t, []testParticipant{a, b}, 3600)

	state := channel.State{Channel: channel.Hash{0xFF}, Version: 1, Allocation: []uint64{60, 40}}
	fss := signState(t, []testParticipant{a, b}, state)

	err := Validate(params, fss, 100)
	if !chanerrors.Is(err, chanerrors.InvalidInput) {
		t.Fatalf("expected InvalidInput, got %v", err)
	}
}

func TestValidateRejectsOverAllocation(t *testing.T) {
	a, b := newTestParticipant(t), newTestParticipant(t)
	params := testParams(t, []testParticipant{a, b}, 3600)
	channelID, _ := channel.ChannelIDOf(params)

	state := channel.State{Channel: channelID, Version: 1, Allocation: []uint64{60, 50}}
	fss := signState(t, []testParticipant{a, b}, state)

	err := Validate(params, fss, 100)
	if !chanerrors.Is(err, chanerrors.InsufficientFunds) {
		t.Fatalf("expected InsufficientFunds, got %v", err)
	}
}

func TestValidateRejectsBadSignature(t *testing.T) {
	a, b := newTestParticipant(t), newTestParticipant(t)
	intruder := newTestParticipant(t)
	params := testParams(t, []testParticipant{a, b}, 3600)
	channelID, _ := channel.ChannelIDOf(params)

	state := channel.State{Channel: channelID, Version: 1, Allocation: []uint64{60, 40}}
	fss := signState(t, []testParticipant{a, b}, state)
	// Replace B's signature with a valid signature under a different key.
	fss.Sigs[1] = signState(t, []testParticipant{intruder}, state).Sigs[0]

	err := Validate(params, fss, 100)
	if !chanerrors.Is(err, chanerrors.Authentication) {
		t.Fatalf("expected Authentication, got %v", err)
	}
}

func TestRequireExactAllocation(t *testing.T) {
	a, b := newTestParticipant(t), newTestParticipant(t)
	params := testParams(t, []testParticipant{a, b}, 3600)
	channelID, _ := channel.ChannelIDOf(params)

	state := channel.State{Channel: channelID, Version: 1, Allocation: []uint64{60, 40}, Finalized: true}
	fss := signState(t, []testParticipant{a, b}, state)

	if err := RequireExactAllocation(fss, 100); err != nil {
		t.Fatalf("RequireExactAllocation: %v", err)
	}
	if err := RequireExactAllocation(fss, 101); !chanerrors.Is(err, chanerrors.InsufficientFunds) {
		t.Fatalf("expected InsufficientFunds, got %v", err)
	}
}
