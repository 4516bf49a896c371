package chanstore

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/breez/paychan/channel"
)

func makeTestDB(t *testing.T) (*DB, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "chanstore")
	if err != nil {
		t.Fatalf("TempDir: %v", err)
	}
	db, err := Open(dir)
	if err != nil {
		os.RemoveAll(dir)
		t.Fatalf("Open: %v", err)
	}
	return db, func() {
		db.Close()
		os.RemoveAll(dir)
	}
}

func TestHoldingsAddAndGet(t *testing.T) {
	db, cleanup := makeTestDB(t)
	defer cleanup()

	funding := channel.Funding{Channel: channel.Hash{0x01}, Participant: channel.ParticipantKey{0x02}}

	if _, ok, err := db.GetHolding(funding); err != nil || ok {
		t.Fatalf("expected absent holding initially, ok=%v err=%v", ok, err)
	}

	if err := db.AddHolding(funding, 100); err != nil {
		t.Fatalf("AddHolding: %v", err)
	}
	if err := db.AddHolding(funding, 50); err != nil {
		t.Fatalf("AddHolding: %v", err)
	}

	amount, ok, err := db.GetHolding(funding)
	if err != nil || !ok {
		t.Fatalf("GetHolding: ok=%v err=%v", ok, err)
	}
	if amount != 150 {
		t.Fatalf("expected 150, got %d", amount)
	}

	if err := db.SetHolding(funding, 10); err != nil {
		t.Fatalf("SetHolding: %v", err)
	}
	amount, ok, err = db.GetHolding(funding)
	if err != nil || !ok || amount != 10 {
		t.Fatalf("expected 10 after SetHolding, got %d ok=%v err=%v", amount, ok, err)
	}
}

func TestTotalHoldings(t *testing.T) {
	db, cleanup := makeTestDB(t)
	defer cleanup()

	channelID := channel.Hash{0x03}
	p1 := channel.ParticipantKey{0x11}
	p2 := channel.ParticipantKey{0x22}

	if err := db.AddHolding(channel.Funding{Channel: channelID, Participant: p1}, 30); err != nil {
		t.Fatalf("AddHolding: %v", err)
	}
	if err := db.AddHolding(channel.Funding{Channel: channelID, Participant: p2}, 70); err != nil {
		t.Fatalf("AddHolding: %v", err)
	}

	total, err := db.TotalHoldings(channelID, []channel.ParticipantKey{p1, p2})
	if err != nil {
		t.Fatalf("TotalHoldings: %v", err)
	}
	if total != 100 {
		t.Fatalf("expected total 100, got %d", total)
	}
}

func TestWithdrawnMarker(t *testing.T) {
	db, cleanup := makeTestDB(t)
	defer cleanup()

	funding := channel.Funding{Channel: channel.Hash{0x05}, Participant: channel.ParticipantKey{0x06}}

	withdrawn, err := db.IsWithdrawn(funding)
	if err != nil || withdrawn {
		t.Fatalf("expected not withdrawn initially, got %v err=%v", withdrawn, err)
	}

	if err := db.MarkWithdrawn(funding); err != nil {
		t.Fatalf("MarkWithdrawn: %v", err)
	}
	withdrawn, err = db.IsWithdrawn(funding)
	if err != nil || !withdrawn {
		t.Fatalf("expected withdrawn after marking, got %v err=%v", withdrawn, err)
	}

	if err := db.ClearWithdrawn(funding); err != nil {
		t.Fatalf("ClearWithdrawn: %v", err)
	}
	withdrawn, err = db.IsWithdrawn(funding)
	if err != nil || withdrawn {
		t.Fatalf("expected not withdrawn after clearing, got %v err=%v", withdrawn, err)
	}
}

func TestParamsPersistOnce(t *testing.T) {
	db, cleanup := makeTestDB(t)
	defer cleanup()

	params := channel.Params{
		Nonce:             channel.Nonce{0x01},
		Participants:      []channel.ParticipantKey{{0x01}, {0x02}},
		ChallengeDuration: 100,
	}
	channelID, err := channel.ChannelIDOf(params)
	if err != nil {
		t.Fatalf("ChannelIDOf: %v", err)
	}

	if err := db.PutParams(channelID, params); err != nil {
		t.Fatalf("PutParams: %v", err)
	}

	other := params
	other.ChallengeDuration = 200
	if err := db.PutParams(channelID, other); err != nil {
		t.Fatalf("PutParams (second call): %v", err)
	}

	got, ok, err := db.GetParams(channelID)
	if err != nil || !ok {
		t.Fatalf("GetParams: ok=%v err=%v", ok, err)
	}
	if got.ChallengeDuration != 100 {
		t.Fatalf("expected first-write-wins semantics, got ChallengeDuration=%d", got.ChallengeDuration)
	}
}

func TestRegisteredStateRoundTrip(t *testing.T) {
	db, cleanup := makeTestDB(t)
	defer cleanup()

	channelID := channel.Hash{0x07}
	rs := channel.RegisteredState{
		State: channel.State{
			Channel:    channelID,
			Version:    5,
			Allocation: []uint64{50, 150},
		},
		Timeout: 123456,
	}

	if err := db.PutRegistered(channelID, rs); err != nil {
		t.Fatalf("PutRegistered: %v", err)
	}

	got, ok, err := db.GetRegistered(channelID)
	if err != nil || !ok {
		t.Fatalf("GetRegistered: ok=%v err=%v", ok, err)
	}
	if got.Timeout != rs.Timeout || got.State.Version != rs.State.Version {
		t.Fatalf("round trip mismatch: got %s, want %s", spew.Sdump(got), spew.Sdump(rs))
	}
}

func TestBlockIndexDedupe(t *testing.T) {
	db, cleanup := makeTestDB(t)
	defer cleanup()

	processed, err := db.IsBlockProcessed(42)
	if err != nil || processed {
		t.Fatalf("expected unprocessed initially, got %v err=%v", processed, err)
	}

	if err := db.MarkBlockProcessed(42); err != nil {
		t.Fatalf("MarkBlockProcessed: %v", err)
	}

	processed, err = db.IsBlockProcessed(42)
	if err != nil || !processed {
		t.Fatalf("expected processed after marking, got %v err=%v", processed, err)
	}
}
