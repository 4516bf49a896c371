// Package dispute implements the per-channel dispute/conclude state
// machine: registering a non-final state opens or advances a challenge
// window, and a channel reaches a terminal, settled state either by a
// co-signed final state or by the challenge window expiring untouched.
// It plays the role contractcourt plays for lnd's on-chain HTLC
// resolution: a small state machine that decides, per call, what the
// next persisted state should be, with the decision itself kept free of
// I/O beyond the store reads it decides from and the store writes that
// commit it.
package dispute

import (
	"github.com/breez/paychan/chanerrors"
	"github.com/breez/paychan/channel"
	"github.com/breez/paychan/chanstore"
	"github.com/breez/paychan/clock"
	"github.com/breez/paychan/validator"
)

// Registry drives the dispute/conclude state machine on top of a
// persistent store and a time source.
type Registry struct {
	store *chanstore.DB
	clock clock.Clock
}

// New returns a Registry backed by store and clock.
func New(store *chanstore.DB, c clock.Clock) *Registry {
	return &Registry{store: store, clock: c}
}

// Dispute registers params/fss as the latest non-final state for its
// channel, opening or advancing the challenge window.
func (r *Registry) Dispute(params channel.Params, fss channel.FullySignedState) error {
	channelID, err := channel.ChannelIDOf(params)
	if err != nil {
		return chanerrors.New(chanerrors.InvalidInput, "unable to derive channel id: %v", err)
	}

	holdings, err := r.store.TotalHoldings(channelID, params.Participants)
	if err != nil {
		return chanerrors.Wrap(err, "unable to read holdings")
	}
	if err := validator.Validate(params, fss, holdings); err != nil {
		return err
	}

	if fss.State.Finalized {
		return chanerrors.New(chanerrors.InvalidInput, "dispute requires a non-final state")
	}

	now := r.clock.Now()

	existing, ok, err := r.store.GetRegistered(channelID)
	if err != nil {
		return chanerrors.Wrap(err, "unable to read registry")
	}
	if ok {
		if existing.State.Finalized {
			return chanerrors.New(chanerrors.Finalized, "channel %v is already concluded", channelID)
		}
		if fss.State.Version <= existing.State.Version {
			return chanerrors.New(chanerrors.OutdatedState,
				"version %d is not newer than registered version %d",
				fss.State.Version, existing.State.Version)
		}
		if now >= existing.Timeout {
			return chanerrors.New(chanerrors.NotDisputable, "challenge window for %v has closed", channelID)
		}
	}

	if err := r.store.PutParams(channelID, params); err != nil {
		return chanerrors.Wrap(err, "unable to persist params")
	}

	rs := channel.RegisteredState{
		State:   fss.State,
		Timeout: now + int64(params.ChallengeDuration),
	}
	if err := r.store.PutRegistered(channelID, rs); err != nil {
		return chanerrors.Wrap(err, "unable to persist registered state")
	}

	log.Infof("channel %v disputed at version %d, timeout=%d", channelID, fss.State.Version, rs.Timeout)
	return nil
}

// Conclude transitions a channel into its terminal state, either
// directly (fss.State.Finalized == true, co-signed by every
// participant) or by confirming that a previously registered dispute's
// challenge window has expired (fss == nil).
func (r *Registry) Conclude(params channel.Params, fss *channel.FullySignedState) error {
	channelID, err := channel.ChannelIDOf(params)
	if err != nil {
		return chanerrors.New(chanerrors.InvalidInput, "unable to derive channel id: %v", err)
	}

	now := r.clock.Now()
	existing, hasExisting, err := r.store.GetRegistered(channelID)
	if err != nil {
		return chanerrors.Wrap(err, "unable to read registry")
	}

	if fss != nil && fss.State.Finalized {
		return r.concludeDirect(channelID, params, *fss, existing, hasExisting, now)
	}
	return r.concludeByTimeout(channelID, fss, existing, hasExisting, now)
}

func (r *Registry) concludeDirect(
	channelID channel.ChannelID,
	params channel.Params,
	fss channel.FullySignedState,
	existing channel.RegisteredState,
	hasExisting bool,
	now int64,
) error {
	holdings, err := r.store.TotalHoldings(channelID, params.Participants)
	if err != nil {
		return chanerrors.Wrap(err, "unable to read holdings")
	}
	if err := validator.Validate(params, fss, holdings); err != nil {
		return err
	}
	if err := validator.RequireExactAllocation(fss, holdings); err != nil {
		return err
	}

	if hasExisting {
		if existing.Terminal(now) {
			return chanerrors.New(chanerrors.Finalized, "channel %v is already concluded", channelID)
		}
		if existing.State.Version > fss.State.Version {
			return chanerrors.New(chanerrors.OutdatedState,
				"registered version %d is newer than concluding version %d",
				existing.State.Version, fss.State.Version)
		}
	}

	if err := r.store.PutParams(channelID, params); err != nil {
		return chanerrors.Wrap(err, "unable to persist params")
	}

	rs := channel.RegisteredState{State: fss.State, Timeout: now}
	if err := r.store.PutRegistered(channelID, rs); err != nil {
		return chanerrors.Wrap(err, "unable to persist registered state")
	}

	log.Infof("channel %v concluded directly at version %d", channelID, fss.State.Version)
	return nil
}

func (r *Registry) concludeByTimeout(
	channelID channel.ChannelID,
	fss *channel.FullySignedState,
	existing channel.RegisteredState,
	hasExisting bool,
	now int64,
) error {
	if !hasExisting {
		return chanerrors.New(chanerrors.InvalidInput, "no registered dispute to conclude for channel %v", channelID)
	}
	if fss != nil && !statesEqual(fss.State, existing.State) {
		return chanerrors.New(chanerrors.InvalidInput, "supplied state does not match the registered dispute")
	}
	if existing.Terminal(now) {
		// Already concluded, by a prior call or a prior timeout check;
		// confirming again is a harmless no-op since a concluded channel
		// is terminal.
		return nil
	}
	return chanerrors.New(chanerrors.NotFinalized, "channel %v has not reached its challenge timeout", channelID)
}

func statesEqual(a, b channel.State) bool {
	if a.Channel != b.Channel || a.Version != b.Version || a.Finalized != b.Finalized {
		return false
	}
	if len(a.Allocation) != len(b.Allocation) {
		return false
	}
	for i := range a.Allocation {
		if a.Allocation[i] != b.Allocation[i] {
			return false
		}
	}
	return true
}

// QueryState returns the currently registered state for channelID, if
// any.
func (r *Registry) QueryState(channelID channel.ChannelID) (channel.RegisteredState, bool, error) {
	rs, ok, err := r.store.GetRegistered(channelID)
	if err != nil {
		return channel.RegisteredState{}, false, chanerrors.Wrap(err, "unable to read registry")
	}
	return rs, ok, nil
}
