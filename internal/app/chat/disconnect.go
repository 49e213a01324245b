/*
Package chat contains the core logic for room state, participant tracking,
and message broadcasting.

This file defines the DisconnectUseCase. Disconnect is idempotent: the sink
is unregistered tolerating absence, the participant is removed tolerating
absence, and the leave broadcast only fires when state actually changed.
*/
package chat

import (
	"github.com/rs/zerolog"

	"parlor/internal/pkg/errs"
)

// DisconnectUseCase orchestrates the removal of a participant.
type DisconnectUseCase struct {
	store    RoomStore
	registry DeliveryRegistry
	renderer EventRenderer
	logger   zerolog.Logger
}

// NewDisconnectUseCase wires a DisconnectUseCase over its injected dependencies.
func NewDisconnectUseCase(store RoomStore, registry DeliveryRegistry, renderer EventRenderer, logger zerolog.Logger) *DisconnectUseCase {
	return &DisconnectUseCase{
		store:    store,
		registry: registry,
		renderer: renderer,
		logger:   logger,
	}
}

// Execute removes the client id from the registry and the room store.
//
// It never errors: disconnect may be triggered by transport failures after
// the client was already removed by another path (for example a failed
// delivery eviction), so absence on either side is tolerated. The returned
// bool reports whether room state actually changed; the leave broadcast to
// the remaining participants only happens in that case.
func (uc *DisconnectUseCase) Execute(id ClientID, now Timestamp) (bool, []DeliveryFailure) {
	uc.registry.Unregister(id)

	if err := uc.store.RemoveParticipant(id); err != nil {
		if !errs.Is(err, errs.ErrParticipantNotFound) {
			uc.logger.Error().Err(err).Str("client_id", id.String()).Msg("Unexpected error removing participant.")
		}
		return false, nil
	}

	uc.logger.Info().
		Str("client_id", id.String()).
		Int("participants", uc.store.ParticipantCount()).
		Msg("Client disconnected.")

	payload, err := uc.renderer.RenderLeft(id, now)
	if err != nil {
		uc.logger.Error().Err(err).Str("client_id", id.String()).Msg("Failed to render left event. Skipping broadcast.")
		return true, nil
	}

	failures := uc.registry.Broadcast(targetsExcluding(uc.store.Participants(), id), payload)
	for _, f := range failures {
		uc.logger.Warn().
			Str("client_id", f.ClientID.String()).
			Int("code", f.Err.Code).
			Msg("Left broadcast delivery failed.")
	}

	return true, failures
}
