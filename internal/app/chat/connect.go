/*
Package chat contains the core logic for room state, participant tracking,
and message broadcasting.

This file defines the ConnectUseCase, which admits a new participant: it
atomically adds the participant to the room store and registers its delivery
sink, rolling back the store addition if sink registration fails so the two
never diverge, then announces the join to everyone else.
*/
package chat

import (
	"github.com/rs/zerolog"

	"parlor/internal/pkg/errs"
)

// ConnectUseCase orchestrates the admission of a new participant.
type ConnectUseCase struct {
	store    RoomStore
	registry DeliveryRegistry
	renderer EventRenderer
	logger   zerolog.Logger
}

// NewConnectUseCase wires a ConnectUseCase over its injected dependencies.
func NewConnectUseCase(store RoomStore, registry DeliveryRegistry, renderer EventRenderer, logger zerolog.Logger) *ConnectUseCase {
	return &ConnectUseCase{
		store:    store,
		registry: registry,
		renderer: renderer,
		logger:   logger,
	}
}

// Execute admits the client id with its delivery sink at the given time.
//
// It fails with ErrDuplicateClient when id is already a participant; the
// existing session is left untouched and the new connection is refused. It
// fails with ErrRoomIsFull when the room's capacity is reached. On success
// it returns the current roster (including the new participant) and any
// non-fatal delivery failures from the join broadcast.
func (uc *ConnectUseCase) Execute(id ClientID, sink DeliverySink, now Timestamp) ([]Participant, []DeliveryFailure, error) {
	// The store insert is the serialization point: under concurrent connects
	// with the same id exactly one caller gets past this line.
	if err := uc.store.AddParticipant(id, now); err != nil {
		return nil, nil, err
	}

	if err := uc.registry.Register(id, sink); err != nil {
		// Roll back the store addition so store and registry never diverge
		// for longer than this execution.
		if rbErr := uc.store.RemoveParticipant(id); rbErr != nil && !errs.Is(rbErr, errs.ErrParticipantNotFound) {
			uc.logger.Error().Err(rbErr).Str("client_id", id.String()).Msg("Rollback after sink registration failure did not complete.")
		}
		return nil, nil, err
	}

	roster := uc.store.Participants()

	uc.logger.Info().
		Str("client_id", id.String()).
		Int("participants", len(roster)).
		Msg("Client connected.")

	payload, err := uc.renderer.RenderJoined(Participant{ID: id, JoinedAt: now})
	if err != nil {
		uc.logger.Error().Err(err).Str("client_id", id.String()).Msg("Failed to render joined event. Skipping broadcast.")
		return roster, nil, nil
	}

	failures := uc.registry.Broadcast(targetsExcluding(roster, id), payload)
	for _, f := range failures {
		uc.logger.Warn().
			Str("client_id", f.ClientID.String()).
			Int("code", f.Err.Code).
			Msg("Joined broadcast delivery failed.")
	}

	return roster, failures, nil
}
