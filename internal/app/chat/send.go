/*
Package chat contains the core logic for room state, participant tracking,
and message broadcasting.

This file defines the SendMessageUseCase: validate the raw text before
touching any state, append to the room log, then fan the rendered message out
to every participant except the sender. The append is durable regardless of
delivery outcomes.
*/
package chat

import (
	"github.com/rs/zerolog"
)

// SendMessageUseCase orchestrates message validation, append, and fan-out.
type SendMessageUseCase struct {
	store    RoomStore
	registry DeliveryRegistry
	renderer EventRenderer
	clock    Clock
	logger   zerolog.Logger
}

// NewSendMessageUseCase wires a SendMessageUseCase over its injected dependencies.
func NewSendMessageUseCase(store RoomStore, registry DeliveryRegistry, renderer EventRenderer, clock Clock, logger zerolog.Logger) *SendMessageUseCase {
	return &SendMessageUseCase{
		store:    store,
		registry: registry,
		renderer: renderer,
		clock:    clock,
		logger:   logger,
	}
}

// Execute appends a message from sender and broadcasts it.
//
// It fails fast with ErrInvalidContent on empty or oversized text, before
// touching state, and with ErrSenderNotParticipant when the sender was
// disconnected concurrently; both are normal rejections the caller reports
// back to the client. On success it returns the stored message together with
// any non-fatal delivery failures. The message remains appended even if
// every delivery fails.
func (uc *SendMessageUseCase) Execute(sender ClientID, raw string) (Message, []DeliveryFailure, error) {
	content, err := NewMessageContent(raw)
	if err != nil {
		return Message{}, nil, err
	}

	msg, err := uc.store.AppendMessage(sender, content, uc.clock.Now())
	if err != nil {
		return Message{}, nil, err
	}

	payload, err := uc.renderer.RenderMessage(msg)
	if err != nil {
		uc.logger.Error().Err(err).Str("message_id", msg.ID).Msg("Failed to render message event. Skipping broadcast.")
		return msg, nil, nil
	}

	targets := targetsExcluding(uc.store.Participants(), sender)
	failures := uc.registry.Broadcast(targets, payload)
	for _, f := range failures {
		uc.logger.Warn().
			Str("client_id", f.ClientID.String()).
			Str("message_id", msg.ID).
			Int("code", f.Err.Code).
			Msg("Message broadcast delivery failed.")
	}

	return msg, failures, nil
}
