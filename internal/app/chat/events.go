/*
Package chat contains the core logic for room state, participant tracking,
and message broadcasting.

This file defines the EventRenderer capability. Turning a domain event into
the literal payload text pushed through a sink is a collaborator concern; the
core only decides which clients receive which event. The JSON renderer lives
with the transport and is injected at composition time.
*/
package chat

// EventRenderer turns domain events into the textual payloads handed to
// delivery sinks.
type EventRenderer interface {
	// RenderJoined renders a "participant joined" event for participant p.
	RenderJoined(p Participant) (string, error)

	// RenderLeft renders a "participant left" event for the client id that
	// disconnected at the given timestamp.
	RenderLeft(id ClientID, disconnectedAt Timestamp) (string, error)

	// RenderMessage renders a chat message event.
	RenderMessage(m Message) (string, error)
}

// targetsExcluding collects the ids of all participants except exclude.
// Broadcasts never target the client that triggered the event.
func targetsExcluding(participants []Participant, exclude ClientID) []ClientID {
	targets := make([]ClientID, 0, len(participants))
	for _, p := range participants {
		if p.ID != exclude {
			targets = append(targets, p.ID)
		}
	}
	return targets
}
