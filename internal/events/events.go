package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tomehq/practice-api/internal/domain"
)

// EventPracticeFinished is the name of the event published when a
// practice closes.
const EventPracticeFinished = "practiceFinished"

// PracticeEvent represents a notification about a practice, carrying the
// practice identifier, a human-readable message, and the full practice
// payload serialized as JSON.
type PracticeEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Name indicates the event kind (e.g. practiceFinished)
	Name string `json:"name"`

	// PracticeID identifies the practice the event is about
	PracticeID uuid.UUID `json:"practiceId"`

	// Message is a human-readable description of the event
	Message string `json:"message"`

	// Payload contains the practice serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"createdAt"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *PracticeEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewPracticeFinishedEvent creates the event published when the given
// practice has been closed.
func NewPracticeFinishedEvent(practice *domain.Practice) (*PracticeEvent, error) {
	payload, err := json.Marshal(practice)
	if err != nil {
		return nil, err
	}

	return &PracticeEvent{
		ID:         uuid.New(),
		Name:       EventPracticeFinished,
		PracticeID: practice.ID,
		Message:    fmt.Sprintf("Practice %s has finished", practice.ID),
		Payload:    payload,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *PracticeEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows the lifecycle engine to publish events without direct
// knowledge of the notification transport.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *PracticeEvent) error
}
