package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// Subject pattern constants and helpers
const (
	streamName = "insightr_events"

	// EventTypeAnalysis is the only event family recorded today.
	EventTypeAnalysis = "analysis"
)

// SubjectForType returns the wildcard subject for every action of an event type.
// Example: "insightr.analysis.>"
func SubjectForType(eventType string) string {
	return fmt.Sprintf("insightr.%s.>", eventType)
}

// SubjectForEvent returns the subject an event action is published on.
// Example: "insightr.analysis.submit"
func SubjectForEvent(eventType, action string) string {
	return fmt.Sprintf("insightr.%s.%s", eventType, action)
}

// SetupStream creates or updates the JetStream stream for insightr events
// with 90-day retention. Subject pattern: insightr.> matches every event.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"insightr.>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   90 * 24 * time.Hour,
	})
}
