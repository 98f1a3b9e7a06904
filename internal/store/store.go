// Package store records submitted analyses as an append-only event log on
// JetStream and rebuilds their current state by replaying it.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/insightr/internal/analysis"
	"github.com/mark3labs/insightr/internal/logger"
	"github.com/mark3labs/insightr/internal/nats"
	"github.com/nats-io/nats.go/jetstream"
)

// Event actions
const (
	ActionSubmit  = "submit"
	ActionArchive = "archive"
)

// Event represents a generic event stored in the JetStream event log.
type Event struct {
	ID        string          `json:"id"`        // Analysis ID the event refers to
	Timestamp time.Time       `json:"timestamp"` // When the event occurred
	Type      string          `json:"type"`      // Event type: analysis
	Action    string          `json:"action"`    // Action type: submit, archive
	Meta      json.RawMessage `json:"meta"`      // Action-specific metadata
	Data      string          `json:"data"`      // Primary content (analysis name)
}

// Store manages analyses through JetStream event sourcing.
type Store struct {
	js     jetstream.JetStream
	stream jetstream.Stream
}

// NewStore creates a new Store instance with the given JetStream context and stream.
func NewStore(js jetstream.JetStream, stream jetstream.Stream) *Store {
	return &Store{
		js:     js,
		stream: stream,
	}
}

// PublishEvent appends an event to the JetStream event log on
// insightr.{type}.{action}.
func (s *Store) PublishEvent(ctx context.Context, event Event) (*jetstream.PubAck, error) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal event: %v", err)
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := nats.SubjectForEvent(event.Type, event.Action)

	logger.Debug("Publishing event: type=%s action=%s id=%s", event.Type, event.Action, event.ID)

	ack, err := s.js.Publish(ctx, subject, data)
	if err != nil {
		logger.Error("Failed to publish event to subject %s: %v", subject, err)
		return nil, fmt.Errorf("failed to publish event: %w", err)
	}

	logger.Debug("Event published successfully: seq=%d", ack.Sequence)
	return ack, nil
}

// Analysis is a submitted set of filter criteria.
type Analysis struct {
	ID          string                  `json:"id" yaml:"id"`
	Name        string                  `json:"name" yaml:"name"`
	Criteria    analysis.FilterCriteria `json:"criteria" yaml:"criteria"`
	Source      string                  `json:"source" yaml:"source"` // tui, cli, mcp
	SubmittedAt time.Time               `json:"submitted_at" yaml:"submitted_at"`
	Archived    bool                    `json:"archived" yaml:"archived"`
	ArchivedAt  time.Time               `json:"archived_at,omitempty" yaml:"archived_at,omitempty"`
}

// State is the set of analyses reconstructed from events.
type State struct {
	Analyses map[string]*Analysis `json:"analyses"` // Analysis ID -> Analysis
}

// NewState returns an empty state ready for Apply.
func NewState() *State {
	return &State{Analyses: make(map[string]*Analysis)}
}

// Apply applies an event to the state, implementing the reduce pattern.
func (st *State) Apply(event Event) {
	if event.Type != nats.EventTypeAnalysis {
		return
	}

	switch event.Action {
	case ActionSubmit:
		var meta struct {
			Criteria analysis.FilterCriteria `json:"criteria"`
			Source   string                  `json:"source"`
		}
		if err := json.Unmarshal(event.Meta, &meta); err != nil {
			logger.Warn("Skipping submit event %s with bad meta: %v", event.ID, err)
			return
		}
		st.Analyses[event.ID] = &Analysis{
			ID:          event.ID,
			Name:        event.Data,
			Criteria:    meta.Criteria,
			Source:      meta.Source,
			SubmittedAt: event.Timestamp,
		}

	case ActionArchive:
		if a, exists := st.Analyses[event.ID]; exists {
			a.Archived = true
			a.ArchivedAt = event.Timestamp
		}
	}
}

// LoadState reconstructs the current analyses by reading and reducing every
// analysis event in the stream.
func (s *Store) LoadState(ctx context.Context) (*State, error) {
	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: nats.SubjectForType(nats.EventTypeAnalysis),
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		logger.Error("Failed to create consumer: %v", err)
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	state := NewState()

	const batchSize = 1000
	malformedCount := 0
	totalEvents := 0
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			logger.Debug("Finished reading events (batch fetch complete)")
			break
		}

		msgCount := 0
		for msg := range msgs.Messages() {
			msgCount++
			totalEvents++

			var event Event
			if err := json.Unmarshal(msg.Data(), &event); err != nil || event.ID == "" {
				malformedCount++
				if meta, mErr := msg.Metadata(); mErr == nil {
					logger.Warn("Skipping malformed event (seq=%d): %v", meta.Sequence.Stream, err)
				}
				_ = msg.Ack()
				continue
			}

			state.Apply(event)
			_ = msg.Ack()
		}

		if msgCount < batchSize {
			break
		}
	}

	if malformedCount > 0 {
		logger.Warn("Skipped %d malformed events while loading state", malformedCount)
	}

	logger.Debug("State loaded: %d total events, %d analyses", totalEvents, len(state.Analyses))
	return state, nil
}
