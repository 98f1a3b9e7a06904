package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/mark3labs/insightr/internal/analysis"
	"github.com/mark3labs/insightr/internal/nats"
	"github.com/rs/xid"
)

// Sources an analysis can be submitted from.
const (
	SourceTUI = "tui"
	SourceCLI = "cli"
	SourceMCP = "mcp"
)

// SubmitParams carries metadata recorded alongside submitted criteria.
type SubmitParams struct {
	Source string `json:"source"`
}

// ListParams controls which analyses List returns.
type ListParams struct {
	IncludeArchived bool `json:"include_archived"`
}

// NameFor builds a readable slug from the criteria, e.g.
// "buyers-25-34-berlin-monthly-2024-01-01".
func NameFor(c analysis.FilterCriteria) string {
	parts := []string{"buyers", string(c.AgeRange)}
	for _, p := range []string{c.Location, string(c.PurchaseFrequency), c.StartDate} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return slug.Make(strings.Join(parts, " "))
}

// Submit records a criteria snapshot as a new analysis.
func (s *Store) Submit(ctx context.Context, c analysis.FilterCriteria, params SubmitParams) (*Analysis, error) {
	source := params.Source
	if source == "" {
		source = SourceCLI
	}

	id := xid.New().String()
	now := time.Now()
	name := NameFor(c)

	meta, err := json.Marshal(map[string]any{
		"criteria": c,
		"source":   source,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal criteria: %w", err)
	}

	event := Event{
		ID:        id,
		Timestamp: now,
		Type:      nats.EventTypeAnalysis,
		Action:    ActionSubmit,
		Data:      name,
		Meta:      meta,
	}

	if _, err := s.PublishEvent(ctx, event); err != nil {
		return nil, err
	}

	return &Analysis{
		ID:          id,
		Name:        name,
		Criteria:    c,
		Source:      source,
		SubmittedAt: now,
	}, nil
}

// Archive hides an analysis from the default listing.
// The ID parameter supports prefix matching (minimum 8 characters).
func (s *Store) Archive(ctx context.Context, idOrPrefix string) error {
	if idOrPrefix == "" {
		return fmt.Errorf("analysis ID is required")
	}

	state, err := s.LoadState(ctx)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	id, err := resolveID(state, idOrPrefix)
	if err != nil {
		return err
	}
	if state.Analyses[id].Archived {
		return nil
	}

	_, err = s.PublishEvent(ctx, Event{
		ID:     id,
		Type:   nats.EventTypeAnalysis,
		Action: ActionArchive,
		Data:   state.Analyses[id].Name,
		Meta:   json.RawMessage("{}"),
	})
	return err
}

// List returns analyses newest first.
func (s *Store) List(ctx context.Context, params ListParams) ([]*Analysis, error) {
	state, err := s.LoadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	result := make([]*Analysis, 0, len(state.Analyses))
	for _, a := range state.Analyses {
		if a.Archived && !params.IncludeArchived {
			continue
		}
		result = append(result, a)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].SubmittedAt.Equal(result[j].SubmittedAt) {
			return result[i].SubmittedAt.After(result[j].SubmittedAt)
		}
		// xids sort by creation order
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// Get returns a single analysis by ID or prefix, archived or not.
func (s *Store) Get(ctx context.Context, idOrPrefix string) (*Analysis, error) {
	state, err := s.LoadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	id, err := resolveID(state, idOrPrefix)
	if err != nil {
		return nil, err
	}
	return state.Analyses[id], nil
}

// resolveID resolves an analysis ID or prefix to a full ID.
// Supports prefix matching with minimum 8 characters.
func resolveID(state *State, idOrPrefix string) (string, error) {
	if _, exists := state.Analyses[idOrPrefix]; exists {
		return idOrPrefix, nil
	}

	if len(idOrPrefix) < 8 {
		return "", fmt.Errorf("analysis ID prefix must be at least 8 characters (got %d)", len(idOrPrefix))
	}

	var matches []string
	for id := range state.Analyses {
		if strings.HasPrefix(id, idOrPrefix) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("analysis not found: %s", idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous analysis ID prefix: %s (matches %d analyses)", idOrPrefix, len(matches))
	}
}
