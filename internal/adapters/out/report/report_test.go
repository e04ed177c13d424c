package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bnema/registry-cli/internal/adapters/in/cli/ui/styles"
	"github.com/bnema/registry-cli/internal/domain"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func sampleReport() *domain.RunReport {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return &domain.RunReport{
		ID:       "run-1",
		Registry: "registry.example.com",
		Mode:     domain.ModeDelete,
		Keep:     1,
		Repositories: []domain.RepositoryReport{{
			Name:         "app",
			TagsListed:   2,
			TagsFiltered: 2,
			Kept:         []domain.Tag{{Name: "v2", CreatedAt: now}},
			Candidates:   []domain.Tag{{Name: "v1", CreatedAt: now.Add(-time.Hour)}},
			Results:      []domain.DeletionResult{{Tag: "v1", Outcome: domain.OutcomeDeleted}},
		}},
	}
}

func publish(t *testing.T, r Renderer, eventType domain.EventType, payload any) {
	t.Helper()
	if r.CanHandle(eventType) {
		require.NoError(t, r.Handle(context.Background(), domain.Event{Type: eventType, Data: payload}))
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TEXT": FormatText, "json": FormatJSON, " yaml ": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestText_RendersRun(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)
	dgst := digest.FromString("v0")

	publish(t, r, domain.EventRunStarted, domain.RunStartedPayload{Registry: "registry.example.com", Mode: domain.ModeDelete, Keep: 1, Repositories: []string{"app", "empty"}})
	publish(t, r, domain.EventRepositorySkipped, domain.RepositorySkippedPayload{Repository: "empty", TagsListed: 3})
	publish(t, r, domain.EventRepositoryPlanned, domain.RepositoryPlannedPayload{
		Repository: "app", TagsListed: 4, TagsFiltered: 3, Unresolved: []string{"broken"},
		Plan: domain.RetentionPlan{Keep: []domain.Tag{{Name: "v2"}}, Delete: []domain.Tag{{Name: "v1"}, {Name: "v0"}}},
	})
	publish(t, r, domain.EventTagProcessed, domain.TagProcessedPayload{Result: domain.DeletionResult{Tag: "v1", Outcome: domain.OutcomeDeleted}})
	publish(t, r, domain.EventTagProcessed, domain.TagProcessedPayload{Result: domain.DeletionResult{
		Tag: "v0", Digest: dgst, Outcome: domain.OutcomeFailed, Err: errors.New("unsupported"), Hint: domain.DeleteEnableHint,
	}})
	publish(t, r, domain.EventRunFinished, domain.RunFinishedPayload{Report: sampleReport()})

	out := stripANSI(buf.String())
	assert.Contains(t, out, "registry.example.com")
	assert.Contains(t, out, "mode delete, keep 1, 2 repositories")
	assert.Contains(t, out, "empty no tags matched (3 listed)")
	assert.Contains(t, out, "4 listed, 3 matched, keep 1, 2 to delete")
	assert.Contains(t, out, "1 tags without a creation time were left alone: broken")
	assert.Contains(t, out, "v1 "+styles.IconDelete+" deleted")
	assert.Contains(t, out, "failed "+dgst.String())
	assert.Contains(t, out, "unsupported")
	assert.Contains(t, out, "REGISTRY_STORAGE_DELETE_ENABLED")
	assert.Contains(t, out, "Repository")
	assert.Contains(t, out, "1 repositories, 1 candidates, 1 deleted")
	assert.NoError(t, r.Err())
}

func TestText_ListModeShowsCandidates(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	publish(t, r, domain.EventRunStarted, domain.RunStartedPayload{Mode: domain.ModeList})
	publish(t, r, domain.EventRepositoryPlanned, domain.RepositoryPlannedPayload{
		Repository: "app",
		Plan:       domain.RetentionPlan{Delete: []domain.Tag{{Name: "old", CreatedAt: created}}},
	})
	publish(t, r, domain.EventRunFinished, domain.RunFinishedPayload{})

	assert.Contains(t, stripANSI(buf.String()), "old created 2024-01-02T03:04:05Z")
}

func TestText_HoldsOutputUntilFinished(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)

	publish(t, r, domain.EventRunStarted, domain.RunStartedPayload{Registry: "registry.example.com"})
	publish(t, r, domain.EventTagProcessed, domain.TagProcessedPayload{Result: domain.DeletionResult{Tag: "v1", Outcome: domain.OutcomeDeleted}})
	assert.Empty(t, buf.String())

	publish(t, r, domain.EventRunFinished, domain.RunFinishedPayload{Report: sampleReport()})
	out := stripANSI(buf.String())
	assert.Contains(t, out, "registry.example.com")
	assert.Contains(t, out, "v1 "+styles.IconDelete+" deleted")
}

func TestText_AbortDiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)

	publish(t, r, domain.EventRunStarted, domain.RunStartedPayload{Registry: "registry.example.com"})
	publish(t, r, domain.EventRepositoryPlanned, domain.RepositoryPlannedPayload{Repository: "app"})
	publish(t, r, domain.EventTagProcessed, domain.TagProcessedPayload{Result: domain.DeletionResult{Tag: "v1", Outcome: domain.OutcomeDeleted}})
	publish(t, r, domain.EventRunAborted, domain.RunAbortedPayload{RunID: "run-1", Err: errors.New("catalog unavailable")})

	assert.Empty(t, buf.String())
	assert.NoError(t, r.Err())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestText_RecordsWriteError(t *testing.T) {
	r := NewText(failingWriter{})

	require.NoError(t, r.Handle(context.Background(), domain.Event{Type: domain.EventRunStarted, Data: domain.RunStartedPayload{}}))
	err := r.Handle(context.Background(), domain.Event{Type: domain.EventRunFinished, Data: domain.RunFinishedPayload{Report: sampleReport()}})

	assert.Error(t, err)
	assert.EqualError(t, r.Err(), "closed pipe")
}

func TestDocument_JSON(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(FormatJSON, &buf)
	require.NoError(t, err)

	publish(t, r, domain.EventRunStarted, domain.RunStartedPayload{})
	publish(t, r, domain.EventRunFinished, domain.RunFinishedPayload{Report: sampleReport()})

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded["id"])
	assert.Equal(t, "delete", decoded["mode"])
	assert.Equal(t, float64(1), decoded["totals"].(map[string]any)["deleted"])
}

func TestDocument_YAML(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(FormatYAML, &buf)
	require.NoError(t, err)

	publish(t, r, domain.EventRunFinished, domain.RunFinishedPayload{Report: sampleReport()})

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "registry.example.com", decoded["registry"])
}

func TestDocument_Aborted(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(FormatJSON, &buf)
	require.NoError(t, err)

	publish(t, r, domain.EventRunAborted, domain.RunAbortedPayload{Err: errors.New("catalog unreachable")})

	assert.JSONEq(t, `{"error":"catalog unreachable"}`, buf.String())
}
