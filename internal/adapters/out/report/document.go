package report

import (
	"context"
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/bnema/registry-cli/internal/adapters/dto"
	"github.com/bnema/registry-cli/internal/domain"
)

type encodeFunc func(w io.Writer, v any) error

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Document writes one document when the run ends: the report, or an error
// object when the run aborts.
type Document struct {
	sticky
	w      io.Writer
	encode encodeFunc
}

// NewDocument creates a document renderer.
func NewDocument(w io.Writer, encode encodeFunc) *Document {
	return &Document{w: w, encode: encode}
}

func (d *Document) CanHandle(eventType domain.EventType) bool {
	return eventType == domain.EventRunFinished || eventType == domain.EventRunAborted
}

func (d *Document) Handle(_ context.Context, event domain.Event) error {
	switch p := event.Data.(type) {
	case domain.RunFinishedPayload:
		if p.Report == nil {
			return nil
		}
		return d.set(d.encode(d.w, dto.NewRunReport(p.Report)))
	case domain.RunAbortedPayload:
		msg := "run aborted"
		if p.Err != nil {
			msg = p.Err.Error()
		}
		return d.set(d.encode(d.w, dto.ErrorResponse{Error: msg}))
	}
	return nil
}
