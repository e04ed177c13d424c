// Package report renders retention runs to the terminal or as documents.
package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bnema/registry-cli/internal/boundaries/out"
	"github.com/bnema/registry-cli/internal/domain"
)

// Format is an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json or yaml, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown output format %q (want text, json or yaml)", domain.ErrInvalidConfig, s)
	}
}

// Renderer is an event handler writing the run to an output stream.
// Err returns the first write failure, if any.
type Renderer interface {
	out.EventHandler
	Err() error
}

// New returns the renderer for format writing to w.
func New(format Format, w io.Writer) (Renderer, error) {
	switch format {
	case FormatText, "":
		return NewText(w), nil
	case FormatJSON:
		return NewDocument(w, encodeJSON), nil
	case FormatYAML:
		return NewDocument(w, encodeYAML), nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q", domain.ErrInvalidConfig, format)
	}
}

// sticky records the first error.
type sticky struct {
	mu  sync.Mutex
	err error
}

func (s *sticky) set(err error) error {
	if err == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
	return err
}

func (s *sticky) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
