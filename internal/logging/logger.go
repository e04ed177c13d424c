// Package logging sets up zerolog and carries the logger through contexts.
package logging

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Standard field names shared by every layer.
const (
	FieldLayer      = "layer"
	FieldUseCase    = "usecase"
	FieldAdapter    = "adapter"
	FieldHandler    = "handler"
	FieldEvent      = "event"
	FieldDuration   = "duration"
	FieldRepository = "repository"
	FieldTag        = "tag"
	FieldDigest     = "digest"
	FieldRunID      = "run_id"
)

// Logger wraps zerolog.Logger with error helpers.
type Logger struct {
	zerolog.Logger
}

// New wraps an existing zerolog logger.
func New(l zerolog.Logger) Logger {
	return Logger{Logger: l}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return Logger{Logger: zerolog.Nop()}
}

// WrapErr logs err at error level and returns it wrapped with msg.
func (l Logger) WrapErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	l.Error().Err(err).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}

// Level methods use value receivers so calls chain off FromCtx and other
// non-addressable values.

func (l Logger) Debug() *zerolog.Event { return l.Logger.Debug() }
func (l Logger) Info() *zerolog.Event  { return l.Logger.Info() }
func (l Logger) Warn() *zerolog.Event  { return l.Logger.Warn() }
func (l Logger) Error() *zerolog.Event { return l.Logger.Error() }

// Err starts an error event when err is not nil, an info event otherwise.
func (l Logger) Err(err error) *zerolog.Event { return l.Logger.Err(err) }

// With returns a child logger carrying the given fields.
func (l Logger) With(fields map[string]any) Logger {
	return Logger{Logger: l.Logger.With().Fields(fields).Logger()}
}

// WithCtx stores l in ctx.
func WithCtx(ctx context.Context, l Logger) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromCtx returns the logger stored in ctx, or a disabled logger.
func FromCtx(ctx context.Context) Logger {
	return Logger{Logger: *zerolog.Ctx(ctx)}
}

// CtxWithFields returns a context whose logger carries the given fields.
func CtxWithFields(ctx context.Context, fields map[string]any) context.Context {
	return WithCtx(ctx, FromCtx(ctx).With(fields))
}
