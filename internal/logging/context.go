package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Scope identifies one muse invocation in log records: a request id and
// the command path that started it ("muse prompt", "muse chat").
type Scope struct {
	RequestID string
	Command   string
}

type scopeKey struct{}

// NewScope returns a scope with a fresh time-ordered request id.
func NewScope(command string) Scope {
	id, err := uuid.NewV7()
	if err != nil {
		return Scope{RequestID: uuid.NewString(), Command: command}
	}
	return Scope{RequestID: id.String(), Command: command}
}

// WithScope attaches s to ctx.
func WithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// NewCommandContext returns a background context scoped to command.
func NewCommandContext(command string) context.Context {
	return WithScope(context.Background(), NewScope(command))
}

// ScopeFrom returns the scope carried by ctx.
func ScopeFrom(ctx context.Context) (Scope, bool) {
	if ctx == nil {
		return Scope{}, false
	}
	s, ok := ctx.Value(scopeKey{}).(Scope)
	return s, ok
}

func (s Scope) attrs() []any {
	var args []any
	if s.RequestID != "" {
		args = append(args, KeyRequestID, s.RequestID)
	}
	if s.Command != "" {
		args = append(args, KeyCommand, s.Command)
	}
	return args
}

// ContextLogger logs with the scope of its context attached.
type ContextLogger struct {
	ctx    context.Context
	scope  Scope
	logger *slog.Logger
}

// FromContext creates a ContextLogger for ctx. The global logger is
// resolved on every call, so re-initialising logging takes effect.
func FromContext(ctx context.Context) *ContextLogger {
	if ctx == nil {
		ctx = context.Background()
	}
	s, _ := ScopeFrom(ctx)
	return &ContextLogger{ctx: ctx, scope: s}
}

// With returns a ContextLogger that adds args to every record.
func (cl *ContextLogger) With(args ...any) *ContextLogger {
	return &ContextLogger{
		ctx:    cl.ctx,
		scope:  cl.scope,
		logger: cl.base().With(args...),
	}
}

func (cl *ContextLogger) base() *slog.Logger {
	if cl.logger != nil {
		return cl.logger
	}
	return Logger().With(cl.scope.attrs()...)
}

// Debug logs at DEBUG level.
func (cl *ContextLogger) Debug(msg string, args ...any) {
	cl.base().DebugContext(cl.ctx, msg, args...)
}

// Warn logs at WARN level.
func (cl *ContextLogger) Warn(msg string, args ...any) {
	cl.base().WarnContext(cl.ctx, msg, args...)
}

// RequestID returns the request id of the logger's scope.
func (cl *ContextLogger) RequestID() string {
	return cl.scope.RequestID
}
