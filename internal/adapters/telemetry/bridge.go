package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/ripplebuild/ripple/internal/core/ports"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/zerr"
)

// trimResolution keeps logged durations readable.
const trimResolution = time.Millisecond

// Bridge implements sdktrace.SpanProcessor to surface span completions in
// the build log. Failed spans log the recorded status, successful ones log
// the name and duration.
type Bridge struct {
	logger ports.Logger
}

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime()).Round(trimResolution)

	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "span failed"
		}
		b.logger.Error(zerr.With(zerr.New(desc), "span", s.Name()))
		return
	}

	b.logger.Info(fmt.Sprintf("%s (%s)", s.Name(), elapsed))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
