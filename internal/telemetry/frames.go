package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	activeAttrs = metric.WithAttributes(attribute.String("state", "active"))
	pausedAttrs = metric.WithAttributes(attribute.String("state", "paused"))
)

// Frames counts integrator frames and records their deltas.
type Frames struct {
	frames metric.Int64Counter
	delta  metric.Float64Histogram
}

// NewFrames registers the frame instruments on m.
func NewFrames(m metric.Meter) (*Frames, error) {
	f := &Frames{}
	var err error

	f.frames, err = m.Int64Counter(
		"spaces.player.frames",
		metric.WithDescription("Frames integrated by the player controller"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create frames counter: %w", err)
	}

	f.delta, err = m.Float64Histogram(
		"spaces.player.frame_delta",
		metric.WithDescription("Time between integrator frames"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 4, 8, 16.7, 33.3, 50, 100, 250),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create frame delta histogram: %w", err)
	}

	return f, nil
}

// ObserveFrame records one frame.
func (f *Frames) ObserveFrame(delta time.Duration, paused bool) {
	attrs := activeAttrs
	if paused {
		attrs = pausedAttrs
	}
	ctx := context.Background()
	f.frames.Add(ctx, 1, attrs)
	f.delta.Record(ctx, float64(delta)/float64(time.Millisecond), attrs)
}
