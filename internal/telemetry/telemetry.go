// Package telemetry records frame metrics through OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const instrumentationName = "github.com/Faultbox/spaces/internal/telemetry"

// Config holds metric export settings.
type Config struct {
	Enabled     bool
	ServiceName string
	Interval    time.Duration
	Writer      io.Writer // defaults to stdout
}

// Provider owns the meter provider for the process.
type Provider struct {
	mp     *sdkmetric.MeterProvider
	config Config
}

// Setup creates the meter provider. When disabled, meters are no-ops.
func Setup(cfg Config) (*Provider, error) {
	p := &Provider{config: cfg}
	if !cfg.Enabled {
		return p, nil
	}

	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	name := cfg.ServiceName
	if name == "" {
		name = "spaces"
	}
	res := resource.NewSchemaless(attribute.String("service.name", name))

	p.mp = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
	)
	otel.SetMeterProvider(p.mp)
	return p, nil
}

// Meter returns the meter frame metrics are recorded on.
func (p *Provider) Meter() metric.Meter {
	if p.mp == nil {
		return noop.NewMeterProvider().Meter(instrumentationName)
	}
	return p.mp.Meter(instrumentationName)
}

// Shutdown flushes pending metrics and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.mp == nil {
		return nil
	}
	if err := p.mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("metric shutdown failed: %w", err)
	}
	return nil
}
