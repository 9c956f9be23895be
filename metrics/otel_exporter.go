package metrics

import (
	"context"
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	registry      *promclient.Registry
	collector     Collector

	// OTel meters and instruments
	meter      metric.Meter
	usersGauge metric.Int64ObservableGauge
	booksGauge metric.Int64ObservableGauge
	genreGauge metric.Int64ObservableGauge
}

/* NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format.
 * Each exporter owns its registry, so several can live in one process (tests).
 */
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	registry := promclient.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"bookshelf",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		registry:      registry,
		collector:     collector,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.usersGauge, err = oe.meter.Int64ObservableGauge(
		"library.users",
		metric.WithDescription("Number of registered users"),
		metric.WithUnit("{users}"),
		metric.WithInt64Callback(oe.observeUsers),
	)
	if err != nil {
		return fmt.Errorf("creating users gauge: %w", err)
	}

	oe.booksGauge, err = oe.meter.Int64ObservableGauge(
		"library.books",
		metric.WithDescription("Number of books on all shelves, all and read"),
		metric.WithUnit("{books}"),
		metric.WithInt64Callback(oe.observeBooks),
	)
	if err != nil {
		return fmt.Errorf("creating books gauge: %w", err)
	}

	oe.genreGauge, err = oe.meter.Int64ObservableGauge(
		"library.genre.books",
		metric.WithDescription("Number of books per genre"),
		metric.WithUnit("{books}"),
		metric.WithInt64Callback(oe.observeGenres),
	)
	if err != nil {
		return fmt.Errorf("creating genre gauge: %w", err)
	}

	return nil
}

func (oe *OTelExporter) observeUsers(ctx context.Context, observer metric.Int64Observer) error {
	users, err := oe.collector.GetUserCount(ctx)
	if err != nil {
		return err
	}
	observer.Observe(users)
	return nil
}

func (oe *OTelExporter) observeBooks(ctx context.Context, observer metric.Int64Observer) error {
	counts, err := oe.collector.GetBookCounts(ctx)
	if err != nil {
		return err
	}

	observer.Observe(counts.Total, metric.WithAttributes(
		attribute.String("book.state", "all"),
	))
	observer.Observe(counts.Read, metric.WithAttributes(
		attribute.String("book.state", "read"),
	))

	return nil
}

func (oe *OTelExporter) observeGenres(ctx context.Context, observer metric.Int64Observer) error {
	genres, err := oe.collector.GetGenreCounts(ctx)
	if err != nil {
		return err
	}

	for genre, count := range genres {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("book.genre", genre),
		))
	}

	return nil
}

// Handler serves the registry in Prometheus text format
func (oe *OTelExporter) Handler() http.Handler {
	return promhttp.HandlerFor(oe.registry, promhttp.HandlerOpts{})
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
