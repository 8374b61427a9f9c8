package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	TransitionsTotal         metric.Int64Counter
	RejectedTransitionsTotal metric.Int64Counter
	GazetteerLookupSeconds   metric.Float64Histogram
	GazetteerLookupErrors    metric.Int64Counter
	StaleResponsesDiscarded  metric.Int64Counter
	DbQueryDurationSeconds   metric.Float64Histogram
	DbQueryErrorsTotal       metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments once, from the global MeterProvider.
// Call it after the provider is configured; before that the no-op provider
// is used.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("activity-locations")
		var err error
		m := &AppMetrics{}

		m.TransitionsTotal, err = meter.Int64Counter(
			"location_edit_transitions_total",
			metric.WithDescription("Accepted location edit state transitions"),
			metric.WithUnit("{transition}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create location_edit_transitions_total: %v", err)
		}

		m.RejectedTransitionsTotal, err = meter.Int64Counter(
			"location_edit_rejected_transitions_total",
			metric.WithDescription("Rejected location edit requests by reason"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create location_edit_rejected_transitions_total: %v", err)
		}

		m.GazetteerLookupSeconds, err = meter.Float64Histogram(
			"gazetteer_lookup_duration_seconds",
			metric.WithDescription("Duration of gazetteer lookups in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create gazetteer_lookup_duration_seconds: %v", err)
		}

		m.GazetteerLookupErrors, err = meter.Int64Counter(
			"gazetteer_lookup_errors_total",
			metric.WithDescription("Total number of failed gazetteer lookups"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create gazetteer_lookup_errors_total: %v", err)
		}

		m.StaleResponsesDiscarded, err = meter.Int64Counter(
			"gazetteer_stale_responses_discarded_total",
			metric.WithDescription("Gazetteer responses dropped because the edit moved on"),
			metric.WithUnit("{response}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create gazetteer_stale_responses_discarded_total: %v", err)
		}

		m.DbQueryDurationSeconds, err = meter.Float64Histogram(
			"db_query_duration_seconds",
			metric.WithDescription("Duration of database queries in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_duration_seconds: %v", err)
		}

		m.DbQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the process metrics, initializing them on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
