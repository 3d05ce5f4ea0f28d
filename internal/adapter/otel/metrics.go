package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "fieldops"

// Metrics holds the service's metric instruments.
type Metrics struct {
	TasksCreated       metric.Int64Counter
	TasksCompleted     metric.Int64Counter
	EscalationsCreated metric.Int64Counter
	RemindersCreated   metric.Int64Counter
	SweepDuration      metric.Float64Histogram
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.TasksCreated, err = meter.Int64Counter("fieldops.tasks.created",
		metric.WithDescription("Number of follow-up tasks created"))
	if err != nil {
		return nil, err
	}

	m.TasksCompleted, err = meter.Int64Counter("fieldops.tasks.completed",
		metric.WithDescription("Number of follow-up tasks completed"))
	if err != nil {
		return nil, err
	}

	m.EscalationsCreated, err = meter.Int64Counter("fieldops.escalations.created",
		metric.WithDescription("Number of overdue escalations created"))
	if err != nil {
		return nil, err
	}

	m.RemindersCreated, err = meter.Int64Counter("fieldops.reminders.created",
		metric.WithDescription("Number of upcoming follow-up reminders sent"))
	if err != nil {
		return nil, err
	}

	m.SweepDuration, err = meter.Float64Histogram("fieldops.sweep.duration_seconds",
		metric.WithDescription("Escalation sweep duration in seconds"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
