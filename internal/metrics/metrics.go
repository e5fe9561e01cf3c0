// Package metrics records bot usage counters in the database and
// aggregates them for the /stats command.
package metrics

import (
	"database/sql"
	"fmt"
	"time"
)

// MetricType represents the type of metric being recorded
type MetricType string

const (
	MetricTypeCommand  MetricType = "command"
	MetricTypeError    MetricType = "error"
	MetricTypeReminder MetricType = "reminder"
)

// Stats holds aggregated usage statistics
type Stats struct {
	Uptime             time.Duration
	CommandCounts      map[string]int64
	ErrorCounts        map[string]int64
	RemindersDelivered int64
}

// Collector provides metrics collection functionality
type Collector struct {
	conn      *sql.DB
	startTime time.Time
}

// NewCollector creates a new metrics collector
func NewCollector(conn *sql.DB) *Collector {
	return &Collector{
		conn:      conn,
		startTime: time.Now(),
	}
}

// RecordCommandUsage records that a command was executed
func (c *Collector) RecordCommandUsage(commandName string) error {
	return c.record(MetricTypeCommand, commandName)
}

// RecordError records a dispatch or handler error by type
func (c *Collector) RecordError(errorType string) error {
	return c.record(MetricTypeError, errorType)
}

// RecordReminderDelivered records one delivered reminder
func (c *Collector) RecordReminderDelivered() error {
	return c.record(MetricTypeReminder, "delivered")
}

func (c *Collector) record(metricType MetricType, name string) error {
	_, err := c.conn.Exec(
		"INSERT INTO metrics (metric_type, metric_name, value) VALUES (?, ?, ?)",
		string(metricType), name, 1,
	)
	if err != nil {
		return fmt.Errorf("failed to record metric: %w", err)
	}
	return nil
}

// GetStats aggregates all recorded metrics
func (c *Collector) GetStats() (*Stats, error) {
	stats := &Stats{
		Uptime:        time.Since(c.startTime),
		CommandCounts: make(map[string]int64),
		ErrorCounts:   make(map[string]int64),
	}

	rows, err := c.conn.Query(`
		SELECT metric_type, metric_name, SUM(value)
		FROM metrics
		GROUP BY metric_type, metric_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query metrics: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var metricType, name string
		var total float64
		if err := rows.Scan(&metricType, &name, &total); err != nil {
			return nil, fmt.Errorf("failed to scan metric row: %w", err)
		}

		switch MetricType(metricType) {
		case MetricTypeCommand:
			stats.CommandCounts[name] = int64(total)
		case MetricTypeError:
			stats.ErrorCounts[name] = int64(total)
		case MetricTypeReminder:
			stats.RemindersDelivered += int64(total)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating metrics: %w", err)
	}

	return stats, nil
}

// Cleanup deletes metric samples older than the retention window
func (c *Collector) Cleanup(retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result, err := c.conn.Exec(`DELETE FROM metrics WHERE recorded_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up metrics: %w", err)
	}
	return result.RowsAffected()
}
