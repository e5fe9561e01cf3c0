// Package maintenance runs periodic database housekeeping: VACUUM and
// retention cleanup of the audit log and metrics samples.
package maintenance

import (
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/lumina/internal/database"
	"github.com/yourusername/lumina/internal/metrics"
	"github.com/yourusername/lumina/internal/output"
)

// Scheduler manages periodic database maintenance
type Scheduler struct {
	db            *database.DB
	metrics       *metrics.Collector
	logger        output.Logger
	interval      time.Duration
	retentionDays int

	ticker       *time.Ticker
	done         chan struct{}
	wg           sync.WaitGroup
	isRunning    bool
	runningMutex sync.Mutex
}

// New creates a new maintenance scheduler
func New(db *database.DB, collector *metrics.Collector, logger output.Logger, interval time.Duration, retentionDays int) *Scheduler {
	return &Scheduler{
		db:            db,
		metrics:       collector,
		logger:        logger,
		interval:      interval,
		retentionDays: retentionDays,
	}
}

// Start begins the maintenance loop
func (s *Scheduler) Start() error {
	s.runningMutex.Lock()
	if s.isRunning {
		s.runningMutex.Unlock()
		return fmt.Errorf("scheduler is already running")
	}
	s.isRunning = true
	s.runningMutex.Unlock()

	s.logger.Info("Starting database maintenance scheduler (every %v)", s.interval)

	// A fresh channel per run, so the scheduler can start again after Stop
	s.done = make(chan struct{})
	s.ticker = time.NewTicker(s.interval)

	s.wg.Add(1)
	go s.run()

	return nil
}

// Stop stops the maintenance loop
func (s *Scheduler) Stop() error {
	s.runningMutex.Lock()
	if !s.isRunning {
		s.runningMutex.Unlock()
		return fmt.Errorf("scheduler is not running")
	}
	s.isRunning = false
	s.runningMutex.Unlock()

	close(s.done)
	s.wg.Wait()

	if s.ticker != nil {
		s.ticker.Stop()
	}

	s.logger.Info("Database maintenance scheduler stopped")
	return nil
}

// run is the maintenance loop
func (s *Scheduler) run() {
	defer s.wg.Done()

	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			s.runCleanup()
			s.runVacuum()
		}
	}
}

// runCleanup deletes audit entries and metric samples past retention
func (s *Scheduler) runCleanup() {
	removed, err := s.db.CleanupAudit(s.retentionDays)
	if err != nil {
		s.logger.Error("Audit cleanup failed: %v", err)
	} else if removed > 0 {
		s.logger.Info("Audit cleanup removed %d entries", removed)
	}

	removed, err = s.metrics.Cleanup(s.retentionDays)
	if err != nil {
		s.logger.Error("Metrics cleanup failed: %v", err)
	} else if removed > 0 {
		s.logger.Info("Metrics cleanup removed %d samples", removed)
	}
}

// runVacuum reclaims unused space in the database file
func (s *Scheduler) runVacuum() {
	start := time.Now()
	if _, err := s.db.Conn().Exec("VACUUM"); err != nil {
		s.logger.Error("VACUUM failed: %v", err)
		return
	}
	s.logger.Info("VACUUM completed in %v", time.Since(start).Round(time.Millisecond))
}
