package reminder

import (
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/lumina/internal/output"
)

// Sender can deliver a reminder message to a chat
type Sender interface {
	SendMessage(chatID int64, text string) error
}

// Scheduler polls the store on a fixed interval and delivers every due
// reminder. Delivery is destructive: a reminder is removed after its
// delivery attempt, so it fires at most once. A failed delivery is logged
// and never blocks the remaining due reminders in the same scan.
type Scheduler struct {
	store    *FileStore
	sender   Sender
	logger   output.Logger
	interval time.Duration

	// OnDelivered, if set, is called after each successful delivery
	OnDelivered func(Reminder)

	ticker       *time.Ticker
	done         chan struct{}
	wg           sync.WaitGroup
	isRunning    bool
	runningMutex sync.Mutex
}

// NewScheduler creates a new reminder scheduler
func NewScheduler(store *FileStore, sender Sender, logger output.Logger, interval time.Duration) *Scheduler {
	return &Scheduler{
		store:    store,
		sender:   sender,
		logger:   logger,
		interval: interval,
	}
}

// Start begins polling. It fails if the scheduler is already running.
func (s *Scheduler) Start() error {
	s.runningMutex.Lock()
	if s.isRunning {
		s.runningMutex.Unlock()
		return fmt.Errorf("scheduler is already running")
	}
	s.isRunning = true
	s.runningMutex.Unlock()

	s.logger.Info("Starting reminder scheduler (polling every %v)", s.interval)

	// A fresh channel per run, so the scheduler can start again after Stop
	s.done = make(chan struct{})
	s.ticker = time.NewTicker(s.interval)

	s.wg.Add(1)
	go s.run()

	return nil
}

// Stop stops polling and waits for an in-flight scan to finish
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

	s.logger.Info("Reminder scheduler stopped")
	return nil
}

// run is the polling loop
func (s *Scheduler) run() {
	defer s.wg.Done()

	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
			s.Tick(time.Now())
		}
	}
}

// Tick scans the store once and delivers every reminder due as of now.
// Exposed so the scan is testable without waiting on the ticker.
func (s *Scheduler) Tick(now time.Time) {
	for _, r := range s.store.List() {
		if !r.Due(now) {
			continue
		}
		s.deliver(r)
	}
}

// deliver sends one reminder and removes it from the store. The removal
// happens whether or not the send succeeded; retrying forever against a
// dead chat is worse than one lost notification.
func (s *Scheduler) deliver(r Reminder) {
	sendErr := s.sender.SendMessage(r.ChatID, FormatDelivery(r))
	if sendErr != nil {
		s.logger.Warning("Reminder %s: delivery to chat %d failed: %v", r.ID, r.ChatID, sendErr)
	}

	if _, err := s.store.Remove(r.ID); err != nil {
		s.logger.Error("Reminder %s: failed to remove after delivery: %v", r.ID, err)
		return
	}

	if sendErr == nil {
		s.logger.Info("Reminder %s delivered to chat %d", r.ID, r.ChatID)
		if s.OnDelivered != nil {
			s.OnDelivered(r)
		}
	}
}
