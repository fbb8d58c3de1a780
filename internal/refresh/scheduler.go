package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Reloader refreshes the active fact list
type Reloader interface {
	Reload(ctx context.Context) error
}

// Scheduler periodically reloads facts on a cron cadence
type Scheduler struct {
	cron     *cron.Cron
	reloader Reloader
	logger   *logrus.Entry
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a scheduler for spec (standard cron or descriptors such as "@every 30s").
// A reload still running when the next one is due is skipped
func New(spec string, reloader Reloader, timeout time.Duration, logger *logrus.Logger) (*Scheduler, error) {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		reloader: reloader,
		logger:   logger.WithField("module", "REFRESH"),
		timeout:  timeout,
		ctx:      ctx,
		cancel:   cancel,
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		cancel()
		return nil, fmt.Errorf("invalid refresh spec '%s': %w", spec, err)
	}

	return s, nil
}

// Start begins the schedule in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels any running reload and waits for it to return
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
}

// run performs a single reload
func (s *Scheduler) run() {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.reloader.Reload(ctx); err != nil {
		s.logger.WithError(err).Warn("scheduled reload failed")
		return
	}
	s.logger.Debug("scheduled reload finished")
}
