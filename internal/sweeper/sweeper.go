// Package sweeper purges tasks that have sat in the trash longer than the
// retention period.
package sweeper

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/taskal/internal/config"
	"github.com/phrazzld/taskal/internal/redact"
)

// ErrAlreadyStarted is returned when Start is called twice.
var ErrAlreadyStarted = errors.New("sweeper already started")

// Purger removes trashed tasks deleted before cutoff and reports how many
// were removed. store.TaskStore satisfies it.
type Purger interface {
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Config holds the sweeper schedule.
type Config struct {
	// Retention is how long a task stays in the trash.
	Retention time.Duration

	// Interval is the time between sweeps. If zero, defaults to one hour.
	Interval time.Duration

	// Timeout bounds a single sweep. If zero, defaults to one minute.
	Timeout time.Duration
}

// ConfigFromTasks builds a Config from the task settings.
func ConfigFromTasks(cfg config.TasksConfig) Config {
	return Config{
		Retention: time.Duration(cfg.TrashRetentionDays) * 24 * time.Hour,
		Interval:  time.Duration(cfg.SweepIntervalMinutes) * time.Minute,
	}
}

// Sweeper runs PurgeDeletedBefore on a fixed interval.
type Sweeper struct {
	purger   Purger
	config   Config
	logger   *slog.Logger
	timeFunc func() time.Time

	mu       sync.Mutex
	started  bool
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a Sweeper. It does not start until Start is called.
func New(purger Purger, cfg Config, logger *slog.Logger) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Sweeper{
		purger:   purger,
		config:   cfg,
		logger:   logger.With(slog.String("component", "trash_sweeper")),
		timeFunc: time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start sweeps once immediately and then on every interval until Stop.
func (s *Sweeper) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	s.logger.Info("starting trash sweeper",
		slog.Duration("retention", s.config.Retention),
		slog.Duration("interval", s.config.Interval))

	s.wg.Add(1)
	go s.loop()
	return nil
}

// Stop cancels the sweep loop and waits for an in-flight sweep to finish.
// It is safe to call more than once.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		s.wg.Wait()
		s.logger.Info("trash sweeper stopped")
	})
}

// SweepOnce purges tasks deleted more than Retention ago.
func (s *Sweeper) SweepOnce(ctx context.Context) (int64, error) {
	cutoff := s.timeFunc().UTC().Add(-s.config.Retention)

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	n, err := s.purger.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		s.logger.Info("purged trashed tasks",
			slog.Int64("count", n),
			slog.Time("cutoff", cutoff))
	} else {
		s.logger.Debug("no trashed tasks to purge", slog.Time("cutoff", cutoff))
	}
	return n, nil
}

func (s *Sweeper) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.sweep()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep runs one pass and logs failures; the next tick retries.
func (s *Sweeper) sweep() {
	if _, err := s.SweepOnce(s.ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.logger.Error("failed to purge trashed tasks", redact.ErrorAttr(err))
	}
}
