package workers

import (
	"context"
	"sync"
	"time"

	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/internal/service"
)

type trashSweeper struct {
	lifecycle service.LifecycleService
	interval  time.Duration
	logger    *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTrashSweeper creates a worker that permanently removes trashed notes
// whose retention window has expired. The sweeper is idle until Run is
// called. If interval is zero or negative it defaults to 24 hours.
func NewTrashSweeper(lifecycle service.LifecycleService, interval time.Duration, logger *logger.Logger) *trashSweeper {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &trashSweeper{
		lifecycle: lifecycle,
		interval:  interval,
		logger:    logger,
	}
}

// Run implements Worker. It stops any previously running sweep loop, then
// launches a background goroutine that calls PurgeExpired once immediately
// and again every interval. The goroutine exits when Stop is called.
func (s *trashSweeper) Run() {
	s.Stop()

	s.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()

		s.sweep(ctx)

		t := time.NewTicker(s.interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.sweep(ctx)
			}
		}
	}()
}

func (s *trashSweeper) sweep(ctx context.Context) {
	purged, err := s.lifecycle.PurgeExpired(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "*trashSweeper.sweep").Msg("trash sweep failed")
		return
	}
	if purged > 0 {
		s.logger.Info().Int("purged", purged).Msg("trash sweep removed expired notes")
	}
}

// Stop cancels the sweep loop and blocks until the goroutine has fully
// exited. Safe to call when the sweeper is not running.
func (s *trashSweeper) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}
