package monitor

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aleister1102/outboundwatch/internal/common/retry"
	"github.com/aleister1102/outboundwatch/internal/common/timeutils"
	"github.com/aleister1102/outboundwatch/internal/config"
	"github.com/aleister1102/outboundwatch/internal/models"
	"github.com/aleister1102/outboundwatch/internal/notifier"
	"github.com/aleister1102/outboundwatch/internal/sla"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// CycleJournal records poll cycles for auditing.
type CycleJournal interface {
	RecordCycleStart(ctx context.Context, cycleID string, startedAt time.Time) (int64, error)
	RecordCycleEnd(ctx context.Context, id int64, endedAt time.Time, processes, alerts int, status string) error
}

// KeyPruner forgets de-dup keys claimed before a cutoff.
type KeyPruner interface {
	PruneBefore(cutoff time.Time) int
}

// Service is the pipeline monitor: every poll cycle it evaluates the four
// pipeline steps of each configured process and raises alerts.
type Service struct {
	cfg       *config.GlobalConfig
	notifier  notifier.Notifier
	clock     timeutils.Clock
	schedule  *Schedule
	estimator *sla.Estimator
	scanner   *FolderScanner
	checker   *FileChecker
	state     *State
	tracker   *CycleTracker
	watcher   *FolderWatcher
	journal   CycleJournal
	pruner    KeyPruner
	sleep     retry.SleepFunc
	logger    zerolog.Logger

	processNames []string
	checkerOpts  []FileCheckerOption
	retryOpts    []retry.Option
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock replaces the zone clock derived from the configured time zone.
func WithClock(clock timeutils.Clock) ServiceOption {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithCycleJournal records cycle start and end in j.
func WithCycleJournal(j CycleJournal) ServiceOption {
	return func(s *Service) {
		s.journal = j
	}
}

// WithKeyPruner prunes stale de-dup keys together with the monitor state.
func WithKeyPruner(p KeyPruner) ServiceOption {
	return func(s *Service) {
		s.pruner = p
	}
}

// WithSleeper replaces every wait of the monitor (poll, stability and retry delays).
func WithSleeper(sleep retry.SleepFunc) ServiceOption {
	return func(s *Service) {
		s.sleep = sleep
		s.retryOpts = append(s.retryOpts, retry.WithSleeper(sleep))
		s.checkerOpts = append(s.checkerOpts, WithStabilitySleeper(sleep))
	}
}

// WithFileCheckerOptions passes options to the stability and lock checker.
func WithFileCheckerOptions(opts ...FileCheckerOption) ServiceOption {
	return func(s *Service) {
		s.checkerOpts = append(s.checkerOpts, opts...)
	}
}

// NewService wires a monitor over a validated configuration.
func NewService(cfg *config.GlobalConfig, n notifier.Notifier, logger zerolog.Logger, opts ...ServiceOption) (*Service, error) {
	s := &Service{
		cfg:      cfg,
		notifier: n,
		state:    NewState(),
		tracker:  NewCycleTracker(cfg.MonitorConfig.MaxCycles),
		sleep:    retry.Sleep,
		logger:   logger.With().Str("component", "PipelineMonitor").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.clock == nil {
		loc, err := timeutils.LoadZone(cfg.MonitorConfig.TimeZone)
		if err != nil {
			return nil, err
		}
		s.clock = timeutils.NewZoneClock(loc)
	}

	schedule, err := NewSchedule(cfg.TimeWindows)
	if err != nil {
		return nil, err
	}
	s.schedule = schedule

	mc := cfg.MonitorConfig
	executor := retry.NewExecutor(retry.Policy{MaxRetries: mc.MaxRetries, Delay: mc.RetryDelay()}, logger, s.retryOpts...)
	s.estimator = sla.NewEstimator(mc.MbPerHourProcessingRatio)
	s.scanner = NewFolderScanner(executor, s.clock.Location(), logger)
	s.checker = NewFileChecker(mc.StabilityCheckInterval(), mc.StabilityCheckAttempts, executor, logger, s.checkerOpts...)
	s.watcher = NewFolderWatcher(cfg.Folders.All(), logger)

	for name := range cfg.Processes {
		s.processNames = append(s.processNames, name)
	}
	sort.Strings(s.processNames)

	return s, nil
}

// State exposes the monitoring state.
func (s *Service) State() *State {
	return s.state
}

// Run polls until ctx is cancelled or the cycle limit is reached. Cancellation
// is returned as ctx.Err(); reaching the cycle limit returns nil.
func (s *Service) Run(ctx context.Context) error {
	mc := s.cfg.MonitorConfig
	s.logger.Info().
		Strs("processes", s.processNames).
		Str("time_zone", s.clock.Location().String()).
		Dur("poll_interval", mc.PollInterval()).
		Float64("mb_per_hour", s.estimator.Ratio()).
		Int("max_cycles", mc.MaxCycles).
		Msg("Pipeline monitor started")

	g, gctx := errgroup.WithContext(ctx)
	watchCtx, stopWatchers := context.WithCancel(gctx)
	defer stopWatchers()

	if mc.EnableFolderWatchers {
		g.Go(func() error {
			return s.watcher.Run(watchCtx)
		})
	}

	g.Go(func() error {
		defer stopWatchers()
		return s.loop(gctx)
	})

	err := g.Wait()
	s.logger.Info().Int("cycles", s.tracker.CompletedCycles()).Msg("Pipeline monitor stopped")
	return err
}

func (s *Service) loop(ctx context.Context) error {
	for s.tracker.ShouldContinue() {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.runCycleSafely(ctx)

		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.tracker.ShouldContinue() {
			break
		}
		if err := s.sleep(ctx, s.cfg.MonitorConfig.PollInterval()); err != nil {
			return err
		}
	}
	return nil
}

// runCycleSafely runs one cycle; a panic outside process evaluation is
// logged and the loop keeps going.
func (s *Service) runCycleSafely(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Err(fmt.Errorf("panic: %v", r)).
				Str("cycle_id", s.tracker.GetCurrentCycleID()).
				Msg("Monitoring loop error. Continuing execution.")
		}
	}()
	s.RunCycle(ctx)
}

// RunCycle evaluates every process once. Failures of one process are logged
// and do not affect the others.
func (s *Service) RunCycle(ctx context.Context) {
	now := s.clock.Now()
	cycleID := s.tracker.StartCycle(now)
	cycleLogger := s.logger.With().Str("cycle_id", cycleID).Logger()
	cycleLogger.Debug().Time("now", now).Msg("Cycle started")

	s.pruneState(now, cycleLogger)

	var journalID int64
	if s.journal != nil {
		id, err := s.journal.RecordCycleStart(ctx, cycleID, now)
		if err != nil {
			cycleLogger.Warn().Err(err).Msg("Failed to record cycle start")
		}
		journalID = id
	}

	processed := 0
	for _, name := range s.processNames {
		if ctx.Err() != nil {
			break
		}
		s.evaluateProcess(ctx, name, s.cfg.Processes[name], cycleLogger)
		processed++
	}

	end := s.clock.Now()
	alerts, elapsed := s.tracker.EndCycle(end)
	status := "COMPLETED"
	if ctx.Err() != nil {
		status = "CANCELLED"
	}
	if s.journal != nil && journalID != 0 {
		// the cycle context may already be cancelled
		if err := s.journal.RecordCycleEnd(context.WithoutCancel(ctx), journalID, end, processed, alerts, status); err != nil {
			cycleLogger.Warn().Err(err).Msg("Failed to record cycle end")
		}
	}
	if cycleLogger.GetLevel() <= zerolog.DebugLevel {
		cycleLogger.Debug().Object("resources", GetResourceUsage()).Msg("Resource usage")
	}
	cycleLogger.Info().
		Int("processes", processed).
		Int("alerts", alerts).
		Dur("duration", elapsed).
		Str("status", status).
		Msg("Cycle finished")
}

func (s *Service) evaluateProcess(ctx context.Context, name string, proc config.ProcessConfig, cycleLogger zerolog.Logger) {
	log := cycleLogger.With().Str("process", name).Logger()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Err(fmt.Errorf("panic: %v", r)).Msg("Process evaluation failed, continuing with next process")
		}
	}()

	steps := []func(context.Context, string, config.ProcessConfig, zerolog.Logger){
		s.checkVendorIntake,
		s.checkProprietary,
		s.checkHold,
		s.checkDrop,
	}
	for _, step := range steps {
		if ctx.Err() != nil {
			return
		}
		step(ctx, name, proc, log)
	}
}

func (s *Service) pruneState(now time.Time, log zerolog.Logger) {
	retention := s.cfg.MonitorConfig.StateRetention()
	if retention <= 0 {
		return
	}
	cutoff := now.Add(-retention)
	if removed := s.state.Prune(cutoff); removed > 0 {
		log.Debug().Int("removed", removed).Msg("Pruned monitoring state")
	}

	if s.pruner == nil {
		return
	}
	// keys carry their local date, so nothing claimed today may be forgotten
	if midnight := timeutils.NewTimeOfDay(0, 0, 0).On(now); cutoff.After(midnight) {
		cutoff = midnight
	}
	if removed := s.pruner.PruneBefore(cutoff); removed > 0 {
		log.Debug().Int("removed", removed).Msg("Pruned de-dup keys")
	}
}

// notify hands n to the notifier and counts it against the current cycle.
func (s *Service) notify(ctx context.Context, n models.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.clock.Now()
	}
	s.tracker.AddAlert()
	s.notifier.Send(ctx, n)
}
