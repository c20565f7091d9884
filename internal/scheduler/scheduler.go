// Package scheduler triggers digest runs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"digestbot/internal/digest"
	logx "digestbot/pkg/logx"
)

type Config struct {
	Enabled bool
	Daily   string // cron spec for daily digests
	Weekly  string // cron spec for weekly digests
	// Timezone for trigger evaluation (IANA name). Empty means local time.
	Timezone string
}

// Runner is the piece of the orchestrator the scheduler needs.
type Runner interface {
	Run(ctx context.Context, mode digest.Mode) digest.Result
}

// Service owns one cron instance and re-creates it on Apply() so
// schedule or timezone changes take effect without a restart.
type Service struct {
	mu     sync.Mutex
	cfg    Config
	log    logx.Logger
	runner Runner
	parser cron.Parser

	c      *cron.Cron
	runCtx context.Context
	cancel context.CancelFunc
}

func New(cfg Config, runner Runner, log logx.Logger) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Service{
		cfg:    cfg,
		log:    log,
		runner: runner,
		// SecondOptional allows both 5-field and 6-field cron specs.
		parser: cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

// ValidateSpec reports whether spec parses as a cron expression.
func (s *Service) ValidateSpec(spec string) error {
	if strings.TrimSpace(spec) == "" {
		return nil
	}
	_, err := s.parser.Parse(spec)
	return err
}

func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c != nil {
		return nil
	}
	if !s.cfg.Enabled {
		s.log.Debug("scheduler disabled")
		return nil
	}
	s.runCtx, s.cancel = context.WithCancel(ctx)
	return s.startLocked()
}

func (s *Service) startLocked() error {
	loc := time.Local
	if tz := strings.TrimSpace(s.cfg.Timezone); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("scheduler.timezone: %w", err)
		}
		loc = l
	}

	c := cron.New(cron.WithParser(s.parser), cron.WithLocation(loc))
	runCtx := s.runCtx

	add := func(spec string, mode digest.Mode) error {
		if strings.TrimSpace(spec) == "" {
			return nil
		}
		_, err := c.AddFunc(spec, func() {
			res := s.runner.Run(runCtx, mode)
			s.log.Info("scheduled digest finished",
				logx.String("mode", string(mode)),
				logx.String("status", string(res.Status)),
			)
		})
		if err != nil {
			return fmt.Errorf("scheduler.%s: invalid cron spec %q: %w", mode, spec, err)
		}
		return nil
	}

	if err := add(s.cfg.Daily, digest.ModeDaily); err != nil {
		return err
	}
	if err := add(s.cfg.Weekly, digest.ModeWeekly); err != nil {
		return err
	}

	c.Start()
	s.c = c
	s.log.Info("scheduler started",
		logx.String("daily", s.cfg.Daily),
		logx.String("weekly", s.cfg.Weekly),
		logx.String("tz", loc.String()),
	)
	return nil
}

// Apply reconfigures the scheduler. The cron instance restarts only when
// schedule-relevant fields changed.
func (s *Service) Apply(ctx context.Context, cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := cfg != s.cfg
	s.cfg = cfg
	if !changed {
		return nil
	}

	if s.c != nil {
		stopCron(s.c)
		s.c = nil
	}
	if !cfg.Enabled {
		s.log.Info("scheduler disabled by config")
		return nil
	}
	if s.runCtx == nil {
		s.runCtx, s.cancel = context.WithCancel(ctx)
	}
	return s.startLocked()
}

func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	c := s.c
	cancel := s.cancel
	s.c = nil
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if c == nil {
		return
	}
	select {
	case <-stopCron(c):
	case <-ctx.Done():
	}
	s.log.Info("scheduler stopped")
}

func stopCron(c *cron.Cron) <-chan struct{} {
	return c.Stop().Done()
}
