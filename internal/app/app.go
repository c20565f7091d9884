// Package app wires configuration, logging, gateways, and services into
// one runnable digest bot.
package app

import (
	"context"
	"fmt"
	"sync"

	"digestbot/internal/calendar"
	"digestbot/internal/config"
	"digestbot/internal/digest"
	"digestbot/internal/httpapi"
	"digestbot/internal/messaging"
	"digestbot/internal/notify"
	"digestbot/internal/scheduler"
	kit "digestbot/internal/transport"
	"digestbot/internal/transport/telegram"
	logx "digestbot/pkg/logx"
)

type App struct {
	cfgMgr *config.Manager
	logSvc *logx.Service
	log    logx.Logger

	runner *digest.Runner
	http   *httpapi.Service
	sched  *scheduler.Service

	watchCancel context.CancelFunc
	watchWG     sync.WaitGroup
}

// New loads and validates the config and constructs every collaborator.
// All gateway clients are built exactly once here and injected by
// reference; nothing is lazily initialized later.
func New(ctx context.Context, cfgPath string) (*App, error) {
	mgr := config.NewManager(cfgPath)
	cfg, err := mgr.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	boot := logx.NewConsole(cfg.Logging.Level)

	adapter, err := telegram.New(telegram.Config{Token: cfg.Telegram.Token}, boot)
	if err != nil {
		return nil, fmt.Errorf("telegram adapter: %w", err)
	}

	logSvc, log := logx.New(logxConfig(cfg.Logging), adapter)
	if cfg.Telegram.AdminChannelID != 0 {
		logSvc.SetTelegramTarget(cfg.Telegram.AdminChannelID, cfg.Telegram.AdminThreadID)
	}
	mgr.SetLogger(log.With(logx.String("comp", "config")))

	key, err := cfg.Google.ResolvePrivateKey()
	if err != nil {
		return nil, err
	}
	cal, err := calendar.New(ctx, calendar.Config{
		ClientEmail: cfg.Google.ClientEmail,
		PrivateKey:  key,
		CalendarID:  cfg.Google.CalendarID,
	}, log.With(logx.String("comp", "calendar")))
	if err != nil {
		return nil, fmt.Errorf("calendar client: %w", err)
	}

	msg := messaging.New(adapter, kit.ChatTarget{
		ChatID:   cfg.Telegram.ChannelID,
		ThreadID: cfg.Telegram.ChannelThreadID,
	}, log.With(logx.String("comp", "messaging")))

	admin := notify.New(notify.Config{
		Target: kit.ChatTarget{
			ChatID:   cfg.Telegram.AdminChannelID,
			ThreadID: cfg.Telegram.AdminThreadID,
		},
		RatePerSec: cfg.Notifier.RatePerSec,
	}, adapter, log.With(logx.String("comp", "notify")))

	runner := digest.NewRunner(cal, msg, admin, log.With(logx.String("comp", "digest")))

	a := &App{
		cfgMgr: mgr,
		logSvc: logSvc,
		log:    log,
		runner: runner,
		sched: scheduler.New(scheduler.Config{
			Enabled:  cfg.Scheduler.Enabled,
			Daily:    cfg.Scheduler.Daily,
			Weekly:   cfg.Scheduler.Weekly,
			Timezone: cfg.Scheduler.Timezone,
		}, runner, log.With(logx.String("comp", "scheduler"))),
	}

	httpCfg, err := httpConfig(cfg.HTTP)
	if err != nil {
		return nil, err
	}
	a.http = httpapi.New(httpCfg, runner, log.With(logx.String("comp", "http")))

	return a, nil
}

// RunOnce executes a single digest and returns its result (the -mode CLI
// path).
func (a *App) RunOnce(ctx context.Context, mode digest.Mode) digest.Result {
	return a.runner.Run(ctx, mode)
}

// Start brings up the long-running surfaces: HTTP API, cron scheduler,
// and the config watcher.
func (a *App) Start(ctx context.Context) error {
	if err := a.http.Start(ctx); err != nil {
		return err
	}
	if err := a.sched.Start(ctx); err != nil {
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	a.watchCancel = cancel

	sub := a.cfgMgr.Subscribe(1)
	a.watchWG.Add(2)
	go func() {
		defer a.watchWG.Done()
		_ = a.cfgMgr.Watch(watchCtx)
	}()
	go func() {
		defer a.watchWG.Done()
		for {
			select {
			case <-watchCtx.Done():
				return
			case cfg, ok := <-sub:
				if !ok {
					return
				}
				a.applyReload(watchCtx, cfg)
			}
		}
	}()

	a.log.Info("digestbot started")
	return nil
}

// applyReload pushes a validated config into the hot-swappable services.
// Credential changes (telegram token, google key) still need a restart.
func (a *App) applyReload(ctx context.Context, cfg *config.Config) {
	a.logSvc.Apply(logxConfig(cfg.Logging))
	if err := a.sched.Apply(ctx, scheduler.Config{
		Enabled:  cfg.Scheduler.Enabled,
		Daily:    cfg.Scheduler.Daily,
		Weekly:   cfg.Scheduler.Weekly,
		Timezone: cfg.Scheduler.Timezone,
	}); err != nil {
		a.log.Error("scheduler reconfigure failed", logx.Err(err))
	}
	a.log.Info("config applied")
}

func (a *App) Stop(ctx context.Context) {
	if a.watchCancel != nil {
		a.watchCancel()
	}
	a.sched.Stop(ctx)
	a.http.Stop(ctx)
	a.watchWG.Wait()
	_ = a.logSvc.Close()
	a.log.Info("digestbot stopped")
}

func logxConfig(c config.LoggingConfig) logx.Config {
	return logx.Config{
		Level:   c.Level,
		Console: c.Console,
		File:    logx.FileConfig{Enabled: c.File.Enabled, Path: c.File.Path},
		Telegram: logx.TelegramConfig{
			Enabled:    c.Telegram.Enabled,
			ThreadID:   c.Telegram.ThreadID,
			MinLevel:   c.Telegram.MinLevel,
			RatePerSec: c.Telegram.RatePerSec,
		},
	}
}

func httpConfig(c config.HTTPConfig) (httpapi.Config, error) {
	read, err := config.ParseDurationField("http.read_timeout", c.ReadTimeout)
	if err != nil {
		return httpapi.Config{}, err
	}
	write, err := config.ParseDurationField("http.write_timeout", c.WriteTimeout)
	if err != nil {
		return httpapi.Config{}, err
	}
	idle, err := config.ParseDurationField("http.idle_timeout", c.IdleTimeout)
	if err != nil {
		return httpapi.Config{}, err
	}
	return httpapi.Config{
		Enabled:       c.Enabled,
		Addr:          c.Addr,
		Token:         c.Token,
		AllowInsecure: c.AllowInsecure,
		ReadTimeout:   read,
		WriteTimeout:  write,
		IdleTimeout:   idle,
	}, nil
}
