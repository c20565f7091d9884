// Package notify carries operational alerts to the admin chat.
package notify

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	kit "digestbot/internal/transport"
	logx "digestbot/pkg/logx"
)

const historyCap = 300

// Service sends admin notifications. When no admin chat is configured it
// degrades to logging only, so callers never have to special-case an
// unset target.
type Service struct {
	sender  kit.Sender
	target  kit.ChatTarget
	limiter *rate.Limiter
	log     logx.Logger

	mu      sync.Mutex
	history []Item
}

type Item struct {
	At   time.Time
	Text string
}

type Config struct {
	Target     kit.ChatTarget
	RatePerSec int
}

func New(cfg Config, sender kit.Sender, log logx.Logger) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 1
	}
	return &Service{
		sender:  sender,
		target:  cfg.Target,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		log:     log,
	}
}

// Notify sends one alert. The returned error is informational: callers
// that treat admin alerts as best-effort can ignore it safely.
func (s *Service) Notify(ctx context.Context, message string) error {
	if s.target.ChatID == 0 {
		s.log.Warn("admin chat not configured, skipping notification", logx.String("text", message))
		return nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := s.sender.SendText(ctx, s.target, "🚨 "+message, &kit.SendOptions{DisablePreview: true})
	if err != nil {
		s.log.Warn("admin notification failed", logx.Int64("chat_id", s.target.ChatID), logx.Err(err))
		return err
	}
	s.log.Debug("admin notification sent", logx.Int64("chat_id", s.target.ChatID))
	s.appendHistory(message)
	return nil
}

// Snapshot returns recent notifications, newest last.
func (s *Service) Snapshot() []Item {
	s.mu.Lock()
	out := append([]Item(nil), s.history...)
	s.mu.Unlock()
	return out
}

func (s *Service) appendHistory(text string) {
	s.mu.Lock()
	s.history = append(s.history, Item{At: time.Now(), Text: text})
	if len(s.history) > historyCap {
		s.history = s.history[len(s.history)-historyCap:]
	}
	s.mu.Unlock()
}
