package notify

import (
	"context"
	"errors"
	"testing"

	kit "digestbot/internal/transport"
	logx "digestbot/pkg/logx"
)

type fakeSender struct {
	err   error
	texts []string
	opts  *kit.SendOptions
}

func (f *fakeSender) SendText(_ context.Context, _ kit.ChatTarget, text string, opts *kit.SendOptions) (kit.MessageRef, error) {
	f.texts = append(f.texts, text)
	f.opts = opts
	return kit.MessageRef{MessageID: 1}, f.err
}

func TestNotifyPrefixesAlert(t *testing.T) {
	t.Parallel()
	sender := &fakeSender{}
	svc := New(Config{Target: kit.ChatTarget{ChatID: -100200}, RatePerSec: 100}, sender, logx.Nop())

	if err := svc.Notify(context.Background(), "Failed to generate digest: boom"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(sender.texts) != 1 || sender.texts[0] != "🚨 Failed to generate digest: boom" {
		t.Fatalf("texts = %v", sender.texts)
	}
	if sender.opts == nil || !sender.opts.DisablePreview {
		t.Fatalf("opts = %+v", sender.opts)
	}

	snap := svc.Snapshot()
	if len(snap) != 1 || snap[0].Text != "Failed to generate digest: boom" {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestNotifyUnsetTargetDegradesToLogging(t *testing.T) {
	t.Parallel()
	sender := &fakeSender{}
	svc := New(Config{}, sender, logx.Nop())

	if err := svc.Notify(context.Background(), "ignored"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(sender.texts) != 0 {
		t.Fatalf("unexpected sends: %v", sender.texts)
	}
	if len(svc.Snapshot()) != 0 {
		t.Fatal("degraded notify must not record history")
	}
}

func TestNotifySendFailure(t *testing.T) {
	t.Parallel()
	sender := &fakeSender{err: errors.New("chat gone")}
	svc := New(Config{Target: kit.ChatTarget{ChatID: 5}, RatePerSec: 100}, sender, logx.Nop())

	if err := svc.Notify(context.Background(), "boom"); err == nil {
		t.Fatal("expected send error")
	}
	if len(svc.Snapshot()) != 0 {
		t.Fatal("failed sends must not enter history")
	}
}

func TestNotifyCanceledContext(t *testing.T) {
	t.Parallel()
	sender := &fakeSender{}
	// Burst of 1: the second immediate Wait has to block, so a canceled
	// context surfaces as an error instead of a hang.
	svc := New(Config{Target: kit.ChatTarget{ChatID: 5}, RatePerSec: 1}, sender, logx.Nop())

	if err := svc.Notify(context.Background(), "first"); err != nil {
		t.Fatalf("first Notify: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.Notify(ctx, "second"); err == nil {
		t.Fatal("expected context error from limiter")
	}
	if len(sender.texts) != 1 {
		t.Fatalf("sends = %v", sender.texts)
	}
}
