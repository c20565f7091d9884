package scheduler

import (
	"context"
	"testing"
	"time"

	"digestbot/internal/digest"
	logx "digestbot/pkg/logx"
)

type stubRunner struct{}

func (stubRunner) Run(context.Context, digest.Mode) digest.Result {
	return digest.Result{Status: digest.StatusSent}
}

func TestValidateSpec(t *testing.T) {
	t.Parallel()
	s := New(Config{}, stubRunner{}, logx.Nop())

	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{"empty means unset", "", false},
		{"blank means unset", "   ", false},
		{"five field", "0 8 * * 1-5", false},
		{"six field with seconds", "30 0 8 * * 1", false},
		{"descriptor", "@daily", false},
		{"garbage", "every morning", true},
		{"too few fields", "8 *", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.ValidateSpec(tt.spec)
			if tt.wantErr && err == nil {
				t.Fatalf("ValidateSpec(%q): expected error", tt.spec)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("ValidateSpec(%q): %v", tt.spec, err)
			}
		})
	}
}

func TestStartDisabledIsNoop(t *testing.T) {
	t.Parallel()
	s := New(Config{Enabled: false, Daily: "0 8 * * *"}, stubRunner{}, logx.Nop())

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.c != nil {
		t.Fatal("disabled scheduler must not create a cron instance")
	}
	s.Stop(context.Background())
}

func TestStartStop(t *testing.T) {
	t.Parallel()
	s := New(Config{Enabled: true, Daily: "0 8 * * 1-5", Weekly: "0 9 * * 1", Timezone: "UTC"}, stubRunner{}, logx.Nop())

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.c == nil {
		t.Fatal("expected a running cron instance")
	}
	// Start is idempotent while running.
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("second Start: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.Stop(ctx)
	if s.c != nil {
		t.Fatal("cron instance must be cleared after Stop")
	}
}

func TestStartRejectsBadSpec(t *testing.T) {
	t.Parallel()
	s := New(Config{Enabled: true, Daily: "not a spec"}, stubRunner{}, logx.Nop())
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}

func TestStartRejectsBadTimezone(t *testing.T) {
	t.Parallel()
	s := New(Config{Enabled: true, Daily: "0 8 * * *", Timezone: "Mars/Olympus"}, stubRunner{}, logx.Nop())
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestApplyRestartsOnChange(t *testing.T) {
	t.Parallel()
	s := New(Config{Enabled: true, Daily: "0 8 * * *", Timezone: "UTC"}, stubRunner{}, logx.Nop())
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop(context.Background())

	old := s.c
	// Unchanged config keeps the cron instance.
	if err := s.Apply(context.Background(), Config{Enabled: true, Daily: "0 8 * * *", Timezone: "UTC"}); err != nil {
		t.Fatalf("Apply same: %v", err)
	}
	if s.c != old {
		t.Fatal("unchanged config must not restart cron")
	}

	if err := s.Apply(context.Background(), Config{Enabled: true, Daily: "0 9 * * *", Timezone: "UTC"}); err != nil {
		t.Fatalf("Apply changed: %v", err)
	}
	if s.c == old {
		t.Fatal("changed schedule must rebuild the cron instance")
	}

	if err := s.Apply(context.Background(), Config{Enabled: false}); err != nil {
		t.Fatalf("Apply disable: %v", err)
	}
	if s.c != nil {
		t.Fatal("disabling must stop the cron instance")
	}
}
