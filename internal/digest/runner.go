package digest

import (
	"context"
	"time"

	logx "digestbot/pkg/logx"
)

// Mode selects the digest window.
type Mode string

const (
	ModeDaily  Mode = "daily"
	ModeWeekly Mode = "weekly"
)

// ParseMode validates a caller-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDaily, ModeWeekly:
		return Mode(s), nil
	default:
		return "", ErrInvalidMode
	}
}

// Status of one pipeline run.
type Status string

const (
	StatusSent  Status = "sent"
	StatusError Status = "error"
)

// Result is what one digest run hands back to the caller.
type Result struct {
	Status          Status `json:"status"`
	Mode            Mode   `json:"mode"`
	EventsCount     int    `json:"events_count"`
	MilestonesCount int    `json:"milestones_count"`
	Message         string `json:"message,omitempty"`
}

// Calendar fetches raw events over a time window. Implementations may
// return events in any order; the runner partitions and renders them
// without reordering.
type Calendar interface {
	Fetch(ctx context.Context, start, end time.Time) ([]Event, error)
}

// Messenger delivers a rendered block sequence to the primary channel.
type Messenger interface {
	Post(ctx context.Context, blocks []Block) error
}

// AdminNotifier carries failure reports to the admin channel. Errors from
// Notify are logged by the runner and never replace the original failure.
type AdminNotifier interface {
	Notify(ctx context.Context, message string) error
}

// Runner ties date range -> fetch -> classify -> render -> deliver into
// one pipeline. Gateways are injected once at construction and never
// mutated afterwards, so a single Runner is safe for concurrent runs.
type Runner struct {
	cal   Calendar
	msg   Messenger
	admin AdminNotifier
	log   logx.Logger

	now func() time.Time // test hook
}

func NewRunner(cal Calendar, msg Messenger, admin AdminNotifier, log logx.Logger) *Runner {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Runner{cal: cal, msg: msg, admin: admin, log: log, now: time.Now}
}

// Run executes one digest pipeline. Any stage failure short-circuits the
// rest, triggers a single best-effort admin notification, and comes back
// as an error result; no failure escapes as a panic or unhandled error.
func (r *Runner) Run(ctx context.Context, mode Mode) Result {
	now := r.now().UTC()

	var rng Range
	switch mode {
	case ModeDaily:
		rng = DailyRange(now)
	case ModeWeekly:
		rng = WeeklyRange(now)
	default:
		// Client error: no pipeline ran, so no admin notification.
		return Result{Status: StatusError, Mode: mode, Message: ErrInvalidMode.Error()}
	}

	r.log.Info("digest run started",
		logx.String("mode", string(mode)),
		logx.Time("start", rng.Start),
		logx.Time("end", rng.End),
	)

	raw, err := r.cal.Fetch(ctx, rng.Start, rng.End)
	if err != nil {
		return r.fail(ctx, mode, &StageError{Stage: StageFetch, Err: err})
	}

	events, milestones := Partition(raw)
	r.log.Info("events fetched",
		logx.Int("total", len(raw)),
		logx.Int("events", len(events)),
		logx.Int("milestones", len(milestones)),
	)

	var blocks []Block
	if mode == ModeDaily {
		blocks = RenderDaily(events, milestones, now)
	} else {
		blocks = RenderWeekly(events, milestones, now)
	}

	if err := r.msg.Post(ctx, blocks); err != nil {
		return r.fail(ctx, mode, &StageError{Stage: StageDeliver, Err: err})
	}

	r.log.Info("digest sent",
		logx.String("mode", string(mode)),
		logx.Int("events", len(events)),
		logx.Int("milestones", len(milestones)),
	)
	return Result{
		Status:          StatusSent,
		Mode:            mode,
		EventsCount:     len(events),
		MilestonesCount: len(milestones),
	}
}

// fail converts a stage failure into an error result and attempts the
// admin notification exactly once. A broken admin channel must never mask
// the original error, so Notify failures are logged and dropped.
func (r *Runner) fail(ctx context.Context, mode Mode, stageErr *StageError) Result {
	r.log.Error("digest run failed",
		logx.String("mode", string(mode)),
		logx.String("stage", string(stageErr.Stage)),
		logx.Err(stageErr.Err),
	)

	if r.admin != nil {
		if err := r.admin.Notify(ctx, "Failed to generate digest: "+stageErr.Error()); err != nil {
			r.log.Warn("admin notification failed", logx.Err(err))
		}
	}

	return Result{Status: StatusError, Mode: mode, Message: stageErr.Error()}
}
