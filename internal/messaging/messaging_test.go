package messaging

import (
	"context"
	"errors"
	"strings"
	"testing"

	"digestbot/internal/digest"
	kit "digestbot/internal/transport"
	logx "digestbot/pkg/logx"
)

type fakeSender struct {
	err    error
	target kit.ChatTarget
	text   string
	opts   *kit.SendOptions
}

func (f *fakeSender) SendText(_ context.Context, target kit.ChatTarget, text string, opts *kit.SendOptions) (kit.MessageRef, error) {
	f.target, f.text, f.opts = target, text, opts
	return kit.MessageRef{MessageID: 42}, f.err
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()
	blocks := []digest.Block{
		digest.Header("📅 Daily Calendar Digest - Wednesday, June 11, 2025"),
		digest.Divider(),
		digest.Section("*Team Sync*\n9:00 AM - 9:30 AM"),
		digest.Context("Generated on Wednesday, June 11, 2025"),
	}

	got := RenderHTML(blocks)

	wantLines := []string{
		"<b>📅 Daily Calendar Digest - Wednesday, June 11, 2025</b>",
		dividerRule,
		"<b>Team Sync</b>",
		"9:00 AM - 9:30 AM",
		"<i>Generated on Wednesday, June 11, 2025</i>",
	}
	if got != strings.Join(wantLines, "\n") {
		t.Fatalf("RenderHTML =\n%s", got)
	}
}

func TestRenderHTMLEscapesSectionText(t *testing.T) {
	t.Parallel()
	got := RenderHTML([]digest.Block{digest.Section("*R&D <sync>*")})
	if got != "<b>R&amp;D &lt;sync&gt;</b>" {
		t.Fatalf("RenderHTML = %q", got)
	}
}

func TestPostSendsHTML(t *testing.T) {
	t.Parallel()
	sender := &fakeSender{}
	target := kit.ChatTarget{ChatID: -100123, ThreadID: 7}
	svc := New(sender, target, logx.Nop())

	err := svc.Post(context.Background(), []digest.Block{digest.Header("hi")})
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if sender.target != target {
		t.Fatalf("target = %+v", sender.target)
	}
	if sender.opts == nil || sender.opts.ParseMode != "HTML" || !sender.opts.DisablePreview {
		t.Fatalf("opts = %+v", sender.opts)
	}
	if sender.text != "<b>hi</b>" {
		t.Fatalf("text = %q", sender.text)
	}
}

func TestPostPropagatesSendError(t *testing.T) {
	t.Parallel()
	sender := &fakeSender{err: errors.New("chat not found")}
	svc := New(sender, kit.ChatTarget{ChatID: 1}, logx.Nop())

	if err := svc.Post(context.Background(), []digest.Block{digest.Header("hi")}); err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Fatalf("err = %v", err)
	}
}
