// Package messaging delivers rendered digest blocks to the primary chat.
package messaging

import (
	"context"
	"strings"

	"digestbot/internal/digest"
	kit "digestbot/internal/transport"
	logx "digestbot/pkg/logx"
	"digestbot/pkg/tghtml"
)

const dividerRule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// Service posts block sequences to a fixed channel. It implements
// digest.Messenger.
type Service struct {
	sender kit.Sender
	target kit.ChatTarget
	log    logx.Logger
}

func New(sender kit.Sender, target kit.ChatTarget, log logx.Logger) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	return &Service{sender: sender, target: target, log: log}
}

func (s *Service) Post(ctx context.Context, blocks []digest.Block) error {
	text := RenderHTML(blocks)

	s.log.Info("posting digest", logx.Int64("chat_id", s.target.ChatID), logx.Int("blocks", len(blocks)))
	ref, err := s.sender.SendText(ctx, s.target, text, &kit.SendOptions{
		ParseMode:      "HTML",
		DisablePreview: true,
	})
	if err != nil {
		return err
	}
	s.log.Debug("digest posted", logx.Int("message_id", ref.MessageID))
	return nil
}

// RenderHTML flattens a block sequence into one Telegram HTML message.
// Block order is preserved; *bold* spans inside section text become <b>.
func RenderHTML(blocks []digest.Block) string {
	parts := make([]tghtml.H, 0, len(blocks))
	for _, b := range blocks {
		switch b.Kind {
		case digest.KindHeader:
			parts = append(parts, tghtml.B(b.Text))
		case digest.KindDivider:
			parts = append(parts, tghtml.Esc(dividerRule))
		case digest.KindSection:
			parts = append(parts, tghtml.Mrkdwn(b.Text))
		case digest.KindContext:
			parts = append(parts, tghtml.I(b.Text))
		}
	}
	return strings.TrimSpace(tghtml.Join("\n", parts...).String())
}
