// Package tghtml builds HTML fragments that are safe to send to Telegram
// with ParseMode="HTML".
package tghtml

import (
	"html"
	"strings"
)

// H is HTML that is already escaped for Telegram's HTML parse mode.
type H string

func (h H) String() string { return string(h) }

// Esc escapes plain text.
func Esc(s string) H { return H(html.EscapeString(s)) }

// Raw marks a string as already-safe HTML. Use sparingly.
func Raw(s string) H { return H(s) }

func wrap(tag string, inner H) H { return H("<" + tag + ">" + inner.String() + "</" + tag + ">") }

func B(s string) H { return wrap("b", Esc(s)) }
func I(s string) H { return wrap("i", Esc(s)) }

// Join joins safe parts with sep, skipping blank parts.
func Join(sep string, parts ...H) H {
	ss := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p.String()) == "" {
			continue
		}
		ss = append(ss, p.String())
	}
	return H(strings.Join(ss, sep))
}

// Mrkdwn converts lightweight *bold* markup into Telegram HTML, escaping
// everything else. An unpaired asterisk is kept literally.
func Mrkdwn(s string) H {
	var b strings.Builder
	for {
		i := strings.IndexByte(s, '*')
		if i < 0 {
			b.WriteString(html.EscapeString(s))
			break
		}
		j := strings.IndexByte(s[i+1:], '*')
		if j < 0 {
			b.WriteString(html.EscapeString(s))
			break
		}
		b.WriteString(html.EscapeString(s[:i]))
		b.WriteString("<b>")
		b.WriteString(html.EscapeString(s[i+1 : i+1+j]))
		b.WriteString("</b>")
		s = s[i+j+2:]
	}
	return H(b.String())
}
