package telegram

import (
	"strings"
	"testing"

	logx "digestbot/pkg/logx"
)

func TestSplitTextShortPassthrough(t *testing.T) {
	t.Parallel()
	got := splitText("hello", 100, "")
	if len(got) != 1 || got[0] != "hello" {
		t.Fatalf("got %v", got)
	}
}

func TestSplitTextPrefersNewlineBoundary(t *testing.T) {
	t.Parallel()
	text := strings.Repeat("a", 60) + "\n" + strings.Repeat("b", 60)
	got := splitText(text, 100, "")
	if len(got) != 2 {
		t.Fatalf("got %d chunks: %v", len(got), got)
	}
	if got[0] != strings.Repeat("a", 60) {
		t.Fatalf("chunk 0 = %q", got[0])
	}
	if got[1] != strings.Repeat("b", 60) {
		t.Fatalf("chunk 1 = %q", got[1])
	}
}

func TestSplitTextHardBreakWithoutNewlines(t *testing.T) {
	t.Parallel()
	text := strings.Repeat("x", 250)
	got := splitText(text, 100, "")
	if len(got) != 3 {
		t.Fatalf("got %d chunks", len(got))
	}
	if len(got[0]) != 100 || len(got[1]) != 100 || len(got[2]) != 50 {
		t.Fatalf("chunk lengths = %d %d %d", len(got[0]), len(got[1]), len(got[2]))
	}
}

func TestSplitTextIgnoresEarlyNewline(t *testing.T) {
	t.Parallel()
	// The only newline sits before limit/3, so the splitter falls back to
	// a hard break rather than producing a tiny first chunk.
	text := strings.Repeat("a", 10) + "\n" + strings.Repeat("b", 150)
	got := splitText(text, 100, "")
	if len(got) != 2 {
		t.Fatalf("got %d chunks: %v", len(got), got)
	}
	if len([]rune(got[0])) != 100 {
		t.Fatalf("chunk 0 length = %d", len([]rune(got[0])))
	}
}

func TestSplitTextAvoidsBreakingHTMLTag(t *testing.T) {
	t.Parallel()
	// Position the cut point inside an open <b> tag.
	text := strings.Repeat("x", 98) + "<b>bold</b>" + strings.Repeat("y", 50)
	got := splitText(text, 100, "HTML")
	if len(got) < 2 {
		t.Fatalf("got %d chunks", len(got))
	}
	if strings.Contains(got[0], "<") {
		t.Fatalf("chunk 0 ends inside a tag: %q", got[0])
	}
	if got[0] != strings.Repeat("x", 98) {
		t.Fatalf("chunk 0 = %q", got[0])
	}
}

func TestSplitTextCountsRunes(t *testing.T) {
	t.Parallel()
	text := strings.Repeat("📅", 150)
	got := splitText(text, 100, "")
	if len(got) != 2 {
		t.Fatalf("got %d chunks", len(got))
	}
	if n := len([]rune(got[0])); n != 100 {
		t.Fatalf("chunk 0 rune length = %d", n)
	}
}

func TestNewRejectsEmptyToken(t *testing.T) {
	t.Parallel()
	if _, err := New(Config{Token: "   "}, logx.Nop()); err == nil {
		t.Fatal("expected error for blank token")
	}
}
