package tghtml

import "testing"

func TestEsc(t *testing.T) {
	t.Parallel()
	if got := Esc("a < b & c").String(); got != "a &lt; b &amp; c" {
		t.Fatalf("Esc = %q", got)
	}
}

func TestWrappers(t *testing.T) {
	t.Parallel()
	if got := B("x<y").String(); got != "<b>x&lt;y</b>" {
		t.Fatalf("B = %q", got)
	}
	if got := I("note").String(); got != "<i>note</i>" {
		t.Fatalf("I = %q", got)
	}
}

func TestJoinSkipsBlankParts(t *testing.T) {
	t.Parallel()
	got := Join("\n", Esc("a"), Raw("  "), Esc("b")).String()
	if got != "a\nb" {
		t.Fatalf("Join = %q", got)
	}
}

func TestMrkdwn(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"single pair", "*Team Sync*", "<b>Team Sync</b>"},
		{"pair with tail", "*Title*\n9:00 AM", "<b>Title</b>\n9:00 AM"},
		{"two pairs", "*a* and *b*", "<b>a</b> and <b>b</b>"},
		{"unpaired kept literal", "5 * 3", "5 * 3"},
		{"trailing unpaired after pair", "*a* leftover *", "<b>a</b> leftover *"},
		{"escapes inside bold", "*a<b>*", "<b>a&lt;b&gt;</b>"},
		{"escapes outside bold", "<script> *x*", "&lt;script&gt; <b>x</b>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mrkdwn(tt.in).String(); got != tt.want {
				t.Fatalf("Mrkdwn(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
