package digest

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// BlockKind discriminates digest display blocks.
type BlockKind string

const (
	KindHeader  BlockKind = "header"
	KindDivider BlockKind = "divider"
	KindSection BlockKind = "section"
	KindContext BlockKind = "context"
)

// Block is one display unit of a rendered digest. Bold spans inside Text
// are marked with *asterisks*; the messaging gateway translates them into
// provider markup.
type Block struct {
	Kind BlockKind
	Text string
}

func Header(text string) Block  { return Block{Kind: KindHeader, Text: text} }
func Divider() Block            { return Block{Kind: KindDivider} }
func Section(text string) Block { return Block{Kind: KindSection, Text: text} }
func Context(text string) Block { return Block{Kind: KindContext, Text: text} }

const untitledEvent = "Untitled Event"

// formatEvent renders a single event as up to three lines:
// bolded title, "time • location" (only when at least one is present),
// and the short description (text before the first line break).
func formatEvent(e Event) string {
	title := e.Title
	if title == "" {
		title = untitledEvent
	}

	// Long-form text after the first line break is deliberately dropped
	// from the digest (reserved for future use).
	desc := e.Description
	if i := strings.IndexByte(desc, '\n'); i >= 0 {
		desc = desc[:i]
	}
	desc = strings.TrimSpace(desc)

	var timeStr string
	switch {
	case e.Timed():
		timeStr = FormatTimeRange(e.Start, e.End)
	case e.AllDay && e.Date != "":
		timeStr = "All day"
	}

	var b strings.Builder
	b.WriteString("*" + title + "*")

	var meta []string
	if timeStr != "" {
		meta = append(meta, timeStr)
	}
	if e.Location != "" {
		meta = append(meta, e.Location)
	}
	if len(meta) > 0 {
		b.WriteString("\n" + strings.Join(meta, " • "))
	}
	if desc != "" {
		b.WriteString("\n" + desc)
	}
	return b.String()
}

// RenderDaily builds the block sequence for a daily digest.
func RenderDaily(events, milestones []Event, today time.Time) []Block {
	blocks := []Block{
		Header("📅 Daily Calendar Digest - " + FormatDate(today)),
		Divider(),
	}

	if len(milestones) > 0 {
		blocks = append(blocks, Section("*🎯 Today's Milestones*"))
		for _, e := range milestones {
			blocks = append(blocks, Section(formatEvent(e)))
		}
		if len(events) > 0 {
			blocks = append(blocks, Divider())
		}
	}

	if len(events) > 0 {
		blocks = append(blocks, Section("*📋 Today's Events*"))
		for _, e := range events {
			blocks = append(blocks, Section(formatEvent(e)))
		}
	}

	if len(events) == 0 && len(milestones) == 0 {
		blocks = append(blocks, Section("No events scheduled for today."))
	}

	blocks = append(blocks,
		Divider(),
		Context("Generated on "+FormatDate(today)),
	)
	return blocks
}

// RenderWeekly builds the block sequence for a weekly digest. Regular
// events are grouped by calendar day under bolded day headers, days in
// ascending date order regardless of input order.
func RenderWeekly(events, milestones []Event, today time.Time) []Block {
	week := WeekNumber(today)
	blocks := []Block{
		Header("📅 Weekly Calendar Digest - Week " + strconv.Itoa(week)),
		Divider(),
	}

	if len(milestones) > 0 {
		blocks = append(blocks, Section("*🎯 This Week's Milestones*"))
		for _, e := range milestones {
			blocks = append(blocks, Section(formatEvent(e)))
		}
		if len(events) > 0 {
			blocks = append(blocks, Divider())
		}
	}

	if len(events) > 0 {
		blocks = append(blocks, Section("*📋 This Week's Events*"))
		blocks = append(blocks, renderEventsByDay(events)...)
	}

	if len(events) == 0 && len(milestones) == 0 {
		blocks = append(blocks, Section("No events scheduled for this week."))
	}

	blocks = append(blocks,
		Divider(),
		Context("Week "+strconv.Itoa(week)+" • Generated on "+FormatDate(today)),
	)
	return blocks
}

func renderEventsByDay(events []Event) []Block {
	byDay := map[string][]Event{}
	for _, e := range events {
		key := e.DayKey()
		if key == "" {
			continue
		}
		byDay[key] = append(byDay[key], e)
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	// ISO dates sort lexicographically in chronological order.
	sort.Strings(keys)

	var blocks []Block
	for _, key := range keys {
		day, err := time.Parse("2006-01-02", key)
		if err != nil {
			continue
		}
		blocks = append(blocks, Section("*"+FormatDate(day)+"*"))
		for _, e := range byDay[key] {
			blocks = append(blocks, Section("  "+formatEvent(e)))
		}
	}
	return blocks
}
