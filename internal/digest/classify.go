package digest

import "strings"

// Milestone markers. Matching is substring-based over the lower-cased
// title+description, so "[Milestone]" and "MILESTONE:" both hit, while the
// bare word "milestone" (no colon, no brackets) does not.
const (
	markerTag   = "[milestone]"
	markerColon = "milestone:"
)

// IsMilestone reports whether the event is tagged as a milestone.
func IsMilestone(e Event) bool {
	text := strings.ToLower(e.Title + " " + e.Description)
	return strings.Contains(text, markerTag) || strings.Contains(text, markerColon)
}

// Partition splits events into (regular, milestones), preserving the
// input's relative order within each slice. Every event lands in exactly
// one of the two.
func Partition(events []Event) (regular, milestones []Event) {
	for _, e := range events {
		if IsMilestone(e) {
			milestones = append(milestones, e)
		} else {
			regular = append(regular, e)
		}
	}
	return regular, milestones
}
