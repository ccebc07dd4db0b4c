package disruption

import (
	"strings"
	"time"
)

// IsActive reports whether now falls within the disruption's effective
// window. Both bounds are inclusive. A disruption with an unparseable
// or missing bound is never active.
func IsActive(d Disruption, now time.Time) bool {
	start, ok := parseFeedTime(d.EffectiveStartDate)
	if !ok {
		return false
	}
	end, ok := parseFeedTime(d.EffectiveEndDate)
	if !ok {
		return false
	}
	return !now.Before(start) && !now.After(end)
}

// MatchesNetwork reports whether any affected line belongs to the given
// feed network code.
func MatchesNetwork(d Disruption, networkCode int) bool {
	for _, l := range d.AffectedLines {
		if l.NetworkID == networkCode {
			return true
		}
	}
	return false
}

// LineMatches reports whether the disruption affects the line with the
// given display number on the given network code. The comparison against
// the feed's number and code fields is exact and case-sensitive; feed
// values are presumed already canonical.
func LineMatches(d Disruption, networkCode int, lineNumber string) bool {
	for _, l := range d.AffectedLines {
		if l.NetworkID != networkCode {
			continue
		}
		if l.Number == lineNumber || l.Code == lineNumber {
			return true
		}
	}
	return false
}

// GroupByNetwork buckets disruptions by the network names of their
// affected lines. A disruption spanning several networks appears once
// under each name, so it is visible from either network's banner.
func GroupByNetwork(ds []Disruption) map[string][]Disruption {
	grouped := map[string][]Disruption{}
	for _, d := range ds {
		seen := map[string]bool{}
		for _, l := range d.AffectedLines {
			name := l.NetworkName
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			grouped[name] = append(grouped[name], d)
		}
	}
	return grouped
}

// Filter keeps disruptions whose title, description or any affected
// line's name, number or network name contains term, case-insensitively.
// An empty term returns the input unchanged.
func Filter(ds []Disruption, term string) []Disruption {
	if term == "" {
		return ds
	}
	needle := strings.ToLower(term)
	out := make([]Disruption, 0, len(ds))
	for _, d := range ds {
		if matchesTerm(d, needle) {
			out = append(out, d)
		}
	}
	return out
}

func matchesTerm(d Disruption, needle string) bool {
	if strings.Contains(strings.ToLower(d.Title), needle) ||
		strings.Contains(strings.ToLower(d.Description), needle) {
		return true
	}
	for _, l := range d.AffectedLines {
		if strings.Contains(strings.ToLower(l.Name), needle) ||
			strings.Contains(strings.ToLower(l.Number), needle) ||
			strings.Contains(strings.ToLower(l.NetworkName), needle) {
			return true
		}
	}
	return false
}
