package disruption

import (
	"sort"
	"time"
)

// FormattedDisruption is the trimmed projection handed to view code.
type FormattedDisruption struct {
	ID            string                  `json:"id"`
	Title         string                  `json:"title"`
	Description   string                  `json:"description"`
	Type          string                  `json:"type"`
	Severity      string                  `json:"severity"`
	IsActive      bool                    `json:"isActive"`
	StartDate     string                  `json:"startDate"`
	EndDate       string                  `json:"endDate"`
	AffectedLines []FormattedAffectedLine `json:"affectedLines"`
}

// FormattedAffectedLine keeps only what a banner needs to render a line
// chip.
type FormattedAffectedLine struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Color  string `json:"color"`
}

// FormatDisruption reshapes one disruption into its view projection.
func FormatDisruption(d Disruption, now time.Time) FormattedDisruption {
	lines := make([]FormattedAffectedLine, 0, len(d.AffectedLines))
	for _, l := range d.AffectedLines {
		lines = append(lines, FormattedAffectedLine{Number: l.Number, Name: l.Name, Color: l.Color})
	}
	return FormattedDisruption{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		Type:          d.Type,
		Severity:      d.Severity,
		IsActive:      IsActive(d, now),
		StartDate:     d.EffectiveStartDate,
		EndDate:       d.EffectiveEndDate,
		AffectedLines: lines,
	}
}

// Format projects a list of disruptions, most recent start date first.
func Format(ds []Disruption, now time.Time) []FormattedDisruption {
	out := make([]FormattedDisruption, 0, len(ds))
	for _, d := range ds {
		out = append(out, FormatDisruption(d, now))
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, iok := parseFeedTime(out[i].StartDate)
		tj, jok := parseFeedTime(out[j].StartDate)
		if iok != jok {
			return iok
		}
		return ti.After(tj)
	})
	return out
}
