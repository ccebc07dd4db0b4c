package gtfsrt

import (
	"context"
	"net/http"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"

	"github.com/oisemob/transit-api/disruption"
)

// Windows for alerts with a missing bound. GTFS-RT treats an absent
// active period as "in effect now", so open bounds become unbounded
// rather than dropping the alert from active-window filtering.
const (
	openStartDate = "1970-01-01T00:00:00Z"
	openEndDate   = "9999-12-31T23:59:59Z"
)

// AlertSource reads a GTFS-RT service-alerts feed and exposes it as a
// secondary disruption source. The feed speaks in route identifiers,
// not the disruption feed's network codes, so each source is bound to
// the one network whose alerts it carries.
type AlertSource struct {
	url         string
	networkCode int
	networkName string
	httpClient  *http.Client
}

// NewAlertSource creates a source for one network's service-alerts feed.
func NewAlertSource(url string, networkCode int, networkName string, timeout time.Duration) *AlertSource {
	return &AlertSource{
		url:         url,
		networkCode: networkCode,
		networkName: networkName,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Fetch downloads the feed and converts its alerts to disruptions.
func (s *AlertSource) Fetch(ctx context.Context) ([]disruption.Disruption, error) {
	fm, err := fetchFeed(ctx, s.httpClient, s.url)
	if err != nil {
		return nil, err
	}
	out := make([]disruption.Disruption, 0, len(fm.Entity))
	for _, e := range fm.Entity {
		if e.Alert == nil {
			continue
		}
		d := s.convertAlert(e)
		if len(d.AffectedLines) == 0 {
			// Alert not scoped to any route; nothing to match against.
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *AlertSource) convertAlert(e *gtfsrtpb.FeedEntity) disruption.Disruption {
	a := e.Alert
	d := disruption.Disruption{
		Title:              translatedText(a.HeaderText),
		Description:        translatedText(a.DescriptionText),
		EffectiveStartDate: openStartDate,
		EffectiveEndDate:   openEndDate,
	}
	if e.Id != nil {
		d.ID = "gtfsrt-" + *e.Id
	}
	if a.Effect != nil {
		d.Type = effectToType(a.Effect.String())
		d.Severity = effectToSeverity(a.Effect.String())
	} else {
		d.Type = "unknown"
		d.Severity = "low"
	}
	// An alert with several active periods collapses to the window
	// spanning all of them; an open bound on any period keeps that side
	// unbounded.
	var start, end *uint64
	openStart, openEnd := len(a.ActivePeriod) == 0, len(a.ActivePeriod) == 0
	for _, ap := range a.ActivePeriod {
		if ap.Start == nil {
			openStart = true
		} else if start == nil || *ap.Start < *start {
			start = ap.Start
		}
		if ap.End == nil {
			openEnd = true
		} else if end == nil || *ap.End > *end {
			end = ap.End
		}
	}
	if !openStart && start != nil {
		d.EffectiveStartDate = iso8601FromUnixSeconds(int64(*start))
	}
	if !openEnd && end != nil {
		d.EffectiveEndDate = iso8601FromUnixSeconds(int64(*end))
	}
	seen := map[string]bool{}
	for _, ie := range a.InformedEntity {
		if ie.RouteId == nil || seen[*ie.RouteId] {
			continue
		}
		seen[*ie.RouteId] = true
		d.AffectedLines = append(d.AffectedLines, disruption.AffectedLine{
			Number:      *ie.RouteId,
			Code:        *ie.RouteId,
			Name:        *ie.RouteId,
			NetworkID:   s.networkCode,
			NetworkName: s.networkName,
		})
	}
	return d
}

func translatedText(ts *gtfsrtpb.TranslatedString) string {
	if ts == nil || len(ts.Translation) == 0 {
		return ""
	}
	// Prefer the French translation; the product is French-language.
	for _, tr := range ts.Translation {
		if tr.Language != nil && *tr.Language == "fr" && tr.Text != nil {
			return *tr.Text
		}
	}
	if ts.Translation[0].Text != nil {
		return *ts.Translation[0].Text
	}
	return ""
}

func effectToSeverity(effect string) string {
	switch effect {
	case "NO_SERVICE":
		return "blocking"
	case "REDUCED_SERVICE", "SIGNIFICANT_DELAYS":
		return "high"
	case "DETOUR", "MODIFIED_SERVICE", "STOP_MOVED":
		return "medium"
	default:
		return "low"
	}
}

func effectToType(effect string) string {
	switch effect {
	case "NO_SERVICE":
		return "noService"
	case "REDUCED_SERVICE":
		return "reducedService"
	case "SIGNIFICANT_DELAYS":
		return "delays"
	case "DETOUR":
		return "detour"
	case "MODIFIED_SERVICE":
		return "modifiedService"
	case "STOP_MOVED":
		return "stopMoved"
	default:
		return "unknown"
	}
}

func iso8601FromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}
