package disruption

import "time"

// Disruption is a service-affecting event published by the operator's
// feed, scoped to one or more affected lines. Records are read-only
// snapshots of the feed payload.
type Disruption struct {
	ID                   string         `json:"id"`
	Title                string         `json:"title"`
	Description          string         `json:"description"`
	Type                 string         `json:"type"`
	Severity             string         `json:"severity"`
	EffectiveStartDate   string         `json:"effectiveStartDate"`
	EffectiveEndDate     string         `json:"effectiveEndDate"`
	PublicationStartDate string         `json:"publicationStartDate"`
	AffectedLines        []AffectedLine `json:"affectedLines"`
}

// AffectedLine identifies one line touched by a disruption. NetworkID
// is the feed's numeric network code, not this system's internal
// network identifier.
type AffectedLine struct {
	Number        string `json:"number"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	NetworkID     int    `json:"networkId"`
	NetworkName   string `json:"networkName"`
	TransportMode string `json:"transportMode"`
}

// feedEnvelope is the wire shape of the disruption feed response.
type feedEnvelope struct {
	Data []Disruption `json:"data"`
}

// timeLayouts are the timestamp formats the feed has been observed to
// emit. RFC3339 first; some records omit the zone suffix.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func parseFeedTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
