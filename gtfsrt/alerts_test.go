package gtfsrt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/oisemob/transit-api/disruption"
)

func serveFeed(t *testing.T, fm *gtfsrtpb.FeedMessage) *httptest.Server {
	t.Helper()
	raw, err := proto.Marshal(fm)
	if err != nil {
		t.Fatalf("marshal feed: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-protobuf")
		_, _ = w.Write(raw)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func alertFeed(alert *gtfsrtpb.Alert, id string) *gtfsrtpb.FeedMessage {
	return &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
		},
		Entity: []*gtfsrtpb.FeedEntity{
			{Id: proto.String(id), Alert: alert},
		},
	}
}

func TestFetchConvertsAlert(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	alert := &gtfsrtpb.Alert{
		ActivePeriod: []*gtfsrtpb.TimeRange{
			{Start: proto.Uint64(uint64(start.Unix())), End: proto.Uint64(uint64(end.Unix()))},
		},
		InformedEntity: []*gtfsrtpb.EntitySelector{
			{RouteId: proto.String("B")},
			{RouteId: proto.String("B")}, // duplicate selector, must dedupe
		},
		Effect: gtfsrtpb.Alert_DETOUR.Enum(),
		HeaderText: &gtfsrtpb.TranslatedString{
			Translation: []*gtfsrtpb.TranslatedString_Translation{
				{Text: proto.String("Detour on line B"), Language: proto.String("en")},
				{Text: proto.String("Déviation ligne B"), Language: proto.String("fr")},
			},
		},
		DescriptionText: &gtfsrtpb.TranslatedString{
			Translation: []*gtfsrtpb.TranslatedString_Translation{
				{Text: proto.String("Travaux rue Gambetta"), Language: proto.String("fr")},
			},
		},
	}
	srv := serveFeed(t, alertFeed(alert, "a1"))
	src := NewAlertSource(srv.URL, 51, "AXO", 5*time.Second)

	ds, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(ds) != 1 {
		t.Fatalf("expected 1 disruption, got %d", len(ds))
	}
	d := ds[0]
	if d.ID != "gtfsrt-a1" {
		t.Errorf("id: got %q", d.ID)
	}
	if d.Title != "Déviation ligne B" {
		t.Errorf("expected French header preferred, got %q", d.Title)
	}
	if d.Type != "detour" || d.Severity != "medium" {
		t.Errorf("effect mapping: got type=%q severity=%q", d.Type, d.Severity)
	}
	if d.EffectiveStartDate != "2024-01-01T00:00:00Z" || d.EffectiveEndDate != "2024-12-31T23:59:59Z" {
		t.Errorf("active period: got %q..%q", d.EffectiveStartDate, d.EffectiveEndDate)
	}
	if len(d.AffectedLines) != 1 {
		t.Fatalf("expected deduped affected lines, got %d", len(d.AffectedLines))
	}
	l := d.AffectedLines[0]
	if l.Number != "B" || l.Code != "B" || l.NetworkID != 51 || l.NetworkName != "AXO" {
		t.Errorf("unexpected affected line: %+v", l)
	}
	if !disruption.IsActive(d, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("converted alert should be active inside its window")
	}
}

func TestFetchMultiPeriodAlertSpansAllPeriods(t *testing.T) {
	p1start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p1end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	p2start := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	p2end := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	alert := &gtfsrtpb.Alert{
		ActivePeriod: []*gtfsrtpb.TimeRange{
			{Start: proto.Uint64(uint64(p2start.Unix())), End: proto.Uint64(uint64(p2end.Unix()))},
			{Start: proto.Uint64(uint64(p1start.Unix())), End: proto.Uint64(uint64(p1end.Unix()))},
		},
		InformedEntity: []*gtfsrtpb.EntitySelector{{RouteId: proto.String("B")}},
	}
	srv := serveFeed(t, alertFeed(alert, "a4"))
	src := NewAlertSource(srv.URL, 51, "AXO", 5*time.Second)

	ds, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(ds) != 1 {
		t.Fatalf("expected 1 disruption, got %d", len(ds))
	}
	d := ds[0]
	if d.EffectiveStartDate != "2024-01-01T00:00:00Z" || d.EffectiveEndDate != "2024-12-01T00:00:00Z" {
		t.Errorf("window must span all periods, got %q..%q", d.EffectiveStartDate, d.EffectiveEndDate)
	}
}

func TestFetchMultiPeriodAlertKeepsOpenEnd(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	alert := &gtfsrtpb.Alert{
		ActivePeriod: []*gtfsrtpb.TimeRange{
			{Start: proto.Uint64(uint64(start.Unix())), End: proto.Uint64(uint64(end.Unix()))},
			{Start: proto.Uint64(uint64(end.Unix()))}, // second period never closes
		},
		InformedEntity: []*gtfsrtpb.EntitySelector{{RouteId: proto.String("B")}},
	}
	srv := serveFeed(t, alertFeed(alert, "a5"))
	src := NewAlertSource(srv.URL, 51, "AXO", 5*time.Second)

	ds, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(ds) != 1 {
		t.Fatalf("expected 1 disruption, got %d", len(ds))
	}
	d := ds[0]
	if d.EffectiveStartDate != "2024-01-01T00:00:00Z" {
		t.Errorf("start: got %q", d.EffectiveStartDate)
	}
	if !disruption.IsActive(d, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("open-ended period must keep the alert active")
	}
}

func TestFetchOpenEndedAlertIsAlwaysActive(t *testing.T) {
	alert := &gtfsrtpb.Alert{
		InformedEntity: []*gtfsrtpb.EntitySelector{{RouteId: proto.String("14")}},
		Effect:         gtfsrtpb.Alert_NO_SERVICE.Enum(),
	}
	srv := serveFeed(t, alertFeed(alert, "a2"))
	src := NewAlertSource(srv.URL, 51, "AXO", 5*time.Second)

	ds, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(ds) != 1 {
		t.Fatalf("expected 1 disruption, got %d", len(ds))
	}
	if ds[0].Severity != "blocking" {
		t.Errorf("NO_SERVICE severity: got %q", ds[0].Severity)
	}
	if !disruption.IsActive(ds[0], time.Now().UTC()) {
		t.Error("alert without active period must be treated as in effect")
	}
}

func TestFetchSkipsAlertsWithoutRoutes(t *testing.T) {
	alert := &gtfsrtpb.Alert{
		InformedEntity: []*gtfsrtpb.EntitySelector{{StopId: proto.String("stop-1")}},
	}
	srv := serveFeed(t, alertFeed(alert, "a3"))
	src := NewAlertSource(srv.URL, 51, "AXO", 5*time.Second)

	ds, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(ds) != 0 {
		t.Errorf("expected stop-only alert to be skipped, got %d", len(ds))
	}
}

func TestFetchFeedErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	src := NewAlertSource(srv.URL, 51, "AXO", 5*time.Second)
	if _, err := src.Fetch(context.Background()); err == nil {
		t.Error("expected error for HTTP 502")
	}
}
