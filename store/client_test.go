package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, "test-key", 5*time.Second), srv
}

func TestSelectBuildsEqualityFilters(t *testing.T) {
	var gotPath, gotQuery, gotKey string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"route_id":"14","network_id":"AXO","route_short_name":"14"}]`))
	})
	defer srv.Close()

	var rows []Route
	err := c.Select(context.Background(), "routes", map[string]string{"network_id": "AXO", "route_id": "14"}, &rows)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if gotPath != "/rest/v1/routes" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotQuery != "network_id=eq.AXO&route_id=eq.14" {
		t.Errorf("query: got %q", gotQuery)
	}
	if gotKey != "test-key" {
		t.Errorf("apikey header: got %q", gotKey)
	}
	if len(rows) != 1 || rows[0].ShortName != "14" {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestSelectOneNotFound(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	defer srv.Close()

	var n Network
	err := c.SelectOne(context.Background(), "networks", map[string]string{"network_id": "NOPE"}, &n)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSelectPropagatesHTTPErrors(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer srv.Close()

	var rows []Route
	if err := c.Select(context.Background(), "routes", nil, &rows); err == nil {
		t.Error("expected error for HTTP 503, got nil")
	}
}

func TestRPCPostsParams(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"direction_id":0,"headsign":"Gare de Creil"},{"direction_id":1,"headsign":"Plateau Rochy"}]`))
	})
	defer srv.Close()

	ds, err := c.GetRouteDirections(context.Background(), "14", "AXO")
	if err != nil {
		t.Fatalf("GetRouteDirections: %v", err)
	}
	if gotPath != "/rest/v1/rpc/get_route_directions" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotBody["route_id_param"] != "14" || gotBody["network_id_param"] != "AXO" {
		t.Errorf("params: got %v", gotBody)
	}
	if len(ds) != 2 || ds[1].Headsign != "Plateau Rochy" {
		t.Errorf("unexpected directions: %+v", ds)
	}
}

func TestGetNetworkCode(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("network_id") != "eq.AXO" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[]`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"network_id":"AXO","network_code":51}]`))
	})
	defer srv.Close()

	code, err := c.GetNetworkCode(context.Background(), "AXO")
	if err != nil {
		t.Fatalf("GetNetworkCode: %v", err)
	}
	if code != 51 {
		t.Errorf("expected 51, got %d", code)
	}

	if _, err := c.GetNetworkCode(context.Background(), "NOPE"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown network, got %v", err)
	}
}

func TestDeleteSendsFilters(t *testing.T) {
	var gotMethod, gotQuery string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusNoContent)
	})
	defer srv.Close()

	err := c.RemoveFavoriteLine(context.Background(), "u1", "14", "AXO")
	if err != nil {
		t.Fatalf("RemoveFavoriteLine: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method: got %q", gotMethod)
	}
	if gotQuery != "line_id=eq.14&network_id=eq.AXO&user_id=eq.u1" {
		t.Errorf("query: got %q", gotQuery)
	}
}

func TestUpsertSetsMergePreference(t *testing.T) {
	var gotPrefer string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPrefer = r.Header.Get("Prefer")
		w.WriteHeader(http.StatusCreated)
	})
	defer srv.Close()

	err := c.SaveUserPreferences(context.Background(), Preferences{UserID: "u1", Theme: "dark"})
	if err != nil {
		t.Fatalf("SaveUserPreferences: %v", err)
	}
	if gotPrefer != "resolution=merge-duplicates" {
		t.Errorf("Prefer header: got %q", gotPrefer)
	}
}
