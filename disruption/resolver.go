package disruption

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/oisemob/transit-api/store"
)

// ErrUnknownNetwork is returned when a network has no agency row, i.e.
// no feed network code. Callers treat it as "no disruptions" but can
// tell it apart from a transport failure.
var ErrUnknownNetwork = errors.New("disruption: no network code for network")

// CodeLookup resolves an internal network identifier to the feed's
// numeric network code. *store.Client satisfies it.
type CodeLookup interface {
	GetNetworkCode(ctx context.Context, networkID string) (int, error)
}

// Source is a secondary provider of disruptions merged into the primary
// feed's results (e.g. a GTFS-RT service-alerts feed).
type Source interface {
	Fetch(ctx context.Context) ([]Disruption, error)
}

// Resolver translates internal network identifiers into the set of
// service disruptions relevant to them. Methods return errors; the
// soft-fail conversion to empty results belongs to the HTTP and monitor
// boundaries, where disruption data is advisory.
type Resolver struct {
	codes      CodeLookup
	feedURL    string
	httpClient *http.Client
	sources    []Source
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithHTTPClient overrides the feed HTTP client.
func WithHTTPClient(c *http.Client) ResolverOption {
	return func(r *Resolver) { r.httpClient = c }
}

// WithSource registers a secondary disruption source.
func WithSource(s Source) ResolverOption {
	return func(r *Resolver) { r.sources = append(r.sources, s) }
}

// NewResolver creates a resolver over the given code lookup and feed URL.
func NewResolver(codes CodeLookup, feedURL string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		codes:      codes,
		feedURL:    feedURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveNetworkCode looks up the feed network code for an internal
// network identifier. The lookup is performed per call; callers wanting
// memoization route it through the TTL cache.
func (r *Resolver) ResolveNetworkCode(ctx context.Context, networkID string) (int, error) {
	code, err := r.codes.GetNetworkCode(ctx, networkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, fmt.Errorf("%w: %s", ErrUnknownNetwork, networkID)
		}
		return 0, err
	}
	return code, nil
}

// FetchDisruptionsForNetwork fetches the full feed and keeps the
// disruptions touching the given network code. The feed has no
// parameters or pagination; filtering is client-side on every call.
func (r *Resolver) FetchDisruptionsForNetwork(ctx context.Context, networkCode int) ([]Disruption, error) {
	all, err := r.fetchAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Disruption, 0, len(all))
	for _, d := range all {
		if MatchesNetwork(d, networkCode) {
			out = append(out, d)
		}
	}
	return out, nil
}

// DisruptionsForLine returns the disruptions affecting one line of one
// network, matched exactly against the feed's number and code fields.
func (r *Resolver) DisruptionsForLine(ctx context.Context, networkID, lineNumber string) ([]Disruption, error) {
	code, err := r.ResolveNetworkCode(ctx, networkID)
	if err != nil {
		return nil, err
	}
	ds, err := r.FetchDisruptionsForNetwork(ctx, code)
	if err != nil {
		return nil, err
	}
	out := make([]Disruption, 0, len(ds))
	for _, d := range ds {
		if LineMatches(d, code, lineNumber) {
			out = append(out, d)
		}
	}
	return out, nil
}

// ActiveDisruptionsForNetwork returns the disruptions for a network
// whose effective window contains now.
func (r *Resolver) ActiveDisruptionsForNetwork(ctx context.Context, networkID string, now time.Time) ([]Disruption, error) {
	code, err := r.ResolveNetworkCode(ctx, networkID)
	if err != nil {
		return nil, err
	}
	ds, err := r.FetchDisruptionsForNetwork(ctx, code)
	if err != nil {
		return nil, err
	}
	out := make([]Disruption, 0, len(ds))
	for _, d := range ds {
		if IsActive(d, now) {
			out = append(out, d)
		}
	}
	return out, nil
}

// FormattedActiveDisruptionsForLine returns the view projection of a
// line's currently active disruptions, newest start date first.
func (r *Resolver) FormattedActiveDisruptionsForLine(ctx context.Context, networkID, lineNumber string, now time.Time) ([]FormattedDisruption, error) {
	ds, err := r.DisruptionsForLine(ctx, networkID, lineNumber)
	if err != nil {
		return nil, err
	}
	active := make([]Disruption, 0, len(ds))
	for _, d := range ds {
		if IsActive(d, now) {
			active = append(active, d)
		}
	}
	return Format(active, now), nil
}

// fetchAll fetches the primary feed and merges secondary sources. A
// failing secondary source is logged and skipped; only the primary feed
// can fail the call.
func (r *Resolver) fetchAll(ctx context.Context) ([]Disruption, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("disruption feed fetch failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("disruption feed: HTTP %d", resp.StatusCode)
	}
	var envelope feedEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("disruption feed decode failed: %w", err)
	}
	all := envelope.Data
	for _, src := range r.sources {
		extra, err := src.Fetch(ctx)
		if err != nil {
			log.Printf("secondary disruption source failed: %v", err)
			continue
		}
		all = append(all, extra...)
	}
	return all, nil
}
