package gtfsrt

import (
	"context"
	"fmt"
	"io"
	"net/http"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

func fetchFeed(ctx context.Context, httpClient *http.Client, url string) (*gtfsrtpb.FeedMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(raw, &fm); err != nil {
		return nil, fmt.Errorf("failed to decode feed from %s: %w", url, err)
	}
	return &fm, nil
}
