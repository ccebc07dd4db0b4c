package store

import (
	"context"
	"sort"
)

// Typed accessors over the generic client. Errors always propagate:
// this data is essential to the screens that request it, so failures
// must surface rather than degrade silently.

func (c *Client) GetNetwork(ctx context.Context, networkID string) (Network, error) {
	var n Network
	err := c.SelectOne(ctx, "networks", map[string]string{"network_id": networkID}, &n)
	return n, err
}

func (c *Client) ListNetworks(ctx context.Context) ([]Network, error) {
	var ns []Network
	if err := c.Select(ctx, "networks", nil, &ns); err != nil {
		return nil, err
	}
	sort.Slice(ns, func(i, j int) bool { return ns[i].Ordering < ns[j].Ordering })
	return ns, nil
}

func (c *Client) GetLine(ctx context.Context, lineID, networkID string) (Route, error) {
	var r Route
	err := c.SelectOne(ctx, "routes", map[string]string{"route_id": lineID, "network_id": networkID}, &r)
	return r, err
}

func (c *Client) ListLines(ctx context.Context, networkID string) ([]Route, error) {
	var rs []Route
	if err := c.Select(ctx, "routes", map[string]string{"network_id": networkID}, &rs); err != nil {
		return nil, err
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].ShortName < rs[j].ShortName })
	return rs, nil
}

// GetRouteDirections invokes the get_route_directions procedure, which
// returns the distinct headings of a route.
func (c *Client) GetRouteDirections(ctx context.Context, lineID, networkID string) ([]Direction, error) {
	params := map[string]string{
		"route_id_param":   lineID,
		"network_id_param": networkID,
	}
	var ds []Direction
	if err := c.RPC(ctx, "get_route_directions", params, &ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// GetNetworkCode resolves the disruption feed's numeric code for an
// internal network identifier via a single-row agency lookup. Returns
// ErrNotFound when the network has no agency row.
func (c *Client) GetNetworkCode(ctx context.Context, networkID string) (int, error) {
	var a Agency
	if err := c.SelectOne(ctx, "agency", map[string]string{"network_id": networkID}, &a); err != nil {
		return 0, err
	}
	return a.NetworkCode, nil
}

func (c *Client) ListFavoriteLines(ctx context.Context, userID string) ([]FavoriteLine, error) {
	var fs []FavoriteLine
	err := c.Select(ctx, "favorite_lines", map[string]string{"user_id": userID}, &fs)
	return fs, err
}

func (c *Client) AddFavoriteLine(ctx context.Context, fav FavoriteLine) error {
	return c.Insert(ctx, "favorite_lines", fav, nil)
}

func (c *Client) RemoveFavoriteLine(ctx context.Context, userID, lineID, networkID string) error {
	return c.Delete(ctx, "favorite_lines", map[string]string{
		"user_id":    userID,
		"line_id":    lineID,
		"network_id": networkID,
	})
}

func (c *Client) ListFavoriteNetworks(ctx context.Context, userID string) ([]FavoriteNetwork, error) {
	var fs []FavoriteNetwork
	err := c.Select(ctx, "favorite_networks", map[string]string{"user_id": userID}, &fs)
	return fs, err
}

func (c *Client) GetUserPreferences(ctx context.Context, userID string) (Preferences, error) {
	var p Preferences
	err := c.SelectOne(ctx, "user_preferences", map[string]string{"user_id": userID}, &p)
	return p, err
}

func (c *Client) SaveUserPreferences(ctx context.Context, p Preferences) error {
	return c.Upsert(ctx, "user_preferences", p)
}

// GetReferralRanking invokes the reward-ranking procedure and returns
// the leaderboard ordered by rank.
func (c *Client) GetReferralRanking(ctx context.Context) ([]RankingEntry, error) {
	var entries []RankingEntry
	if err := c.RPC(ctx, "get_referral_ranking", map[string]string{}, &entries); err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Rank < entries[j].Rank })
	return entries, nil
}

func (c *Client) ListForumTopics(ctx context.Context, networkID string) ([]ForumTopic, error) {
	var ts []ForumTopic
	if err := c.Select(ctx, "forum_topics", map[string]string{"network_id": networkID}, &ts); err != nil {
		return nil, err
	}
	// Newest first; created_at is ISO-8601 so string order matches time order.
	sort.Slice(ts, func(i, j int) bool { return ts[i].CreatedAt > ts[j].CreatedAt })
	return ts, nil
}
