package store

// Row types for the tables and procedures this service reads. Field
// names mirror the store's column names; all rows are treated as
// immutable snapshots once fetched.

// Network is a transit network (internal identity, not the feed's
// numeric code; see Agency).
type Network struct {
	ID       string `json:"network_id"`
	Name     string `json:"network_name"`
	Region   string `json:"region,omitempty"`
	LogoURL  string `json:"logo_url,omitempty"`
	Ordering int    `json:"ordering,omitempty"`
}

// Agency links an internal network identifier to the disruption feed's
// numeric network code.
type Agency struct {
	NetworkID   string `json:"network_id"`
	NetworkCode int    `json:"network_code"`
}

// Route is a line of a network as displayed to riders.
type Route struct {
	ID        string `json:"route_id"`
	NetworkID string `json:"network_id"`
	ShortName string `json:"route_short_name"`
	LongName  string `json:"route_long_name,omitempty"`
	Color     string `json:"route_color,omitempty"`
	TextColor string `json:"route_text_color,omitempty"`
	Mode      string `json:"transport_mode,omitempty"`
}

// Direction is one heading of a route, as returned by the
// get_route_directions procedure.
type Direction struct {
	ID       int    `json:"direction_id"`
	Headsign string `json:"headsign"`
}

// FavoriteLine is a user's bookmarked line.
type FavoriteLine struct {
	UserID    string `json:"user_id"`
	LineID    string `json:"line_id"`
	NetworkID string `json:"network_id"`
	AddedAt   string `json:"added_at,omitempty"`
}

// FavoriteNetwork is a user's bookmarked network.
type FavoriteNetwork struct {
	UserID    string `json:"user_id"`
	NetworkID string `json:"network_id"`
	AddedAt   string `json:"added_at,omitempty"`
}

// Preferences holds a user's display settings.
type Preferences struct {
	UserID           string `json:"user_id"`
	Language         string `json:"language,omitempty"`
	Theme            string `json:"theme,omitempty"`
	DefaultNetworkID string `json:"default_network_id,omitempty"`
}

// RankingEntry is one row of the referral leaderboard.
type RankingEntry struct {
	Rank      int    `json:"rank"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Referrals int    `json:"referrals"`
}

// ForumTopic is a discussion thread scoped to a network.
type ForumTopic struct {
	ID         string `json:"topic_id"`
	NetworkID  string `json:"network_id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	ReplyCount int    `json:"reply_count"`
	CreatedAt  string `json:"created_at"`
}
