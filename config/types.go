package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// StoreConfig contains the remote relational store configuration
type StoreConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"required,url"`
	APIKey    string `yaml:"apiKey"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// DisruptionConfig contains the traffic-disruption feed configuration.
// GTFSRTAlertsURL is an optional secondary source; when set, service
// alerts from that feed are merged into the primary feed's results,
// attributed to the network named by GTFSRTNetworkCode/Name.
type DisruptionConfig struct {
	FeedURL           string `yaml:"feedURL" validate:"required,url"`
	GTFSRTAlertsURL   string `yaml:"gtfsrtAlertsURL" validate:"omitempty,url"`
	GTFSRTNetworkCode int    `yaml:"gtfsrtNetworkCode" validate:"gte=0"`
	GTFSRTNetworkName string `yaml:"gtfsrtNetworkName"`
	TimeoutMS         int    `yaml:"timeoutMS" validate:"gte=0"`
	RefreshIntervalMS int    `yaml:"refreshIntervalMS" validate:"gte=0"`
}

// CacheConfig contains the read-through cache configuration
type CacheConfig struct {
	TTLSeconds int `yaml:"ttlSeconds" validate:"gte=0"`
}

// MonitorConfig lists the networks whose disruptions are refreshed in
// the background
type MonitorConfig struct {
	Networks []string `yaml:"networks"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server     ServerConfig     `yaml:"server" validate:"required"`
	Store      StoreConfig      `yaml:"store" validate:"required"`
	Disruption DisruptionConfig `yaml:"disruption" validate:"required"`
	Cache      CacheConfig      `yaml:"cache"`
	Monitor    MonitorConfig    `yaml:"monitor"`
}
