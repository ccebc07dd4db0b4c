package transitapi

import (
	"net/http"
	"time"

	"github.com/oisemob/transit-api/cache"
	"github.com/oisemob/transit-api/config"
	"github.com/oisemob/transit-api/disruption"
	"github.com/oisemob/transit-api/gtfsrt"
	"github.com/oisemob/transit-api/monitor"
	"github.com/oisemob/transit-api/store"
)

// App wires the store client, the TTL cache, the disruption resolver
// and the background monitor together behind the HTTP API. Every
// instance owns its own cache; there is no process-wide state.
type App struct {
	cfg      config.AppConfig
	store    *store.Client
	cache    *cache.Cache
	resolver *disruption.Resolver
	monitor  *monitor.Monitor
	now      func() time.Time

	httpServer *http.Server
}

// NewApp builds an App from its configuration.
func NewApp(cfg config.AppConfig) *App {
	st := store.NewClient(cfg.Store.BaseURL, cfg.Store.APIKey, msToDuration(cfg.Store.TimeoutMS))

	opts := []disruption.ResolverOption{
		disruption.WithHTTPClient(&http.Client{Timeout: msToDuration(cfg.Disruption.TimeoutMS)}),
	}
	if cfg.Disruption.GTFSRTAlertsURL != "" && cfg.Disruption.GTFSRTNetworkCode > 0 {
		alerts := gtfsrt.NewAlertSource(
			cfg.Disruption.GTFSRTAlertsURL,
			cfg.Disruption.GTFSRTNetworkCode,
			cfg.Disruption.GTFSRTNetworkName,
			msToDuration(cfg.Disruption.TimeoutMS),
		)
		opts = append(opts, disruption.WithSource(alerts))
	}
	resolver := disruption.NewResolver(st, cfg.Disruption.FeedURL, opts...)

	return &App{
		cfg:      cfg,
		store:    st,
		cache:    cache.New(time.Duration(cfg.Cache.TTLSeconds) * time.Second),
		resolver: resolver,
		monitor:  monitor.New(resolver, cfg.Monitor.Networks, msToDuration(cfg.Disruption.RefreshIntervalMS)),
		now:      time.Now,
	}
}

// Resolver exposes the disruption resolver, for the oneshot CLI mode.
func (a *App) Resolver() *disruption.Resolver { return a.resolver }

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
