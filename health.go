package transitapi

import "net/http"

type healthResponse struct {
	Status             string         `json:"status"`
	LatestRefreshEpoch int64          `json:"latest_refresh_epoch"`
	TrackedNetworks    int            `json:"tracked_networks"`
	DisruptionCounts   map[string]int `json:"disruption_counts"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := a.monitor.Snapshot()
	counts := make(map[string]int, len(a.cfg.Monitor.Networks))
	for _, networkID := range a.cfg.Monitor.Networks {
		counts[networkID] = a.monitor.Count(networkID)
	}
	resp := healthResponse{
		Status:           "ok",
		TrackedNetworks:  len(a.cfg.Monitor.Networks),
		DisruptionCounts: counts,
	}
	if !snap.TakenAt.IsZero() {
		resp.LatestRefreshEpoch = snap.TakenAt.Unix()
	}
	writeJSON(w, http.StatusOK, resp)
}
