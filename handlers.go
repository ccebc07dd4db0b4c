package transitapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/oisemob/transit-api/cache"
	"github.com/oisemob/transit-api/disruption"
	"github.com/oisemob/transit-api/store"
)

// Essential reference data (networks, lines, directions) hard-fails:
// errors surface as an error payload for the screen's inline error
// panel. Disruption data is advisory and soft-fails to an empty list.

func (a *App) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusBadGateway, err.Error())
}

func (a *App) handleNetworks(w http.ResponseWriter, r *http.Request) {
	ns, err := a.store.ListNetworks(r.Context())
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ns)
}

func (a *App) handleNetwork(w http.ResponseWriter, r *http.Request) {
	networkID := r.PathValue("id")
	n, err := cache.GetOrFetch(a.cache, cache.NetworkKey(networkID), func() (store.Network, error) {
		return a.store.GetNetwork(r.Context(), networkID)
	})
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (a *App) handleNetworkLines(w http.ResponseWriter, r *http.Request) {
	networkID := r.PathValue("id")
	lines, err := cache.GetOrFetch(a.cache, cache.NetworkLinesKey(networkID), func() ([]store.Route, error) {
		return a.store.ListLines(r.Context(), networkID)
	})
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

func (a *App) handleLine(w http.ResponseWriter, r *http.Request) {
	lineID := r.PathValue("id")
	networkID, err := requireParam(r.URL.Query(), "network")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	line, err := cache.GetOrFetch(a.cache, cache.LineKey(lineID, networkID), func() (store.Route, error) {
		return a.store.GetLine(r.Context(), lineID, networkID)
	})
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, line)
}

func (a *App) handleLineDirections(w http.ResponseWriter, r *http.Request) {
	lineID := r.PathValue("id")
	networkID, err := requireParam(r.URL.Query(), "network")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ds, err := cache.GetOrFetch(a.cache, cache.DirectionsKey(lineID, networkID), func() ([]store.Direction, error) {
		return a.store.GetRouteDirections(r.Context(), lineID, networkID)
	})
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

func (a *App) handleDisruptions(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	networkID, err := requireParam(params, "network")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	line := optionalParam(params, "line")
	term := optionalParam(params, "q")
	now := a.now()

	var ds []disruption.Disruption
	if line != "" {
		ds, err = a.resolver.DisruptionsForLine(r.Context(), networkID, line)
	} else {
		ds, err = a.resolver.ActiveDisruptionsForNetwork(r.Context(), networkID, now)
	}
	if err != nil {
		// Advisory data: degrade to "no disruptions" rather than erroring.
		log.Printf("disruption lookup failed for network %s: %v", networkID, err)
		writeJSON(w, http.StatusOK, []disruption.FormattedDisruption{})
		return
	}
	ds = disruption.Filter(ds, term)
	if line != "" {
		active := make([]disruption.Disruption, 0, len(ds))
		for _, d := range ds {
			if disruption.IsActive(d, now) {
				active = append(active, d)
			}
		}
		ds = active
	}
	writeJSON(w, http.StatusOK, disruption.Format(ds, now))
}

func (a *App) handleDisruptionsGrouped(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.monitor.Grouped())
}

func (a *App) handleListFavoriteLines(w http.ResponseWriter, r *http.Request) {
	userID, err := requireParam(r.URL.Query(), "user")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	favs, err := a.store.ListFavoriteLines(r.Context(), userID)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favs)
}

func (a *App) handleAddFavoriteLine(w http.ResponseWriter, r *http.Request) {
	var fav store.FavoriteLine
	if err := json.NewDecoder(r.Body).Decode(&fav); err != nil {
		writeError(w, http.StatusBadRequest, "invalid favorite payload")
		return
	}
	if fav.UserID == "" || fav.LineID == "" || fav.NetworkID == "" {
		writeError(w, http.StatusBadRequest, "user_id, line_id and network_id are required")
		return
	}
	if err := a.store.AddFavoriteLine(r.Context(), fav); err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fav)
}

func (a *App) handleRemoveFavoriteLine(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	userID, err := requireParam(params, "user")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lineID, err := requireParam(params, "line")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	networkID, err := requireParam(params, "network")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.store.RemoveFavoriteLine(r.Context(), userID, lineID, networkID); err != nil {
		a.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleListFavoriteNetworks(w http.ResponseWriter, r *http.Request) {
	userID, err := requireParam(r.URL.Query(), "user")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	favs, err := a.store.ListFavoriteNetworks(r.Context(), userID)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, favs)
}

func (a *App) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, err := requireParam(r.URL.Query(), "user")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	prefs, err := a.store.GetUserPreferences(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		// A user without a row gets defaults, not an error.
		writeJSON(w, http.StatusOK, store.Preferences{UserID: userID})
		return
	}
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (a *App) handleSavePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs store.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid preferences payload")
		return
	}
	if prefs.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if err := a.store.SaveUserPreferences(r.Context(), prefs); err != nil {
		a.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := a.store.GetReferralRanking(r.Context())
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (a *App) handleForumTopics(w http.ResponseWriter, r *http.Request) {
	networkID, err := requireParam(r.URL.Query(), "network")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	topics, err := a.store.ListForumTopics(r.Context(), networkID)
	if err != nil {
		a.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

func (a *App) handleCacheInvalidate(w http.ResponseWriter, r *http.Request) {
	key := optionalParam(r.URL.Query(), "key")
	if key == "" {
		a.cache.InvalidateAll()
	} else {
		a.cache.Invalidate(key)
	}
	w.WriteHeader(http.StatusNoContent)
}
