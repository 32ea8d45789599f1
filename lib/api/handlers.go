package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-i2p/logger"
	"github.com/gorilla/mux"

	"github.com/titellus/geonetwork-pnf/lib/datadir"
	"github.com/titellus/geonetwork-pnf/lib/htmlcache"
	"github.com/titellus/geonetwork-pnf/lib/migration"
	"github.com/titellus/geonetwork-pnf/lib/settings"
)

// Deps are the services the API exposes.
type Deps struct {
	DataDir    datadir.Config
	Settings   *settings.Store
	Migrations *migration.Trigger
	Cache      *htmlcache.Store
	Auth       *AuthManager
}

type handlers struct {
	Deps
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status string `json:"status"`
	Node   string `json:"node"`
}

// PurgeResponse is returned by DELETE /api/htmlcache.
type PurgeResponse struct {
	Removed int `json:"removed"`
}

// NewRouter builds the API routes.
func NewRouter(d Deps) *mux.Router {
	if d.Auth == nil {
		d.Auth = NewAuthManager("")
	}
	h := &handlers{Deps: d}

	r := mux.NewRouter()
	r.HandleFunc("/api/health", h.health).Methods(http.MethodGet)
	r.HandleFunc("/api/datadir", h.dataDir).Methods(http.MethodGet)
	r.HandleFunc("/api/settings", h.settingsTree).Methods(http.MethodGet)

	// legacy clients still use the versioned prefix
	for _, prefix := range []string{"/api", "/api/0.1"} {
		r.HandleFunc(prefix+"/tools/migration/steps/{stepName}", h.callStep).Methods(http.MethodPut)
	}
	r.HandleFunc("/api/tools/migration/steps", d.Auth.requireAdmin(h.listSteps)).Methods(http.MethodGet)

	r.HandleFunc("/api/htmlcache", d.Auth.requireAdmin(h.purgeCache)).Methods(http.MethodDelete)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithFields(logger.Fields{
			"at":     "writeJSON",
			"reason": err.Error(),
		}).Error("failed to write response")
	}
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Node: h.DataDir.NodeID()})
}

func (h *handlers) dataDir(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.DataDir.Summary())
}

// settingsTree returns the settings tree. Internal settings are only shown
// to administrators.
func (h *handlers) settingsTree(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.Auth.profile(w, r)
	if !ok {
		return
	}
	if h.Settings == nil {
		http.Error(w, "settings store unavailable", http.StatusServiceUnavailable)
		return
	}
	all, err := h.Settings.All()
	if err != nil {
		log.WithError(err).WithField("at", "(handlers) settingsTree").Error("cannot list settings")
		http.Error(w, "cannot list settings", http.StatusInternalServerError)
		return
	}
	visible := all[:0]
	for _, s := range all {
		if !s.Internal || profile == migration.ProfileAdministrator {
			visible = append(visible, s)
		}
	}
	writeJSON(w, http.StatusOK, settings.BuildTree(visible))
}

// statusCode maps a trigger result to its HTTP status.
func statusCode(s migration.Status) int {
	switch s {
	case migration.StatusCreated:
		return http.StatusCreated
	case migration.StatusNotFound:
		return http.StatusBadRequest
	case migration.StatusForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (h *handlers) callStep(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.Auth.profile(w, r)
	if !ok {
		return
	}
	if h.Migrations == nil {
		http.Error(w, "migrations unavailable", http.StatusServiceUnavailable)
		return
	}
	name := mux.Vars(r)["stepName"]
	res := h.Migrations.Call(r.Context(), profile, name)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode(res.Status))
	_, _ = w.Write([]byte(res.Message))
}

func (h *handlers) listSteps(w http.ResponseWriter, r *http.Request) {
	if h.Migrations == nil {
		writeJSON(w, http.StatusOK, []string{})
		return
	}
	writeJSON(w, http.StatusOK, h.Migrations.Names())
}

func (h *handlers) purgeCache(w http.ResponseWriter, r *http.Request) {
	if h.Cache == nil {
		writeJSON(w, http.StatusOK, PurgeResponse{})
		return
	}
	n, err := h.Cache.Purge()
	if err != nil {
		log.WithError(err).WithField("at", "(handlers) purgeCache").Error("cannot purge html cache")
		http.Error(w, "cannot purge html cache", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, PurgeResponse{Removed: n})
}
