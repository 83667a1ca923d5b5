package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"poolwatch/interfaces"
	"poolwatch/model"
)

// APIKeyHeader carries the key required to submit leaderlogs.
const APIKeyHeader = "apikey"

const maxBodyBytes = 4 << 20

// Handler serves the poller state. It never triggers provider calls except for
// epochs missing from the cache.
type Handler struct {
	core    interfaces.Core
	metrics http.Handler
}

func NewHandler(core interfaces.Core, metrics http.Handler) *Handler {
	return &Handler{core: core, metrics: metrics}
}

func (h *Handler) NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(accessLog)

	r.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)
	if h.metrics != nil {
		r.Handle("/metrics", h.metrics).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/ticker", h.HandleTicker).Methods(http.MethodGet)
	api.HandleFunc("/network", h.HandleNetwork).Methods(http.MethodGet)
	api.HandleFunc("/epoch", h.HandleEpochs).Methods(http.MethodGet)
	api.HandleFunc("/epoch/{epochId}", h.HandleEpoch).Methods(http.MethodGet)
	api.HandleFunc("/lastblock", h.HandleLastBlock).Methods(http.MethodGet)
	api.HandleFunc("/pool", h.HandlePool).Methods(http.MethodGet)
	api.HandleFunc("/pool/pool", h.HandlePoolStats).Methods(http.MethodGet)
	api.HandleFunc("/pool/delegators", h.HandleDelegators).Methods(http.MethodGet)
	api.HandleFunc("/pool/history", h.HandleHistory).Methods(http.MethodGet)
	api.HandleFunc("/pool/blocks", h.HandleBlocks).Methods(http.MethodGet)
	api.HandleFunc("/pool/leaderlogs", h.HandleLeaderlogs).Methods(http.MethodGet)
	api.HandleFunc("/pool/leaderlogs", h.HandleAddLeaderlogs).Methods(http.MethodPost)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeObject renders a nil pointer as an empty object.
func writeObject[T any](w http.ResponseWriter, v *T) {
	if v == nil {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// writeList renders a nil slice as an empty array.
func writeList[T any](w http.ResponseWriter, v []T) {
	if v == nil {
		v = []T{}
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := h.core.HealthStatus()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(http.StatusText(status)))
}

func (h *Handler) HandleTicker(w http.ResponseWriter, r *http.Request) {
	writeObject(w, h.core.Ticker())
}

func (h *Handler) HandleNetwork(w http.ResponseWriter, r *http.Request) {
	writeObject(w, h.core.Network())
}

func (h *Handler) HandleEpochs(w http.ResponseWriter, r *http.Request) {
	writeList(w, h.core.Epochs())
}

func (h *Handler) HandleEpoch(w http.ResponseWriter, r *http.Request) {
	epoch, ok := h.core.Epoch(r.Context(), mux.Vars(r)["epochId"])
	if !ok {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, epoch)
}

func (h *Handler) HandleLastBlock(w http.ResponseWriter, r *http.Request) {
	writeObject(w, h.core.LastBlock())
}

func (h *Handler) HandlePool(w http.ResponseWriter, r *http.Request) {
	writeObject(w, h.core.Pool())
}

func (h *Handler) HandlePoolStats(w http.ResponseWriter, r *http.Request) {
	stats := h.core.PoolStats()
	if stats.Delegators == nil {
		stats.Delegators = []model.Delegator{}
	}
	if stats.Blocks == nil {
		stats.Blocks = []string{}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) HandleDelegators(w http.ResponseWriter, r *http.Request) {
	writeList(w, h.core.Delegators())
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	writeList(w, h.core.History())
}

func (h *Handler) HandleBlocks(w http.ResponseWriter, r *http.Request) {
	writeList(w, h.core.Blocks())
}

func (h *Handler) HandleLeaderlogs(w http.ResponseWriter, r *http.Request) {
	writeList(w, h.core.Leaderlogs(r.Context()))
}

func (h *Handler) HandleAddLeaderlogs(w http.ResponseWriter, r *http.Request) {
	var logs []model.Leaderlog
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&logs); err != nil {
		slog.Warn("bad json in leaderlogs request", "error", err)
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	added, err := h.core.AddLeaderlogs(r.Context(), r.Header.Get(APIKeyHeader), logs)
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Not authorized")
	case err != nil:
		slog.Error("failed to add leaderlogs", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store leaderlogs")
	default:
		writeJSON(w, http.StatusOK, map[string]int{"added": added})
	}
}
