package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/desalboard/desalboard/internal/engine"
	"github.com/desalboard/desalboard/internal/engine/cache"
	"github.com/desalboard/desalboard/internal/equipment"
	"github.com/desalboard/desalboard/internal/logging"
	"github.com/desalboard/desalboard/internal/stages"
)

// CacheHeader reports whether a chart response came from the cache.
const CacheHeader = "X-Cache"

// maxComposeBody bounds the hybrid compose request body.
const maxComposeBody = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status         string `json:"status"`
	DatasetVersion string `json:"dataset_version"`
}

type scorecardResponse struct {
	HybridReady bool             `json:"hybrid_ready"`
	SlotsFilled string           `json:"slots_filled"`
	Scorecard   engine.Scorecard `json:"scorecard"`
	Comparison  string           `json:"comparison"`
}

type equipmentItem struct {
	equipment.Row

	Stage stages.Stage `json:"stage"`
}

type stageOptions struct {
	Stage   stages.Stage `json:"stage"`
	Options []string     `json:"options"`
}

type composeRequest struct {
	Selection map[stages.Stage]string `json:"selection"`
}

type composeResponse struct {
	Ready       bool            `json:"ready"`
	SlotsFilled string          `json:"slots_filled"`
	Table       equipment.Table `json:"table,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", DatasetVersion: s.ds.Version})
}

// handleChart serves the full report, from the cache when possible.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	in, sel, err := parseInputs(r.URL.Query(), s.defaults)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key, keyErr := cache.GenerateKey("chart", chartKey(in, sel))
	if keyErr != nil {
		log.Warn().Err(keyErr).Msg("could not build chart cache key")
	}

	if key != "" {
		if entry, getErr := s.cache.Get(key); getErr == nil {
			now := time.Now()
			log.Debug().
				Dur("age", entry.Age(now)).
				Dur("remaining", entry.Remaining(now)).
				Msg("chart cache hit")
			s.metrics.CacheHit()
			w.Header().Set(CacheHeader, "HIT")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(entry.Data)
			return
		} else if s.cache.IsEnabled() {
			s.metrics.CacheMiss()
		}
	}

	report := engine.BuildReport(r.Context(), s.ds, in, sel)
	body, err := json.Marshal(report)
	if err != nil {
		log.Error().Err(err).Msg("encoding chart report")
		writeError(w, http.StatusInternalServerError, "failed to encode report")
		return
	}
	body = append(body, '\n')

	if key != "" && s.cache.IsEnabled() {
		if setErr := s.cache.Set(key, body); setErr != nil {
			log.Warn().Err(setErr).Msg("could not cache chart report")
		}
		s.metrics.cacheEntries.Set(float64(s.cache.Count()))
	}

	w.Header().Set(CacheHeader, "MISS")
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// chartKey is the canonical cache key material for a chart request.
func chartKey(in engine.ChartInputs, sel engine.Selection) any {
	picks := make([]string, 0, len(stages.HybridStages))
	for _, st := range stages.HybridStages {
		name, _ := sel.Get(st)
		picks = append(picks, name)
	}
	return struct {
		Battery  float64  `json:"battery"`
		Years    int      `json:"years"`
		Salinity float64  `json:"salinity"`
		Depth    float64  `json:"depth"`
		Picks    []string `json:"picks"`
	}{in.BatteryFraction, in.HorizonYears, in.Salinity, in.Depth, picks}
}

func (s *Server) handleScorecard(w http.ResponseWriter, r *http.Request) {
	in, sel, err := parseInputs(r.URL.Query(), s.defaults)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	report := engine.BuildReport(r.Context(), s.ds, in, sel)
	writeJSON(w, http.StatusOK, scorecardResponse{
		HybridReady: report.HybridReady,
		SlotsFilled: report.SlotsFilled,
		Scorecard:   report.Scorecard,
		Comparison:  report.Comparison,
	})
}

func (s *Server) handleEquipment(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["system"]
	system, ok := equipment.ParseSystem(strings.ToLower(name))
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown system %q", name))
		return
	}
	table, ok := s.ds.Table(system)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("system %q has no equipment table", system))
		return
	}

	items := make([]equipmentItem, 0, len(table))
	for _, row := range table {
		items = append(items, equipmentItem{Row: row, Stage: stages.StageOf(row.Name, system)})
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleHybridOptions(w http.ResponseWriter, _ *http.Request) {
	sources := engine.SourcesFrom(s.ds)
	all := make([]stageOptions, 0, len(stages.HybridStages))
	for _, st := range stages.HybridStages {
		options := engine.HybridOptions(st, sources)
		if options == nil {
			options = []string{}
		}
		all = append(all, stageOptions{Stage: st, Options: options})
	}
	writeJSON(w, http.StatusOK, all)
}

// handleHybridCompose resolves a selection. A closed gate is a normal
// response with ready=false, not an error.
func (s *Server) handleHybridCompose(w http.ResponseWriter, r *http.Request) {
	var req composeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxComposeBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	var sel engine.Selection
	for st, name := range req.Selection {
		if !sel.Set(st, name) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%q is not a hybrid stage", st))
			return
		}
	}

	table, ready := engine.ComposeHybrid(sel, engine.SourcesFrom(s.ds))
	logging.FromContext(r.Context()).Debug().Bool("ready", ready).Int("filled", sel.Filled()).Msg("hybrid composed")
	writeJSON(w, http.StatusOK, composeResponse{Ready: ready, SlotsFilled: sel.CounterLabel(), Table: table})
}
