package web

import (
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rook-computer/diceroller/internal/dice"
	"github.com/rook-computer/diceroller/internal/session"
	"github.com/rook-computer/diceroller/internal/state"
)

// maxBodyBytes caps request bodies; configuration payloads are tiny.
const maxBodyBytes = 4 << 10

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type stateResponse struct {
	Phase     string   `json:"phase"`
	Spec      string   `json:"spec"`
	Count     int      `json:"count"`
	Sides     int      `json:"sides"`
	Faces     []int    `json:"faces"`
	Total     int      `json:"total"`
	Final     bool     `json:"final"`
	Animating bool     `json:"animating"`
	History   []string `json:"history"`
	Message   string   `json:"message,omitempty"`
}

type configRequest struct {
	Count *int   `json:"count"`
	Sides *int   `json:"sides"`
	Spec  string `json:"spec"`
}

type resultResponse struct {
	Spec  string `json:"spec"`
	Dice  []int  `json:"dice"`
	Total int    `json:"total"`
	Text  string `json:"text"`
}

type historyEntryResponse struct {
	resultResponse
	At time.Time `json:"at"`
}

type presetResponse struct {
	Name  string `json:"name"`
	Spec  string `json:"spec"`
	Count int    `json:"count"`
	Sides int    `json:"sides"`
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /state", func(w http.ResponseWriter, r *http.Request) { handleState(w, r, deps) })
	mux.HandleFunc("PUT /config", func(w http.ResponseWriter, r *http.Request) { handleConfig(w, r, deps) })
	mux.HandleFunc("POST /roll", func(w http.ResponseWriter, r *http.Request) { handleRoll(w, r, deps) })
	mux.HandleFunc("POST /quickroll/{name}", func(w http.ResponseWriter, r *http.Request) { handleQuickRoll(w, r, deps) })
	mux.HandleFunc("GET /history", func(w http.ResponseWriter, r *http.Request) { handleHistory(w, r, deps) })
	mux.HandleFunc("DELETE /history", func(w http.ResponseWriter, r *http.Request) { handleClearHistory(w, r, deps) })
	mux.HandleFunc("GET /presets", func(w http.ResponseWriter, r *http.Request) { handlePresets(w, r, deps) })
	mux.HandleFunc("GET /screen.png", func(w http.ResponseWriter, r *http.Request) { handleScreenshot(w, r, deps) })
	return mux
}

func handleState(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if deps.State == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "no session configured")
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(deps.State.Snapshot()))
}

func newStateResponse(st state.State) stateResponse {
	resp := stateResponse{
		Phase:     st.Phase.String(),
		Spec:      st.Spec.String(),
		Count:     st.Spec.Count,
		Sides:     st.Spec.Sides,
		Faces:     st.Faces,
		Total:     st.Total,
		Final:     st.Final,
		Animating: st.Phase == state.ANIMATING,
		History:   st.History,
		Message:   st.Message,
	}
	if resp.Faces == nil {
		resp.Faces = []int{}
	}
	if resp.History == nil {
		resp.History = []string{}
	}
	return resp
}

func handleConfig(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if deps.Session == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "no session configured")
		return
	}
	var req configRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	var count, sides int
	switch {
	case strings.TrimSpace(req.Spec) != "":
		spec, err := dice.Parse(req.Spec)
		if err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_configuration", err.Error())
			return
		}
		count, sides = spec.Count, spec.Sides
	case req.Count != nil || req.Sides != nil:
		current := deps.Session.Config()
		count, sides = current.Count, current.Sides
		if req.Count != nil {
			count = *req.Count
		}
		if req.Sides != nil {
			sides = *req.Sides
		}
	default:
		writeAPIError(w, http.StatusBadRequest, "invalid_configuration", "expected count/sides or spec")
		return
	}

	if err := deps.Session.Configure(count, sides); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_configuration", err.Error())
		return
	}
	deps.Logger.Info("configuration changed via api", zap.Stringer("spec", deps.Session.Config()))
	writeJSON(w, http.StatusOK, newStateResponse(deps.State.Snapshot()))
}

func handleRoll(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if deps.Session == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "no session configured")
		return
	}
	// The roll outlives the request unless the caller waits for it.
	done, err := deps.Session.Roll(context.WithoutCancel(r.Context()))
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "roll_failed", err.Error())
		return
	}
	respondRoll(w, r, done)
}

func handleQuickRoll(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if deps.Session == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "no session configured")
		return
	}
	name := r.PathValue("name")
	done, err := deps.Session.QuickRoll(context.WithoutCancel(r.Context()), name)
	if err != nil {
		if errors.Is(err, session.ErrUnknownPreset) {
			writeAPIError(w, http.StatusNotFound, "unknown_preset", err.Error())
			return
		}
		writeAPIError(w, http.StatusInternalServerError, "roll_failed", err.Error())
		return
	}
	respondRoll(w, r, done)
}

// respondRoll answers 202 immediately, or with the final result when the
// request asks to wait. A superseded roll answers 409.
func respondRoll(w http.ResponseWriter, r *http.Request, done <-chan dice.Result) {
	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))
	if !wait {
		writeJSON(w, http.StatusAccepted, okResponse{OK: true})
		return
	}
	select {
	case res, ok := <-done:
		if !ok {
			writeAPIError(w, http.StatusConflict, "roll_superseded", "roll was superseded before it finished")
			return
		}
		writeJSON(w, http.StatusOK, newResultResponse(res))
	case <-r.Context().Done():
	}
}

func newResultResponse(res dice.Result) resultResponse {
	return resultResponse{Spec: res.Spec.String(), Dice: res.Values, Total: res.Total(), Text: res.String()}
}

func handleHistory(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if deps.Session == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "no session configured")
		return
	}
	entries := deps.Session.History()
	out := make([]historyEntryResponse, 0, len(entries))
	for _, e := range entries {
		item := historyEntryResponse{resultResponse: newResultResponse(e.Result), At: e.At}
		item.Text = e.Text
		out = append(out, item)
	}
	writeJSON(w, http.StatusOK, out)
}

func handleClearHistory(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if deps.Session == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "no session configured")
		return
	}
	deps.Session.ClearHistory()
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func handlePresets(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if deps.Session == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "no session configured")
		return
	}
	presets := deps.Session.Presets()
	out := make([]presetResponse, 0, len(presets))
	for _, p := range presets {
		out = append(out, presetResponse{Name: p.Name, Spec: p.Spec.String(), Count: p.Spec.Count, Sides: p.Spec.Sides})
	}
	writeJSON(w, http.StatusOK, out)
}

func handleScreenshot(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if deps.Screenshot == nil || deps.State == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "screenshots not configured")
		return
	}
	img, err := deps.Screenshot(deps.State.Snapshot())
	if err != nil {
		deps.Logger.Error("screenshot failed", zap.Error(err))
		writeAPIError(w, http.StatusInternalServerError, "screenshot_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := png.Encode(w, img); err != nil {
		deps.Logger.Debug("screenshot write failed", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
