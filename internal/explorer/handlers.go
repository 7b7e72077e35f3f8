package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ziadkadry99/asset-atlas/internal/atlas"
	"github.com/ziadkadry99/asset-atlas/internal/audit"
	"github.com/ziadkadry99/asset-atlas/internal/catalog"
	"github.com/ziadkadry99/asset-atlas/internal/details"
	"github.com/ziadkadry99/asset-atlas/internal/metrics"
	"github.com/ziadkadry99/asset-atlas/internal/view"
)

// menuResponse is the JSON response for the menu endpoint.
type menuResponse struct {
	Items   []string `json:"items"`
	Current string   `json:"current"`
}

// selectRequest switches the active view by menu label.
type selectRequest struct {
	Label string `json:"label"`
}

// pickRequest reports a click on the node at Index of DrawOrder.
type pickRequest struct {
	Index     int      `json:"index"`
	DrawOrder []string `json:"draw_order"`
}

// detailResponse is what the details pane shows. An empty Text means
// nothing is selected.
type detailResponse struct {
	Kind   string      `json:"kind,omitempty"`
	ID     string      `json:"id,omitempty"`
	Text   string      `json:"text"`
	HTML   string      `json:"html"`
	Entity interface{} `json:"entity,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// searchResponse lists assets whose id matches a glob.
type searchResponse struct {
	Query  string          `json:"query"`
	Assets []catalog.Asset `json:"assets"`
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, menuResponse{
		Items:   s.atlas.Menu(),
		Current: s.atlas.Current().Label(),
	})
}

func (s *Server) handleCurrentView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.atlas.CurrentFrame())
}

func (s *Server) handleSelectView(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := s.atlas.Select(req.Label); err != nil {
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.atlas.CurrentFrame())
}

// handleFrame returns the frame of any view without switching to it.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	f, err := s.atlas.FrameFor(r.URL.Query().Get("view"))
	if err != nil {
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handlePick(w http.ResponseWriter, r *http.Request) {
	var req pickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, detailResponse{Error: "invalid request body"})
		return
	}
	resp, err := pickDetail(r.Context(), s.atlas, s.metrics, s.cfg.Journal, s.atlas.Current(), req.Index, req.DrawOrder)
	if err != nil {
		writeJSON(w, statusFor(err), resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// pickDetail resolves a pick against state, the view read once by the
// caller, so metrics and the journal record the view the pick was resolved
// in. On failure the response carries the error and an empty detail.
func pickDetail(ctx context.Context, a *atlas.Atlas, reg *metrics.Registry, j *audit.Journal, state view.State, index int, drawOrder []string) (detailResponse, error) {
	kind := "asset"
	if state.IsOverview() {
		kind = "area"
	}
	e, err := a.Resolver().Resolve(state, index, drawOrder)
	reg.RecordPick(kind, err)
	j.RecordPick(ctx, state.Label(), index, e, err)
	if err != nil {
		return detailResponse{Error: err.Error()}, err
	}
	html, err := details.HTML(e)
	if err != nil {
		return detailResponse{Error: err.Error()}, err
	}
	return detailResponse{
		Kind:   kind,
		ID:     e.ID(),
		Text:   details.Format(e),
		HTML:   html,
		Entity: e,
	}, nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "q is required"})
		return
	}
	assets, err := s.atlas.Catalog().Match(q)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if assets == nil {
		assets = []catalog.Asset{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: q, Assets: assets})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrIndexOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrUnknownAsset):
		// The caller's draw order belongs to a view that is no longer active.
		return http.StatusConflict
	case errors.Is(err, catalog.ErrUnknownArea), errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// frameMessage is pushed to stream clients on every view change.
type frameMessage struct {
	Type  string      `json:"type"`
	Frame atlas.Frame `json:"frame"`
}
